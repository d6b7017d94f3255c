package main

const (
	MsgRootShort = "Expand custom HTML tags from a template directory"
	MsgRootLong  = `tagexpand replaces custom elements in HTML documents with the templates
registered for them, forwarding attributes onto the rendered markup and
collecting each tag's stylesheet into the document head once.

Settings are read from tagexpand.yaml (or --config), TAGEXPAND_* environment
variables and flags, later sources winning.`

	MsgBuildShort   = "Expand every page of a site into an output directory"
	MsgExpandShort  = "Expand one document and print it"
	MsgWatchShort   = "Rebuild the site whenever templates or pages change"
	MsgTagsShort    = "List registered tags"
	MsgVersionShort = "Print version information"

	MsgBuildSummary   = "Built %d pages into %s\n"
	MsgBuildFailed    = "  failed %s: %v\n"
	MsgNoTags         = "No tags registered."
	MsgWatching       = "Watching %s for changes\n"
	MsgVersionFormat  = "tagexpand version %s\n  commit: %s\n  built:  %s\n"
	MsgPagesFailedFmt = "%d pages failed"
)
