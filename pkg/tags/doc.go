// Package tags holds tag template definitions and the registry that maps a
// custom element name to its definition.
//
// A registry is filled once, either from a directory scan (Load, LoadFS) or by
// explicit Register calls, and is only read afterwards. Registration order is
// preserved and is the order in which the engine expands tags.
//
// Template files may start with a front matter block:
//
//	---
//	tag: Card
//	stylesheet: card.css
//	---
//	<div class="card">{{ content }}</div>
//
// YAML (---) and TOML (+++) blocks are recognised. Without a tag key the file
// base name is used; a relative stylesheet path is resolved against the
// template's own directory.
package tags
