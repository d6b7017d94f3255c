package attrs

import "strings"

// globalAttributes are valid on every HTML element.
var globalAttributes = set(
	"accesskey", "autocapitalize", "autocorrect", "autofocus", "class",
	"contenteditable", "dir", "draggable", "enterkeyhint", "hidden", "id",
	"inert", "inputmode", "is", "itemid", "itemprop", "itemref", "itemscope",
	"itemtype", "lang", "nonce", "popover", "role", "slot", "spellcheck",
	"style", "tabindex", "title", "translate", "writingsuggestions",
)

// eventHandlers are the on* content attributes defined by HTML. Names that
// merely start with "on", such as online, are not handlers.
var eventHandlers = set(
	"onabort", "onafterprint", "onanimationcancel", "onanimationend",
	"onanimationiteration", "onanimationstart", "onauxclick", "onbeforeinput",
	"onbeforematch", "onbeforeprint", "onbeforetoggle", "onbeforeunload",
	"onblur", "oncancel", "oncanplay", "oncanplaythrough", "onchange",
	"onclick", "onclose", "oncontextlost", "oncontextmenu",
	"oncontextrestored", "oncopy", "oncuechange", "oncut", "ondblclick",
	"ondrag", "ondragend", "ondragenter", "ondragleave", "ondragover",
	"ondragstart", "ondrop", "ondurationchange", "onemptied", "onended",
	"onerror", "onfocus", "onfocusin", "onfocusout", "onformdata",
	"onhashchange", "oninput", "oninvalid", "onkeydown", "onkeypress",
	"onkeyup", "onlanguagechange", "onload", "onloadeddata",
	"onloadedmetadata", "onloadstart", "onmessage", "onmessageerror",
	"onmousedown", "onmouseenter", "onmouseleave", "onmousemove",
	"onmouseout", "onmouseover", "onmouseup", "onoffline", "ononline",
	"onpagehide", "onpagereveal", "onpageshow", "onpageswap", "onpaste",
	"onpause", "onplay", "onplaying", "onpointercancel", "onpointerdown",
	"onpointerenter", "onpointerleave", "onpointermove", "onpointerout",
	"onpointerover", "onpointerup", "onpopstate", "onprogress",
	"onratechange", "onrejectionhandled", "onreset", "onresize", "onscroll",
	"onscrollend", "onsecuritypolicyviolation", "onseeked", "onseeking",
	"onselect", "onselectionchange", "onselectstart", "onslotchange",
	"onstalled", "onstorage", "onsubmit", "onsuspend", "ontimeupdate",
	"ontoggle", "ontouchcancel", "ontouchend", "ontouchmove", "ontouchstart",
	"ontransitioncancel", "ontransitionend", "ontransitionrun",
	"ontransitionstart", "onunhandledrejection", "onunload",
	"onvolumechange", "onwaiting", "onwheel",
)

// elementAttributes lists the attributes specific to each HTML element, on top
// of globalAttributes.
var elementAttributes = map[string]map[string]struct{}{
	"a":          set("charset", "coords", "download", "href", "hreflang", "name", "ping", "referrerpolicy", "rel", "rev", "shape", "target", "type"),
	"applet":     set("align", "alt", "archive", "code", "codebase", "height", "hspace", "name", "object", "vspace", "width"),
	"area":       set("alt", "coords", "download", "href", "hreflang", "nohref", "ping", "referrerpolicy", "rel", "shape", "target", "type"),
	"audio":      set("autoplay", "controls", "crossorigin", "loop", "muted", "preload", "src"),
	"base":       set("href", "target"),
	"basefont":   set("color", "face", "size"),
	"blockquote": set("cite"),
	"body":       set("alink", "background", "bgcolor", "link", "text", "vlink"),
	"br":         set("clear"),
	"button":     set("disabled", "form", "formaction", "formenctype", "formmethod", "formnovalidate", "formtarget", "name", "popovertarget", "popovertargetaction", "type", "value"),
	"canvas":     set("height", "width"),
	"caption":    set("align"),
	"col":        set("align", "char", "charoff", "span", "valign", "width"),
	"colgroup":   set("align", "char", "charoff", "span", "valign", "width"),
	"data":       set("value"),
	"del":        set("cite", "datetime"),
	"details":    set("name", "open"),
	"dialog":     set("open"),
	"dir":        set("compact"),
	"div":        set("align"),
	"dl":         set("compact"),
	"embed":      set("height", "src", "type", "width"),
	"fieldset":   set("disabled", "form", "name"),
	"font":       set("color", "face", "size"),
	"form":       set("accept", "accept-charset", "action", "autocomplete", "enctype", "method", "name", "novalidate", "target"),
	"frame":      set("frameborder", "longdesc", "marginheight", "marginwidth", "name", "noresize", "scrolling", "src"),
	"frameset":   set("cols", "rows"),
	"h1":         set("align"),
	"h2":         set("align"),
	"h3":         set("align"),
	"h4":         set("align"),
	"h5":         set("align"),
	"h6":         set("align"),
	"head":       set("profile"),
	"hr":         set("align", "noshade", "size", "width"),
	"html":       set("manifest", "version"),
	"iframe":     set("align", "allow", "allowfullscreen", "allowpaymentrequest", "allowusermedia", "frameborder", "height", "loading", "longdesc", "marginheight", "marginwidth", "name", "referrerpolicy", "sandbox", "scrolling", "src", "srcdoc", "width"),
	"img":        set("align", "alt", "border", "crossorigin", "decoding", "fetchpriority", "height", "hspace", "ismap", "loading", "longdesc", "name", "referrerpolicy", "sizes", "src", "srcset", "usemap", "vspace", "width"),
	"input":      set("accept", "align", "alt", "autocomplete", "checked", "dirname", "disabled", "form", "formaction", "formenctype", "formmethod", "formnovalidate", "formtarget", "height", "ismap", "list", "max", "maxlength", "min", "minlength", "multiple", "name", "pattern", "placeholder", "popovertarget", "popovertargetaction", "readonly", "required", "size", "src", "step", "type", "usemap", "value", "width"),
	"ins":        set("cite", "datetime"),
	"isindex":    set("prompt"),
	"label":      set("for", "form"),
	"legend":     set("align"),
	"li":         set("type", "value"),
	"link":       set("as", "blocking", "charset", "color", "crossorigin", "disabled", "fetchpriority", "href", "hreflang", "imagesizes", "imagesrcset", "integrity", "media", "referrerpolicy", "rel", "rev", "sizes", "target", "type"),
	"map":        set("name"),
	"menu":       set("compact"),
	"meta":       set("charset", "content", "http-equiv", "media", "name", "scheme"),
	"meter":      set("high", "low", "max", "min", "optimum", "value"),
	"object":     set("align", "archive", "border", "classid", "codebase", "codetype", "data", "declare", "form", "height", "hspace", "name", "standby", "type", "typemustmatch", "usemap", "vspace", "width"),
	"ol":         set("compact", "reversed", "start", "type"),
	"optgroup":   set("disabled", "label"),
	"option":     set("disabled", "label", "selected", "value"),
	"output":     set("for", "form", "name"),
	"p":          set("align"),
	"param":      set("name", "type", "value", "valuetype"),
	"pre":        set("width"),
	"progress":   set("max", "value"),
	"q":          set("cite"),
	"script":     set("async", "blocking", "charset", "crossorigin", "defer", "fetchpriority", "integrity", "language", "nomodule", "referrerpolicy", "src", "type"),
	"select":     set("autocomplete", "disabled", "form", "multiple", "name", "required", "size"),
	"slot":       set("name"),
	"source":     set("height", "media", "sizes", "src", "srcset", "type", "width"),
	"style":      set("blocking", "media", "type"),
	"table":      set("align", "bgcolor", "border", "cellpadding", "cellspacing", "frame", "rules", "summary", "width"),
	"tbody":      set("align", "char", "charoff", "valign"),
	"td":         set("abbr", "align", "axis", "bgcolor", "char", "charoff", "colspan", "headers", "height", "nowrap", "rowspan", "scope", "valign", "width"),
	"template":   set("shadowrootclonable", "shadowrootdelegatesfocus", "shadowrootmode"),
	"textarea":   set("autocomplete", "cols", "dirname", "disabled", "form", "maxlength", "minlength", "name", "placeholder", "readonly", "required", "rows", "wrap"),
	"tfoot":      set("align", "char", "charoff", "valign"),
	"th":         set("abbr", "align", "axis", "bgcolor", "char", "charoff", "colspan", "headers", "height", "nowrap", "rowspan", "scope", "valign", "width"),
	"thead":      set("align", "char", "charoff", "valign"),
	"time":       set("datetime"),
	"tr":         set("align", "bgcolor", "char", "charoff", "valign"),
	"track":      set("default", "kind", "label", "src", "srclang"),
	"ul":         set("compact", "type"),
	"video":      set("autoplay", "controls", "crossorigin", "height", "loop", "muted", "playsinline", "poster", "preload", "src", "width"),
}

// Allowed reports whether an attribute may appear on the named element: it is
// element-specific, global, a data-*/aria-* attribute or a known event handler.
// Unknown elements only accept the global set.
func Allowed(element, name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	if _, ok := globalAttributes[name]; ok {
		return true
	}
	if isPrefixed(name, "data-") || isPrefixed(name, "aria-") || isEventHandler(name) {
		return true
	}
	specific, ok := elementAttributes[strings.ToLower(strings.TrimSpace(element))]
	if !ok {
		return false
	}
	_, ok = specific[name]
	return ok
}

func isPrefixed(name, prefix string) bool {
	return len(name) > len(prefix) && strings.HasPrefix(name, prefix)
}

func isEventHandler(name string) bool {
	_, ok := eventHandlers[name]
	return ok
}

func set(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}
