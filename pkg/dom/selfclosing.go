package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// PairSelfClosing rewrites <name .../> as <name ...></name> for every name
// keep accepts. The HTML parser ignores the slash on non-void elements, so a
// self-closing custom tag would otherwise swallow the siblings that follow it.
// Text inside raw-text elements such as <script> is left untouched.
func PairSelfClosing(src string, keep func(name string) bool) string {
	if keep == nil || !strings.Contains(src, "/>") {
		return src
	}
	z := html.NewTokenizer(strings.NewReader(src))
	var b strings.Builder
	b.Grow(len(src) + 16)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.SelfClosingTagToken {
			b.Write(z.Raw())
			continue
		}
		// TagName lowers the name in place, so keep the original text first.
		raw := bytes.Clone(z.Raw())
		name, _ := z.TagName()
		if !keep(string(name)) || !bytes.HasSuffix(raw, []byte("/>")) {
			b.Write(raw)
			continue
		}
		b.Write(bytes.TrimRight(bytes.TrimSuffix(raw, []byte("/>")), " \t\n\f\r"))
		b.WriteString("></")
		b.Write(name)
		b.WriteByte('>')
	}
	return b.String()
}
