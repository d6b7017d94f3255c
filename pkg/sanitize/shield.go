package sanitize

import (
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/goliatone/go-tagexpand/pkg/dom"
)

// refAttr stands in for the attributes of a shielded element while the policy
// runs. Data attributes pass every policy built by this package.
const refAttr = "data-tagexpand-ref"

// Rendered sanitises rendered template output with p. Elements for which
// isTemplateTag reports true keep every attribute they carried: they are
// usages expanded by a later pass, and their attributes are template input
// rather than markup. p must allow those element names (see Policy). context
// is the element the markup will be inserted under; nil means <body>.
func Rendered(p *bluemonday.Policy, markup string, context *html.Node, isTemplateTag func(name string) bool) (string, error) {
	if p == nil {
		return markup, nil
	}
	if isTemplateTag == nil {
		return Fragment(p, markup), nil
	}

	nodes, err := dom.ParseFragment(markup, context)
	if err != nil {
		return "", err
	}
	var saved [][]html.Attribute
	for _, n := range nodes {
		eachElement(n, func(el *html.Node) {
			if !isTemplateTag(el.Data) {
				return
			}
			saved = append(saved, el.Attr)
			el.Attr = []html.Attribute{{Key: refAttr, Val: strconv.Itoa(len(saved) - 1)}}
		})
	}
	if len(saved) == 0 {
		return Fragment(p, markup), nil
	}

	shielded, err := renderNodes(nodes)
	if err != nil {
		return "", err
	}
	nodes, err = dom.ParseFragment(Fragment(p, shielded), context)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		eachElement(n, func(el *html.Node) {
			if !isTemplateTag(el.Data) {
				return
			}
			var restored []html.Attribute
			for _, a := range el.Attr {
				if a.Key != refAttr {
					continue
				}
				if i, err := strconv.Atoi(a.Val); err == nil && i >= 0 && i < len(saved) {
					restored = saved[i]
				}
			}
			el.Attr = restored
		})
	}
	return renderNodes(nodes)
}

func eachElement(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		eachElement(c, fn)
	}
}

func renderNodes(nodes []*html.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		out, err := dom.Render(n)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return strings.TrimSpace(b.String()), nil
}
