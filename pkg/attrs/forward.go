package attrs

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-tagexpand/pkg/dom"
)

// ForwardOption customises a forwarding call.
type ForwardOption func(*forwardConfig)

type forwardConfig struct {
	isTemplateTag func(name string) bool
	skip          map[string]struct{}
}

// WithTemplateTags tells the forwarder which element names are registered
// template tags. Roots with such a name receive every usage attribute.
func WithTemplateTags(isTemplateTag func(name string) bool) ForwardOption {
	return func(cfg *forwardConfig) {
		cfg.isTemplateTag = isTemplateTag
	}
}

// WithExplicit lists attribute names the template already placed by hand.
// They are not forwarded, unless the root is a template tag.
func WithExplicit(names ...string) ForwardOption {
	return func(cfg *forwardConfig) {
		for _, name := range names {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			cfg.skip[name] = struct{}{}
		}
	}
}

// Forward parses rendered, which must hold exactly one top-level element,
// forwards usage onto that element and returns the serialised result.
func Forward(rendered string, usage List, opts ...ForwardOption) (string, error) {
	root, err := dom.ParseSingleRoot(rendered, nil)
	if err != nil {
		return "", err
	}
	ForwardNode(root, usage, opts...)
	return dom.Render(root)
}

// ForwardNode applies the forwarding rules to an already parsed root element.
func ForwardNode(root *html.Node, usage List, opts ...ForwardOption) {
	if root == nil || root.Type != html.ElementNode {
		return
	}
	cfg := &forwardConfig{skip: make(map[string]struct{})}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	// A root that is itself a template tag gets every attribute, explicit or
	// not; the pass that expands it applies these rules again.
	nested := cfg.isTemplateTag != nil && cfg.isTemplateTag(root.Data)
	for _, a := range usage {
		name := strings.ToLower(strings.TrimSpace(a.Name))
		if name == "" {
			continue
		}
		if !nested {
			if _, skip := cfg.skip[name]; skip {
				continue
			}
			if !Allowed(root.Data, name) {
				continue
			}
		}
		setAttr(root, name, a.Value)
	}
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace != "" || !strings.EqualFold(n.Attr[i].Key, name) {
			continue
		}
		if name == "class" || name == "id" {
			n.Attr[i].Val = MergeTokens(value, n.Attr[i].Val)
			return
		}
		n.Attr[i].Val = value
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}
