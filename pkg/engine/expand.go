package engine

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-tagexpand/pkg/attrs"
	"github.com/goliatone/go-tagexpand/pkg/dom"
	"github.com/goliatone/go-tagexpand/pkg/render/template"
	"github.com/goliatone/go-tagexpand/pkg/sanitize"
	"github.com/goliatone/go-tagexpand/pkg/tags"
)

// Reserved render variables. Both shadow a usage attribute of the same name.
const (
	contentVar = "content"
	attrsVar   = "attrs"
)

func (e *Engine) expand(el *html.Node, def tags.Definition) error {
	usage := attrs.FromNode(el)
	inner, err := dom.InnerHTML(el)
	if err != nil {
		return &TemplateError{Tag: def.Tag, Err: err}
	}

	helper := attrs.NewHelper(usage)
	vars := make(map[string]any, len(usage)+2)
	for _, a := range usage {
		vars[a.Name] = a.Value
	}
	// Names that differ only in punctuation share an identifier; the
	// first attribute wins.
	for _, a := range usage {
		id := template.Identifier(a.Name)
		if id == "" {
			continue
		}
		if _, ok := vars[id]; !ok {
			vars[id] = a.Value
		}
	}
	vars[contentVar] = template.SafeHTML(inner)
	vars[attrsVar] = helper

	rendered, err := e.renderer.Render(def.Body, vars)
	if err != nil {
		return &RenderError{Tag: def.Tag, Err: err}
	}
	rendered = dom.PairSelfClosing(rendered, e.registry.Has)
	rendered, err = sanitize.Rendered(e.policy, rendered, el.Parent, e.registry.Has)
	if err != nil {
		return &RenderError{Tag: def.Tag, Err: err}
	}

	replacement, err := dom.ParseSingleRoot(rendered, el.Parent)
	if err != nil {
		return &TemplateError{Tag: def.Tag, Err: err}
	}

	attrs.ForwardNode(replacement, usage,
		attrs.WithTemplateTags(e.registry.Has),
		attrs.WithExplicit(e.placedBy(def, usage, helper)...),
	)
	if err := dom.Replace(el, replacement); err != nil {
		return &TemplateError{Tag: def.Tag, Err: err}
	}

	e.logger.Trace().Str("tag", def.Tag).Int("attributes", len(usage)).Msg("occurrence expanded")
	return nil
}

// placedBy lists usage attributes the template handled itself, either by
// reading them as variables or through the attrs helper.
func (e *Engine) placedBy(def tags.Definition, usage attrs.List, helper *attrs.Helper) []string {
	out := helper.Consumed()
	vars := e.placed[def.Key()]
	if len(vars) == 0 {
		return out
	}
	for _, a := range usage {
		if _, ok := vars[template.Identifier(a.Name)]; ok {
			out = append(out, a.Name)
		}
	}
	return out
}
