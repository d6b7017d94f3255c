package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	"github.com/goliatone/go-tagexpand/pkg/dom"
	"github.com/goliatone/go-tagexpand/pkg/render/template"
	"github.com/goliatone/go-tagexpand/pkg/render/template/pongo"
	"github.com/goliatone/go-tagexpand/pkg/style"
	"github.com/goliatone/go-tagexpand/pkg/tags"
)

const tracerName = "github.com/goliatone/go-tagexpand"

// Engine expands registered tags. The registry is only read.
type Engine struct {
	registry     *tags.Registry
	renderer     template.Renderer
	preprocessor style.Preprocessor
	maxPasses    int
	logger       zerolog.Logger
	tracer       trace.Tracer
	policy       *bluemonday.Policy

	// placed holds, per tag key, the variable names its template reads.
	placed map[string]map[string]struct{}
}

// New builds an engine over reg. Without WithRenderer a pongo2 renderer is
// created.
func New(reg *tags.Registry, options ...Option) (*Engine, error) {
	if reg == nil {
		return nil, errors.New("engine: registry is required")
	}
	e := &Engine{
		registry: reg,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if err := e.applyDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) applyDefaults() error {
	if e.renderer == nil {
		r, err := pongo.New()
		if err != nil {
			return fmt.Errorf("engine: default renderer: %w", err)
		}
		e.renderer = r
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}

	e.placed = make(map[string]map[string]struct{})
	inspector, ok := e.renderer.(template.VariableInspector)
	if !ok {
		return nil
	}
	for _, def := range e.registry.Definitions() {
		names, err := inspector.Variables(def.Body)
		if err != nil {
			return fmt.Errorf("engine: inspect template %q: %w", def.Tag, err)
		}
		set := make(map[string]struct{}, len(names))
		for _, name := range names {
			if name == contentVar || name == attrsVar {
				continue
			}
			set[name] = struct{}{}
		}
		e.placed[def.Key()] = set
	}
	return nil
}

// Registry returns the registry the engine expands.
func (e *Engine) Registry() *tags.Registry {
	return e.registry
}

// Context is the per-document expansion state: which tags already emitted
// their stylesheet and the CSS collected so far.
type Context struct {
	styles *style.Collector
}

// NewContext starts the state for one document.
func (e *Engine) NewContext() *Context {
	return &Context{styles: style.NewCollector(e.preprocessor)}
}

// CSS returns the stylesheet text collected so far.
func (c *Context) CSS() string {
	return c.styles.CSS()
}

// ProcessedTags lists the tags whose stylesheet was emitted, in order.
func (c *Context) ProcessedTags() []string {
	return c.styles.Tags()
}

// Processed reports whether tag already emitted its stylesheet.
func (c *Context) Processed(tag string) bool {
	return c.styles.Seen(tag)
}

// ExpandDocument expands every registered tag in a full HTML document and
// injects the collected CSS into its head. On error nothing is returned.
func (e *Engine) ExpandDocument(ctx context.Context, src string) (out string, err error) {
	ctx, span := e.tracer.Start(ctx, "tagexpand.ExpandDocument")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	doc, err := dom.Parse(dom.PairSelfClosing(src, e.registry.Has))
	if err != nil {
		return "", err
	}
	ec := e.NewContext()
	passes, err := e.RunToFixpoint(ctx, doc.Root(), ec)
	if err != nil {
		return "", err
	}
	css := ec.CSS()
	span.SetAttributes(
		attribute.Int("tagexpand.passes", passes),
		attribute.Int("tagexpand.css_bytes", len(css)),
	)
	if err := e.Finalize(doc.Root(), css); err != nil {
		return "", err
	}
	return doc.Render()
}

// ExpandFragment expands body markup and returns it together with the
// collected CSS instead of injecting a style element.
func (e *Engine) ExpandFragment(ctx context.Context, src string) (out, css string, err error) {
	ctx, span := e.tracer.Start(ctx, "tagexpand.ExpandFragment")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := dom.ParseBody(dom.PairSelfClosing(src, e.registry.Has))
	if err != nil {
		return "", "", err
	}
	ec := e.NewContext()
	passes, err := e.RunToFixpoint(ctx, body, ec)
	if err != nil {
		return "", "", err
	}
	span.SetAttributes(attribute.Int("tagexpand.passes", passes))

	out, err = dom.InnerHTML(body)
	if err != nil {
		return "", "", err
	}
	return out, ec.CSS(), nil
}

// RunToFixpoint calls TransformOnce until a pass rewrites nothing and returns
// the number of passes run, the final idle pass included.
func (e *Engine) RunToFixpoint(ctx context.Context, root *html.Node, ec *Context) (int, error) {
	passes := 0
	rewriting := 0
	for {
		if err := ctx.Err(); err != nil {
			return passes, err
		}
		if e.maxPasses > 0 && rewriting == e.maxPasses {
			if e.pending(root) {
				return passes, &RecursionLimitError{Passes: rewriting}
			}
			return passes, nil
		}

		rewrote, err := e.TransformOnce(ctx, root, ec)
		passes++
		if err != nil {
			return passes, err
		}
		e.logger.Debug().Int("pass", passes).Bool("rewrote", rewrote).Msg("expansion pass complete")
		if !rewrote {
			return passes, nil
		}
		rewriting++
	}
}

// TransformOnce runs a single pass: every occurrence of every registered tag
// currently in the tree is expanded, tags in registry order and occurrences in
// document order. It reports whether anything was rewritten.
func (e *Engine) TransformOnce(ctx context.Context, root *html.Node, ec *Context) (bool, error) {
	if root == nil {
		return false, errors.New("engine: document root is nil")
	}
	if ec == nil {
		return false, errors.New("engine: expansion context is nil")
	}

	rewrote := false
	for _, def := range e.registry.Definitions() {
		if err := ctx.Err(); err != nil {
			return rewrote, err
		}

		expanded := 0
		for _, el := range dom.FindElementsByTag(root, def.Key()) {
			// Occurrences nested in one replaced earlier this pass were
			// re-rendered as part of its content.
			if !dom.Attached(root, el) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return rewrote, err
			}
			if err := e.expand(el, def); err != nil {
				return rewrote, err
			}
			expanded++
			rewrote = true
		}
		if expanded == 0 {
			continue
		}
		e.logger.Debug().Str("tag", def.Tag).Int("occurrences", expanded).Msg("expanded tag")

		if def.Stylesheet == "" {
			continue
		}
		emitted, err := ec.styles.Add(ctx, def.Tag, def.Stylesheet)
		if err != nil {
			return rewrote, &PreprocessError{Tag: def.Tag, Stylesheet: def.Stylesheet, Err: err}
		}
		if emitted {
			e.logger.Debug().Str("tag", def.Tag).Str("stylesheet", def.Stylesheet).Msg("stylesheet collected")
		}
	}
	return rewrote, nil
}

// Finalize appends css to the first <style> element of the document head,
// creating it when missing. Empty css leaves the tree untouched.
func (e *Engine) Finalize(root *html.Node, css string) error {
	if css == "" {
		return nil
	}
	head := dom.Head(root)
	if head == nil {
		return ErrNoHead
	}
	el := dom.StyleChild(head, true)
	dom.SetText(el, dom.Text(el)+css)
	return nil
}

func (e *Engine) pending(root *html.Node) bool {
	for _, key := range e.registry.Tags() {
		if len(dom.FindElementsByTag(root, key)) > 0 {
			return true
		}
	}
	return false
}
