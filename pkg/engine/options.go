package engine

import (
	"io/fs"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-tagexpand/pkg/render/template"
	"github.com/goliatone/go-tagexpand/pkg/style"
)

// Option customises an Engine.
type Option func(*Engine)

// WithRenderer replaces the default pongo2 renderer.
func WithRenderer(r template.Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithPreprocessor sets the stylesheet preprocessor.
func WithPreprocessor(p style.Preprocessor) Option {
	return func(e *Engine) {
		e.preprocessor = p
	}
}

// WithStylesheetFS compiles stylesheets found in fsys with the CSS
// preprocessor. It is shorthand for WithPreprocessor(style.NewCSSPreprocessor(fsys, opts...)).
func WithStylesheetFS(fsys fs.FS, opts ...style.CSSOption) Option {
	return func(e *Engine) {
		e.preprocessor = style.NewCSSPreprocessor(fsys, opts...)
	}
}

// WithMaxPasses bounds the number of rewriting passes. Zero, the default,
// means no bound: a template that expands into itself never settles.
func WithMaxPasses(n int) Option {
	return func(e *Engine) {
		if n < 0 {
			n = 0
		}
		e.maxPasses = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracer sets the tracer used for document spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithFragmentPolicy sanitises every rendered template with p before it is
// parsed back into the document.
func WithFragmentPolicy(p *bluemonday.Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}
