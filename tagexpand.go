// Package tagexpand wires the template registry, the pongo2 renderer and the
// stylesheet preprocessor into an expansion engine loaded from one template
// directory.
package tagexpand

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-tagexpand/pkg/engine"
	"github.com/goliatone/go-tagexpand/pkg/render/template/pongo"
	"github.com/goliatone/go-tagexpand/pkg/sanitize"
	"github.com/goliatone/go-tagexpand/pkg/source"
	"github.com/goliatone/go-tagexpand/pkg/style"
	"github.com/goliatone/go-tagexpand/pkg/tags"
)

// Engine aliases engine.Engine so callers only import the root package for
// the common path.
type Engine = engine.Engine

// Option customises Load.
type Option func(*settings)

type settings struct {
	extensions []string
	minify     bool
	sanitize   bool
	maxPasses  int
	logger     zerolog.Logger
	globals    map[string]any
	extra      []engine.Option
}

// WithExtensions sets the template file suffixes. Defaults to
// source.DefaultExtensions.
func WithExtensions(exts ...string) Option {
	return func(s *settings) {
		s.extensions = exts
	}
}

// WithMinifiedCSS compacts collected stylesheets.
func WithMinifiedCSS() Option {
	return func(s *settings) {
		s.minify = true
	}
}

// WithSanitizer runs every rendered template through a bluemonday policy that
// keeps registered tags.
func WithSanitizer() Option {
	return func(s *settings) {
		s.sanitize = true
	}
}

// WithMaxPasses bounds the rewriting passes per document.
func WithMaxPasses(n int) Option {
	return func(s *settings) {
		s.maxPasses = n
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithGlobalData exposes data to every template in addition to the usage
// attributes. Attributes win on conflicts.
func WithGlobalData(data map[string]any) Option {
	return func(s *settings) {
		s.globals = data
	}
}

// WithEngineOptions appends raw engine options. They are applied last.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *settings) {
		s.extra = append(s.extra, opts...)
	}
}

// Load registers every template found in templates and returns an engine whose
// includes and stylesheets resolve against the same filesystem.
func Load(ctx context.Context, templates fs.FS, options ...Option) (*Engine, error) {
	if templates == nil {
		return nil, errors.New("tagexpand: templates filesystem is required")
	}
	s := &settings{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	var scan []source.Option
	if len(s.extensions) > 0 {
		scan = append(scan, source.WithExtensions(s.extensions...))
	}
	reg, err := tags.LoadFS(ctx, templates, scan...)
	if err != nil {
		return nil, err
	}

	renderOpts := []pongo.Option{pongo.WithFS(templates)}
	if len(s.globals) > 0 {
		renderOpts = append(renderOpts, pongo.WithGlobalData(s.globals))
	}
	renderer, err := pongo.New(renderOpts...)
	if err != nil {
		return nil, fmt.Errorf("tagexpand: renderer: %w", err)
	}

	var cssOpts []style.CSSOption
	if s.minify {
		cssOpts = append(cssOpts, style.WithMinify())
	}

	opts := []engine.Option{
		engine.WithRenderer(renderer),
		engine.WithStylesheetFS(templates, cssOpts...),
		engine.WithMaxPasses(s.maxPasses),
		engine.WithLogger(s.logger),
	}
	if s.sanitize {
		opts = append(opts, engine.WithFragmentPolicy(sanitize.Policy(reg)))
	}
	opts = append(opts, s.extra...)

	s.logger.Debug().Int("tags", reg.Len()).Strs("registered", reg.Tags()).Msg("templates loaded")
	return engine.New(reg, opts...)
}

// LoadDir is Load over a directory on disk.
func LoadDir(ctx context.Context, dir string, options ...Option) (*Engine, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("tagexpand: template directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("tagexpand: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tagexpand: %s is not a directory", dir)
	}
	return Load(ctx, os.DirFS(dir), options...)
}

// ExpandDocument loads templates and expands a single document. Callers
// expanding many documents should Load once and reuse the engine.
func ExpandDocument(ctx context.Context, templates fs.FS, src string, options ...Option) (string, error) {
	e, err := Load(ctx, templates, options...)
	if err != nil {
		return "", err
	}
	return e.ExpandDocument(ctx, src)
}
