// Package site expands every page under an input directory into an output
// directory, several documents at a time.
package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-tagexpand/pkg/engine"
	"github.com/goliatone/go-tagexpand/pkg/source"
)

// DefaultPageExtensions are the page suffixes Build expands.
var DefaultPageExtensions = []string{".html", ".htm"}

// Option customises a Builder.
type Option func(*Builder)

// WithConcurrency sets how many documents expand at once. Values below one
// fall back to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		b.concurrency = n
	}
}

// WithContinueOnError records failing pages in the report instead of
// aborting the build.
func WithContinueOnError() Option {
	return func(b *Builder) {
		b.continueOnError = true
	}
}

// WithPageExtensions replaces DefaultPageExtensions.
func WithPageExtensions(exts ...string) Option {
	return func(b *Builder) {
		if len(exts) > 0 {
			b.extensions = exts
		}
	}
}

// WithLogger sets the builder logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// PageError ties a failure to the page that caused it.
type PageError struct {
	Path string
	Err  error
}

func (e PageError) Error() string {
	return fmt.Sprintf("site: %s: %v", e.Path, e.Err)
}

func (e PageError) Unwrap() error { return e.Err }

// Report summarises a build. Pages lists written pages, Failed the pages that
// could not be expanded; both are in scan order.
type Report struct {
	Pages  []string
	Failed []PageError
}

// Builder runs an engine over a directory tree.
type Builder struct {
	engine          *engine.Engine
	concurrency     int
	continueOnError bool
	extensions      []string
	logger          zerolog.Logger
}

// New creates a Builder.
func New(e *engine.Engine, options ...Option) (*Builder, error) {
	if e == nil {
		return nil, errors.New("site: engine is required")
	}
	b := &Builder{
		engine:     e,
		extensions: DefaultPageExtensions,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.concurrency < 1 {
		b.concurrency = runtime.GOMAXPROCS(0)
	}
	return b, nil
}

type result struct {
	written bool
	err     error
}

// Build expands every page under inputDir and writes it to the same relative
// path under outputDir. Files that are not pages are ignored.
func (b *Builder) Build(ctx context.Context, inputDir, outputDir string) (Report, error) {
	pages, err := source.ScanDir(ctx, inputDir, source.WithExtensions(b.extensions...))
	if err != nil {
		return Report{}, fmt.Errorf("site: scan pages: %w", err)
	}
	b.logger.Info().Int("pages", len(pages)).Str("input", inputDir).Msg("building site")

	results := make([]result, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, page := range pages {
		g.Go(func() error {
			err := b.buildPage(gctx, page, outputDir)
			results[i] = result{written: err == nil, err: err}

			if err == nil {
				b.logger.Debug().Str("page", page.Path).Msg("page written")
				return nil
			}
			b.logger.Error().Err(err).Str("page", page.Path).Msg("page failed")
			if b.continueOnError {
				return nil
			}
			return PageError{Path: page.Path, Err: err}
		})
	}
	waitErr := g.Wait()

	var report Report
	for i, page := range pages {
		switch {
		case results[i].written:
			report.Pages = append(report.Pages, page.Path)
		case results[i].err != nil:
			report.Failed = append(report.Failed, PageError{Path: page.Path, Err: results[i].err})
		}
	}
	if waitErr != nil {
		return report, waitErr
	}
	return report, nil
}

func (b *Builder) buildPage(ctx context.Context, page source.Entry, outputDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := b.engine.ExpandDocument(ctx, string(page.Data))
	if err != nil {
		return err
	}
	target := filepath.Join(outputDir, filepath.FromSlash(page.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}
