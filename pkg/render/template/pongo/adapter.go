// Package pongo renders tag templates with pongo2, a Django-style engine.
package pongo

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-tagexpand/pkg/render/template"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templates  fs.FS
	globalData map[string]any
	filters    map[string]pongo2.FilterFunction
	autoescape bool
}

// WithFS lets templates include or extend partials stored in files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithFilter registers a filter. pongo2 filters are process wide, so an
// existing filter with the same name is replaced.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction)
		}
		cfg.filters[name] = wrapFilter(fn)
	}
}

// WithAutoescape toggles HTML escaping of interpolated values. It is on by
// default; template.SafeHTML values are never escaped.
func WithAutoescape(enabled bool) Option {
	return func(cfg *config) {
		cfg.autoescape = enabled
	}
}

// Renderer satisfies template.Renderer using a private pongo2 template set.
// Compiled templates are cached by source.
type Renderer struct {
	mu sync.RWMutex

	set        *pongo2.TemplateSet
	compiled   map[[sha256.Size]byte]*pongo2.Template
	autoescape bool
}

var (
	_ template.Renderer          = (*Renderer)(nil)
	_ template.VariableInspector = (*Renderer)(nil)
)

// New constructs a Renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{autoescape: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	files := cfg.templates
	if files == nil {
		files = emptyFS{}
	}

	r := &Renderer{
		set:        pongo2.NewSet("tagexpand", pongo2.NewFSLoader(files)),
		compiled:   make(map[[sha256.Size]byte]*pongo2.Template),
		autoescape: cfg.autoescape,
	}
	registerDefaultFilters()

	for name, fn := range cfg.filters {
		if err := registerFilter(name, fn); err != nil {
			return nil, fmt.Errorf("pongo: register filter %q: %w", name, err)
		}
	}
	if len(cfg.globalData) > 0 {
		r.set.Globals.Update(toContext(cfg.globalData))
	}
	return r, nil
}

// Render compiles source, reusing a cached compilation when possible, and
// executes it against vars.
func (r *Renderer) Render(source string, vars map[string]any) (string, error) {
	if r == nil || r.set == nil {
		return "", errors.New("pongo: renderer is nil")
	}

	tmpl, err := r.compile(source)
	if err != nil {
		return "", err
	}

	out, err := tmpl.Execute(toContext(vars))
	if err != nil {
		return "", fmt.Errorf("pongo: execute template: %w", err)
	}
	return out, nil
}

func (r *Renderer) compile(source string) (*pongo2.Template, error) {
	key := sha256.Sum256([]byte(source))

	r.mu.RLock()
	if tmpl, ok := r.compiled[key]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.compiled[key]; ok {
		return tmpl, nil
	}

	text := source
	if !r.autoescape {
		text = "{% autoescape off %}" + source + "{% endautoescape %}"
	}
	tmpl, err := r.set.FromString(text)
	if err != nil {
		return nil, fmt.Errorf("pongo: parse template: %w", err)
	}
	r.compiled[key] = tmpl
	return tmpl, nil
}

// toContext converts render variables into a pongo2 context. Keys are mapped
// through template.Identifier; a key that is already a valid identifier wins
// over a converted one, and converted keys that collide resolve in key order.
func toContext(vars map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(vars))
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		id := template.Identifier(key)
		if id == "" {
			continue
		}
		if id != strings.TrimSpace(key) {
			if _, taken := vars[id]; taken {
				continue
			}
			if _, taken := out[id]; taken {
				continue
			}
		}
		out[id] = convertValue(vars[key])
	}
	return out
}

func convertValue(value any) any {
	switch v := value.(type) {
	case template.SafeHTML:
		return pongo2.AsSafeValue(string(v))
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[key] = convertValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = convertValue(inner)
		}
		return out
	default:
		return value
	}
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
