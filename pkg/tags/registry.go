package tags

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/goliatone/go-tagexpand/pkg/source"
)

// Registry maps tag names to definitions, preserving registration order. It is
// safe for concurrent readers; the expansion engine never writes to it.
type Registry struct {
	mu    sync.RWMutex
	order []string
	defs  map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]Definition),
	}
}

// New builds a registry from explicit definitions. Either every definition is
// registered or an error is returned.
func New(defs ...Definition) (*Registry, error) {
	r := NewRegistry()
	if err := r.add(defs); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFS scans fsys for template files and builds a registry from them.
func LoadFS(ctx context.Context, fsys fs.FS, options ...source.Option) (*Registry, error) {
	entries, err := source.ScanFS(ctx, fsys, options...)
	if err != nil {
		return nil, fmt.Errorf("tags: scan templates: %w", err)
	}
	r := NewRegistry()
	if err := r.Load(entries); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a single definition. A tag already present yields a
// DuplicateTagError and leaves the registry unchanged.
func (r *Registry) Register(def Definition) error {
	return r.add([]Definition{def})
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Load parses scanned entries and registers them in order. Nothing is
// registered unless every entry parses and no tag collides, neither with the
// registry nor with another entry.
func (r *Registry) Load(entries []source.Entry) error {
	defs := make([]Definition, 0, len(entries))
	for _, entry := range entries {
		def, err := ParseSource(entry.Path, entry.Data)
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}
	return r.add(defs)
}

// Lookup returns the definition for tag, ignoring case.
func (r *Registry) Lookup(tag string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[Key(tag)]
	return def, ok
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag string) bool {
	_, ok := r.Lookup(tag)
	return ok
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Tags returns the declared tag names in registration order.
func (r *Registry) Tags() []string {
	defs := r.Definitions()
	out := make([]string, 0, len(defs))
	for _, def := range defs {
		out = append(out, def.Tag)
	}
	return out
}

// Definitions returns a copy of every definition in registration order.
func (r *Registry) Definitions() []Definition {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.defs[key])
	}
	return out
}

func (r *Registry) add(in []Definition) error {
	defs := make([]Definition, len(in))
	copy(defs, in)
	staged := make(map[string]Definition, len(defs))
	for i := range defs {
		defs[i].Tag = strings.TrimSpace(defs[i].Tag)
		if err := ValidateTag(defs[i].Tag); err != nil {
			return err
		}
		key := defs[i].Key()
		if prev, ok := staged[key]; ok {
			return &DuplicateTagError{Tag: defs[i].Tag, Existing: prev.Source, Incoming: defs[i].Source}
		}
		staged[key] = defs[i]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, def := range defs {
		if prev, ok := r.defs[def.Key()]; ok {
			return &DuplicateTagError{Tag: def.Tag, Existing: prev.Source, Incoming: def.Source}
		}
	}
	for _, def := range defs {
		r.defs[def.Key()] = def
		r.order = append(r.order, def.Key())
	}
	return nil
}
