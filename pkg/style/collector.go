package style

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrNoPreprocessor is returned when a stylesheet must be compiled but the
// collector has no preprocessor.
var ErrNoPreprocessor = errors.New("style: no preprocessor configured")

// Collector accumulates compiled stylesheets for one document. Each tag
// contributes its stylesheet at most once, in first-seen order.
type Collector struct {
	mu    sync.Mutex
	pre   Preprocessor
	seen  map[string]struct{}
	order []string
	css   strings.Builder
}

// NewCollector creates a collector backed by pre.
func NewCollector(pre Preprocessor) *Collector {
	return &Collector{
		pre:  pre,
		seen: make(map[string]struct{}),
	}
}

// Add compiles the stylesheet at path for tag unless tag was already
// processed. It reports whether the tag's stylesheet was emitted. Tags without
// a stylesheet reference are never recorded.
func (c *Collector) Add(ctx context.Context, tag, path string) (bool, error) {
	key := normalize(tag)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.seen[key]; ok {
		return false, nil
	}
	if strings.TrimSpace(path) == "" {
		return false, nil
	}
	if c.pre == nil {
		return false, ErrNoPreprocessor
	}

	out, err := c.pre.Compile(ctx, path)
	if err != nil {
		return false, err
	}
	c.mark(key)
	c.css.WriteString(out)
	return true, nil
}

// Seen reports whether tag has already been processed.
func (c *Collector) Seen(tag string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.seen[normalize(tag)]
	return ok
}

// Tags returns processed tags in first-seen order.
func (c *Collector) Tags() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// CSS returns the concatenated stylesheet text.
func (c *Collector) CSS() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.css.String()
}

func (c *Collector) mark(key string) {
	c.seen[key] = struct{}{}
	c.order = append(c.order, key)
}

func normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
