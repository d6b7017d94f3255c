package attrs

import (
	"html"
	"slices"
	"strings"
	"sync"
)

// Helper gives template authors manual control over usage attributes. It is
// exposed to templates under the reserved "attrs" variable:
//
//	<a href="/docs"{{ attrs.Only("target", "rel")|safe }}>{{ content }}</a>
//	<input{{ attrs.Except("label")|safe }}>
//
// Every attribute the helper emits is remembered, and the implicit forwarding
// pass leaves those names alone.
type Helper struct {
	attrs List

	mu       sync.Mutex
	consumed map[string]struct{}
	order    []string
}

// NewHelper wraps the usage attributes of one tag occurrence.
func NewHelper(usage List) *Helper {
	return &Helper{
		attrs:    usage,
		consumed: make(map[string]struct{}),
	}
}

// Render emits every usage attribute.
func (h *Helper) Render() string {
	return h.emit(func(string) bool { return true })
}

// Only emits the named attributes that are present on the usage.
func (h *Helper) Only(names ...string) string {
	want := lowerSet(names)
	return h.emit(func(name string) bool {
		_, ok := want[name]
		return ok
	})
}

// Except emits every usage attribute except the named ones.
func (h *Helper) Except(names ...string) string {
	skip := lowerSet(names)
	return h.emit(func(name string) bool {
		_, ok := skip[name]
		return !ok
	})
}

// Get returns the raw value of a usage attribute, which is handy for names a
// template cannot spell as a variable (data-id, aria-label). The attribute
// counts as placed by the template.
func (h *Helper) Get(name string) string {
	value, ok := h.attrs.Get(name)
	if ok {
		h.consume(strings.ToLower(name))
	}
	return value
}

// Consumed lists the attribute names emitted so far, in first-use order.
func (h *Helper) Consumed() []string {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.order)
}

func (h *Helper) emit(include func(name string) bool) string {
	var b strings.Builder
	for _, a := range h.attrs {
		name := strings.ToLower(strings.TrimSpace(a.Name))
		if name == "" || !include(name) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('"')
		h.consume(name)
	}
	return b.String()
}

func (h *Helper) consume(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.consumed[name]; ok {
		return
	}
	h.consumed[name] = struct{}{}
	h.order = append(h.order, name)
}

func lowerSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	return out
}
