package template

import (
	"strings"
)

// Renderer renders raw template source against a set of variables.
type Renderer interface {
	Render(source string, vars map[string]any) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(source string, vars map[string]any) (string, error)

// Render implements Renderer.
func (fn RendererFunc) Render(source string, vars map[string]any) (string, error) {
	return fn(source, vars)
}

// SafeHTML marks markup a renderer must emit without escaping.
type SafeHTML string

// String implements fmt.Stringer.
func (s SafeHTML) String() string {
	return string(s)
}

// VariableInspector is implemented by renderers that can list the top-level
// variable names a template source refers to. The engine uses it to tell
// attributes the template places itself from attributes it should forward.
type VariableInspector interface {
	Variables(source string) ([]string, error)
}

// Identifier maps an attribute name onto the variable name templates use for
// it. Letters, digits and underscores are kept; everything else becomes an
// underscore, so data-id is reachable as data_id.
func Identifier(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
