package attrs

import (
	"strings"

	"golang.org/x/net/html"
)

// Attribute is a single name/value pair captured from an element.
type Attribute struct {
	Name  string
	Value string
}

// List is an ordered attribute set. A nil List and an empty List behave the
// same everywhere.
type List []Attribute

// FromNode captures the attributes of n in source order. Elements without
// attributes yield an empty, non-nil List.
func FromNode(n *html.Node) List {
	out := List{}
	if n == nil {
		return out
	}
	for _, a := range n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		out = append(out, Attribute{Name: name, Value: a.Val})
	}
	return out
}

// Get returns the value of the first attribute named name.
func (l List) Get(name string) (string, bool) {
	for _, a := range l {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether name is present.
func (l List) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Names lists attribute names in order.
func (l List) Names() []string {
	out := make([]string, 0, len(l))
	for _, a := range l {
		out = append(out, a.Name)
	}
	return out
}

// Map converts the list into a name to value map, later duplicates winning.
func (l List) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, a := range l {
		out[a.Name] = a.Value
	}
	return out
}

// MergeTokens returns the usage tokens followed by the existing tokens,
// space-joined. Tokens are not deduplicated.
func MergeTokens(usage, existing string) string {
	tokens := append(strings.Fields(usage), strings.Fields(existing)...)
	return strings.Join(tokens, " ")
}
