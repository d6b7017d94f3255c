package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrRootCount is matched (errors.Is) by every MultipleRootsError.
	ErrRootCount = errors.New("dom: fragment must have exactly one top-level element")

	// ErrDetached is returned when a mutation targets a node that is no
	// longer part of a tree.
	ErrDetached = errors.New("dom: node is not attached to a tree")
)

// MultipleRootsError reports a fragment whose top-level element count is not
// exactly one. Roots is the number of elements found, zero included.
type MultipleRootsError struct {
	Roots int
}

func (e *MultipleRootsError) Error() string {
	return fmt.Sprintf("dom: fragment has %d top-level elements, want exactly 1", e.Roots)
}

// Is lets errors.Is(err, ErrRootCount) match.
func (e *MultipleRootsError) Is(target error) bool {
	return target == ErrRootCount
}

// Document owns a parsed HTML tree.
type Document struct {
	root *html.Node
}

// Parse builds a Document from full-page HTML. Missing html/head/body elements
// are synthesised by the parser.
func Parse(src string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Render serialises the whole document.
func (d *Document) Render() (string, error) {
	if d == nil || d.root == nil {
		return "", errors.New("dom: document is nil")
	}
	return Render(d.root)
}

// Render serialises a node and its descendants.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("dom: render: %w", err)
	}
	return buf.String(), nil
}

// InnerHTML serialises the children of n.
func InnerHTML(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return "", fmt.Errorf("dom: render children of <%s>: %w", n.Data, err)
		}
	}
	return buf.String(), nil
}

// FindElementsByTag returns every element under root named name, in document
// order. The slice is a snapshot; mutating the tree does not change it.
func FindElementsByTag(root *html.Node, name string) []*html.Node {
	name = strings.ToLower(strings.TrimSpace(name))
	if root == nil || name == "" {
		return nil
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, name) {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

// Attached reports whether n is still reachable from root through its parent
// chain.
func Attached(root, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// ParseFragment parses src as the children of context. A nil or non-element
// context falls back to <body>.
func ParseFragment(src string, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = bodyContext()
	}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	return nodes, nil
}

// ParseBody parses src as body content and returns a detached <body> element
// holding the result.
func ParseBody(src string) (*html.Node, error) {
	body := bodyContext()
	nodes, err := ParseFragment(src, body)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}

// SingleRoot returns the only element among nodes. Comments and text are
// ignored; any element count other than one yields a MultipleRootsError.
func SingleRoot(nodes []*html.Node) (*html.Node, error) {
	var root *html.Node
	count := 0
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		count++
		if root == nil {
			root = n
		}
	}
	if count != 1 {
		return nil, &MultipleRootsError{Roots: count}
	}
	return root, nil
}

// ParseSingleRoot combines ParseFragment and SingleRoot.
func ParseSingleRoot(src string, context *html.Node) (*html.Node, error) {
	nodes, err := ParseFragment(src, context)
	if err != nil {
		return nil, err
	}
	return SingleRoot(nodes)
}

// Replace puts replacement where old is and detaches old. replacement must not
// belong to another tree.
func Replace(old, replacement *html.Node) error {
	if old == nil || old.Parent == nil {
		return ErrDetached
	}
	if replacement.Parent != nil {
		replacement.Parent.RemoveChild(replacement)
	}
	replacement.PrevSibling = nil
	replacement.NextSibling = nil
	parent := old.Parent
	parent.InsertBefore(replacement, old)
	parent.RemoveChild(old)
	return nil
}

// Head returns the first <head> element under root.
func Head(root *html.Node) *html.Node {
	return first(root, atom.Head)
}

// Body returns the first <body> element under root.
func Body(root *html.Node) *html.Node {
	return first(root, atom.Body)
}

// StyleChild returns the first direct <style> child of head. When none exists
// and create is set, an empty one is appended.
func StyleChild(head *html.Node, create bool) *html.Node {
	if head == nil {
		return nil
	}
	for child := head.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == atom.Style {
			return child
		}
	}
	if !create {
		return nil
	}
	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
	}
	head.AppendChild(style)
	return style
}

// Text concatenates the direct text children of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	}
	return b.String()
}

// SetText replaces all children of n with a single text node.
func SetText(n *html.Node, text string) {
	if n == nil {
		return
	}
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func first(root *html.Node, a atom.Atom) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && root.DataAtom == a {
		return root
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := first(child, a); found != nil {
			return found
		}
	}
	return nil
}

func bodyContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
}
