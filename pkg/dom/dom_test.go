package dom

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestFindElementsByTag_DocumentOrderCaseInsensitive(t *testing.T) {
	doc, err := Parse(`<body><Card id="a"><card id="b"></card></Card><CARD id="c"></CARD></body>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	found := FindElementsByTag(doc.Root(), "Card")
	if len(found) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(found))
	}
	var ids []string
	for _, n := range found {
		for _, a := range n.Attr {
			if a.Key == "id" {
				ids = append(ids, a.Val)
			}
		}
	}
	if got := strings.Join(ids, ","); got != "a,b,c" {
		t.Fatalf("document order mismatch: %s", got)
	}
}

func TestInnerHTML(t *testing.T) {
	doc, err := Parse(`<body><x-box>Hello <b>world</b></x-box></body>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	box := FindElementsByTag(doc.Root(), "x-box")[0]
	got, err := InnerHTML(box)
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	if got != "Hello <b>world</b>" {
		t.Fatalf("inner html mismatch: %q", got)
	}
}

func TestSingleRoot(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		roots int
	}{
		{name: "one element", src: `<div>a</div>`, roots: 1},
		{name: "whitespace around", src: "\n  <div>a</div>\n", roots: 1},
		{name: "comment ignored", src: `<!-- c --><div>a</div>`, roots: 1},
		{name: "siblings", src: `<div>a</div><div>b</div>`, roots: 2},
		{name: "text only", src: `just text`, roots: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := ParseSingleRoot(tc.src, nil)
			if tc.roots == 1 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if root.Data != "div" {
					t.Fatalf("expected div root, got %s", root.Data)
				}
				return
			}
			var rootsErr *MultipleRootsError
			if !errors.As(err, &rootsErr) {
				t.Fatalf("expected MultipleRootsError, got %v", err)
			}
			if rootsErr.Roots != tc.roots {
				t.Fatalf("expected %d roots, got %d", tc.roots, rootsErr.Roots)
			}
			if !errors.Is(err, ErrRootCount) {
				t.Fatalf("expected errors.Is ErrRootCount")
			}
		})
	}
}

func TestParseFragment_UsesParentContext(t *testing.T) {
	doc, err := Parse(`<body><ul><x-item></x-item></ul></body>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	item := FindElementsByTag(doc.Root(), "x-item")[0]

	root, err := ParseSingleRoot(`<li class="item">one</li>`, item.Parent)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	if err := Replace(item, root); err != nil {
		t.Fatalf("replace: %v", err)
	}

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<ul><li class="item">one</li></ul>`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestReplace_Detached(t *testing.T) {
	orphan := &html.Node{Type: html.ElementNode, Data: "div"}
	if err := Replace(orphan, &html.Node{Type: html.ElementNode, Data: "p"}); !errors.Is(err, ErrDetached) {
		t.Fatalf("expected ErrDetached, got %v", err)
	}
}

func TestAttached(t *testing.T) {
	doc, err := Parse(`<body><x-a><x-b></x-b></x-a></body>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	outer := FindElementsByTag(doc.Root(), "x-a")[0]
	inner := FindElementsByTag(doc.Root(), "x-b")[0]

	if !Attached(doc.Root(), inner) {
		t.Fatalf("expected inner to be attached")
	}
	outer.Parent.RemoveChild(outer)
	if Attached(doc.Root(), inner) {
		t.Fatalf("expected inner to be detached with its parent")
	}
}

func TestStyleChildAndText(t *testing.T) {
	doc, err := Parse(`<html><head><title>t</title></head><body></body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	head := Head(doc.Root())
	if head == nil {
		t.Fatalf("expected head")
	}
	if StyleChild(head, false) != nil {
		t.Fatalf("expected no style element yet")
	}

	style := StyleChild(head, true)
	SetText(style, ".a{}")
	if again := StyleChild(head, true); again != style {
		t.Fatalf("expected the existing style element to be reused")
	}
	if got := Text(style); got != ".a{}" {
		t.Fatalf("text mismatch: %q", got)
	}

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<head><title>t</title><style>.a{}</style></head>`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestParseBody(t *testing.T) {
	body, err := ParseBody(`<p>one</p><Card>two</Card>`)
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body.Parent != nil {
		t.Fatalf("body must be detached")
	}
	got, err := InnerHTML(body)
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	if want := `<p>one</p><card>two</card>`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	card := FindElementsByTag(body, "card")
	if len(card) != 1 || !Attached(body, card[0]) {
		t.Fatalf("expected card attached to body")
	}
}

func TestPairSelfClosing(t *testing.T) {
	isIcon := func(name string) bool { return name == "icon" }

	cases := []struct{ name, in, want string }{
		{"registered", `<Icon name="x"/><p>after</p>`, `<Icon name="x"></icon><p>after</p>`},
		{"space before slash", `<div><Icon name="x" /></div>`, `<div><Icon name="x"></icon></div>`},
		{"other tags untouched", `<br/><Other a="1"/>`, `<br/><Other a="1"/>`},
		{"script text untouched", `<script>var s = "<Icon/>";</script>`, `<script>var s = "<Icon/>";</script>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PairSelfClosing(tc.in, isIcon); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}

	body, err := ParseBody(PairSelfClosing(`<Icon name="x"/><p>after</p>`, isIcon))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p := FindElementsByTag(body, "p")[0]; p.Parent != body {
		t.Fatalf("sibling swallowed by self-closing tag, parent is %q", p.Parent.Data)
	}
	if icon := FindElementsByTag(body, "icon")[0]; icon.FirstChild != nil {
		t.Fatalf("icon should be empty, has %q", icon.FirstChild.Data)
	}
}
