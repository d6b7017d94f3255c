package tagexpand_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	tagexpand "github.com/goliatone/go-tagexpand"
	"github.com/goliatone/go-tagexpand/pkg/engine"
	"github.com/goliatone/go-tagexpand/pkg/testsupport"
)

func TestExpandDocument_Golden(t *testing.T) {
	ctx := context.Background()
	e, err := tagexpand.LoadDir(ctx, filepath.Join("testdata", "templates"),
		tagexpand.WithMinifiedCSS(),
		tagexpand.WithGlobalData(map[string]any{"year": 2026}),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := e.Registry().Tags(); strings.Join(got, ",") != "badge,Card,site-footer" {
		t.Fatalf("unexpected registry order: %v", got)
	}

	page := testsupport.MustReadFile(t, filepath.Join("testdata", "pages", "index.html"))
	out, err := e.ExpandDocument(ctx, page)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "golden", "index.html"), out)
}

func TestExpandDocument_FromFS(t *testing.T) {
	templates := fstest.MapFS{
		"note.html": {Data: []byte(`<aside class="note">{{ content }}</aside>`)},
	}
	out, err := tagexpand.ExpandDocument(context.Background(), templates,
		`<body><note class="warn">careful</note></body>`)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := `<html><head></head><body><aside class="warn note">careful</aside></body></html>`
	if diff := testsupport.CompareGolden(want, out); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CustomExtensions(t *testing.T) {
	templates := fstest.MapFS{
		"note.tmpl": {Data: []byte(`<aside>{{ content }}</aside>`)},
		"skip.html": {Data: []byte(`<p>{{ content }}</p>`)},
	}
	e, err := tagexpand.Load(context.Background(), templates, tagexpand.WithExtensions(".tmpl"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := e.Registry().Tags(); len(got) != 1 || got[0] != "note" {
		t.Fatalf("expected only note registered, got %v", got)
	}
}

func TestLoad_Sanitizer(t *testing.T) {
	templates := fstest.MapFS{
		"box.html":  {Data: []byte(`<div class="box" onclick="steal()">{{ content }}<script>alert(1)</script></div>`)},
		"item.html": {Data: []byte(`<span>{{ content }}</span>`)},
	}
	out, err := tagexpand.ExpandDocument(context.Background(), templates,
		`<body><box><item>x</item></box></body>`, tagexpand.WithSanitizer())
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if strings.Contains(out, "onclick") || strings.Contains(out, "<script>") {
		t.Fatalf("expected unsafe markup removed:\n%s", out)
	}
	if !strings.Contains(out, `<div class="box"><span>x</span></div>`) {
		t.Fatalf("expected nested tag to survive sanitising and expand:\n%s", out)
	}
}

func TestLoad_MaxPasses(t *testing.T) {
	templates := fstest.MapFS{
		"loop.html": {Data: []byte(`<div><loop>{{ content }}</loop></div>`)},
	}
	_, err := tagexpand.ExpandDocument(context.Background(), templates,
		`<body><loop>x</loop></body>`, tagexpand.WithMaxPasses(3))
	if !errors.Is(err, engine.ErrRecursionLimit) {
		t.Fatalf("expected recursion limit, got %v", err)
	}
}

func TestLoadDir_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := tagexpand.LoadDir(ctx, ""); err == nil {
		t.Fatalf("expected error for empty dir")
	}
	if _, err := tagexpand.LoadDir(ctx, filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
	file := filepath.Join(t.TempDir(), "card.html")
	if err := os.WriteFile(file, []byte("<div></div>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := tagexpand.LoadDir(ctx, file); err == nil {
		t.Fatalf("expected error for file path")
	}
	if _, err := tagexpand.Load(ctx, nil); err == nil {
		t.Fatalf("expected error for nil filesystem")
	}
}

func TestFixtureEngine_RawStylesheets(t *testing.T) {
	dir := filepath.Join("testdata", "templates")
	reg := testsupport.MustLoadRegistry(t, dir)
	if reg.Len() != 3 {
		t.Fatalf("expected 3 templates, got %d", reg.Len())
	}

	e := testsupport.MustNewEngine(t, dir)
	out, css, err := e.ExpandFragment(testsupport.Context(), `<Card title="a"><badge>b</badge></Card>`)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := `<div class="card"><h2>a</h2><div class="card-body"><span class="badge">b</span></div></div>`
	if diff := testsupport.CompareGolden(want, out); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
	wantCSS := ".badge {\n  color: red;\n}\n.card {\n  padding: 1em;\n}\n"
	if diff := testsupport.CompareGolden(wantCSS, css); diff != "" {
		t.Fatalf("css mismatch (-want +got):\n%s", diff)
	}
}
