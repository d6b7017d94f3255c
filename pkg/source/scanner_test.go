package source

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestScanFS_OrderAndFilter(t *testing.T) {
	fsys := fstest.MapFS{
		"card.html":               {Data: []byte("<div></div>")},
		"button.TPL":              {Data: []byte("<button></button>")},
		"notes.md":                {Data: []byte("# ignored")},
		"layout/footer.html":      {Data: []byte("<footer></footer>")},
		"layout/header.html":      {Data: []byte("<header></header>")},
		"layout/deep/badge.tpl":   {Data: []byte("<span></span>")},
		".hidden/secret.html":     {Data: []byte("<div></div>")},
		"layout/.draft.html":      {Data: []byte("<div></div>")},
		"styles/card.css":         {Data: []byte(".card{}")},
		"zeta/omega/last.html":    {Data: []byte("<i></i>")},
		"alpha.html":              {Data: []byte("<b></b>")},
		"layout/deep/readme.txt":  {Data: []byte("nope")},
		"layout/aside/panel.html": {Data: []byte("<aside></aside>")},
	}

	entries, err := ScanFS(context.Background(), fsys)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	want := []string{
		"alpha.html",
		"button.TPL",
		"card.html",
		"layout/aside/panel.html",
		"layout/deep/badge.tpl",
		"layout/footer.html",
		"layout/header.html",
		"zeta/omega/last.html",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("scan order mismatch (-want +got):\n%s", diff)
	}
	if string(entries[0].Data) != "<b></b>" {
		t.Fatalf("data mismatch: %q", entries[0].Data)
	}
}

func TestScanFS_CustomExtensionsAndRoot(t *testing.T) {
	fsys := fstest.MapFS{
		"site/index.html":           {Data: []byte("page")},
		"site/_tags/card.njk":       {Data: []byte("<div></div>")},
		"site/_tags/nested/btn.njk": {Data: []byte("<button></button>")},
		"site/_tags/other.html":     {Data: []byte("<p></p>")},
	}

	entries, err := ScanFS(context.Background(), fsys, WithRoot("site/_tags"), WithExtensions("njk"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	if diff := cmp.Diff([]string{"card.njk", "nested/btn.njk"}, paths); diff != "" {
		t.Fatalf("scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ScanFS(ctx, fstest.MapFS{"a.html": {Data: []byte("<a></a>")}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestScanDir_Missing(t *testing.T) {
	if _, err := ScanDir(context.Background(), t.TempDir()+"/missing"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
