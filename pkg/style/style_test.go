package style

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"components/card.css": {Data: []byte(".card { padding: 1em; color: red !important }\n")},
		"styles/badge.css":    {Data: []byte("@media screen { .badge { margin: 0 } }")},
		"styles/theme.scss":   {Data: []byte(".theme { color: blue }")},
		"notes/readme.txt":    {Data: []byte("not css")},
	}
}

func TestCSSPreprocessor_Normalises(t *testing.T) {
	pre := NewCSSPreprocessor(testFS())

	got, err := pre.Compile(context.Background(), "components/card.css")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := ".card {\n  padding: 1em;\n  color: red !important;\n}"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("css mismatch (-want +got):\n%s", diff)
	}
}

func TestCSSPreprocessor_Minify(t *testing.T) {
	pre := NewCSSPreprocessor(testFS(), WithMinify())

	got, err := pre.Compile(context.Background(), "/components/card.css")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if want := ".card{padding:1em;color:red!important}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got, err = pre.Compile(context.Background(), "styles/badge.css")
	if err != nil {
		t.Fatalf("compile media rule: %v", err)
	}
	if want := "@media screen{.badge{margin:0}}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCSSPreprocessor_Raw(t *testing.T) {
	pre := NewCSSPreprocessor(testFS(), WithRaw())

	got, err := pre.Compile(context.Background(), "components/card.css")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.HasPrefix(got, ".card { padding: 1em;") {
		t.Fatalf("raw output altered: %q", got)
	}
}

func TestCSSPreprocessor_Errors(t *testing.T) {
	pre := NewCSSPreprocessor(testFS())

	if _, err := pre.Compile(context.Background(), "notes/readme.txt"); !errors.Is(err, ErrUnsupportedStylesheet) {
		t.Fatalf("expected ErrUnsupportedStylesheet, got %v", err)
	}
	if _, err := pre.Compile(context.Background(), "styles/theme.scss"); !errors.Is(err, ErrUnsupportedStylesheet) {
		t.Fatalf("expected scss to be unsupported by default, got %v", err)
	}
	if _, err := pre.Compile(context.Background(), "missing.css"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pre.Compile(ctx, "components/card.css"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCSSPreprocessor_RejectsSassConstructs(t *testing.T) {
	files := fstest.MapFS{
		"variable.scss": {Data: []byte("$pad: 1em;\n.card { padding: $pad; }")},
		"nested.scss":   {Data: []byte(".card { padding: 1em; .title { margin: 0; } }")},
		"parent.scss":   {Data: []byte(".card { &:hover { color: red; } }")},
		"semicolon.css": {Data: []byte(".card;\n.badge { color: red; }")},
	}
	pre := NewCSSPreprocessor(files, WithExtensions(".css", ".scss"))

	for _, name := range []string{"variable.scss", "nested.scss", "parent.scss", "semicolon.css"} {
		t.Run(name, func(t *testing.T) {
			done := make(chan error, 1)
			go func() {
				_, err := pre.Compile(context.Background(), name)
				done <- err
			}()
			select {
			case err := <-done:
				if !errors.Is(err, ErrMalformedStylesheet) {
					t.Fatalf("expected ErrMalformedStylesheet, got %v", err)
				}
			case <-time.After(5 * time.Second):
				t.Fatalf("compile of %s did not return", name)
			}
		})
	}
}

func TestCSSPreprocessor_AtRules(t *testing.T) {
	files := fstest.MapFS{
		"site.css": {Data: []byte(`@import url("base.css");
@charset "utf-8";
@font-face { font-family: x; src: url(x.woff); }
@keyframes spin { from { opacity: 0 } to { opacity: 1 } }
@media (min-width: 40em) { .card { padding: 2em } }`)},
	}
	pre := NewCSSPreprocessor(files, WithMinify())

	got, err := pre.Compile(context.Background(), "site.css")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for _, part := range []string{
		"@font-face{font-family:x;src:url(x.woff)}",
		"@keyframes spin{from{opacity:0}to{opacity:1}}",
		"@media (min-width: 40em){.card{padding:2em}}",
	} {
		if !strings.Contains(got, part) {
			t.Fatalf("expected %q in %q", part, got)
		}
	}
}

func TestCollector_EmitsOncePerTag(t *testing.T) {
	calls := 0
	pre := PreprocessorFunc(func(_ context.Context, path string) (string, error) {
		calls++
		return "/*" + path + "*/", nil
	})
	c := NewCollector(pre)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		added, err := c.Add(ctx, "Card", "card.css")
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if added != (i == 0) {
			t.Fatalf("iteration %d: added=%v", i, added)
		}
	}
	if _, err := c.Add(ctx, "card", "card.css"); err != nil {
		t.Fatalf("add lowercase: %v", err)
	}
	if _, err := c.Add(ctx, "badge", "badge.css"); err != nil {
		t.Fatalf("add badge: %v", err)
	}

	if calls != 2 {
		t.Fatalf("expected 2 compile calls, got %d", calls)
	}
	if got, want := c.CSS(), "/*card.css*//*badge.css*/"; got != want {
		t.Fatalf("css = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"card", "badge"}, c.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if !c.Seen("CARD") {
		t.Fatalf("expected card to be seen")
	}
}

func TestCollector_NoStylesheet(t *testing.T) {
	c := NewCollector(nil)

	added, err := c.Add(context.Background(), "plain", "")
	if err != nil || added {
		t.Fatalf("expected no-op, got added=%v err=%v", added, err)
	}
	if c.Seen("plain") {
		t.Fatalf("tags without stylesheets are not recorded")
	}
	if _, err := c.Add(context.Background(), "card", "card.css"); !errors.Is(err, ErrNoPreprocessor) {
		t.Fatalf("expected ErrNoPreprocessor, got %v", err)
	}
}

func TestCollector_FailureLeavesTagUnseen(t *testing.T) {
	boom := errors.New("boom")
	c := NewCollector(PreprocessorFunc(func(context.Context, string) (string, error) {
		return "", boom
	}))

	if _, err := c.Add(context.Background(), "card", "card.css"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if c.Seen("card") || c.CSS() != "" {
		t.Fatalf("failed compile must not be recorded")
	}
}
