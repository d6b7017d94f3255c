package attrs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHelper(t *testing.T) {
	usage := List{
		{Name: "href", Value: "/docs?a=1&b=2"},
		{Name: "target", Value: "_blank"},
		{Name: "label", Value: `Say "hi"`},
	}

	h := NewHelper(usage)
	if got, want := h.Only("target", "missing"), ` target="_blank"`; got != want {
		t.Fatalf("only mismatch\nwant: %q\n got: %q", want, got)
	}
	if got, want := h.Except("label", "target"), ` href="/docs?a=1&amp;b=2"`; got != want {
		t.Fatalf("except mismatch\nwant: %q\n got: %q", want, got)
	}
	if got := h.Get("LABEL"); got != `Say "hi"` {
		t.Fatalf("get mismatch: %q", got)
	}

	if diff := cmp.Diff([]string{"target", "href", "label"}, h.Consumed()); diff != "" {
		t.Fatalf("consumed mismatch (-want +got):\n%s", diff)
	}
}

func TestHelper_RenderAll(t *testing.T) {
	h := NewHelper(List{{Name: "a", Value: "1"}, {Name: "b", Value: ""}})
	if got, want := h.Render(), ` a="1" b=""`; got != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, got)
	}
	if got := NewHelper(nil).Render(); got != "" {
		t.Fatalf("expected empty output for no attributes, got %q", got)
	}
}
