// Package testsupport holds fixture and golden file helpers shared by tests.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tagexpand/pkg/engine"
	"github.com/goliatone/go-tagexpand/pkg/style"
	"github.com/goliatone/go-tagexpand/pkg/tags"
)

// MustLoadRegistry scans dir for tag templates. Testing helpers fail the test
// on error to keep call sites short.
func MustLoadRegistry(t *testing.T, dir string) *tags.Registry {
	t.Helper()

	reg, err := LoadRegistryFromPath(dir)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	return reg
}

// LoadRegistryFromPath builds a registry without requiring testing.T, so
// fixtures can be wired in setup functions.
func LoadRegistryFromPath(dir string) (*tags.Registry, error) {
	if dir == "" {
		return nil, errors.New("testsupport: template directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("testsupport: stat templates: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("testsupport: %s is not a directory", dir)
	}
	return tags.LoadFS(context.Background(), os.DirFS(dir))
}

// MustNewEngine loads the templates under dir and builds an engine whose
// stylesheets resolve against the same directory. Stylesheets are passed
// through untouched so goldens stay readable.
func MustNewEngine(t *testing.T, dir string, opts ...engine.Option) *engine.Engine {
	t.Helper()

	reg := MustLoadRegistry(t, dir)
	base := []engine.Option{engine.WithStylesheetFS(os.DirFS(dir), style.WithRaw())}
	e, err := engine.New(reg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

// MustReadFile reads a fixture.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, rewriting the file
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()
	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("golden mismatch for %s (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
