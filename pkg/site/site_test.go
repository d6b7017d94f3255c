package site_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-tagexpand/pkg/dom"
	"github.com/goliatone/go-tagexpand/pkg/engine"
	"github.com/goliatone/go-tagexpand/pkg/site"
	"github.com/goliatone/go-tagexpand/pkg/tags"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	reg, err := tags.New(
		tags.Definition{Tag: "Note", Body: `<aside class="note">{{ content }}</aside>`},
		tags.Definition{Tag: "Broken", Body: `<i>1</i><i>2</i>`},
	)
	require.NoError(t, err)
	e, err := engine.New(reg)
	require.NoError(t, err)
	return e
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestBuild_WritesMirroredPages(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(in, "index.html"), `<body><Note>hello</Note></body>`)
	writeFile(t, filepath.Join(in, "docs", "guide.html"), `<body><p>plain</p></body>`)
	writeFile(t, filepath.Join(in, "assets", "app.js"), `console.log(1)`)

	b, err := site.New(newEngine(t), site.WithConcurrency(2))
	require.NoError(t, err)

	report, err := b.Build(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.html", "index.html"}, report.Pages)
	assert.Empty(t, report.Failed)

	got, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, `<html><head></head><body><aside class="note">hello</aside></body></html>`, string(got))

	_, err = os.Stat(filepath.Join(out, "assets", "app.js"))
	assert.True(t, os.IsNotExist(err), "non-page files are not copied")
}

func TestBuild_FailFast(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(in, "bad.html"), `<body><Broken></Broken></body>`)

	b, err := site.New(newEngine(t), site.WithConcurrency(1))
	require.NoError(t, err)

	report, err := b.Build(context.Background(), in, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, dom.ErrRootCount)

	var pageErr site.PageError
	require.True(t, errors.As(err, &pageErr))
	assert.Equal(t, "bad.html", pageErr.Path)
	assert.Empty(t, report.Pages)

	_, statErr := os.Stat(filepath.Join(out, "bad.html"))
	assert.True(t, os.IsNotExist(statErr), "failed pages are not written")
}

func TestBuild_ContinueOnError(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(in, "a.html"), `<body><Broken></Broken></body>`)
	writeFile(t, filepath.Join(in, "b.html"), `<body><Note>ok</Note></body>`)

	b, err := site.New(newEngine(t), site.WithContinueOnError())
	require.NoError(t, err)

	report, err := b.Build(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.html"}, report.Pages)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "a.html", report.Failed[0].Path)
	assert.ErrorIs(t, report.Failed[0], dom.ErrRootCount)
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := site.New(nil)
	assert.Error(t, err)
}
