// Package source scans a template directory for tag template files.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// DefaultExtensions are the template suffixes picked up by a scan.
var DefaultExtensions = []string{".html", ".tpl"}

// Entry is one template file found by a scan. Path is slash separated and
// relative to the scanned root.
type Entry struct {
	Path string
	Data []byte
}

// Option customises a scan.
type Option func(*config)

type config struct {
	extensions map[string]struct{}
	root       string
}

// WithExtensions replaces the accepted file suffixes. A leading dot is added
// when missing; matching ignores case.
func WithExtensions(exts ...string) Option {
	return func(cfg *config) {
		if len(exts) == 0 {
			return
		}
		cfg.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.extensions[ext] = struct{}{}
		}
	}
}

// WithRoot scans a sub directory of the filesystem instead of ".". Entry paths
// stay relative to that sub directory.
func WithRoot(dir string) Option {
	return func(cfg *config) {
		dir = strings.Trim(path.Clean(strings.TrimSpace(dir)), "/")
		if dir == "" {
			dir = "."
		}
		cfg.root = dir
	}
}

// ScanFS walks fsys recursively and returns every template file. Order follows
// fs.WalkDir: lexical within a directory, depth first. That order is the
// registry order and therefore the order tags are expanded in.
func ScanFS(ctx context.Context, fsys fs.FS, options ...Option) ([]Entry, error) {
	if fsys == nil {
		return nil, errors.New("source: filesystem is nil")
	}
	cfg := &config{root: "."}
	WithExtensions(DefaultExtensions...)(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var entries []Entry
	err := fs.WalkDir(fsys, cfg.root, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p != cfg.root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !cfg.accepts(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("source: read %s: %w", p, err)
		}
		entries = append(entries, Entry{Path: cfg.relative(p), Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ScanDir scans a directory on disk.
func ScanDir(ctx context.Context, dir string, options ...Option) ([]Entry, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("source: directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source: %s is not a directory", dir)
	}
	return ScanFS(ctx, os.DirFS(dir), options...)
}

func (cfg *config) accepts(p string) bool {
	_, ok := cfg.extensions[strings.ToLower(path.Ext(p))]
	return ok
}

func (cfg *config) relative(p string) string {
	if cfg.root == "." {
		return p
	}
	return strings.TrimPrefix(p, cfg.root+"/")
}
