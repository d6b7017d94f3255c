package style

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// ErrUnsupportedStylesheet is returned for stylesheet references the
// preprocessor does not know how to compile.
var ErrUnsupportedStylesheet = errors.New("style: unsupported stylesheet")

// Preprocessor turns a stylesheet reference into CSS text.
type Preprocessor interface {
	Compile(ctx context.Context, path string) (string, error)
}

// PreprocessorFunc adapts a function to the Preprocessor interface.
type PreprocessorFunc func(ctx context.Context, path string) (string, error)

// Compile implements Preprocessor.
func (fn PreprocessorFunc) Compile(ctx context.Context, path string) (string, error) {
	return fn(ctx, path)
}

// CSSOption customises the stylesheet preprocessor.
type CSSOption func(*cssPreprocessor)

// WithMinify collapses compiled stylesheets onto a single line.
func WithMinify() CSSOption {
	return func(p *cssPreprocessor) {
		p.minify = true
	}
}

// WithRaw returns stylesheet files untouched.
func WithRaw() CSSOption {
	return func(p *cssPreprocessor) {
		p.raw = true
	}
}

// WithExtensions replaces the accepted stylesheet extensions.
func WithExtensions(exts ...string) CSSOption {
	return func(p *cssPreprocessor) {
		p.exts = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			p.exts[ext] = struct{}{}
		}
	}
}

type cssPreprocessor struct {
	fsys   fs.FS
	minify bool
	raw    bool
	exts   map[string]struct{}
}

// NewCSSPreprocessor reads stylesheets from fsys, parses them and writes them
// back out in a normalised form. Paths are slash separated and relative to the
// root of fsys. Only plain CSS is understood: Sass sources are rejected with
// ErrUnsupportedStylesheet unless WithExtensions opts in, and Sass constructs
// then fail with ErrMalformedStylesheet. Plug a Sass compiler in through
// PreprocessorFunc to serve .scss files.
func NewCSSPreprocessor(fsys fs.FS, opts ...CSSOption) Preprocessor {
	p := &cssPreprocessor{
		fsys: fsys,
		exts: map[string]struct{}{".css": {}},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *cssPreprocessor) Compile(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.fsys == nil {
		return "", fmt.Errorf("style: no stylesheet filesystem configured")
	}
	name = path.Clean(strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/"))
	if _, ok := p.exts[strings.ToLower(path.Ext(name))]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedStylesheet, name)
	}

	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return "", fmt.Errorf("style: read %s: %w", name, err)
	}
	if p.raw {
		return string(data), nil
	}

	if err := checkStructure(string(data)); err != nil {
		return "", fmt.Errorf("style: parse %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sheet, err := parser.Parse(string(data))
	if err != nil {
		return "", fmt.Errorf("style: parse %s: %w", name, err)
	}
	if p.minify {
		return minifySheet(sheet), nil
	}
	return sheet.String(), nil
}

func minifySheet(sheet *css.Stylesheet) string {
	var b strings.Builder
	for _, rule := range sheet.Rules {
		writeRule(&b, rule)
	}
	return b.String()
}

func writeRule(b *strings.Builder, rule *css.Rule) {
	if rule.Kind == css.QualifiedRule {
		b.WriteString(strings.Join(rule.Selectors, ","))
	} else {
		b.WriteString(rule.Name)
		if rule.Prelude != "" {
			b.WriteByte(' ')
			b.WriteString(rule.Prelude)
		}
	}

	if len(rule.Declarations) == 0 && len(rule.Rules) == 0 {
		b.WriteByte(';')
		return
	}

	b.WriteByte('{')
	if rule.EmbedsRules() {
		for _, sub := range rule.Rules {
			writeRule(b, sub)
		}
	} else {
		for i, decl := range rule.Declarations {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(decl.Property)
			b.WriteByte(':')
			b.WriteString(decl.Value)
			if decl.Important {
				b.WriteString("!important")
			}
		}
	}
	b.WriteByte('}')
}
