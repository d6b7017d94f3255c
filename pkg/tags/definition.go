package tags

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Definition binds a custom element name to an unrendered template body.
type Definition struct {
	// Tag is the element name as declared. Matching ignores case.
	Tag string

	// Body is the raw template source, front matter removed.
	Body string

	// Stylesheet optionally references a stylesheet compiled once per
	// document that uses the tag.
	Stylesheet string

	// Source is the path the definition was loaded from, empty for explicit
	// registrations.
	Source string
}

// Key is the lookup key for the definition.
func (d Definition) Key() string {
	return Key(d.Tag)
}

// Key normalises a tag name for lookups.
func Key(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

var tagPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.:-]*$`)

// ValidateTag rejects names that cannot appear as an HTML element name.
func ValidateTag(tag string) error {
	if !tagPattern.MatchString(strings.TrimSpace(tag)) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	return nil
}

type frontMatter struct {
	Tag        string `yaml:"tag" toml:"tag"`
	Stylesheet string `yaml:"stylesheet" toml:"stylesheet"`
}

var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// ParseSource builds a definition from a template file. p is the slash
// separated path relative to the template root.
func ParseSource(p string, raw []byte) (Definition, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta, frontMatterFormats...)
	if err != nil {
		return Definition{}, fmt.Errorf("tags: front matter in %s: %w", p, err)
	}

	tag := strings.TrimSpace(meta.Tag)
	if tag == "" {
		tag = DefaultTag(p)
	}
	if err := ValidateTag(tag); err != nil {
		return Definition{}, fmt.Errorf("tags: %s: %w", p, err)
	}

	return Definition{
		Tag:        tag,
		Body:       string(body),
		Stylesheet: resolveStylesheet(p, meta.Stylesheet),
		Source:     p,
	}, nil
}

// DefaultTag derives a tag name from a file path: the base name without its
// extension.
func DefaultTag(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

func resolveStylesheet(templatePath, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	ref = strings.ReplaceAll(ref, "\\", "/")
	if strings.HasPrefix(ref, "/") {
		return path.Clean(strings.TrimPrefix(ref, "/"))
	}
	return path.Join(path.Dir(templatePath), ref)
}
