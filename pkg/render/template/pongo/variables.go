package pongo

import (
	"strings"
)

var keywords = map[string]struct{}{
	"in": {}, "not": {}, "and": {}, "or": {}, "is": {}, "as": {},
	"with": {}, "only": {}, "true": {}, "false": {}, "True": {}, "False": {},
	"none": {}, "None": {}, "nil": {}, "reversed": {}, "sorted": {},
}

// Variables lists the top-level names source reads, in first-use order.
// Attribute access, method calls and filter names are not reported, nor are
// loop variables bound by a for tag.
func (r *Renderer) Variables(source string) ([]string, error) {
	seen := make(map[string]struct{})
	bound := make(map[string]struct{})
	var out []string

	rest := source
	for {
		start := strings.Index(rest, "{")
		if start < 0 || start+1 >= len(rest) {
			break
		}
		var closer string
		switch rest[start+1] {
		case '{':
			closer = "}}"
		case '%':
			closer = "%}"
		case '#':
			closer = "#}"
		default:
			rest = rest[start+1:]
			continue
		}
		body := rest[start+2:]
		end := strings.Index(body, closer)
		if end < 0 {
			break
		}
		if closer != "#}" {
			for _, name := range identifiers(body[:end], closer == "%}", bound) {
				if _, ok := bound[name]; ok {
					continue
				}
				if _, ok := seen[name]; ok {
					continue
				}
				seen[name] = struct{}{}
				out = append(out, name)
			}
		}
		rest = body[end+len(closer):]
	}
	return out, nil
}

// identifiers scans one expression or tag body. For tags the leading tag name
// is skipped. Loop targets and assignment targets are recorded in bound.
func identifiers(expr string, isTag bool, bound map[string]struct{}) []string {
	var out []string
	var prev byte
	first := isTag
	inLoop := false

	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(expr) && expr[j] != c {
				if expr[j] == '\\' {
					j++
				}
				j++
			}
			i = j + 1
			prev = c
		case c >= '0' && c <= '9':
			for i < len(expr) && (isIdentPart(expr[i]) || expr[i] == '.') {
				i++
			}
			prev = '0'
		case isIdentStart(c):
			j := i + 1
			for j < len(expr) && isIdentPart(expr[j]) {
				j++
			}
			word := expr[i:j]
			i = j
			switch {
			case first:
				first = false
				inLoop = word == "for"
			case prev == '.' || prev == '|':
			case inLoop && word == "in":
				inLoop = false
			case inLoop:
				bound[word] = struct{}{}
			case assigns(expr, i):
				bound[word] = struct{}{}
			default:
				if _, kw := keywords[word]; !kw {
					out = append(out, word)
				}
			}
			prev = 'a'
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		default:
			prev = c
			i++
		}
	}
	return out
}

// assigns reports whether the identifier ending at i is the target of a
// single "=" (set tags, keyword arguments).
func assigns(expr string, i int) bool {
	for ; i < len(expr); i++ {
		switch expr[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '=':
			return i+1 >= len(expr) || expr[i+1] != '='
		}
		return false
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
