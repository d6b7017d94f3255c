package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrRecursionLimit is matched by every RecursionLimitError.
	ErrRecursionLimit = errors.New("engine: expansion did not settle")

	// ErrNoHead is returned when collected CSS has nowhere to go.
	ErrNoHead = errors.New("engine: document has no head element")
)

// TemplateError reports a rendered template whose output is not usable as a
// replacement, most often because it has more than one top-level element.
type TemplateError struct {
	Tag string
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("engine: template %q: %v", e.Tag, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// RenderError wraps a renderer failure with the tag being expanded.
type RenderError struct {
	Tag string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("engine: render %q: %v", e.Tag, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PreprocessError wraps a stylesheet preprocessor failure.
type PreprocessError struct {
	Tag        string
	Stylesheet string
	Err        error
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("engine: stylesheet %s for %q: %v", e.Stylesheet, e.Tag, e.Err)
}

func (e *PreprocessError) Unwrap() error { return e.Err }

// RecursionLimitError is returned when WithMaxPasses is set and the document
// still holds template tags after that many rewriting passes.
type RecursionLimitError struct {
	Passes int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("engine: template tags remain after %d passes; check for self-nesting templates", e.Passes)
}

// Is lets errors.Is(err, ErrRecursionLimit) match.
func (e *RecursionLimitError) Is(target error) bool {
	return target == ErrRecursionLimit
}
