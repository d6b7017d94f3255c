package tags

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTag is matched (errors.Is) by every DuplicateTagError.
	ErrDuplicateTag = errors.New("tags: duplicate tag")

	// ErrInvalidTag reports an empty or malformed tag name.
	ErrInvalidTag = errors.New("tags: invalid tag name")
)

// DuplicateTagError is returned when two definitions claim the same tag name.
// Existing and Incoming carry the source paths when known.
type DuplicateTagError struct {
	Tag      string
	Existing string
	Incoming string
}

func (e *DuplicateTagError) Error() string {
	switch {
	case e.Existing != "" && e.Incoming != "":
		return fmt.Sprintf("tags: tag %q from %s already registered by %s", e.Tag, e.Incoming, e.Existing)
	case e.Existing != "":
		return fmt.Sprintf("tags: tag %q already registered by %s", e.Tag, e.Existing)
	default:
		return fmt.Sprintf("tags: tag %q already registered", e.Tag)
	}
}

// Is lets errors.Is(err, ErrDuplicateTag) match.
func (e *DuplicateTagError) Is(target error) bool {
	return target == ErrDuplicateTag
}
