package decision

import (
	"errors"
	"fmt"
)

// Structural causes carried by ParseError.
var (
	ErrNotObject    = errors.New("decision is not a JSON object")
	ErrMissingKey   = errors.New("missing key")
	ErrUnknownKey   = errors.New("unknown key")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidType  = errors.New("value must be a string")
	ErrInvalidAgent = errors.New("unrecognized agent")
	ErrTrailingData = errors.New("unexpected data after JSON object")
)

// ExcerptLength is how many characters of the raw text a ParseError keeps.
const ExcerptLength = 200

// ParseError reports why the Manager output could not be turned into a Decision.
type ParseError struct {
	// Excerpt holds the first ExcerptLength characters of the raw text.
	Excerpt string
	Cause   error
}

func newParseError(raw string, cause error) *ParseError {
	return &ParseError{Excerpt: excerpt(raw), Cause: cause}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse decision from %q: %v", e.Excerpt, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func excerpt(s string) string {
	n := 0
	for i := range s {
		if n == ExcerptLength {
			return s[:i]
		}
		n++
	}
	return s
}
