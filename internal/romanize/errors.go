package romanize

import (
	"errors"
	"fmt"
)

var (
	// ErrLookup means a token's surface could not be found in the output being built:
	// the tokens and the text have drifted apart.
	ErrLookup = errors.New("token surface not found in output")

	// ErrMalformedToken means the tagger produced a token without a part of speech or
	// without surface text.
	ErrMalformedToken = errors.New("malformed token")
)

// LookupError records which surface went missing and where the search started.
type LookupError struct {
	Surface string
	From    int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %q (searching from offset %d)", ErrLookup, e.Surface, e.From)
}

func (e *LookupError) Unwrap() error {
	return ErrLookup
}
