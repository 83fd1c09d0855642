package lexicon

import (
	"errors"
	"fmt"
)

// ErrEmptyLexicon means the file parsed but no record carried a head word.
var ErrEmptyLexicon = errors.New("lexicon has no usable entries")

// MalformedError means neither grammar recovered a single record.
type MalformedError struct {
	// Cause is the message of the whole-document parse failure.
	Cause string
	// Snippet is the start of the raw file text, for display.
	Snippet string
	// LineErrors is the number of lines the line grammar could not parse.
	LineErrors int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed lexicon: %s", e.Cause)
}
