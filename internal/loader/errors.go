package loader

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every error caused by malformed JSON content.
var ErrSyntax = errors.New("malformed JSON")

// errTrailingData is reported when a single-document parse finds more input
// after the first top-level value.
var errTrailingData = errors.New("unexpected data after top-level value")

// ParseError reports a malformed line in a line-delimited audit file.
type ParseError struct {
	// Path is the file being loaded.
	Path string
	// Line is the 1-based line number of the malformed value.
	Line int
	// Err is the underlying decoder error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ParseError as an ErrSyntax.
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

// syntaxError marks a decoder error as ErrSyntax while keeping the original message.
type syntaxError struct {
	err error
}

func (e *syntaxError) Error() string        { return e.err.Error() }
func (e *syntaxError) Unwrap() error        { return e.err }
func (e *syntaxError) Is(target error) bool { return target == ErrSyntax }
