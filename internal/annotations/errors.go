package annotations

import (
	"errors"
	"fmt"
)

var (
	ErrNotAnnotation    = errors.New("comment is not a viewcheck annotation")
	ErrUnknownType      = errors.New("unknown annotation type")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrDuplicate        = errors.New("duplicate parameter")
	ErrMissingValue     = errors.New("parameter requires a value")
	ErrInvalidMethod    = errors.New("invalid HTTP method")
	ErrUnexpectedPath   = errors.New("annotation does not take a path")
)

// ParseError reports a malformed annotation and where it was found
type ParseError struct {
	Loc  SourceLocation // Where the error occurred
	Raw  string         // Annotation text
	Msg  string         // Error message
	Hint string         // Suggested fix
	Err  error          // Sentinel, if any
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	if e.Loc.File == "" {
		return fmt.Sprintf("annotation %q: %s", e.Raw, msg)
	}
	return fmt.Sprintf("%s: annotation %q: %s", e.Loc, e.Raw, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Location returns where the annotation was found
func (e *ParseError) Location() SourceLocation { return e.Loc }
