package models

import (
	"errors"
	"fmt"
)

// Pipeline failure classes. Callers match them with errors.Is.
var (
	ErrMalformedURL = errors.New("malformed url")
	ErrUnreachable  = errors.New("url not reachable")
	ErrFetchFailure = errors.New("fetch failed")
	ErrParseFailure = errors.New("parse failed")
	ErrMissingField = errors.New("missing field")
	ErrSinkFailure  = errors.New("sink write failed")
)

// MissingFieldError reports a listing container that lacks a required node.
type MissingFieldError struct {
	Field     Field
	Container int // zero-based index of the listing container
	Selector  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %q in listing %d (selector %q)",
		ErrMissingField, e.Field.String(), e.Container, e.Selector)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
