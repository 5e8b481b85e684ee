package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfiguration indicates pipeline settings that cannot be used.
	// Raised before any corpus file is read.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnsupportedType indicates an unknown processor or vocabulary side.
	ErrUnsupportedType = errors.New("unsupported type")

	// Corpus Errors.

	// ErrMalformedRecord marks an utterance line without exactly five fields.
	// The loader skips such lines and only counts them.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMissingUtterance indicates a thread references an unknown line ID.
	// The thread and line files are inconsistent and the run cannot continue.
	ErrMissingUtterance = errors.New("missing utterance")

	// ErrDuplicateToken indicates a vocabulary was built with a repeated token.
	ErrDuplicateToken = errors.New("duplicate token")
)

// MissingUtteranceError reports the thread and line ID of a failed lookup.
type MissingUtteranceError struct {
	// Thread is the zero-based index of the thread in the thread file.
	Thread int

	// LineID is the utterance ID that could not be resolved.
	LineID string
}

// Error implements the error interface.
func (e *MissingUtteranceError) Error() string {
	return fmt.Sprintf("thread %d references unknown utterance %q", e.Thread, e.LineID)
}

// Unwrap allows errors.Is(err, ErrMissingUtterance).
func (e *MissingUtteranceError) Unwrap() error {
	return ErrMissingUtterance
}
