package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input-shape errors
	ErrEmptyResult    = errors.New("fit result is empty")
	ErrEmptyMatrix    = errors.New("matrix has no rows or columns")
	ErrShapeMismatch  = errors.New("matrix shapes do not match")
	ErrMarkerMismatch = errors.New("marker panels differ between fits")

	// Lookup errors
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrColumnNotFound   = errors.New("metadata column not found")
	ErrMarkerNotFound   = errors.New("marker not found")

	// Pipeline errors
	ErrNoSubjects   = errors.New("no subjects remain after filtering")
	ErrNoCategories = errors.New("no categories remain after filtering")

	// Internal errors - indicate a reconciliation bug, never user input
	ErrInternal           = errors.New("internal error")
	ErrColumnMisalignment = fmt.Errorf("%w: reconciled column sequences differ", ErrInternal)
)

// Error constructors with context
func NewShapeError(wantRows, wantCols, gotRows, gotCols int) error {
	return fmt.Errorf("%w: want %dx%d, got %dx%d", ErrShapeMismatch, wantRows, wantCols, gotRows, gotCols)
}

func NewLookupError(sentinel error, key string) error {
	return fmt.Errorf("%w: %q", sentinel, key)
}

func NewMisalignmentError(position int, left, right string) error {
	return fmt.Errorf("%w: position %d: left=%q right=%q", ErrColumnMisalignment, position, left, right)
}

// IsInternalError reports whether err signals a pipeline bug rather than
// bad caller input. Internal errors must never be silently recovered.
func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsLookupError(err error) bool {
	return errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrMarkerNotFound)
}
