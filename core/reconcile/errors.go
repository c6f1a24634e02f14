package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch is returned when no items are submitted.
	ErrEmptyBatch = errors.New("items must be a non-empty array")

	// ErrInvalidBatch is returned by the atomic policy when any item fails validation.
	ErrInvalidBatch = errors.New("batch contains invalid items")

	// ErrUnclassifiable marks a request that matches no action.
	ErrUnclassifiable = errors.New("item has no itemId and is not an out-of-order insert or removal")
)

// ValidationError reports a missing or malformed field for the item's action.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// InvalidBatchError carries every item that failed validation.
type InvalidBatchError struct {
	Failures []Failure
}

func (e *InvalidBatchError) Error() string {
	return fmt.Sprintf("%s: %d invalid item(s)", ErrInvalidBatch, len(e.Failures))
}

// Is lets errors.Is(err, ErrInvalidBatch) match.
func (e *InvalidBatchError) Is(target error) bool {
	return target == ErrInvalidBatch
}

// ItemError is a statement failure bound to the item that triggered it.
type ItemError struct {
	Index int
	Kind  Kind
	Key   ItemKey
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
