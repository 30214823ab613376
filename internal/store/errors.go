package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Entity-specific variants wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert collides with an existing id.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects a row because it
	// violates a column constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrListingNotFound indicates that the requested listing does not exist.
	ErrListingNotFound = fmt.Errorf("%w: listing", ErrNotFound)

	// ErrBookingNotFound indicates that the requested booking does not exist.
	ErrBookingNotFound = fmt.Errorf("%w: booking", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError adds the failing entity and operation to a low level error.
type StoreError struct {
	Entity    string // "listing" or "booking"
	Operation string // e.g. "search", "upsert"
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Entity, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err. It returns nil when err is nil so it can be used
// directly on a return path.
func NewStoreError(entity, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Entity: entity, Operation: operation, Err: err}
}
