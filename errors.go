package cowgen

import (
	"context"
	"errors"
	"fmt"
)

// Lookup fetches the related entity identified by key. It is the capability
// generated association-resolution procedures suspend on; implementations
// belong to the caller (a repository, a cache, a stub in tests).
//
// A miss should be reported with a NotFoundError so callers can distinguish
// it from infrastructure failures. Any error terminates the resolution
// procedure it participates in.
type Lookup[K comparable, E any] func(ctx context.Context, key K) (*E, error)

// ErrNotFound is returned when a lookup target does not exist.
var ErrNotFound = errors.New("cowgen: entity not found")

// NotFoundError reports a missed association lookup.
type NotFoundError struct {
	label string
	key   any
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.key != nil {
		return fmt.Sprintf("cowgen: %s not found (key=%v)", e.label, e.key)
	}
	return fmt.Sprintf("cowgen: %s not found", e.label)
}

// Is reports whether the target matches ErrNotFound, so that
// errors.Is(err, ErrNotFound) holds for every NotFoundError.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label that was looked up.
func (e *NotFoundError) Label() string { return e.label }

// Key returns the key that was searched for, if available.
func (e *NotFoundError) Key() any { return e.key }

// NewNotFoundError returns a NotFoundError for the given entity label.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithKey returns a NotFoundError carrying the missed key.
func NewNotFoundErrorWithKey(label string, key any) *NotFoundError {
	return &NotFoundError{label: label, key: key}
}

// IsNotFound reports if the error is a lookup miss.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}
