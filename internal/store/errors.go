package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned by every operation invoked before a
	// successful Open. This is a programmer error and is never retried.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrNotFound is returned by single-entity reads when no record
	// matches.
	ErrNotFound = errors.New("record not found")
)

// InitError reports that the backing store could not be opened or created.
// Fatal to any subsequent operation until Open succeeds.
type InitError struct {
	Backend string
	Err     error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("opening %s store: %v", e.Backend, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// WriteError wraps an underlying I/O failure during an insert, update or
// delete. The caller decides whether to retry, alert or drop the write;
// no retries happen inside the storage layer.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ValidationError rejects an entity at insert time instead of persisting
// it in an inconsistent state.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

func writeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &WriteError{Op: op, Err: err}
}

// WrapWrite wraps err in a *WriteError unless it already carries one or is
// a validation failure, which must stay unwrapped for errors.As callers.
func WrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	var we *WriteError
	var ve *ValidationError
	if errors.As(err, &we) || errors.As(err, &ve) {
		return err
	}
	return writeErr(op, err)
}
