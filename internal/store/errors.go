package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every backend. Callers match them with errors.Is;
// the per-collection variants below wrap the generic ones.
var (
	ErrNotFound       = errors.New("entity not found")
	ErrDuplicate      = errors.New("entity already exists")
	ErrInvalidEntity  = errors.New("invalid entity")
	ErrUnknownCounter = errors.New("unknown counter")
)

var (
	ErrEmployeeNotFound     = fmt.Errorf("%w: employee", ErrNotFound)
	ErrManagerNotFound      = fmt.Errorf("%w: manager", ErrNotFound)
	ErrTaskNotFound         = fmt.Errorf("%w: task", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("%w: notification", ErrNotFound)

	ErrEmployeeExists = fmt.Errorf("%w: employee", ErrDuplicate)
	ErrManagerExists  = fmt.Errorf("%w: manager", ErrDuplicate)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is, or wraps, ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which collection and operation failed underneath a
// backend, typically when a mutation could not be persisted.
type StoreError struct {
	Entity    string // collection, e.g. "task" or "history"
	Operation string // e.g. "create", "update_status"
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError wrapping err, which may be nil.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
