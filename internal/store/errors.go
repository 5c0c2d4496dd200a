package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Identifiers that the backend cannot parse are reported as not found too,
	// since identifiers are opaque to callers.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrAlreadyMember is returned by AddStudent when the student is already
	// in the class's enrollment set.
	ErrAlreadyMember = errors.New("student already enrolled")

	// ErrNotMember is returned by RemoveStudent when the student is not in
	// the class's enrollment set.
	ErrNotMember = errors.New("student not enrolled")

	// ErrCapacityReached is returned when an enrollment change would leave
	// more students than the class capacity allows.
	ErrCapacityReached = errors.New("class capacity reached")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrStudentNotFound indicates that the requested student does not exist.
	ErrStudentNotFound = fmt.Errorf("%w: student", ErrNotFound)

	// ErrTeacherNotFound indicates that the requested teacher does not exist.
	ErrTeacherNotFound = fmt.Errorf("%w: teacher", ErrNotFound)

	// ErrAdminNotFound indicates that the requested admin does not exist.
	ErrAdminNotFound = fmt.Errorf("%w: admin", ErrNotFound)

	// ErrClassNotFound indicates that the requested class does not exist.
	ErrClassNotFound = fmt.Errorf("%w: class", ErrNotFound)

	// ErrRoutineNotFound indicates that the requested routine does not exist.
	ErrRoutineNotFound = fmt.Errorf("%w: routine", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error signals a unique constraint violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "student", "class")
	Operation string // The operation that failed (e.g., "create", "add_student")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
