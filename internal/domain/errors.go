package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below unwraps to exactly one of these so
// callers can classify with errors.Is without knowing the concrete type.
var (
	// ErrValidation is returned when an entity or patch fails field validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a request is incompatible with current state.
	ErrConflict = errors.New("conflict")

	// ErrAuth is returned when a login attempt fails.
	ErrAuth = errors.New("authentication failed")
)

// Entity names used in NotFoundError and logs.
const (
	EntityStudent = "student"
	EntityTeacher = "teacher"
	EntityAdmin   = "admin"
	EntityClass   = "class"
	EntityRoutine = "routine"
)

// ValidationError describes a malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports that an entity of the given kind does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFoundError creates a NotFoundError. id may be empty when the lookup
// was by attributes rather than identifier.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a request that is incompatible with current state.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Reason }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Conflicts raised by the enrollment workflow and user registration.
var (
	ErrAlreadyEnrolled  = &ConflictError{Reason: "already enrolled"}
	ErrNotEnrolled      = &ConflictError{Reason: "not enrolled"}
	ErrCapacityExceeded = &ConflictError{Reason: "capacity exceeded"}
	ErrEmailTaken       = &ConflictError{Reason: "email already registered"}
)

// AuthError reports a failed login.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return "authentication failed: " + e.Reason }

func (e *AuthError) Unwrap() error { return ErrAuth }

// Login failures.
var (
	ErrUserNotFound   = &AuthError{Reason: "user not found"}
	ErrBadCredentials = &AuthError{Reason: "bad credentials"}
)

// IsNotFound reports whether err is a NotFoundError for the given entity.
// An empty entity matches any NotFoundError.
func IsNotFound(err error, entity string) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	return entity == "" || nf.Entity == entity
}
