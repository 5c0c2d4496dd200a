package service

import (
	"errors"
	"fmt"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
)

// ServiceError wraps an unexpected failure with the service and operation
// that hit it. Expected conditions are returned as domain errors instead.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Err: err}
}

// translate maps store sentinels onto domain errors for entity/id and wraps
// anything else in a ServiceError.
func translate(service, op, entity, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case store.IsNotFoundError(err):
		return domain.NewNotFoundError(entity, id)
	case store.IsDuplicateError(err):
		return domain.ErrEmailTaken
	case errors.Is(err, store.ErrAlreadyMember):
		return domain.ErrAlreadyEnrolled
	case errors.Is(err, store.ErrNotMember):
		return domain.ErrNotEnrolled
	case errors.Is(err, store.ErrCapacityReached):
		return domain.ErrCapacityExceeded
	case isDomainError(err):
		return err
	default:
		return NewServiceError(service, op, err)
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrAuth)
}
