package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("failed to do something: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrStudentNotFound",
			err:      ErrStudentNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrClassNotFound",
			err:      fmt.Errorf("failed to load class: %w", ErrClassNotFound),
			expected: true,
		},
		{
			name:     "ErrRoutineNotFound",
			err:      ErrRoutineNotFound,
			expected: true,
		},
		{
			name:     "ErrAlreadyMember",
			err:      ErrAlreadyMember,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "ErrDuplicate",
			err:      ErrDuplicate,
			expected: true,
		},
		{
			name:     "wrapped ErrDuplicate",
			err:      fmt.Errorf("failed to create: %w", ErrDuplicate),
			expected: true,
		},
		{
			name:     "capacity is not a duplicate",
			err:      ErrCapacityReached,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicateError(tt.err); got != tt.expected {
				t.Errorf("IsDuplicateError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEntityNotFoundErrorsAreDistinct(t *testing.T) {
	if errors.Is(ErrStudentNotFound, ErrTeacherNotFound) {
		t.Error("student and teacher not-found errors must not match each other")
	}
	if errors.Is(ErrClassNotFound, ErrRoutineNotFound) {
		t.Error("class and routine not-found errors must not match each other")
	}
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("student", "create", "database error", originalErr)

	expectedErrorString := "create operation on student failed: database error: database connection failed"
	if got := storeErr.Error(); got != expectedErrorString {
		t.Errorf("StoreError.Error() = %v, want %v", got, expectedErrorString)
	}

	if got := storeErr.Unwrap(); !errors.Is(got, originalErr) {
		t.Errorf("StoreError.Unwrap() not returning original error")
	}

	wrapped := NewStoreError("class", "add_student", "class full", ErrCapacityReached)
	if !errors.Is(wrapped, ErrCapacityReached) {
		t.Errorf("errors.Is() not recognizing the wrapped sentinel")
	}

	bare := NewStoreError("class", "update", "nothing to do", nil)
	if got := bare.Error(); got != "update operation on class failed: nothing to do" {
		t.Errorf("StoreError.Error() without cause = %v", got)
	}
}
