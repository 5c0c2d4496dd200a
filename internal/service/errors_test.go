package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ServiceError
		expected string
	}{
		{
			name:     "with underlying error",
			err:      NewServiceError("student", "create", errors.New("connection refused")),
			expected: "student service create operation failed: connection refused",
		},
		{
			name:     "without underlying error",
			err:      NewServiceError("class", "enroll", nil),
			expected: "class service enroll operation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestTranslate(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		in   error
		is   error
	}{
		{name: "not found", in: store.ErrClassNotFound, is: domain.ErrNotFound},
		{name: "duplicate", in: fmt.Errorf("insert: %w", store.ErrDuplicate), is: domain.ErrEmailTaken},
		{name: "already member", in: store.ErrAlreadyMember, is: domain.ErrAlreadyEnrolled},
		{name: "not member", in: store.ErrNotMember, is: domain.ErrNotEnrolled},
		{name: "capacity", in: store.ErrCapacityReached, is: domain.ErrCapacityExceeded},
		{name: "domain passthrough", in: domain.NewValidationError("dni", "is required"), is: domain.ErrValidation},
		{name: "unexpected", in: boom, is: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate("class", "op", domain.EntityClass, "c1", tt.in)
			assert.ErrorIs(t, err, tt.is)
		})
	}

	assert.NoError(t, translate("class", "op", domain.EntityClass, "c1", nil))

	var svcErr *ServiceError
	assert.ErrorAs(t, translate("class", "op", domain.EntityClass, "c1", boom), &svcErr)
	assert.Equal(t, "class", svcErr.Service)

	var nf *domain.NotFoundError
	assert.ErrorAs(t, translate("class", "get", domain.EntityClass, "c1", store.ErrClassNotFound), &nf)
	assert.Equal(t, "c1", nf.ID)
}
