package store

import (
	"context"

	"github.com/gymdesk/gym-api/internal/domain"
)

// TeacherStore defines the interface for teacher data persistence.
type TeacherStore interface {
	// Create saves a new teacher and sets its generated ID.
	Create(ctx context.Context, t *domain.Teacher) error

	// GetByID retrieves a teacher by identifier.
	// Returns ErrTeacherNotFound if the teacher does not exist.
	GetByID(ctx context.Context, id string) (*domain.Teacher, error)

	// List returns all teachers.
	List(ctx context.Context) ([]*domain.Teacher, error)

	// FindByEmail returns the first teacher with the given email.
	// Returns ErrTeacherNotFound if none matches.
	FindByEmail(ctx context.Context, email string) (*domain.Teacher, error)

	// FindByNameAndEmail returns a teacher matching both nombre and email exactly.
	// Returns ErrTeacherNotFound if none matches.
	FindByNameAndEmail(ctx context.Context, nombre, email string) (*domain.Teacher, error)

	// Update applies the supplied fields of patch.
	// Returns ErrTeacherNotFound if the teacher does not exist.
	Update(ctx context.Context, id string, patch *domain.TeacherPatch) error

	// Delete removes a teacher record without cascading.
	// Returns ErrTeacherNotFound if the teacher does not exist.
	Delete(ctx context.Context, id string) error
}
