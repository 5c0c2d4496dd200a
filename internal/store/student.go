package store

import (
	"context"

	"github.com/gymdesk/gym-api/internal/domain"
)

// StudentStore defines the interface for student data persistence.
type StudentStore interface {
	// Create saves a new student and sets its generated ID.
	Create(ctx context.Context, s *domain.Student) error

	// GetByID retrieves a student by identifier.
	// Returns ErrStudentNotFound if the student does not exist.
	GetByID(ctx context.Context, id string) (*domain.Student, error)

	// GetByIDs retrieves every student whose identifier is in ids.
	// Unknown identifiers are skipped; the result may be shorter than ids.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Student, error)

	// List returns all students.
	List(ctx context.Context) ([]*domain.Student, error)

	// FindByEmail returns the first student with the given email.
	// Returns ErrStudentNotFound if none matches.
	FindByEmail(ctx context.Context, email string) (*domain.Student, error)

	// FindByNameAndDNI returns a student matching both nombre and dni exactly.
	// Returns ErrStudentNotFound if none matches.
	FindByNameAndDNI(ctx context.Context, nombre, dni string) (*domain.Student, error)

	// Update applies the supplied fields of patch. The patch must carry a
	// hash rather than a plaintext password.
	// Returns ErrStudentNotFound if the student does not exist.
	Update(ctx context.Context, id string, patch *domain.StudentPatch) error

	// Delete removes a student record. It does not cascade; see
	// service.StudentService.Delete.
	// Returns ErrStudentNotFound if the student does not exist.
	Delete(ctx context.Context, id string) error
}
