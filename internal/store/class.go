package store

import (
	"context"

	"github.com/gymdesk/gym-api/internal/domain"
)

// ClassStore defines the interface for class data persistence, including the
// enrollment set. Enrollment changes are single conditional updates: the
// membership and capacity checks happen in the same store operation as the
// mutation, so concurrent callers cannot overshoot capacity.
type ClassStore interface {
	// Create saves a new class and sets its generated ID.
	Create(ctx context.Context, c *domain.Class) error

	// GetByID retrieves a class by identifier.
	// Returns ErrClassNotFound if the class does not exist.
	GetByID(ctx context.Context, id string) (*domain.Class, error)

	// List returns all classes.
	List(ctx context.Context) ([]*domain.Class, error)

	// Update applies the supplied fields of patch. When the patch sets
	// capacidad, the update only succeeds if the current enrollment fits.
	// Returns ErrClassNotFound or ErrCapacityReached.
	Update(ctx context.Context, id string, patch *domain.ClassPatch) error

	// Delete removes a class.
	// Returns ErrClassNotFound if the class does not exist.
	Delete(ctx context.Context, id string) error

	// DeleteByTeacherEmail removes every class whose emailProfesor equals
	// email and returns how many were removed.
	DeleteByTeacherEmail(ctx context.Context, email string) (int64, error)

	// ReassignTeacher rewrites the teacher reference of every class whose
	// emailProfesor equals oldEmail and returns how many were changed.
	ReassignTeacher(ctx context.Context, oldEmail, newNombre, newEmail string) (int64, error)

	// AddStudent appends studentID to the enrollment set if it is not
	// already present and the class has room.
	// Returns ErrClassNotFound, ErrAlreadyMember or ErrCapacityReached.
	AddStudent(ctx context.Context, classID, studentID string) error

	// RemoveStudent removes studentID from the enrollment set.
	// Returns ErrClassNotFound or ErrNotMember.
	RemoveStudent(ctx context.Context, classID, studentID string) error

	// RemoveStudentFromAll removes studentID from every class's enrollment
	// set and returns how many classes were changed.
	RemoveStudentFromAll(ctx context.Context, studentID string) (int64, error)
}
