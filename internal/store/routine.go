package store

import (
	"context"

	"github.com/gymdesk/gym-api/internal/domain"
)

// RoutineStore defines the interface for routine data persistence.
type RoutineStore interface {
	// Create saves a new routine and sets its generated ID.
	Create(ctx context.Context, r *domain.Routine) error

	// GetByID retrieves a routine by identifier.
	// Returns ErrRoutineNotFound if the routine does not exist.
	GetByID(ctx context.Context, id string) (*domain.Routine, error)

	// List returns all routines.
	List(ctx context.Context) ([]*domain.Routine, error)

	// Update applies the supplied fields of patch.
	// Returns ErrRoutineNotFound if the routine does not exist.
	Update(ctx context.Context, id string, patch *domain.RoutinePatch) error

	// Delete removes a routine.
	// Returns ErrRoutineNotFound if the routine does not exist.
	Delete(ctx context.Context, id string) error

	// DeleteByStudent removes every routine whose nombreAlumno and dniAlumno
	// equal the given pair and returns how many were removed.
	DeleteByStudent(ctx context.Context, nombre, dni string) (int64, error)

	// ReassignStudent rewrites the student reference of every routine
	// matching the old pair and returns how many were changed.
	ReassignStudent(ctx context.Context, oldNombre, oldDNI, newNombre, newDNI string) (int64, error)
}
