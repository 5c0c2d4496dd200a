package store

import (
	"context"

	"github.com/gymdesk/gym-api/internal/domain"
)

// AdminStore defines the interface for admin data persistence.
type AdminStore interface {
	// Create saves a new admin and sets its generated ID.
	Create(ctx context.Context, a *domain.Admin) error

	// GetByID retrieves an admin by identifier.
	// Returns ErrAdminNotFound if the admin does not exist.
	GetByID(ctx context.Context, id string) (*domain.Admin, error)

	// List returns all admins.
	List(ctx context.Context) ([]*domain.Admin, error)

	// FindByEmail returns the first admin with the given email.
	// Returns ErrAdminNotFound if none matches.
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)

	// Update applies the supplied fields of patch.
	// Returns ErrAdminNotFound if the admin does not exist.
	Update(ctx context.Context, id string, patch *domain.AdminPatch) error

	// Delete removes an admin record.
	// Returns ErrAdminNotFound if the admin does not exist.
	Delete(ctx context.Context, id string) error
}
