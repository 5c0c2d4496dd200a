package memstore

import (
	"context"
	"sort"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
)

// AdminStore implements store.AdminStore.
type AdminStore struct {
	db *DB
}

var _ store.AdminStore = (*AdminStore)(nil)

// Create implements store.AdminStore.
func (s *AdminStore) Create(ctx context.Context, a *domain.Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.admins {
		if existing.Email == a.Email {
			return store.ErrDuplicate
		}
	}
	a.ID = newID()
	s.db.admins[a.ID] = copyAdmin(a)
	return nil
}

// GetByID implements store.AdminStore.
func (s *AdminStore) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	a, ok := s.db.admins[id]
	if !ok {
		return nil, store.ErrAdminNotFound
	}
	return copyAdmin(a), nil
}

// List implements store.AdminStore.
func (s *AdminStore) List(ctx context.Context) ([]*domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Admin, 0, len(s.db.admins))
	for _, a := range s.db.admins {
		out = append(out, copyAdmin(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindByEmail implements store.AdminStore.
func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, a := range s.db.admins {
		if a.Email == email {
			return copyAdmin(a), nil
		}
	}
	return nil, store.ErrAdminNotFound
}

// Update implements store.AdminStore.
func (s *AdminStore) Update(ctx context.Context, id string, patch *domain.AdminPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	a, ok := s.db.admins[id]
	if !ok {
		return store.ErrAdminNotFound
	}
	if patch.Email != nil && *patch.Email != a.Email {
		for otherID, other := range s.db.admins {
			if otherID != id && other.Email == *patch.Email {
				return store.ErrDuplicate
			}
		}
	}
	patch.Apply(a)
	return nil
}

// Delete implements store.AdminStore.
func (s *AdminStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.admins[id]; !ok {
		return store.ErrAdminNotFound
	}
	delete(s.db.admins, id)
	return nil
}
