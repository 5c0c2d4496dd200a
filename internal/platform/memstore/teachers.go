package memstore

import (
	"context"
	"sort"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
)

// TeacherStore implements store.TeacherStore.
type TeacherStore struct {
	db *DB
}

var _ store.TeacherStore = (*TeacherStore)(nil)

// Create implements store.TeacherStore.
func (s *TeacherStore) Create(ctx context.Context, t *domain.Teacher) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.teachers {
		if existing.Email == t.Email {
			return store.ErrDuplicate
		}
	}
	t.ID = newID()
	s.db.teachers[t.ID] = copyTeacher(t)
	return nil
}

// GetByID implements store.TeacherStore.
func (s *TeacherStore) GetByID(ctx context.Context, id string) (*domain.Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	t, ok := s.db.teachers[id]
	if !ok {
		return nil, store.ErrTeacherNotFound
	}
	return copyTeacher(t), nil
}

// List implements store.TeacherStore.
func (s *TeacherStore) List(ctx context.Context) ([]*domain.Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Teacher, 0, len(s.db.teachers))
	for _, t := range s.db.teachers {
		out = append(out, copyTeacher(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindByEmail implements store.TeacherStore.
func (s *TeacherStore) FindByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, t := range s.db.teachers {
		if t.Email == email {
			return copyTeacher(t), nil
		}
	}
	return nil, store.ErrTeacherNotFound
}

// FindByNameAndEmail implements store.TeacherStore.
func (s *TeacherStore) FindByNameAndEmail(ctx context.Context, nombre, email string) (*domain.Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, t := range s.db.teachers {
		if t.Nombre == nombre && t.Email == email {
			return copyTeacher(t), nil
		}
	}
	return nil, store.ErrTeacherNotFound
}

// Update implements store.TeacherStore.
func (s *TeacherStore) Update(ctx context.Context, id string, patch *domain.TeacherPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, ok := s.db.teachers[id]
	if !ok {
		return store.ErrTeacherNotFound
	}
	if patch.Email != nil && *patch.Email != t.Email {
		for otherID, other := range s.db.teachers {
			if otherID != id && other.Email == *patch.Email {
				return store.ErrDuplicate
			}
		}
	}
	patch.Apply(t)
	return nil
}

// Delete implements store.TeacherStore.
func (s *TeacherStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.teachers[id]; !ok {
		return store.ErrTeacherNotFound
	}
	delete(s.db.teachers, id)
	return nil
}
