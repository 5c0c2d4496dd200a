package memstore

import (
	"context"
	"sort"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
)

// StudentStore implements store.StudentStore.
type StudentStore struct {
	db *DB
}

var _ store.StudentStore = (*StudentStore)(nil)

// Create implements store.StudentStore.
func (s *StudentStore) Create(ctx context.Context, st *domain.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.students {
		if existing.Email == st.Email {
			return store.ErrDuplicate
		}
	}
	st.ID = newID()
	s.db.students[st.ID] = copyStudent(st)
	return nil
}

// GetByID implements store.StudentStore.
func (s *StudentStore) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	st, ok := s.db.students[id]
	if !ok {
		return nil, store.ErrStudentNotFound
	}
	return copyStudent(st), nil
}

// GetByIDs implements store.StudentStore.
func (s *StudentStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Student, 0, len(ids))
	for _, id := range ids {
		if st, ok := s.db.students[id]; ok {
			out = append(out, copyStudent(st))
		}
	}
	return out, nil
}

// List implements store.StudentStore.
func (s *StudentStore) List(ctx context.Context) ([]*domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Student, 0, len(s.db.students))
	for _, st := range s.db.students {
		out = append(out, copyStudent(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindByEmail implements store.StudentStore.
func (s *StudentStore) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, st := range s.db.students {
		if st.Email == email {
			return copyStudent(st), nil
		}
	}
	return nil, store.ErrStudentNotFound
}

// FindByNameAndDNI implements store.StudentStore.
func (s *StudentStore) FindByNameAndDNI(ctx context.Context, nombre, dni string) (*domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, st := range s.db.students {
		if st.Nombre == nombre && st.DNI == dni {
			return copyStudent(st), nil
		}
	}
	return nil, store.ErrStudentNotFound
}

// Update implements store.StudentStore.
func (s *StudentStore) Update(ctx context.Context, id string, patch *domain.StudentPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	st, ok := s.db.students[id]
	if !ok {
		return store.ErrStudentNotFound
	}
	if patch.Email != nil && *patch.Email != st.Email {
		for otherID, other := range s.db.students {
			if otherID != id && other.Email == *patch.Email {
				return store.ErrDuplicate
			}
		}
	}
	patch.Apply(st)
	return nil
}

// Delete implements store.StudentStore.
func (s *StudentStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.students[id]; !ok {
		return store.ErrStudentNotFound
	}
	delete(s.db.students, id)
	return nil
}
