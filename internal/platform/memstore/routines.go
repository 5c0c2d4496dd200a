package memstore

import (
	"context"
	"sort"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
)

// RoutineStore implements store.RoutineStore.
type RoutineStore struct {
	db *DB
}

var _ store.RoutineStore = (*RoutineStore)(nil)

// Create implements store.RoutineStore.
func (s *RoutineStore) Create(ctx context.Context, r *domain.Routine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	r.ID = newID()
	s.db.routines[r.ID] = copyRoutine(r)
	return nil
}

// GetByID implements store.RoutineStore.
func (s *RoutineStore) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	r, ok := s.db.routines[id]
	if !ok {
		return nil, store.ErrRoutineNotFound
	}
	return copyRoutine(r), nil
}

// List implements store.RoutineStore.
func (s *RoutineStore) List(ctx context.Context) ([]*domain.Routine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Routine, 0, len(s.db.routines))
	for _, r := range s.db.routines {
		out = append(out, copyRoutine(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update implements store.RoutineStore.
func (s *RoutineStore) Update(ctx context.Context, id string, patch *domain.RoutinePatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	r, ok := s.db.routines[id]
	if !ok {
		return store.ErrRoutineNotFound
	}
	patch.Apply(r)
	return nil
}

// Delete implements store.RoutineStore.
func (s *RoutineStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.routines[id]; !ok {
		return store.ErrRoutineNotFound
	}
	delete(s.db.routines, id)
	return nil
}

// DeleteByStudent implements store.RoutineStore.
func (s *RoutineStore) DeleteByStudent(ctx context.Context, nombre, dni string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var n int64
	for id, r := range s.db.routines {
		if r.NombreAlumno == nombre && r.DNIAlumno == dni {
			delete(s.db.routines, id)
			n++
		}
	}
	return n, nil
}

// ReassignStudent implements store.RoutineStore.
func (s *RoutineStore) ReassignStudent(ctx context.Context, oldNombre, oldDNI, newNombre, newDNI string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var n int64
	for _, r := range s.db.routines {
		if r.NombreAlumno == oldNombre && r.DNIAlumno == oldDNI {
			r.NombreAlumno = newNombre
			r.DNIAlumno = newDNI
			n++
		}
	}
	return n, nil
}
