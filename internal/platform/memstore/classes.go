package memstore

import (
	"context"
	"sort"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
)

// ClassStore implements store.ClassStore.
type ClassStore struct {
	db *DB
}

var _ store.ClassStore = (*ClassStore)(nil)

// Create implements store.ClassStore.
func (s *ClassStore) Create(ctx context.Context, c *domain.Class) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c.ID = newID()
	if c.AlumnosInscriptos == nil {
		c.AlumnosInscriptos = []string{}
	}
	s.db.classes[c.ID] = copyClass(c)
	return nil
}

// GetByID implements store.ClassStore.
func (s *ClassStore) GetByID(ctx context.Context, id string) (*domain.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	c, ok := s.db.classes[id]
	if !ok {
		return nil, store.ErrClassNotFound
	}
	return copyClass(c), nil
}

// List implements store.ClassStore.
func (s *ClassStore) List(ctx context.Context) ([]*domain.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Class, 0, len(s.db.classes))
	for _, c := range s.db.classes {
		out = append(out, copyClass(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update implements store.ClassStore.
func (s *ClassStore) Update(ctx context.Context, id string, patch *domain.ClassPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.classes[id]
	if !ok {
		return store.ErrClassNotFound
	}
	if patch.Capacidad != nil && len(c.AlumnosInscriptos) > *patch.Capacidad {
		return store.ErrCapacityReached
	}
	patch.Apply(c)
	return nil
}

// Delete implements store.ClassStore.
func (s *ClassStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.classes[id]; !ok {
		return store.ErrClassNotFound
	}
	delete(s.db.classes, id)
	return nil
}

// DeleteByTeacherEmail implements store.ClassStore.
func (s *ClassStore) DeleteByTeacherEmail(ctx context.Context, email string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var n int64
	for id, c := range s.db.classes {
		if c.EmailProfesor == email {
			delete(s.db.classes, id)
			n++
		}
	}
	return n, nil
}

// ReassignTeacher implements store.ClassStore.
func (s *ClassStore) ReassignTeacher(ctx context.Context, oldEmail, newNombre, newEmail string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var n int64
	for _, c := range s.db.classes {
		if c.EmailProfesor == oldEmail {
			c.NombreProfesor = newNombre
			c.EmailProfesor = newEmail
			n++
		}
	}
	return n, nil
}

// AddStudent implements store.ClassStore.
func (s *ClassStore) AddStudent(ctx context.Context, classID, studentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.classes[classID]
	if !ok {
		return store.ErrClassNotFound
	}
	if c.IsEnrolled(studentID) {
		return store.ErrAlreadyMember
	}
	if c.IsFull() {
		return store.ErrCapacityReached
	}
	c.AlumnosInscriptos = append(c.AlumnosInscriptos, studentID)
	return nil
}

// RemoveStudent implements store.ClassStore.
func (s *ClassStore) RemoveStudent(ctx context.Context, classID, studentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.classes[classID]
	if !ok {
		return store.ErrClassNotFound
	}
	if !c.IsEnrolled(studentID) {
		return store.ErrNotMember
	}
	c.AlumnosInscriptos = without(c.AlumnosInscriptos, studentID)
	return nil
}

// RemoveStudentFromAll implements store.ClassStore.
func (s *ClassStore) RemoveStudentFromAll(ctx context.Context, studentID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var n int64
	for _, c := range s.db.classes {
		if c.IsEnrolled(studentID) {
			c.AlumnosInscriptos = without(c.AlumnosInscriptos, studentID)
			n++
		}
	}
	return n, nil
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
