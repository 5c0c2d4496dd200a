package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
)

// DB holds every collection in maps keyed by identifier.
type DB struct {
	mu       sync.RWMutex
	students map[string]*domain.Student
	teachers map[string]*domain.Teacher
	admins   map[string]*domain.Admin
	classes  map[string]*domain.Class
	routines map[string]*domain.Routine
}

// New returns an empty in-memory database.
func New() *DB {
	return &DB{
		students: make(map[string]*domain.Student),
		teachers: make(map[string]*domain.Teacher),
		admins:   make(map[string]*domain.Admin),
		classes:  make(map[string]*domain.Class),
		routines: make(map[string]*domain.Routine),
	}
}

var _ store.Backend = (*DB)(nil)

// Stores returns stores bound to db.
func (db *DB) Stores() store.Stores {
	return store.Stores{
		Students: &StudentStore{db: db},
		Teachers: &TeacherStore{db: db},
		Admins:   &AdminStore{db: db},
		Classes:  &ClassStore{db: db},
		Routines: &RoutineStore{db: db},
	}
}

// Ping always succeeds.
func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (db *DB) Close(context.Context) error {
	return nil
}

func newID() string {
	return uuid.NewString()
}

func copyUser(u domain.User) domain.User {
	u.Password = ""
	return u
}

func copyStudent(s *domain.Student) *domain.Student {
	c := *s
	c.User = copyUser(s.User)
	if s.Ingreso != nil {
		t := *s.Ingreso
		c.Ingreso = &t
	}
	return &c
}

func copyTeacher(t *domain.Teacher) *domain.Teacher {
	c := *t
	c.User = copyUser(t.User)
	if t.Ingreso != nil {
		v := *t.Ingreso
		c.Ingreso = &v
	}
	return &c
}

func copyAdmin(a *domain.Admin) *domain.Admin {
	c := *a
	c.User = copyUser(a.User)
	return &c
}

func copyClass(cl *domain.Class) *domain.Class {
	c := *cl
	if cl.Capacidad != nil {
		n := *cl.Capacidad
		c.Capacidad = &n
	}
	c.AlumnosInscriptos = append([]string{}, cl.AlumnosInscriptos...)
	return &c
}

func copyRoutine(r *domain.Routine) *domain.Routine {
	c := *r
	return &c
}
