package service

import (
	"context"
	"testing"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/mocks"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/platform/memstore"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/stretchr/testify/require"
)

// fixture wires every service over a fresh in-memory database.
type fixture struct {
	ctx      context.Context
	stores   store.Stores
	students StudentService
	teachers TeacherService
	admins   AdminService
	classes  ClassService
	routines RoutineService
	logs     *logger.TestLogBuffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, memstore.New().Stores())
}

func newFixtureWith(t *testing.T, stores store.Stores) *fixture {
	t.Helper()
	log, buf := logger.GetTestLogger(t)
	hasher := mocks.PlainHasher{}
	return &fixture{
		ctx:      context.Background(),
		stores:   stores,
		students: NewStudentService(stores, hasher, log),
		teachers: NewTeacherService(stores, hasher, log),
		admins:   NewAdminService(stores, hasher, log),
		classes:  NewClassService(stores, log),
		routines: NewRoutineService(stores, log),
		logs:     buf,
	}
}

func user(nombre, dni, email string) domain.User {
	return domain.User{
		Nombre:   nombre,
		Apellido: "Perez",
		DNI:      dni,
		Email:    email,
		Password: "s3cret",
	}
}

func (f *fixture) student(t *testing.T, nombre, dni, email string) *domain.Student {
	t.Helper()
	s := &domain.Student{User: user(nombre, dni, email)}
	require.NoError(t, f.students.Create(f.ctx, s))
	return s
}

func (f *fixture) teacher(t *testing.T, nombre, email string) *domain.Teacher {
	t.Helper()
	tc := &domain.Teacher{User: user(nombre, "20000000", email)}
	require.NoError(t, f.teachers.Create(f.ctx, tc))
	return tc
}

func (f *fixture) class(t *testing.T, tc *domain.Teacher, capacidad *int) *domain.Class {
	t.Helper()
	c, err := domain.NewClass("Spinning", tc.Nombre, tc.Email, "Lun 18hs", capacidad)
	require.NoError(t, err)
	require.NoError(t, f.classes.Create(f.ctx, c))
	return c
}

func (f *fixture) routine(t *testing.T, tc *domain.Teacher, s *domain.Student) *domain.Routine {
	t.Helper()
	r, err := domain.NewRoutine(tc.ID, "Piernas", s.Nombre, s.DNI, "")
	require.NoError(t, err)
	require.NoError(t, f.routines.Create(f.ctx, r))
	return r
}
