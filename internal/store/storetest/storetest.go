// Package storetest holds behavioural checks that every store.Backend must
// pass. Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty set of stores for one subtest.
type Factory func(t *testing.T) store.Stores

// Run executes the shared store checks against the backend built by newStores.
func Run(t *testing.T, newStores Factory) {
	t.Run("StudentCRUD", func(t *testing.T) { testStudentCRUD(t, newStores(t)) })
	t.Run("TeacherLookups", func(t *testing.T) { testTeacherLookups(t, newStores(t)) })
	t.Run("AdminCRUD", func(t *testing.T) { testAdminCRUD(t, newStores(t)) })
	t.Run("ClassEnrollment", func(t *testing.T) { testClassEnrollment(t, newStores(t)) })
	t.Run("ClassCapacityUpdate", func(t *testing.T) { testClassCapacityUpdate(t, newStores(t)) })
	t.Run("ConcurrentEnrollment", func(t *testing.T) { testConcurrentEnrollment(t, newStores(t)) })
	t.Run("ClassBulkOperations", func(t *testing.T) { testClassBulkOperations(t, newStores(t)) })
	t.Run("RoutineBulkOperations", func(t *testing.T) { testRoutineBulkOperations(t, newStores(t)) })
	t.Run("UnknownIdentifiers", func(t *testing.T) { testUnknownIdentifiers(t, newStores(t)) })
}

// NewStudent builds a valid student with a stored hash.
func NewStudent(t *testing.T, nombre, dni, email string) *domain.Student {
	t.Helper()
	s, err := domain.NewStudent(domain.User{
		Nombre:       nombre,
		Apellido:     "Test",
		DNI:          dni,
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}, nil, "")
	require.NoError(t, err)
	return s
}

// NewTeacher builds a valid teacher with a stored hash.
func NewTeacher(t *testing.T, nombre, email string) *domain.Teacher {
	t.Helper()
	tc, err := domain.NewTeacher(domain.User{
		Nombre:       nombre,
		Apellido:     "Test",
		DNI:          "87654321",
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}, nil)
	require.NoError(t, err)
	return tc
}

// NewClass builds a valid class taught by the given teacher.
func NewClass(t *testing.T, nombreProfesor, emailProfesor string, capacidad *int) *domain.Class {
	t.Helper()
	c, err := domain.NewClass("Funcional", nombreProfesor, emailProfesor, "Lun 18hs", capacidad)
	require.NoError(t, err)
	return c
}

func testStudentCRUD(t *testing.T, s store.Stores) {
	ctx := context.Background()

	st := NewStudent(t, "Ana", "12345678", "ana@example.com")
	st.Plan = "premium"
	require.NoError(t, s.Students.Create(ctx, st))
	require.NotEmpty(t, st.ID)

	got, err := s.Students.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Nombre)
	assert.Equal(t, "premium", got.Plan)
	assert.Equal(t, domain.RoleStudent, got.Rol)
	assert.Equal(t, st.PasswordHash, got.PasswordHash)

	byEmail, err := s.Students.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, st.ID, byEmail.ID)

	byRef, err := s.Students.FindByNameAndDNI(ctx, "Ana", "12345678")
	require.NoError(t, err)
	assert.Equal(t, st.ID, byRef.ID)

	_, err = s.Students.FindByNameAndDNI(ctx, "Ana", "00000000")
	assert.ErrorIs(t, err, store.ErrNotFound)

	dup := NewStudent(t, "Otra", "11111111", "ana@example.com")
	assert.ErrorIs(t, s.Students.Create(ctx, dup), store.ErrDuplicate)

	patch := &domain.StudentPatch{Plan: domain.StringPtr("basico")}
	patch.Apellido = domain.StringPtr("Gomez")
	require.NoError(t, s.Students.Update(ctx, st.ID, patch))

	got, err = s.Students.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gomez", got.Apellido)
	assert.Equal(t, "basico", got.Plan)
	assert.Equal(t, "Ana", got.Nombre)

	other := NewStudent(t, "Beto", "22222222", "beto@example.com")
	require.NoError(t, s.Students.Create(ctx, other))

	many, err := s.Students.GetByIDs(ctx, []string{st.ID, "missing", other.ID})
	require.NoError(t, err)
	assert.Len(t, many, 2)

	all, err := s.Students.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.Students.Delete(ctx, st.ID))
	_, err = s.Students.GetByID(ctx, st.ID)
	assert.ErrorIs(t, err, store.ErrStudentNotFound)
	assert.ErrorIs(t, s.Students.Delete(ctx, st.ID), store.ErrNotFound)
}

func testTeacherLookups(t *testing.T, s store.Stores) {
	ctx := context.Background()

	tc := NewTeacher(t, "Juan", "juan@example.com")
	require.NoError(t, s.Teachers.Create(ctx, tc))

	got, err := s.Teachers.FindByNameAndEmail(ctx, "Juan", "juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, tc.ID, got.ID)
	assert.Equal(t, domain.RoleTeacher, got.Rol)

	_, err = s.Teachers.FindByNameAndEmail(ctx, "Pedro", "juan@example.com")
	assert.ErrorIs(t, err, store.ErrTeacherNotFound)

	patch := &domain.TeacherPatch{}
	patch.Email = domain.StringPtr("juan.p@example.com")
	require.NoError(t, s.Teachers.Update(ctx, tc.ID, patch))

	_, err = s.Teachers.FindByEmail(ctx, "juan@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
	got, err = s.Teachers.FindByEmail(ctx, "juan.p@example.com")
	require.NoError(t, err)
	assert.Equal(t, tc.ID, got.ID)

	require.NoError(t, s.Teachers.Delete(ctx, tc.ID))
	list, err := s.Teachers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testAdminCRUD(t *testing.T, s store.Stores) {
	ctx := context.Background()

	a, err := domain.NewAdmin(domain.User{
		Nombre:       "Root",
		Apellido:     "Admin",
		DNI:          "99999999",
		Email:        "root@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	})
	require.NoError(t, err)
	require.NoError(t, s.Admins.Create(ctx, a))

	got, err := s.Admins.FindByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Rol)

	patch := &domain.AdminPatch{}
	patch.PasswordHash = domain.StringPtr("$2a$10$zyxwvutsrqponmlkjihgfe")
	require.NoError(t, s.Admins.Update(ctx, a.ID, patch))

	got, err = s.Admins.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$zyxwvutsrqponmlkjihgfe", got.PasswordHash)

	require.NoError(t, s.Admins.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Admins.Update(ctx, a.ID, patch), store.ErrAdminNotFound)
}

func testClassEnrollment(t *testing.T, s store.Stores) {
	ctx := context.Background()

	c := NewClass(t, "Juan", "juan@example.com", domain.IntPtr(2))
	require.NoError(t, s.Classes.Create(ctx, c))

	require.NoError(t, s.Classes.AddStudent(ctx, c.ID, "s1"))
	assert.ErrorIs(t, s.Classes.AddStudent(ctx, c.ID, "s1"), store.ErrAlreadyMember)
	require.NoError(t, s.Classes.AddStudent(ctx, c.ID, "s2"))
	assert.ErrorIs(t, s.Classes.AddStudent(ctx, c.ID, "s3"), store.ErrCapacityReached)

	got, err := s.Classes.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, got.AlumnosInscriptos)

	require.NoError(t, s.Classes.RemoveStudent(ctx, c.ID, "s1"))
	assert.ErrorIs(t, s.Classes.RemoveStudent(ctx, c.ID, "s1"), store.ErrNotMember)
	require.NoError(t, s.Classes.AddStudent(ctx, c.ID, "s3"))

	got, err = s.Classes.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s2", "s3"}, got.AlumnosInscriptos)

	unbounded := NewClass(t, "Juan", "juan@example.com", nil)
	require.NoError(t, s.Classes.Create(ctx, unbounded))
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Classes.AddStudent(ctx, unbounded.ID, id))
	}
}

func testClassCapacityUpdate(t *testing.T, s store.Stores) {
	ctx := context.Background()

	c := NewClass(t, "Juan", "juan@example.com", domain.IntPtr(3))
	require.NoError(t, s.Classes.Create(ctx, c))
	require.NoError(t, s.Classes.AddStudent(ctx, c.ID, "s1"))
	require.NoError(t, s.Classes.AddStudent(ctx, c.ID, "s2"))

	err := s.Classes.Update(ctx, c.ID, &domain.ClassPatch{Capacidad: domain.IntPtr(1)})
	assert.ErrorIs(t, err, store.ErrCapacityReached)

	require.NoError(t, s.Classes.Update(ctx, c.ID, &domain.ClassPatch{
		Capacidad: domain.IntPtr(2),
		Horario:   domain.StringPtr("Mie 19hs"),
	}))

	got, err := s.Classes.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Capacidad)
	assert.Equal(t, 2, *got.Capacidad)
	assert.Equal(t, "Mie 19hs", got.Horario)
	assert.Len(t, got.AlumnosInscriptos, 2)
}

func testConcurrentEnrollment(t *testing.T, s store.Stores) {
	ctx := context.Background()

	c := NewClass(t, "Juan", "juan@example.com", domain.IntPtr(1))
	require.NoError(t, s.Classes.Create(ctx, c))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		full      int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := s.Classes.AddStudent(ctx, c.ID, "student-"+string(rune('a'+n)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, store.ErrCapacityReached):
				full++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, full)

	got, err := s.Classes.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, got.AlumnosInscriptos, 1)
}

func testClassBulkOperations(t *testing.T, s store.Stores) {
	ctx := context.Background()

	a := NewClass(t, "Juan", "juan@example.com", nil)
	b := NewClass(t, "Juan", "juan@example.com", nil)
	other := NewClass(t, "Lia", "lia@example.com", nil)
	for _, c := range []*domain.Class{a, b, other} {
		require.NoError(t, s.Classes.Create(ctx, c))
		require.NoError(t, s.Classes.AddStudent(ctx, c.ID, "s1"))
	}
	require.NoError(t, s.Classes.AddStudent(ctx, other.ID, "s2"))

	n, err := s.Classes.RemoveStudentFromAll(ctx, "s1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	got, err := s.Classes.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, got.AlumnosInscriptos)

	n, err = s.Classes.ReassignTeacher(ctx, "juan@example.com", "Juan Pablo", "jp@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err = s.Classes.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan Pablo", got.NombreProfesor)
	assert.Equal(t, "jp@example.com", got.EmailProfesor)

	n, err = s.Classes.DeleteByTeacherEmail(ctx, "jp@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	all, err := s.Classes.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, other.ID, all[0].ID)
}

func testRoutineBulkOperations(t *testing.T, s store.Stores) {
	ctx := context.Background()

	for _, ref := range [][2]string{{"Ana", "12345678"}, {"Ana", "12345678"}, {"Ana", "87654321"}} {
		r, err := domain.NewRoutine("prof-1", "Piernas", ref[0], ref[1], "inicial")
		require.NoError(t, err)
		require.NoError(t, s.Routines.Create(ctx, r))
	}

	n, err := s.Routines.ReassignStudent(ctx, "Ana", "12345678", "Ana Maria", "12345678")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.Routines.DeleteByStudent(ctx, "Ana", "12345678")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = s.Routines.DeleteByStudent(ctx, "Ana Maria", "12345678")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	rest, err := s.Routines.List(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "87654321", rest[0].DNIAlumno)

	require.NoError(t, s.Routines.Update(ctx, rest[0].ID, &domain.RoutinePatch{Nivel: domain.StringPtr("avanzado")}))
	got, err := s.Routines.GetByID(ctx, rest[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "avanzado", got.Nivel)

	require.NoError(t, s.Routines.Delete(ctx, got.ID))
	_, err = s.Routines.GetByID(ctx, got.ID)
	assert.ErrorIs(t, err, store.ErrRoutineNotFound)
}

func testUnknownIdentifiers(t *testing.T, s store.Stores) {
	ctx := context.Background()

	for _, id := range []string{"not-an-id", "000000000000000000000000", "6f1c0d3e-0000-4000-8000-000000000000"} {
		_, err := s.Students.GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrNotFound, id)
		_, err = s.Classes.GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrNotFound, id)
		assert.ErrorIs(t, s.Classes.AddStudent(ctx, id, "s1"), store.ErrClassNotFound, id)
		assert.ErrorIs(t, s.Routines.Delete(ctx, id), store.ErrNotFound, id)
	}
}
