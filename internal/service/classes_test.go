package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/mocks"
	"github.com/gymdesk/gym-api/internal/platform/memstore"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassCreateChecksTeacher(t *testing.T) {
	f := newFixture(t)
	juan := f.teacher(t, "Juan", "juan@example.com")

	tests := []struct {
		name   string
		nombre string
		email  string
	}{
		{name: "unknown email", nombre: "Juan", email: "otro@example.com"},
		{name: "name does not match email", nombre: "Pedro", email: juan.Email},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := domain.NewClass("Yoga", tc.nombre, tc.email, "Mar", nil)
			require.NoError(t, err)
			err = f.classes.Create(f.ctx, c)
			assert.True(t, domain.IsNotFound(err, domain.EntityTeacher), "got %v", err)
		})
	}

	list, err := f.classes.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	bad := &domain.Class{Descripcion: "Box", NombreProfesor: "Juan", EmailProfesor: juan.Email, Horario: "Lun", Capacidad: domain.IntPtr(0)}
	assert.ErrorIs(t, f.classes.Create(f.ctx, bad), domain.ErrValidation)
}

func TestClassUpdate(t *testing.T) {
	f := newFixture(t)
	juan := f.teacher(t, "Juan", "juan@example.com")
	maria := f.teacher(t, "Maria", "maria@example.com")
	c := f.class(t, juan, domain.IntPtr(2))

	t.Run("untouched teacher skips the check", func(t *testing.T) {
		require.NoError(t, f.classes.Update(f.ctx, c.ID, &domain.ClassPatch{Horario: domain.StringPtr("Vie")}))
	})

	t.Run("email only is merged with stored name", func(t *testing.T) {
		err := f.classes.Update(f.ctx, c.ID, &domain.ClassPatch{EmailProfesor: domain.StringPtr(maria.Email)})
		assert.True(t, domain.IsNotFound(err, domain.EntityTeacher))
	})

	t.Run("both fields", func(t *testing.T) {
		err := f.classes.Update(f.ctx, c.ID, &domain.ClassPatch{
			NombreProfesor: domain.StringPtr("Maria"),
			EmailProfesor:  domain.StringPtr(maria.Email),
		})
		require.NoError(t, err)
		got, err := f.classes.Get(f.ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, maria.Email, got.EmailProfesor)
		assert.Equal(t, "Vie", got.Horario)
	})

	t.Run("capacity below enrollment", func(t *testing.T) {
		a := f.student(t, "Ana", "12345678", "ana@example.com")
		b := f.student(t, "Beto", "22345678", "beto@example.com")
		require.NoError(t, f.classes.Enroll(f.ctx, c.ID, a.ID))
		require.NoError(t, f.classes.Enroll(f.ctx, c.ID, b.ID))

		err := f.classes.Update(f.ctx, c.ID, &domain.ClassPatch{Capacidad: domain.IntPtr(1)})
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	})

	t.Run("invalid patch", func(t *testing.T) {
		err := f.classes.Update(f.ctx, c.ID, &domain.ClassPatch{Capacidad: domain.IntPtr(-1)})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing class", func(t *testing.T) {
		err := f.classes.Update(f.ctx, "missing", &domain.ClassPatch{Horario: domain.StringPtr("x")})
		assert.True(t, domain.IsNotFound(err, domain.EntityClass))
	})
}

func TestEnrollment(t *testing.T) {
	f := newFixture(t)
	juan := f.teacher(t, "Juan", "juan@example.com")
	c := f.class(t, juan, domain.IntPtr(1))
	ana := f.student(t, "Ana", "12345678", "ana@example.com")
	beto := f.student(t, "Beto", "22345678", "beto@example.com")

	require.NoError(t, f.classes.Enroll(f.ctx, c.ID, ana.ID))
	assert.ErrorIs(t, f.classes.Enroll(f.ctx, c.ID, ana.ID), domain.ErrAlreadyEnrolled)
	assert.ErrorIs(t, f.classes.Enroll(f.ctx, c.ID, beto.ID), domain.ErrCapacityExceeded)

	err := f.classes.Enroll(f.ctx, "missing", ana.ID)
	assert.True(t, domain.IsNotFound(err, domain.EntityClass))
	err = f.classes.Enroll(f.ctx, c.ID, "missing")
	assert.True(t, domain.IsNotFound(err, domain.EntityStudent))

	assert.ErrorIs(t, f.classes.Unenroll(f.ctx, c.ID, beto.ID), domain.ErrNotEnrolled)
	require.NoError(t, f.classes.Unenroll(f.ctx, c.ID, ana.ID))
	require.NoError(t, f.classes.Enroll(f.ctx, c.ID, beto.ID))

	got, err := f.classes.Get(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{beto.ID}, got.AlumnosInscriptos)
}

func TestConcurrentEnrollmentRespectsCapacity(t *testing.T) {
	f := newFixture(t)
	juan := f.teacher(t, "Juan", "juan@example.com")
	c := f.class(t, juan, domain.IntPtr(3))

	const workers = 10
	ids := make([]string, workers)
	for i := range ids {
		dni := []byte("10000000")
		dni[7] = byte('0' + i)
		ids[i] = f.student(t, "Alumno", string(dni), "alumno"+string(dni)+"@example.com").ID
	}

	var ok, full atomic.Int32
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			switch err := f.classes.Enroll(f.ctx, c.ID, id); {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, domain.ErrCapacityExceeded):
				full.Add(1)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(3), ok.Load())
	assert.Equal(t, int32(workers-3), full.Load())

	got, err := f.classes.Get(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, got.AlumnosInscriptos, 3)
}

func TestRoster(t *testing.T) {
	f := newFixture(t)
	juan := f.teacher(t, "Juan", "juan@example.com")
	c := f.class(t, juan, nil)

	_, roster, err := f.classes.Roster(f.ctx, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, roster)
	assert.Empty(t, roster)

	beto := f.student(t, "Beto", "22345678", "beto@example.com")
	ana := f.student(t, "Ana", "12345678", "ana@example.com")
	require.NoError(t, f.classes.Enroll(f.ctx, c.ID, beto.ID))
	require.NoError(t, f.classes.Enroll(f.ctx, c.ID, ana.ID))

	got, roster, err := f.classes.Roster(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	require.Len(t, roster, 2)
	assert.Equal(t, beto.ID, roster[0].ID)
	assert.Equal(t, ana.ID, roster[1].ID)

	_, _, err = f.classes.Roster(f.ctx, "missing")
	assert.True(t, domain.IsNotFound(err, domain.EntityClass))
}

func TestClassDelete(t *testing.T) {
	f := newFixture(t)
	c := f.class(t, f.teacher(t, "Juan", "juan@example.com"), nil)

	require.NoError(t, f.classes.Delete(f.ctx, c.ID))
	err := f.classes.Delete(f.ctx, c.ID)
	assert.True(t, domain.IsNotFound(err, domain.EntityClass))
}

func TestEnrollStoreFailures(t *testing.T) {
	boom := errors.New("write conflict")
	tests := []struct {
		name   string
		err    error
		assert func(t *testing.T, err error)
	}{
		{
			name: "class deleted concurrently",
			err:  store.ErrClassNotFound,
			assert: func(t *testing.T, err error) {
				assert.True(t, domain.IsNotFound(err, domain.EntityClass))
			},
		},
		{
			name: "opaque store failure",
			err:  boom,
			assert: func(t *testing.T, err error) {
				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.ErrorIs(t, err, boom)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stores := memstore.New().Stores()
			stores.Classes = &mocks.MockClassStore{
				ClassStore: stores.Classes,
				AddStudentFn: func(ctx context.Context, classID, studentID string) error {
					return tc.err
				},
			}
			f := newFixtureWith(t, stores)
			ana := f.student(t, "Ana", "12345678", "ana@example.com")
			c := f.class(t, f.teacher(t, "Juan", "juan@example.com"), nil)

			tc.assert(t, f.classes.Enroll(f.ctx, c.ID, ana.ID))
		})
	}
}
