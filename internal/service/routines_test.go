package service

import (
	"testing"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutineCreateChecksStudent(t *testing.T) {
	f := newFixture(t)
	juan := f.teacher(t, "Juan", "juan@example.com")
	f.student(t, "Ana", "12345678", "ana@example.com")

	r, err := domain.NewRoutine(juan.ID, "Piernas", "Ana", "87654321", "")
	require.NoError(t, err)
	err = f.routines.Create(f.ctx, r)
	assert.True(t, domain.IsNotFound(err, domain.EntityStudent))

	bad := &domain.Routine{IDProfesor: juan.ID, Descripcion: "x", NombreAlumno: "Ana", DNIAlumno: "1"}
	assert.ErrorIs(t, f.routines.Create(f.ctx, bad), domain.ErrValidation)

	list, err := f.routines.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRoutineUpdate(t *testing.T) {
	f := newFixture(t)
	juan := f.teacher(t, "Juan", "juan@example.com")
	ana := f.student(t, "Ana", "12345678", "ana@example.com")
	beto := f.student(t, "Beto", "22345678", "beto@example.com")
	r := f.routine(t, juan, ana)

	require.NoError(t, f.routines.Update(f.ctx, r.ID, &domain.RoutinePatch{Nivel: domain.StringPtr("avanzado")}))

	// Only dni supplied: merged with the stored name, which is Ana's.
	err := f.routines.Update(f.ctx, r.ID, &domain.RoutinePatch{DNIAlumno: domain.StringPtr(beto.DNI)})
	assert.True(t, domain.IsNotFound(err, domain.EntityStudent))

	err = f.routines.Update(f.ctx, r.ID, &domain.RoutinePatch{
		NombreAlumno: domain.StringPtr(beto.Nombre),
		DNIAlumno:    domain.StringPtr(beto.DNI),
	})
	require.NoError(t, err)

	got, err := f.routines.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beto", got.NombreAlumno)
	assert.Equal(t, "avanzado", got.Nivel)

	err = f.routines.Update(f.ctx, "missing", &domain.RoutinePatch{Nivel: domain.StringPtr("x")})
	assert.True(t, domain.IsNotFound(err, domain.EntityRoutine))

	require.NoError(t, f.routines.Delete(f.ctx, r.ID))
	assert.True(t, domain.IsNotFound(f.routines.Delete(f.ctx, r.ID), domain.EntityRoutine))
}
