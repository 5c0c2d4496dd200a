package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoutine(t *testing.T) {
	t.Parallel()

	r, err := NewRoutine("prof-1", "Piernas", "Ana", "12345678", "")
	require.NoError(t, err)
	assert.Equal(t, "Ana", r.NombreAlumno)

	_, err = NewRoutine("prof-1", "Piernas", "Ana", "1234567", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dniAlumno", verr.Field)
	assert.Equal(t, "must be exactly 8 characters", verr.Message)

	_, err = NewRoutine("", "Piernas", "Ana", "12345678", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "idProfesor", verr.Field)
}

func TestRoutinePatch(t *testing.T) {
	t.Parallel()

	p := RoutinePatch{DNIAlumno: StringPtr("123")}
	assert.ErrorIs(t, p.Validate(), ErrValidation)
	assert.True(t, p.TouchesStudent())

	p = RoutinePatch{Nivel: StringPtr("avanzado")}
	require.NoError(t, p.Validate())
	assert.False(t, p.TouchesStudent())

	r := &Routine{Descripcion: "Brazos", Nivel: "inicial"}
	p.Apply(r)
	assert.Equal(t, "avanzado", r.Nivel)
	assert.Equal(t, "Brazos", r.Descripcion)
}
