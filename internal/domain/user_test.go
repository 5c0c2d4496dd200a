package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() User {
	return User{
		Nombre:   "Ana",
		Apellido: "Gomez",
		DNI:      "12345678",
		Email:    "ana@example.com",
		Password: "secret",
	}
}

func TestNewStudent(t *testing.T) {
	t.Parallel()

	ingreso := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s, err := NewStudent(validUser(), &ingreso, "premium")
	require.NoError(t, err)

	assert.Equal(t, RoleStudent, s.Rol)
	assert.Equal(t, "premium", s.Plan)
	assert.Equal(t, ingreso, *s.Ingreso)
}

func TestUserValidateDNI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dni     string
		wantErr bool
	}{
		{name: "seven characters rejected", dni: "1234567", wantErr: true},
		{name: "eight characters accepted", dni: "12345678", wantErr: false},
		{name: "nine characters rejected", dni: "123456789", wantErr: true},
		{name: "empty rejected", dni: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := validUser()
			u.DNI = tc.dni
			_, err := NewStudent(u, nil, "")
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "dni", verr.Field)
		})
	}
}

func TestUserValidateEmail(t *testing.T) {
	t.Parallel()

	u := validUser()
	u.Email = "not-an-email"
	_, err := NewTeacher(u, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Contains(t, verr.Error(), "valid email")
}

func TestUserValidatePasswordRequired(t *testing.T) {
	t.Parallel()

	u := validUser()
	u.Password = ""
	_, err := NewAdmin(u)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	// A stored record carries only the hash.
	u.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	a, err := NewAdmin(u)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, a.Rol)
}

func TestStudentEffectivePlan(t *testing.T) {
	t.Parallel()

	s := &Student{}
	assert.Equal(t, DefaultPlan, s.EffectivePlan())

	s.Plan = "premium"
	assert.Equal(t, "premium", s.EffectivePlan())
}

func TestUserPatchValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		patch     UserPatch
		wantField string
	}{
		{name: "empty patch", patch: UserPatch{}},
		{name: "valid dni", patch: UserPatch{DNI: StringPtr("87654321")}},
		{name: "short dni", patch: UserPatch{DNI: StringPtr("1234567")}, wantField: "dni"},
		{name: "empty dni is still checked", patch: UserPatch{DNI: StringPtr("")}, wantField: "dni"},
		{name: "bad email", patch: UserPatch{Email: StringPtr("nope")}, wantField: "email"},
		{name: "blank name", patch: UserPatch{Nombre: StringPtr("")}, wantField: "nombre"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.patch.Validate()
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}
}

func TestStudentPatchApply(t *testing.T) {
	t.Parallel()

	s := &Student{User: validUser(), Plan: "basico"}
	s.Password = ""
	s.PasswordHash = "old-hash"

	p := StudentPatch{
		UserPatch: UserPatch{Apellido: StringPtr("Perez"), PasswordHash: StringPtr("new-hash")},
		Plan:      StringPtr("premium"),
	}
	assert.False(t, p.IsEmpty())
	p.Apply(s)

	assert.Equal(t, "Ana", s.Nombre, "untouched fields are preserved")
	assert.Equal(t, "Perez", s.Apellido)
	assert.Equal(t, "new-hash", s.PasswordHash)
	assert.Equal(t, "premium", s.Plan)
	assert.True(t, (&StudentPatch{}).IsEmpty())
}
