package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/mocks"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/platform/memstore"
	"github.com/gymdesk/gym-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*fixture, *mocks.MockJWTService, AuthService) {
	t.Helper()
	f := newFixture(t)
	log, _ := logger.GetTestLogger(t)
	tokens := &mocks.MockJWTService{Token: "signed", ExpiresAt: time.Unix(1700000000, 0)}
	return f, tokens, NewAuthService(f.stores, mocks.PlainHasher{}, tokens, log)
}

func TestLogin(t *testing.T) {
	f, tokens, svc := newAuthFixture(t)
	ana := f.student(t, "Ana", "12345678", "ana@example.com")

	res, err := svc.Login(f.ctx, "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "signed", res.Token)
	assert.Equal(t, time.Unix(1700000000, 0), res.ExpiresAt)
	assert.Equal(t, auth.Identity{
		ID:     ana.ID,
		Email:  "ana@example.com",
		Nombre: "Ana",
		Rol:    domain.RoleStudent,
		Plan:   domain.DefaultPlan,
	}, res.Identity)
	assert.Equal(t, []auth.Identity{res.Identity}, tokens.Issued)
}

func TestLoginPremiumPlan(t *testing.T) {
	f, _, svc := newAuthFixture(t)
	s := f.student(t, "Ana", "12345678", "ana@example.com")
	require.NoError(t, f.students.Update(f.ctx, s.ID, &domain.StudentPatch{Plan: domain.StringPtr("premium")}))

	res, err := svc.Login(f.ctx, "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "premium", res.Identity.Plan)
}

func TestLoginRoles(t *testing.T) {
	f, _, svc := newAuthFixture(t)
	f.teacher(t, "Juan", "juan@example.com")
	require.NoError(t, f.admins.Create(f.ctx, &domain.Admin{User: user("Root", "30000000", "root@example.com")}))

	res, err := svc.Login(f.ctx, "juan@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTeacher, res.Identity.Rol)
	assert.Equal(t, domain.DefaultPlan, res.Identity.Plan)

	res, err = svc.Login(f.ctx, "root@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.Identity.Rol)
}

func TestLoginStudentWinsOverTeacher(t *testing.T) {
	db := memstore.New()
	stores := db.Stores()
	ctx := context.Background()

	// Legacy data: the same email in two collections, written around the
	// services' uniqueness check.
	st := &domain.Student{User: user("Ana", "12345678", "dup@example.com")}
	st.PasswordHash, st.Password, st.Rol = "hashed:s3cret", "", domain.RoleStudent
	require.NoError(t, stores.Students.Create(ctx, st))
	tc := &domain.Teacher{User: user("Ana", "12345678", "dup@example.com")}
	tc.PasswordHash, tc.Password, tc.Rol = "hashed:s3cret", "", domain.RoleTeacher
	require.NoError(t, stores.Teachers.Create(ctx, tc))

	svc := NewAuthService(stores, mocks.PlainHasher{}, &mocks.MockJWTService{Token: "t"}, nil)
	res, err := svc.Login(ctx, "dup@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, res.Identity.Rol)
	assert.Equal(t, st.ID, res.Identity.ID)
}

func TestLoginFailures(t *testing.T) {
	f, tokens, svc := newAuthFixture(t)
	f.student(t, "Ana", "12345678", "ana@example.com")

	_, err := svc.Login(f.ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrAuth)

	_, err = svc.Login(f.ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	assert.Empty(t, tokens.Issued)
}

func TestLoginDoesNotLogPassword(t *testing.T) {
	f := newFixture(t)
	f.student(t, "Ana", "12345678", "ana@example.com")
	log, buf := logger.GetTestLogger(t)
	svc := NewAuthService(f.stores, mocks.PlainHasher{}, &mocks.MockJWTService{Token: "t"}, log)

	_, _ = svc.Login(f.ctx, "ana@example.com", "wrong-password-value")
	_, _ = svc.Login(f.ctx, "ana@example.com", "s3cret")

	assert.NotContains(t, buf.String(), "wrong-password-value")
	assert.NotContains(t, buf.String(), "hashed:s3cret")
}

func TestLoginTokenFailure(t *testing.T) {
	f := newFixture(t)
	f.student(t, "Ana", "12345678", "ana@example.com")
	boom := errors.New("signing failed")
	svc := NewAuthService(f.stores, mocks.PlainHasher{}, &mocks.MockJWTService{Err: boom}, nil)

	_, err := svc.Login(f.ctx, "ana@example.com", "s3cret")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, domain.ErrAuth))
}

func TestLoginComparesAgainstStoredHash(t *testing.T) {
	f := newFixture(t)
	f.student(t, "Ana", "12345678", "ana@example.com")
	verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
	svc := NewAuthService(f.stores, verifier, &mocks.MockJWTService{Token: "t"}, nil)

	_, err := svc.Login(f.ctx, "ana@example.com", "typed")
	require.NoError(t, err)
	assert.Equal(t, 1, verifier.CompareCallCount)
	assert.Equal(t, "hashed:s3cret", verifier.CompareCalledWith.HashedPassword)
	assert.Equal(t, "typed", verifier.CompareCalledWith.Password)

	verifier.ShouldSucceed = false
	_, err = svc.Login(f.ctx, "ana@example.com", "typed")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestLoginLookupFailure(t *testing.T) {
	stores := memstore.New().Stores()
	boom := errors.New("students unavailable")
	stores.Students = &mocks.MockStudentStore{
		StudentStore: stores.Students,
		FindByEmailFn: func(ctx context.Context, email string) (*domain.Student, error) {
			return nil, boom
		},
	}
	svc := NewAuthService(stores, mocks.PlainHasher{}, &mocks.MockJWTService{Token: "t"}, nil)

	_, err := svc.Login(context.Background(), "ana@example.com", "s3cret")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, domain.ErrAuth))
}
