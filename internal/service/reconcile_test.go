package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/mocks"
	"github.com/gymdesk/gym-api/internal/platform/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconciler(t *testing.T) {
	f := newFixture(t)
	juan := f.teacher(t, "Juan", "juan@example.com")
	ana := f.student(t, "Ana", "12345678", "ana@example.com")
	beto := f.student(t, "Beto", "22345678", "beto@example.com")
	c := f.class(t, juan, nil)
	require.NoError(t, f.classes.Enroll(f.ctx, c.ID, ana.ID))
	require.NoError(t, f.classes.Enroll(f.ctx, c.ID, beto.ID))
	orphanRoutine := f.routine(t, juan, ana)
	f.routine(t, juan, beto)

	// Simulate interrupted cascades by deleting records straight from the stores.
	require.NoError(t, f.stores.Students.Delete(f.ctx, ana.ID))
	orphanTeacherClass, err := domain.NewClass("Box", "Pedro", "pedro@example.com", "Sab", nil)
	require.NoError(t, err)
	require.NoError(t, f.stores.Classes.Create(f.ctx, orphanTeacherClass))

	r := NewReconciler(f.stores, nil)

	report, res, err := r.Run(f.ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{orphanRoutine.ID}, report.OrphanRoutines)
	assert.Equal(t, map[string][]string{c.ID: {ana.ID}}, report.StaleEnrollments)
	assert.Equal(t, []string{orphanTeacherClass.ID}, report.OrphanClasses)
	assert.Equal(t, &RepairResult{}, res)

	// Dry run changed nothing.
	again, err := r.Scan(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, report, again)

	_, res, err = r.Run(f.ctx, false)
	require.NoError(t, err)
	assert.Equal(t, &RepairResult{RoutinesDeleted: 1, EnrollmentsPulled: 1, ClassesDeleted: 1}, res)

	clean, err := r.Scan(f.ctx)
	require.NoError(t, err)
	assert.True(t, clean.Empty())

	got, err := f.classes.Get(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{beto.ID}, got.AlumnosInscriptos)
}

func TestReconcilerRepairSkipsVanishedEntries(t *testing.T) {
	f := newFixture(t)
	r := NewReconciler(f.stores, nil)

	res, err := r.Repair(f.ctx, &Report{
		OrphanRoutines:   []string{"gone"},
		StaleEnrollments: map[string][]string{"gone": {"x"}},
		OrphanClasses:    []string{"gone"},
	})
	require.NoError(t, err)
	assert.Equal(t, &RepairResult{}, res)
}

func TestReconcilerScanFailure(t *testing.T) {
	stores := memstore.New().Stores()
	boom := errors.New("classes unavailable")
	stores.Classes = &mocks.MockClassStore{
		ClassStore: stores.Classes,
		ListFn: func(ctx context.Context) ([]*domain.Class, error) {
			return nil, boom
		},
	}

	report, res, err := NewReconciler(stores, nil).Run(context.Background(), false)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, report)
	assert.Nil(t, res)
}

func TestReconcilerRepairRechecksBeforeChanging(t *testing.T) {
	f := newFixture(t)
	juan := f.teacher(t, "Juan", "juan@example.com")
	ana := f.student(t, "Ana", "12345678", "ana@example.com")
	c := f.class(t, juan, nil)
	require.NoError(t, f.classes.Enroll(f.ctx, c.ID, ana.ID))
	rt := f.routine(t, juan, ana)

	// A report from a scan that listed the collections before these records
	// existed flags all of them.
	res, err := NewReconciler(f.stores, nil).Repair(f.ctx, &Report{
		OrphanRoutines:   []string{rt.ID},
		StaleEnrollments: map[string][]string{c.ID: {ana.ID}},
		OrphanClasses:    []string{c.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, &RepairResult{}, res)

	got, err := f.classes.Get(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{ana.ID}, got.AlumnosInscriptos)
	_, err = f.routines.Get(f.ctx, rt.ID)
	assert.NoError(t, err)
}

func TestReconcilerKeepsRecordsCreatedDuringScan(t *testing.T) {
	stores := memstore.New().Stores()
	f := newFixtureWith(t, stores)
	var fresh *domain.Class

	inner := stores.Classes
	f.stores.Classes = &mocks.MockClassStore{
		ClassStore: inner,
		ListFn: func(ctx context.Context) ([]*domain.Class, error) {
			if fresh == nil {
				tc, err := domain.NewTeacher(user("Pedro", "20000001", "pedro@example.com"), nil)
				if err != nil {
					return nil, err
				}
				tc.PasswordHash, tc.Password = "hashed:s3cret", ""
				if err := stores.Teachers.Create(ctx, tc); err != nil {
					return nil, err
				}
				fresh, err = domain.NewClass("Box", "Pedro", "pedro@example.com", "Sab", nil)
				if err != nil {
					return nil, err
				}
				if err := inner.Create(ctx, fresh); err != nil {
					return nil, err
				}
			}
			return inner.List(ctx)
		},
	}

	_, _, err := NewReconciler(f.stores, nil).Run(f.ctx, false)
	require.NoError(t, err)

	require.NotNil(t, fresh)
	_, err = inner.GetByID(f.ctx, fresh.ID)
	assert.NoError(t, err, "class whose teacher exists must survive")
}
