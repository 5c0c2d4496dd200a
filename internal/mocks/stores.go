package mocks

import (
	"context"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
)

// The store mocks embed a real implementation (usually memstore) and let a
// test override single methods, typically to inject a failure.

// MockClassStore wraps a store.ClassStore with optional overrides
type MockClassStore struct {
	store.ClassStore

	ListFn                 func(ctx context.Context) ([]*domain.Class, error)
	AddStudentFn           func(ctx context.Context, classID, studentID string) error
	DeleteByTeacherEmailFn func(ctx context.Context, email string) (int64, error)
	RemoveStudentFromAllFn func(ctx context.Context, studentID string) (int64, error)
}

// List implements store.ClassStore
func (m *MockClassStore) List(ctx context.Context) ([]*domain.Class, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.ClassStore.List(ctx)
}

// AddStudent implements store.ClassStore
func (m *MockClassStore) AddStudent(ctx context.Context, classID, studentID string) error {
	if m.AddStudentFn != nil {
		return m.AddStudentFn(ctx, classID, studentID)
	}
	return m.ClassStore.AddStudent(ctx, classID, studentID)
}

// DeleteByTeacherEmail implements store.ClassStore
func (m *MockClassStore) DeleteByTeacherEmail(ctx context.Context, email string) (int64, error) {
	if m.DeleteByTeacherEmailFn != nil {
		return m.DeleteByTeacherEmailFn(ctx, email)
	}
	return m.ClassStore.DeleteByTeacherEmail(ctx, email)
}

// RemoveStudentFromAll implements store.ClassStore
func (m *MockClassStore) RemoveStudentFromAll(ctx context.Context, studentID string) (int64, error) {
	if m.RemoveStudentFromAllFn != nil {
		return m.RemoveStudentFromAllFn(ctx, studentID)
	}
	return m.ClassStore.RemoveStudentFromAll(ctx, studentID)
}

// MockStudentStore wraps a store.StudentStore with optional overrides
type MockStudentStore struct {
	store.StudentStore

	FindByEmailFn func(ctx context.Context, email string) (*domain.Student, error)
	DeleteFn      func(ctx context.Context, id string) error
}

// FindByEmail implements store.StudentStore
func (m *MockStudentStore) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	return m.StudentStore.FindByEmail(ctx, email)
}

// Delete implements store.StudentStore
func (m *MockStudentStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.StudentStore.Delete(ctx, id)
}

// MockRoutineStore wraps a store.RoutineStore with optional overrides
type MockRoutineStore struct {
	store.RoutineStore

	DeleteByStudentFn func(ctx context.Context, nombre, dni string) (int64, error)
}

// DeleteByStudent implements store.RoutineStore
func (m *MockRoutineStore) DeleteByStudent(ctx context.Context, nombre, dni string) (int64, error) {
	if m.DeleteByStudentFn != nil {
		return m.DeleteByStudentFn(ctx, nombre, dni)
	}
	return m.RoutineStore.DeleteByStudent(ctx, nombre, dni)
}
