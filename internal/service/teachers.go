package service

import (
	"context"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/service/auth"
	"github.com/gymdesk/gym-api/internal/store"
)

// TeacherService manages teachers and the classes that reference them.
type TeacherService interface {
	Create(ctx context.Context, t *domain.Teacher) error
	Get(ctx context.Context, id string) (*domain.Teacher, error)
	List(ctx context.Context) ([]*domain.Teacher, error)

	// Update applies a partial update. Changing nombre or email rewrites the
	// teacher reference on the teacher's classes.
	Update(ctx context.Context, id string, patch *domain.TeacherPatch) error

	// Delete removes the teacher and every class whose emailProfesor matches.
	Delete(ctx context.Context, id string) error
}

type teacherService struct {
	accounts
	classes store.ClassStore
	logger  *slog.Logger
}

var _ TeacherService = (*teacherService)(nil)

// NewTeacherService creates a TeacherService over stores.
func NewTeacherService(stores store.Stores, hasher auth.PasswordHasher, logger *slog.Logger) TeacherService {
	return &teacherService{
		accounts: accounts{
			students: stores.Students,
			teachers: stores.Teachers,
			admins:   stores.Admins,
			hasher:   hasher,
		},
		classes: stores.Classes,
		logger:  componentLogger(logger, "teacher_service"),
	}
}

func (s *teacherService) Create(ctx context.Context, t *domain.Teacher) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	t.Rol = domain.RoleTeacher
	if err := s.prepareNew(ctx, &t.User); err != nil {
		return translate("teacher", "create", domain.EntityTeacher, "", err)
	}
	if err := s.teachers.Create(ctx, t); err != nil {
		log.Error("failed to create teacher", "error", err, "email", t.Email)
		return translate("teacher", "create", domain.EntityTeacher, "", err)
	}

	log.Info("teacher created", "teacher_id", t.ID)
	return nil
}

func (s *teacherService) Get(ctx context.Context, id string) (*domain.Teacher, error) {
	t, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, translate("teacher", "get", domain.EntityTeacher, id, err)
	}
	return t, nil
}

func (s *teacherService) List(ctx context.Context) ([]*domain.Teacher, error) {
	list, err := s.teachers.List(ctx)
	if err != nil {
		return nil, translate("teacher", "list", domain.EntityTeacher, "", err)
	}
	return list, nil
}

func (s *teacherService) Update(ctx context.Context, id string, patch *domain.TeacherPatch) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return translate("teacher", "update", domain.EntityTeacher, id, err)
	}
	if err := s.preparePatch(ctx, &patch.UserPatch, owner{domain.RoleTeacher, id}, current.Email); err != nil {
		return translate("teacher", "update", domain.EntityTeacher, id, err)
	}
	if err := s.teachers.Update(ctx, id, patch); err != nil {
		log.Error("failed to update teacher", "error", err, "teacher_id", id)
		return translate("teacher", "update", domain.EntityTeacher, id, err)
	}

	updated := *current
	patch.Apply(&updated)
	if updated.Nombre != current.Nombre || updated.Email != current.Email {
		n, err := s.classes.ReassignTeacher(ctx, current.Email, updated.Nombre, updated.Email)
		if err != nil {
			log.Error("failed to propagate teacher rename to classes", "error", err, "teacher_id", id)
			return translate("teacher", "update", domain.EntityClass, "", err)
		}
		log.Debug("teacher reference propagated", "teacher_id", id, "classes", n)
	}

	log.Info("teacher updated", "teacher_id", id)
	return nil
}

func (s *teacherService) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	t, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return translate("teacher", "delete", domain.EntityTeacher, id, err)
	}

	removed, err := s.classes.DeleteByTeacherEmail(ctx, t.Email)
	if err != nil {
		log.Error("teacher cascade failed", "error", err, "teacher_id", id)
		return translate("teacher", "delete", domain.EntityTeacher, id, err)
	}

	if err := s.teachers.Delete(ctx, id); err != nil {
		log.Error("failed to delete teacher", "error", err, "teacher_id", id)
		return translate("teacher", "delete", domain.EntityTeacher, id, err)
	}

	// Catch classes created against this teacher after the first sweep.
	late, err := s.classes.DeleteByTeacherEmail(ctx, t.Email)
	if err != nil {
		log.Error("teacher cascade sweep failed after delete", "error", err, "teacher_id", id)
		return NewServiceError("teacher", "delete", err)
	}
	removed += late

	log.Info("teacher deleted", "teacher_id", id, "classes_removed", removed)
	return nil
}
