package service

import (
	"context"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/service/auth"
	"github.com/gymdesk/gym-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// StudentService manages students and the records that reference them.
type StudentService interface {
	// Create stores a new student, hashing its password. The student's ID is
	// set on success.
	Create(ctx context.Context, s *domain.Student) error

	// Get retrieves a student by identifier.
	Get(ctx context.Context, id string) (*domain.Student, error)

	// List returns every student.
	List(ctx context.Context) ([]*domain.Student, error)

	// Update applies a partial update. Changing nombre or dni rewrites the
	// student reference on the student's routines.
	Update(ctx context.Context, id string, patch *domain.StudentPatch) error

	// Delete removes the student, its routines and its enrollments.
	Delete(ctx context.Context, id string) error
}

type studentService struct {
	accounts
	classes  store.ClassStore
	routines store.RoutineStore
	logger   *slog.Logger
}

var _ StudentService = (*studentService)(nil)

// NewStudentService creates a StudentService over stores.
func NewStudentService(stores store.Stores, hasher auth.PasswordHasher, logger *slog.Logger) StudentService {
	return &studentService{
		accounts: accounts{
			students: stores.Students,
			teachers: stores.Teachers,
			admins:   stores.Admins,
			hasher:   hasher,
		},
		classes:  stores.Classes,
		routines: stores.Routines,
		logger:   componentLogger(logger, "student_service"),
	}
}

func (s *studentService) Create(ctx context.Context, st *domain.Student) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	st.Rol = domain.RoleStudent
	if err := s.prepareNew(ctx, &st.User); err != nil {
		return translate("student", "create", domain.EntityStudent, "", err)
	}
	if err := s.students.Create(ctx, st); err != nil {
		log.Error("failed to create student", "error", err, "email", st.Email)
		return translate("student", "create", domain.EntityStudent, "", err)
	}

	log.Info("student created", "student_id", st.ID)
	return nil
}

func (s *studentService) Get(ctx context.Context, id string) (*domain.Student, error) {
	st, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, translate("student", "get", domain.EntityStudent, id, err)
	}
	return st, nil
}

func (s *studentService) List(ctx context.Context) ([]*domain.Student, error) {
	list, err := s.students.List(ctx)
	if err != nil {
		return nil, translate("student", "list", domain.EntityStudent, "", err)
	}
	return list, nil
}

func (s *studentService) Update(ctx context.Context, id string, patch *domain.StudentPatch) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.students.GetByID(ctx, id)
	if err != nil {
		return translate("student", "update", domain.EntityStudent, id, err)
	}
	if err := s.preparePatch(ctx, &patch.UserPatch, owner{domain.RoleStudent, id}, current.Email); err != nil {
		return translate("student", "update", domain.EntityStudent, id, err)
	}
	if err := s.students.Update(ctx, id, patch); err != nil {
		log.Error("failed to update student", "error", err, "student_id", id)
		return translate("student", "update", domain.EntityStudent, id, err)
	}

	updated := *current
	patch.Apply(&updated)
	if updated.Nombre != current.Nombre || updated.DNI != current.DNI {
		n, err := s.routines.ReassignStudent(ctx, current.Nombre, current.DNI, updated.Nombre, updated.DNI)
		if err != nil {
			log.Error("failed to propagate student rename to routines", "error", err, "student_id", id)
			return translate("student", "update", domain.EntityRoutine, "", err)
		}
		log.Debug("student reference propagated", "student_id", id, "routines", n)
	}

	log.Info("student updated", "student_id", id)
	return nil
}

// Delete removes the student's routines and pulls it from every class
// concurrently, then deletes the record. A failure part way leaves data the
// Reconciler repairs.
// cascade removes the student's routines and enrollments concurrently. Both
// steps are idempotent.
func (s *studentService) cascade(ctx context.Context, st *domain.Student) (routines, classes int64, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.routines.DeleteByStudent(gctx, st.Nombre, st.DNI)
		routines = n
		return err
	})
	g.Go(func() error {
		n, err := s.classes.RemoveStudentFromAll(gctx, st.ID)
		classes = n
		return err
	})
	err = g.Wait()
	return routines, classes, err
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	st, err := s.students.GetByID(ctx, id)
	if err != nil {
		return translate("student", "delete", domain.EntityStudent, id, err)
	}

	routinesRemoved, classesTouched, err := s.cascade(ctx, st)
	if err != nil {
		log.Error("student cascade failed", "error", err, "student_id", id)
		return translate("student", "delete", domain.EntityStudent, id, err)
	}

	if err := s.students.Delete(ctx, id); err != nil {
		log.Error("failed to delete student", "error", err, "student_id", id)
		return translate("student", "delete", domain.EntityStudent, id, err)
	}

	// An enroll or routine create that passed its reference check before the
	// record was deleted may have written after the first sweep.
	lateRoutines, lateClasses, err := s.cascade(ctx, st)
	if err != nil {
		log.Error("student cascade sweep failed after delete", "error", err, "student_id", id)
		return NewServiceError("student", "delete", err)
	}
	routinesRemoved += lateRoutines
	classesTouched += lateClasses

	log.Info("student deleted",
		"student_id", id,
		"routines_removed", routinesRemoved,
		"classes_updated", classesTouched)
	return nil
}
