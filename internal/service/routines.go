package service

import (
	"context"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/store"
)

// RoutineService manages routines.
type RoutineService interface {
	// Create stores a new routine after checking its student reference.
	Create(ctx context.Context, r *domain.Routine) error

	Get(ctx context.Context, id string) (*domain.Routine, error)
	List(ctx context.Context) ([]*domain.Routine, error)

	// Update applies a partial update. When the patch touches the student
	// reference, the merged nombre/dni pair must resolve to a student.
	Update(ctx context.Context, id string, patch *domain.RoutinePatch) error

	Delete(ctx context.Context, id string) error
}

type routineService struct {
	routines store.RoutineStore
	students store.StudentStore
	logger   *slog.Logger
}

var _ RoutineService = (*routineService)(nil)

// NewRoutineService creates a RoutineService over stores.
func NewRoutineService(stores store.Stores, logger *slog.Logger) RoutineService {
	return &routineService{
		routines: stores.Routines,
		students: stores.Students,
		logger:   componentLogger(logger, "routine_service"),
	}
}

func (s *routineService) checkStudent(ctx context.Context, nombre, dni string) error {
	_, err := s.students.FindByNameAndDNI(ctx, nombre, dni)
	if err != nil {
		return translate("routine", "check_student", domain.EntityStudent, "", err)
	}
	return nil
}

func (s *routineService) Create(ctx context.Context, r *domain.Routine) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.checkStudent(ctx, r.NombreAlumno, r.DNIAlumno); err != nil {
		return err
	}
	if err := s.routines.Create(ctx, r); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create routine", "error", err)
		return translate("routine", "create", domain.EntityRoutine, "", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("routine created", "routine_id", r.ID)
	return nil
}

func (s *routineService) Get(ctx context.Context, id string) (*domain.Routine, error) {
	r, err := s.routines.GetByID(ctx, id)
	if err != nil {
		return nil, translate("routine", "get", domain.EntityRoutine, id, err)
	}
	return r, nil
}

func (s *routineService) List(ctx context.Context) ([]*domain.Routine, error) {
	list, err := s.routines.List(ctx)
	if err != nil {
		return nil, translate("routine", "list", domain.EntityRoutine, "", err)
	}
	return list, nil
}

func (s *routineService) Update(ctx context.Context, id string, patch *domain.RoutinePatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	if patch.TouchesStudent() {
		current, err := s.routines.GetByID(ctx, id)
		if err != nil {
			return translate("routine", "update", domain.EntityRoutine, id, err)
		}
		merged := *current
		patch.Apply(&merged)
		if err := s.checkStudent(ctx, merged.NombreAlumno, merged.DNIAlumno); err != nil {
			return err
		}
	}

	if err := s.routines.Update(ctx, id, patch); err != nil {
		return translate("routine", "update", domain.EntityRoutine, id, err)
	}
	return nil
}

func (s *routineService) Delete(ctx context.Context, id string) error {
	if err := s.routines.Delete(ctx, id); err != nil {
		return translate("routine", "delete", domain.EntityRoutine, id, err)
	}
	return nil
}
