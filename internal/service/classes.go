package service

import (
	"context"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/store"
)

// ClassService manages classes and their enrollment sets.
type ClassService interface {
	// Create stores a new class after checking its teacher reference.
	Create(ctx context.Context, c *domain.Class) error

	Get(ctx context.Context, id string) (*domain.Class, error)
	List(ctx context.Context) ([]*domain.Class, error)

	// Update applies a partial update. When the patch touches the teacher
	// reference, the merged nombre/email pair must resolve to a teacher.
	Update(ctx context.Context, id string, patch *domain.ClassPatch) error

	Delete(ctx context.Context, id string) error

	// Enroll adds studentID to the class.
	// Returns ErrAlreadyEnrolled or ErrCapacityExceeded on conflict.
	Enroll(ctx context.Context, classID, studentID string) error

	// Unenroll removes studentID from the class.
	// Returns ErrNotEnrolled when the student is not in the class.
	Unenroll(ctx context.Context, classID, studentID string) error

	// Roster returns the enrolled students in enrollment order.
	Roster(ctx context.Context, classID string) (*domain.Class, []*domain.Student, error)
}

type classService struct {
	classes  store.ClassStore
	teachers store.TeacherStore
	students store.StudentStore
	logger   *slog.Logger
}

var _ ClassService = (*classService)(nil)

// NewClassService creates a ClassService over stores.
func NewClassService(stores store.Stores, logger *slog.Logger) ClassService {
	return &classService{
		classes:  stores.Classes,
		teachers: stores.Teachers,
		students: stores.Students,
		logger:   componentLogger(logger, "class_service"),
	}
}

// checkTeacher resolves the (nombre, email) teacher reference.
func (s *classService) checkTeacher(ctx context.Context, nombre, email string) error {
	_, err := s.teachers.FindByNameAndEmail(ctx, nombre, email)
	if err != nil {
		return translate("class", "check_teacher", domain.EntityTeacher, "", err)
	}
	return nil
}

func (s *classService) Create(ctx context.Context, c *domain.Class) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if c.AlumnosInscriptos == nil {
		c.AlumnosInscriptos = []string{}
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.checkTeacher(ctx, c.NombreProfesor, c.EmailProfesor); err != nil {
		return err
	}
	if err := s.classes.Create(ctx, c); err != nil {
		log.Error("failed to create class", "error", err)
		return translate("class", "create", domain.EntityClass, "", err)
	}

	log.Info("class created", "class_id", c.ID, "teacher_email", c.EmailProfesor)
	return nil
}

func (s *classService) Get(ctx context.Context, id string) (*domain.Class, error) {
	c, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, translate("class", "get", domain.EntityClass, id, err)
	}
	return c, nil
}

func (s *classService) List(ctx context.Context) ([]*domain.Class, error) {
	list, err := s.classes.List(ctx)
	if err != nil {
		return nil, translate("class", "list", domain.EntityClass, "", err)
	}
	return list, nil
}

func (s *classService) Update(ctx context.Context, id string, patch *domain.ClassPatch) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return err
	}

	if patch.TouchesTeacher() {
		current, err := s.classes.GetByID(ctx, id)
		if err != nil {
			return translate("class", "update", domain.EntityClass, id, err)
		}
		merged := *current
		patch.Apply(&merged)
		if err := s.checkTeacher(ctx, merged.NombreProfesor, merged.EmailProfesor); err != nil {
			return err
		}
	}

	if err := s.classes.Update(ctx, id, patch); err != nil {
		if !store.IsNotFoundError(err) {
			log.Warn("class update rejected", "error", err, "class_id", id)
		}
		return translate("class", "update", domain.EntityClass, id, err)
	}

	log.Info("class updated", "class_id", id)
	return nil
}

func (s *classService) Delete(ctx context.Context, id string) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		return translate("class", "delete", domain.EntityClass, id, err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("class deleted", "class_id", id)
	return nil
}

// lookupPair checks that both the student and the class exist, student first.
func (s *classService) lookupPair(ctx context.Context, op, classID, studentID string) error {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return translate("class", op, domain.EntityStudent, studentID, err)
	}
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		return translate("class", op, domain.EntityClass, classID, err)
	}
	return nil
}

func (s *classService) Enroll(ctx context.Context, classID, studentID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.lookupPair(ctx, "enroll", classID, studentID); err != nil {
		return err
	}
	if err := s.classes.AddStudent(ctx, classID, studentID); err != nil {
		log.Debug("enrollment rejected", "error", err, "class_id", classID, "student_id", studentID)
		return translate("class", "enroll", domain.EntityClass, classID, err)
	}

	log.Info("student enrolled", "class_id", classID, "student_id", studentID)
	return nil
}

func (s *classService) Unenroll(ctx context.Context, classID, studentID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.lookupPair(ctx, "unenroll", classID, studentID); err != nil {
		return err
	}
	if err := s.classes.RemoveStudent(ctx, classID, studentID); err != nil {
		log.Debug("unenrollment rejected", "error", err, "class_id", classID, "student_id", studentID)
		return translate("class", "unenroll", domain.EntityClass, classID, err)
	}

	log.Info("student unenrolled", "class_id", classID, "student_id", studentID)
	return nil
}

func (s *classService) Roster(ctx context.Context, classID string) (*domain.Class, []*domain.Student, error) {
	c, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, nil, translate("class", "roster", domain.EntityClass, classID, err)
	}
	if len(c.AlumnosInscriptos) == 0 {
		return c, []*domain.Student{}, nil
	}

	found, err := s.students.GetByIDs(ctx, c.AlumnosInscriptos)
	if err != nil {
		return nil, nil, translate("class", "roster", domain.EntityStudent, "", err)
	}

	byID := make(map[string]*domain.Student, len(found))
	for _, st := range found {
		byID[st.ID] = st
	}
	roster := make([]*domain.Student, 0, len(found))
	for _, id := range c.AlumnosInscriptos {
		if st, ok := byID[id]; ok {
			roster = append(roster, st)
		}
	}
	return c, roster, nil
}
