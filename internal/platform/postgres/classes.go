package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxEnrollAttempts bounds how often AddStudent re-evaluates a class whose
// state changed between the conditional update and the follow-up read.
const maxEnrollAttempts = 3

const classColumns = "id::text, descripcion, nombre_profesor, email_profesor, horario, capacidad, alumnos_inscriptos"

func scanClass(row rowScanner) (*domain.Class, error) {
	var c domain.Class
	if err := row.Scan(&c.ID, &c.Descripcion, &c.NombreProfesor, &c.EmailProfesor, &c.Horario, &c.Capacidad, &c.AlumnosInscriptos); err != nil {
		return nil, err
	}
	if c.AlumnosInscriptos == nil {
		c.AlumnosInscriptos = []string{}
	}
	return &c, nil
}

// ClassStore implements store.ClassStore on the clases table.
type ClassStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewClassStore returns a ClassStore using pool.
func NewClassStore(pool *pgxpool.Pool, logger *slog.Logger) *ClassStore {
	return &ClassStore{pool: pool, logger: logger.With(slog.String("store", "class"))}
}

var _ store.ClassStore = (*ClassStore)(nil)

// Create implements store.ClassStore.
func (s *ClassStore) Create(ctx context.Context, c *domain.Class) error {
	if c.AlumnosInscriptos == nil {
		c.AlumnosInscriptos = []string{}
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO clases (descripcion, nombre_profesor, email_profesor, horario, capacidad, alumnos_inscriptos)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id::text`,
		c.Descripcion, c.NombreProfesor, c.EmailProfesor, c.Horario, c.Capacidad, c.AlumnosInscriptos,
	).Scan(&c.ID)
	if err != nil {
		s.logger.Error("failed to insert class", slog.String("error", err.Error()))
		return MapError(err, store.ErrClassNotFound)
	}
	return nil
}

// GetByID implements store.ClassStore.
func (s *ClassStore) GetByID(ctx context.Context, id string) (*domain.Class, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, store.ErrClassNotFound
	}
	return s.get(ctx, uid)
}

// List implements store.ClassStore.
func (s *ClassStore) List(ctx context.Context) ([]*domain.Class, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+classColumns+" FROM clases ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	return collect(rows, scanClass)
}

// Update implements store.ClassStore. Lowering capacidad below the current
// enrollment violates clases_enrollment_within_capacity, which MapError
// reports as store.ErrCapacityReached.
func (s *ClassStore) Update(ctx context.Context, id string, patch *domain.ClassPatch) error {
	var b setBuilder
	if patch.Descripcion != nil {
		b.add("descripcion", *patch.Descripcion)
	}
	if patch.NombreProfesor != nil {
		b.add("nombre_profesor", *patch.NombreProfesor)
	}
	if patch.EmailProfesor != nil {
		b.add("email_profesor", *patch.EmailProfesor)
	}
	if patch.Horario != nil {
		b.add("horario", *patch.Horario)
	}
	if patch.Capacidad != nil {
		b.add("capacidad", *patch.Capacidad)
	}
	return updateRow(ctx, s.pool, "clases", id, &b, store.ErrClassNotFound)
}

// Delete implements store.ClassStore.
func (s *ClassStore) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, s.pool, "clases", id, store.ErrClassNotFound)
}

// DeleteByTeacherEmail implements store.ClassStore.
func (s *ClassStore) DeleteByTeacherEmail(ctx context.Context, email string) (int64, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM clases WHERE email_profesor = $1", email)
	if err != nil {
		return 0, fmt.Errorf("failed to delete classes of %s: %w", email, err)
	}
	return tag.RowsAffected(), nil
}

// ReassignTeacher implements store.ClassStore.
func (s *ClassStore) ReassignTeacher(ctx context.Context, oldEmail, newNombre, newEmail string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		"UPDATE clases SET nombre_profesor = $2, email_profesor = $3 WHERE email_profesor = $1",
		oldEmail, newNombre, newEmail,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign classes of %s: %w", oldEmail, err)
	}
	return tag.RowsAffected(), nil
}

// AddStudent implements store.ClassStore. Membership and capacity are
// checked in the UPDATE's WHERE clause; concurrent updates of the same row
// re-evaluate it after acquiring the row lock.
func (s *ClassStore) AddStudent(ctx context.Context, classID, studentID string) error {
	uid, ok := parseID(classID)
	if !ok {
		return store.ErrClassNotFound
	}

	for attempt := 0; attempt < maxEnrollAttempts; attempt++ {
		tag, err := s.pool.Exec(ctx,
			`UPDATE clases SET alumnos_inscriptos = array_append(alumnos_inscriptos, $2::text)
			 WHERE id = $1
			   AND NOT ($2::text = ANY(alumnos_inscriptos))
			   AND (capacidad IS NULL OR cardinality(alumnos_inscriptos) < capacidad)`,
			uid, studentID,
		)
		if err != nil {
			return MapError(err, store.ErrClassNotFound)
		}
		if tag.RowsAffected() == 1 {
			return nil
		}

		c, err := s.get(ctx, uid)
		if err != nil {
			return err
		}
		switch {
		case c.IsEnrolled(studentID):
			return store.ErrAlreadyMember
		case c.IsFull():
			return store.ErrCapacityReached
		}
		// A concurrent unenroll freed a seat between the two statements.
		s.logger.Debug("retrying enrollment", slog.String("class_id", classID), slog.Int("attempt", attempt+1))
	}
	return store.ErrCapacityReached
}

// RemoveStudent implements store.ClassStore.
func (s *ClassStore) RemoveStudent(ctx context.Context, classID, studentID string) error {
	uid, ok := parseID(classID)
	if !ok {
		return store.ErrClassNotFound
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE clases SET alumnos_inscriptos = array_remove(alumnos_inscriptos, $2::text)
		 WHERE id = $1 AND $2::text = ANY(alumnos_inscriptos)`,
		uid, studentID,
	)
	if err != nil {
		return MapError(err, store.ErrClassNotFound)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if err := rowExists(ctx, s.pool, "clases", uid, store.ErrClassNotFound); err != nil {
		return err
	}
	return store.ErrNotMember
}

// RemoveStudentFromAll implements store.ClassStore.
func (s *ClassStore) RemoveStudentFromAll(ctx context.Context, studentID string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE clases SET alumnos_inscriptos = array_remove(alumnos_inscriptos, $1::text)
		 WHERE $1::text = ANY(alumnos_inscriptos)`,
		studentID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to remove student %s from classes: %w", studentID, err)
	}
	return tag.RowsAffected(), nil
}

func (s *ClassStore) get(ctx context.Context, id uuid.UUID) (*domain.Class, error) {
	c, err := scanClass(s.pool.QueryRow(ctx, "SELECT "+classColumns+" FROM clases WHERE id = $1", id))
	if err != nil {
		return nil, MapError(err, store.ErrClassNotFound)
	}
	return c, nil
}
