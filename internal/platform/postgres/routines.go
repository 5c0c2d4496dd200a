package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

const routineColumns = "id::text, id_profesor, descripcion, nombre_alumno, dni_alumno, nivel"

func scanRoutine(row rowScanner) (*domain.Routine, error) {
	var r domain.Routine
	if err := row.Scan(&r.ID, &r.IDProfesor, &r.Descripcion, &r.NombreAlumno, &r.DNIAlumno, &r.Nivel); err != nil {
		return nil, err
	}
	return &r, nil
}

// RoutineStore implements store.RoutineStore on the rutinas table.
type RoutineStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewRoutineStore returns a RoutineStore using pool.
func NewRoutineStore(pool *pgxpool.Pool, logger *slog.Logger) *RoutineStore {
	return &RoutineStore{pool: pool, logger: logger.With(slog.String("store", "routine"))}
}

var _ store.RoutineStore = (*RoutineStore)(nil)

// Create implements store.RoutineStore.
func (s *RoutineStore) Create(ctx context.Context, r *domain.Routine) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO rutinas (id_profesor, descripcion, nombre_alumno, dni_alumno, nivel)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id::text`,
		r.IDProfesor, r.Descripcion, r.NombreAlumno, r.DNIAlumno, r.Nivel,
	).Scan(&r.ID)
	if err != nil {
		s.logger.Error("failed to insert routine", slog.String("error", err.Error()))
		return MapError(err, store.ErrRoutineNotFound)
	}
	return nil
}

// GetByID implements store.RoutineStore.
func (s *RoutineStore) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, store.ErrRoutineNotFound
	}
	r, err := scanRoutine(s.pool.QueryRow(ctx, "SELECT "+routineColumns+" FROM rutinas WHERE id = $1", uid))
	if err != nil {
		return nil, MapError(err, store.ErrRoutineNotFound)
	}
	return r, nil
}

// List implements store.RoutineStore.
func (s *RoutineStore) List(ctx context.Context) ([]*domain.Routine, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+routineColumns+" FROM rutinas ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query routines: %w", err)
	}
	return collect(rows, scanRoutine)
}

// Update implements store.RoutineStore.
func (s *RoutineStore) Update(ctx context.Context, id string, patch *domain.RoutinePatch) error {
	var b setBuilder
	if patch.IDProfesor != nil {
		b.add("id_profesor", *patch.IDProfesor)
	}
	if patch.Descripcion != nil {
		b.add("descripcion", *patch.Descripcion)
	}
	if patch.NombreAlumno != nil {
		b.add("nombre_alumno", *patch.NombreAlumno)
	}
	if patch.DNIAlumno != nil {
		b.add("dni_alumno", *patch.DNIAlumno)
	}
	if patch.Nivel != nil {
		b.add("nivel", *patch.Nivel)
	}
	return updateRow(ctx, s.pool, "rutinas", id, &b, store.ErrRoutineNotFound)
}

// Delete implements store.RoutineStore.
func (s *RoutineStore) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, s.pool, "rutinas", id, store.ErrRoutineNotFound)
}

// DeleteByStudent implements store.RoutineStore.
func (s *RoutineStore) DeleteByStudent(ctx context.Context, nombre, dni string) (int64, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM rutinas WHERE nombre_alumno = $1 AND dni_alumno = $2", nombre, dni)
	if err != nil {
		return 0, fmt.Errorf("failed to delete routines of %s: %w", nombre, err)
	}
	return tag.RowsAffected(), nil
}

// ReassignStudent implements store.RoutineStore.
func (s *RoutineStore) ReassignStudent(ctx context.Context, oldNombre, oldDNI, newNombre, newDNI string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE rutinas SET nombre_alumno = $3, dni_alumno = $4
		 WHERE nombre_alumno = $1 AND dni_alumno = $2`,
		oldNombre, oldDNI, newNombre, newDNI,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign routines of %s: %w", oldNombre, err)
	}
	return tag.RowsAffected(), nil
}
