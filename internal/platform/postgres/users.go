package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const (
	studentColumns = "id::text, nombre, apellido, dni, email, password, rol, ingreso, plan"
	teacherColumns = "id::text, nombre, apellido, dni, email, password, rol, ingreso"
	adminColumns   = "id::text, nombre, apellido, dni, email, password, rol"
)

func scanStudent(row rowScanner) (*domain.Student, error) {
	var s domain.Student
	var rol string
	if err := row.Scan(&s.ID, &s.Nombre, &s.Apellido, &s.DNI, &s.Email, &s.PasswordHash, &rol, &s.Ingreso, &s.Plan); err != nil {
		return nil, err
	}
	s.Rol = domain.Role(rol)
	return &s, nil
}

func scanTeacher(row rowScanner) (*domain.Teacher, error) {
	var t domain.Teacher
	var rol string
	if err := row.Scan(&t.ID, &t.Nombre, &t.Apellido, &t.DNI, &t.Email, &t.PasswordHash, &rol, &t.Ingreso); err != nil {
		return nil, err
	}
	t.Rol = domain.Role(rol)
	return &t, nil
}

func scanAdmin(row rowScanner) (*domain.Admin, error) {
	var a domain.Admin
	var rol string
	if err := row.Scan(&a.ID, &a.Nombre, &a.Apellido, &a.DNI, &a.Email, &a.PasswordHash, &rol); err != nil {
		return nil, err
	}
	a.Rol = domain.Role(rol)
	return &a, nil
}

// StudentStore implements store.StudentStore on the alumnos table.
type StudentStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewStudentStore returns a StudentStore using pool.
func NewStudentStore(pool *pgxpool.Pool, logger *slog.Logger) *StudentStore {
	return &StudentStore{pool: pool, logger: logger.With(slog.String("store", "student"))}
}

var _ store.StudentStore = (*StudentStore)(nil)

// Create implements store.StudentStore.
func (s *StudentStore) Create(ctx context.Context, st *domain.Student) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO alumnos (nombre, apellido, dni, email, password, rol, ingreso, plan)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id::text`,
		st.Nombre, st.Apellido, st.DNI, st.Email, st.PasswordHash, string(st.Rol), st.Ingreso, st.Plan,
	).Scan(&st.ID)
	if err != nil {
		s.logger.Error("failed to insert student", slog.String("error", err.Error()))
		return MapError(err, store.ErrStudentNotFound)
	}
	return nil
}

// GetByID implements store.StudentStore.
func (s *StudentStore) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, store.ErrStudentNotFound
	}
	return s.queryOne(ctx, "WHERE id = $1", uid)
}

// GetByIDs implements store.StudentStore.
func (s *StudentStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Student, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := parseID(id); ok {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []*domain.Student{}, nil
	}
	return s.query(ctx, "WHERE id = ANY($1::uuid[])", valid)
}

// List implements store.StudentStore.
func (s *StudentStore) List(ctx context.Context) ([]*domain.Student, error) {
	return s.query(ctx, "")
}

// FindByEmail implements store.StudentStore.
func (s *StudentStore) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return s.queryOne(ctx, "WHERE email = $1", email)
}

// FindByNameAndDNI implements store.StudentStore.
func (s *StudentStore) FindByNameAndDNI(ctx context.Context, nombre, dni string) (*domain.Student, error) {
	return s.queryOne(ctx, "WHERE nombre = $1 AND dni = $2", nombre, dni)
}

// Update implements store.StudentStore.
func (s *StudentStore) Update(ctx context.Context, id string, patch *domain.StudentPatch) error {
	var b setBuilder
	userPatchSet(&b, &patch.UserPatch)
	if patch.Ingreso != nil {
		b.add("ingreso", *patch.Ingreso)
	}
	if patch.Plan != nil {
		b.add("plan", *patch.Plan)
	}
	return updateRow(ctx, s.pool, "alumnos", id, &b, store.ErrStudentNotFound)
}

// Delete implements store.StudentStore.
func (s *StudentStore) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, s.pool, "alumnos", id, store.ErrStudentNotFound)
}

func (s *StudentStore) queryOne(ctx context.Context, where string, args ...any) (*domain.Student, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+studentColumns+" FROM alumnos "+where+" ORDER BY created_at, id LIMIT 1", args...)
	st, err := scanStudent(row)
	if err != nil {
		return nil, MapError(err, store.ErrStudentNotFound)
	}
	return st, nil
}

func (s *StudentStore) query(ctx context.Context, where string, args ...any) ([]*domain.Student, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+studentColumns+" FROM alumnos "+where+" ORDER BY created_at, id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	return collect(rows, scanStudent)
}

// TeacherStore implements store.TeacherStore on the profesores table.
type TeacherStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTeacherStore returns a TeacherStore using pool.
func NewTeacherStore(pool *pgxpool.Pool, logger *slog.Logger) *TeacherStore {
	return &TeacherStore{pool: pool, logger: logger.With(slog.String("store", "teacher"))}
}

var _ store.TeacherStore = (*TeacherStore)(nil)

// Create implements store.TeacherStore.
func (s *TeacherStore) Create(ctx context.Context, t *domain.Teacher) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO profesores (nombre, apellido, dni, email, password, rol, ingreso)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id::text`,
		t.Nombre, t.Apellido, t.DNI, t.Email, t.PasswordHash, string(t.Rol), t.Ingreso,
	).Scan(&t.ID)
	if err != nil {
		s.logger.Error("failed to insert teacher", slog.String("error", err.Error()))
		return MapError(err, store.ErrTeacherNotFound)
	}
	return nil
}

// GetByID implements store.TeacherStore.
func (s *TeacherStore) GetByID(ctx context.Context, id string) (*domain.Teacher, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, store.ErrTeacherNotFound
	}
	return s.queryOne(ctx, "WHERE id = $1", uid)
}

// List implements store.TeacherStore.
func (s *TeacherStore) List(ctx context.Context) ([]*domain.Teacher, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+teacherColumns+" FROM profesores ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query teachers: %w", err)
	}
	return collect(rows, scanTeacher)
}

// FindByEmail implements store.TeacherStore.
func (s *TeacherStore) FindByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	return s.queryOne(ctx, "WHERE email = $1", email)
}

// FindByNameAndEmail implements store.TeacherStore.
func (s *TeacherStore) FindByNameAndEmail(ctx context.Context, nombre, email string) (*domain.Teacher, error) {
	return s.queryOne(ctx, "WHERE nombre = $1 AND email = $2", nombre, email)
}

// Update implements store.TeacherStore.
func (s *TeacherStore) Update(ctx context.Context, id string, patch *domain.TeacherPatch) error {
	var b setBuilder
	userPatchSet(&b, &patch.UserPatch)
	if patch.Ingreso != nil {
		b.add("ingreso", *patch.Ingreso)
	}
	return updateRow(ctx, s.pool, "profesores", id, &b, store.ErrTeacherNotFound)
}

// Delete implements store.TeacherStore.
func (s *TeacherStore) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, s.pool, "profesores", id, store.ErrTeacherNotFound)
}

func (s *TeacherStore) queryOne(ctx context.Context, where string, args ...any) (*domain.Teacher, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+teacherColumns+" FROM profesores "+where+" ORDER BY created_at, id LIMIT 1", args...)
	t, err := scanTeacher(row)
	if err != nil {
		return nil, MapError(err, store.ErrTeacherNotFound)
	}
	return t, nil
}

// AdminStore implements store.AdminStore on the admins table.
type AdminStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewAdminStore returns an AdminStore using pool.
func NewAdminStore(pool *pgxpool.Pool, logger *slog.Logger) *AdminStore {
	return &AdminStore{pool: pool, logger: logger.With(slog.String("store", "admin"))}
}

var _ store.AdminStore = (*AdminStore)(nil)

// Create implements store.AdminStore.
func (s *AdminStore) Create(ctx context.Context, a *domain.Admin) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO admins (nombre, apellido, dni, email, password, rol)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id::text`,
		a.Nombre, a.Apellido, a.DNI, a.Email, a.PasswordHash, string(a.Rol),
	).Scan(&a.ID)
	if err != nil {
		s.logger.Error("failed to insert admin", slog.String("error", err.Error()))
		return MapError(err, store.ErrAdminNotFound)
	}
	return nil
}

// GetByID implements store.AdminStore.
func (s *AdminStore) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, store.ErrAdminNotFound
	}
	return s.queryOne(ctx, "WHERE id = $1", uid)
}

// List implements store.AdminStore.
func (s *AdminStore) List(ctx context.Context) ([]*domain.Admin, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+adminColumns+" FROM admins ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	return collect(rows, scanAdmin)
}

// FindByEmail implements store.AdminStore.
func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return s.queryOne(ctx, "WHERE email = $1", email)
}

// Update implements store.AdminStore.
func (s *AdminStore) Update(ctx context.Context, id string, patch *domain.AdminPatch) error {
	var b setBuilder
	userPatchSet(&b, &patch.UserPatch)
	return updateRow(ctx, s.pool, "admins", id, &b, store.ErrAdminNotFound)
}

// Delete implements store.AdminStore.
func (s *AdminStore) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, s.pool, "admins", id, store.ErrAdminNotFound)
}

func (s *AdminStore) queryOne(ctx context.Context, where string, args ...any) (*domain.Admin, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+adminColumns+" FROM admins "+where+" ORDER BY created_at, id LIMIT 1", args...)
	a, err := scanAdmin(row)
	if err != nil {
		return nil, MapError(err, store.ErrAdminNotFound)
	}
	return a, nil
}

func userPatchSet(b *setBuilder, p *domain.UserPatch) {
	if p.Nombre != nil {
		b.add("nombre", *p.Nombre)
	}
	if p.Apellido != nil {
		b.add("apellido", *p.Apellido)
	}
	if p.DNI != nil {
		b.add("dni", *p.DNI)
	}
	if p.Email != nil {
		b.add("email", *p.Email)
	}
	if p.PasswordHash != nil {
		b.add("password", *p.PasswordHash)
	}
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

// updateRow runs the partial update in b. An empty update only checks that
// the row exists.
func updateRow(ctx context.Context, pool *pgxpool.Pool, table, id string, b *setBuilder, notFound error) error {
	uid, ok := parseID(id)
	if !ok {
		return notFound
	}
	if b.empty() {
		return rowExists(ctx, pool, table, uid, notFound)
	}
	q, args := b.build(table, uid)
	tag, err := pool.Exec(ctx, q, args...)
	if err != nil {
		return MapError(err, notFound)
	}
	return checkRowsAffected(tag, notFound)
}

func deleteRow(ctx context.Context, pool *pgxpool.Pool, table, id string, notFound error) error {
	uid, ok := parseID(id)
	if !ok {
		return notFound
	}
	tag, err := pool.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", uid)
	if err != nil {
		return MapError(err, notFound)
	}
	return checkRowsAffected(tag, notFound)
}

func rowExists(ctx context.Context, pool *pgxpool.Pool, table string, id any, notFound error) error {
	var one int
	err := pool.QueryRow(ctx, "SELECT 1 FROM "+table+" WHERE id = $1", id).Scan(&one)
	return MapError(err, notFound)
}
