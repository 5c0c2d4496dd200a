package postgres

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Backend is a PostgreSQL connection pool.
type Backend struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ store.Backend = (*Backend)(nil)

// Open creates a pool for databaseURL and verifies connectivity.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres at %s: %w", MaskURL(databaseURL), err)
	}

	return &Backend{
		pool:   pool,
		logger: logger.With(slog.String("component", "postgres")),
	}, nil
}

// Migrate runs a goose command ("up", "down", "status", "version", ...)
// against the embedded migrations.
func (b *Backend) Migrate(ctx context.Context, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{logger: b.logger.With(slog.String("command", command))})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(b.pool)
	defer func() {
		if err := db.Close(); err != nil {
			b.logger.Error("failed to close migration connection", slog.String("error", err.Error()))
		}
	}()

	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}
	return nil
}

// Stores returns the entity stores bound to this pool.
func (b *Backend) Stores() store.Stores {
	return store.Stores{
		Students: NewStudentStore(b.pool, b.logger),
		Teachers: NewTeacherStore(b.pool, b.logger),
		Admins:   NewAdminStore(b.pool, b.logger),
		Classes:  NewClassStore(b.pool, b.logger),
		Routines: NewRoutineStore(b.pool, b.logger),
	}
}

// Ping checks connectivity.
func (b *Backend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}

// Close closes the pool.
func (b *Backend) Close(context.Context) error {
	b.pool.Close()
	return nil
}

// Pool exposes the underlying pool for maintenance tasks and tests.
func (b *Backend) Pool() *pgxpool.Pool {
	return b.pool
}

// MaskURL hides the password of a connection URL for logging.
func MaskURL(databaseURL string) string {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return "invalid-url"
	}
	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "****")
		}
	}
	return parsed.String()
}

// gooseLogger adapts goose's logger to slog. Fatalf does not exit; the
// error is returned from Migrate instead.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// parseID converts an identifier. Identifiers that are not UUIDs can never
// match a row, so callers report them as not found.
func parseID(id string) (uuid.UUID, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return u, true
}

// setBuilder assembles the SET clause of a partial update.
type setBuilder struct {
	cols []string
	args []any
}

func (b *setBuilder) add(col string, v any) {
	b.args = append(b.args, v)
	b.cols = append(b.cols, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

func (b *setBuilder) empty() bool {
	return len(b.cols) == 0
}

// build returns an UPDATE statement for table keyed by id.
func (b *setBuilder) build(table string, id any) (string, []any) {
	args := append(append([]any{}, b.args...), id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(b.cols, ", "), len(args))
	return q, args
}
