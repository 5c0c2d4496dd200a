// Package backend opens the store.Backend selected by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/config"
	"github.com/gymdesk/gym-api/internal/platform/memstore"
	"github.com/gymdesk/gym-api/internal/platform/mongo"
	"github.com/gymdesk/gym-api/internal/platform/postgres"
	"github.com/gymdesk/gym-api/internal/store"
)

// Options adjusts how Open prepares the database.
type Options struct {
	// SkipMigrations leaves the postgres schema untouched even when
	// migrate_on_start is set.
	SkipMigrations bool
}

// Open connects to the configured database. Postgres schemas are migrated
// when migrate_on_start is set, unless opts says otherwise.
func Open(ctx context.Context, cfg config.DatabaseConfig, l *slog.Logger, opts Options) (store.Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	switch cfg.Driver {
	case config.DriverMongo:
		b, err := mongo.Open(ctx, cfg.URL, cfg.Name, l)
		if err != nil {
			return nil, fmt.Errorf("failed to open mongo backend: %w", err)
		}
		l.Info("Database connection established", "driver", cfg.Driver, "database", cfg.Name)
		return b, nil

	case config.DriverPostgres:
		b, err := postgres.Open(ctx, cfg.URL, l)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres backend: %w", err)
		}
		if cfg.MigrateOnStart && !opts.SkipMigrations {
			if err := b.Migrate(ctx, "up"); err != nil {
				_ = b.Close(context.Background())
				return nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		l.Info("Database connection established", "driver", cfg.Driver, "url", postgres.MaskURL(cfg.URL))
		return b, nil

	case config.DriverMemory:
		l.Warn("Using in-memory database; data is lost on exit")
		return memstore.New(), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
