// Package main implements the entry point for the gym API server, which
// manages students, teachers, admins, classes and routines over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gymdesk/gym-api/internal/config"
	"github.com/gymdesk/gym-api/internal/platform/backend"
	"github.com/gymdesk/gym-api/internal/platform/logger"
)

func main() {
	cfg, l, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)
	if cfg.Redis.URL != "" {
		l.Debug("Redis configuration", "url_present", true)
	}

	return cfg, l, nil
}

// run opens the database, builds the application and serves until ctx ends.
func run(ctx context.Context, cfg *config.Config, l *slog.Logger) error {
	db, err := backend.Open(ctx, cfg.Database, l, backend.Options{})
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		_ = db.Close(context.Background())
		return err
	}
	return app.Run(ctx)
}
