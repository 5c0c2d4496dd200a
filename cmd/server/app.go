package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gymdesk/gym-api/internal/config"
	"github.com/gymdesk/gym-api/internal/metrics"
	"github.com/gymdesk/gym-api/internal/ratelimit"
	"github.com/gymdesk/gym-api/internal/service"
	"github.com/gymdesk/gym-api/internal/service/auth"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds the shared dependencies of the server so they can be
// built once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	backend store.Backend
	redis   *redis.Client
	metrics *metrics.Metrics

	jwtService   auth.JWTService
	hasher       *auth.BcryptHasher
	loginLimiter ratelimit.Limiter

	studentService service.StudentService
	teacherService service.TeacherService
	adminService   service.AdminService
	classService   service.ClassService
	routineService service.RoutineService
	authService    service.AuthService
	reconciler     *service.Reconciler
}

// newApplication wires services over an opened backend.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, backend store.Backend) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		backend: backend,
		metrics: metrics.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	if cfg.Redis.URL != "" {
		app.redis, err = ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("Redis connection established")
	}
	app.loginLimiter = ratelimit.New(cfg.RateLimit, app.redis)
	if app.loginLimiter == nil {
		logger.Warn("Login rate limiting disabled")
	}

	stores := backend.Stores()
	app.studentService = service.NewStudentService(stores, app.hasher, logger)
	app.teacherService = service.NewTeacherService(stores, app.hasher, logger)
	app.adminService = service.NewAdminService(stores, app.hasher, logger)
	app.classService = service.NewClassService(stores, logger)
	app.routineService = service.NewRoutineService(stores, logger)
	app.authService = service.NewAuthService(stores, app.hasher, app.jwtService, logger)
	app.reconciler = service.NewReconciler(stores, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP and, when configured, runs periodic reconciliation until
// ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if interval := app.config.Reconcile.Interval(); interval > 0 {
		go app.reconcileLoop(ctx, interval)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// reconcileLoop repairs dangling references every interval.
func (app *application) reconcileLoop(ctx context.Context, interval time.Duration) {
	log := app.logger.With("component", "reconcile_loop")
	log.Info("periodic reconciliation enabled",
		"interval", interval.String(),
		"dry_run", app.config.Reconcile.DryRun)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := app.reconcileOnce(ctx); err != nil {
				log.Error("reconciliation failed", "error", err)
			}
		}
	}
}

// reconcileOnce runs one reconciliation pass and records what it repaired.
func (app *application) reconcileOnce(ctx context.Context) error {
	_, res, err := app.reconciler.Run(ctx, app.config.Reconcile.DryRun)
	if res != nil {
		app.metrics.Repaired("routines", res.RoutinesDeleted)
		app.metrics.Repaired("enrollments", res.EnrollmentsPulled)
		app.metrics.Repaired("classes", res.ClassesDeleted)
	}
	return err
}

// cleanup releases external connections.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}
	if app.backend != nil {
		if err := app.backend.Close(ctx); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
