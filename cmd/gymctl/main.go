// Command gymctl runs operator tasks against the gym database: schema
// migrations, bootstrap admins, password hashing and reference repair.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gymdesk/gym-api/internal/config"
	"github.com/gymdesk/gym-api/internal/platform/backend"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&cli{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// cli carries state shared by the subcommands. loadConfig and openBackend
// are swapped out in tests.
type cli struct {
	logLevel string

	loadConfig  func() (*config.Config, error)
	openBackend func(ctx context.Context, cfg config.DatabaseConfig, l *slog.Logger, opts backend.Options) (store.Backend, error)
}

func newRootCmd(c *cli) *cobra.Command {
	if c.loadConfig == nil {
		c.loadConfig = config.Load
	}
	if c.openBackend == nil {
		c.openBackend = backend.Open
	}

	root := &cobra.Command{
		Use:           "gymctl",
		Short:         "Operator tool for the gym API database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newMigrateCmd(c),
		newCreateAdminCmd(c),
		newHashPasswordCmd(),
		newRepairCmd(c),
	)
	return root
}

// env bundles what a database-backed subcommand needs.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend store.Backend
}

func (e *env) close() {
	if err := e.backend.Close(context.Background()); err != nil {
		e.logger.Error("failed to close database", "error", err)
	}
}

// connect loads configuration, builds a logger writing to stderr so command
// output on stdout stays machine readable, and opens the database.
func (c *cli) connect(ctx context.Context, stderr io.Writer, opts backend.Options) (*env, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.logLevel != "" {
		cfg.Server.LogLevel = c.logLevel
	}

	l, err := logger.SetupWithWriter(cfg.Server, stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	b, err := c.openBackend(ctx, cfg.Database, l, opts)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: l, backend: b}, nil
}
