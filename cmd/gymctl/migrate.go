package main

import (
	"context"
	"fmt"

	"github.com/gymdesk/gym-api/internal/platform/backend"
	"github.com/spf13/cobra"
)

type migrator interface {
	Migrate(ctx context.Context, command string, args ...string) error
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

var migrateCommands = map[string]bool{
	"up": true, "down": true, "status": true, "version": true, "redo": true, "reset": true,
}

func newMigrateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status|version|redo|reset]",
		Short: "Apply schema migrations (postgres) or ensure indexes (mongo)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}
			if !migrateCommands[command] {
				return fmt.Errorf("unknown migrate command %q", command)
			}

			ctx := cmd.Context()
			e, err := c.connect(ctx, cmd.ErrOrStderr(), backend.Options{SkipMigrations: true})
			if err != nil {
				return err
			}
			defer e.close()

			switch b := e.backend.(type) {
			case migrator:
				if err := b.Migrate(ctx, command); err != nil {
					return err
				}
			case indexer:
				if command != "up" {
					return fmt.Errorf("driver %q only supports migrate up", e.cfg.Database.Driver)
				}
				if err := b.EnsureIndexes(ctx); err != nil {
					return err
				}
			default:
				return fmt.Errorf("driver %q has no schema to migrate", e.cfg.Database.Driver)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s finished (%s)\n", command, e.cfg.Database.Driver)
			return nil
		},
	}
	return cmd
}
