package main

import (
	"encoding/json"

	"github.com/gymdesk/gym-api/internal/platform/backend"
	"github.com/gymdesk/gym-api/internal/service"
	"github.com/spf13/cobra"
)

type repairOutput struct {
	DryRun   bool                  `json:"dryRun"`
	Report   *service.Report       `json:"report"`
	Repaired *service.RepairResult `json:"repaired"`
}

func newRepairCmd(c *cli) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Find and remove dangling references between entities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := c.connect(ctx, cmd.ErrOrStderr(), backend.Options{})
			if err != nil {
				return err
			}
			defer e.close()

			report, res, err := service.NewReconciler(e.backend.Stores(), e.logger).Run(ctx, dryRun)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(repairOutput{DryRun: dryRun, Report: report, Repaired: res})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without deleting anything")
	return cmd
}
