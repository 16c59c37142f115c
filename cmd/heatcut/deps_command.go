package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"heatcut/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					detail,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Name", "Command", "Found", "Detail"}, rows))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required binaries: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
