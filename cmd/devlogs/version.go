package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/devlogs/internal/output"
)

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the devlogs version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false)
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
			}
			printer.Println("devlogs " + buildVersion())
			return nil
		},
	}
}
