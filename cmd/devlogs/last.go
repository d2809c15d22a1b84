package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/devlogs/internal/output"
)

// newLastCmd creates the last command.
func newLastCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show the most recent log entry",
		Long: `Show the most recent log entry, rendered as markdown in a terminal.
With --open, open it in your editor instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			repo, err := a.openRepository(false)
			if err != nil {
				return a.fail(err)
			}
			entry, err := repo.Last()
			if err != nil {
				return a.fail(err)
			}

			if open {
				if err := a.editor().Open(cmd.Context(), entry.Path); err != nil {
					return a.fail(output.NewSystemErrorWithCause(err.Error(), err))
				}
				return nil
			}

			content, err := os.ReadFile(entry.Path)
			if err != nil {
				return a.fail(fmt.Errorf("reading %s: %w", entry.Path, err))
			}

			if a.printer.IsJSON() {
				return a.printer.WriteJSON(map[string]any{
					"name":    entry.Name,
					"path":    entry.Path,
					"time":    entry.Time.Format(time.RFC3339),
					"content": string(content),
				})
			}
			a.printer.Print("%s", a.printer.RenderMarkdown(string(content)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the entry in the editor")
	return cmd
}
