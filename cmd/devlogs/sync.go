package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/devlogs/internal/repository"
)

// newSyncCmd creates the sync command.
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Mirror the repository to its mirror directory",
		Long: `Copy the repository directory into the mirror directory chosen at init
with rsync. Nothing happens when mirroring is disabled.

The rsync binary and flags come from the rsync and rsync_flags settings
(DEVLOGS_RSYNC, DEVLOGS_RSYNC_FLAGS).`,
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

			result, err := repo.Sync(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			if a.printer.IsJSON() {
				data := map[string]any{"enabled": result != nil}
				if result != nil {
					data["source"] = result.Source
					data["destination"] = result.Destination
					data["changes"] = result.Changes
				}
				return a.printer.WriteJSON(data)
			}
			if result == nil {
				a.printer.Hint("Mirroring is disabled for this repository; nothing to sync.")
				return nil
			}
			printSync(a, result)
			return nil
		},
	}
}

// printSync shows the destination and each change rsync reported.
func printSync(a *app, result *repository.SyncResult) {
	a.printer.Section("Synced to " + result.Destination)
	if len(result.Changes) == 0 {
		a.printer.Hint("Already up to date.")
		return
	}
	rows := make([][]string, len(result.Changes))
	for i, c := range result.Changes {
		rows[i] = []string{c.Path, c.Summary}
	}
	a.printer.Table([]string{"PATH", "CHANGE"}, rows)
	a.printer.Hint("%d changed", len(result.Changes))
}
