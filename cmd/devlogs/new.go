package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/devlogs/internal/output"
	"github.com/gorewood/devlogs/internal/repository"
)

// newNewCmd creates the new command, which writes the log entry for the current minute.
func newNewCmd() *cobra.Command {
	var noEdit bool

	cmd := &cobra.Command{
		Use:     "new",
		Aliases: []string{"entry"},
		Short:   "Create a log entry for now and open it",
		Long: `Create a log entry for the current minute from the repository's log
template and open it in your editor ($VISUAL, $EDITOR or the editor
setting). Running it again within the same minute reopens the same entry.

When mirroring is enabled the repository is synced afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			repo, err := a.openRepository(!noEdit)
			if err != nil {
				return a.fail(err)
			}

			result, err := repo.Create(cmd.Context())
			return reportCreate(a, result, err)
		},
	}

	cmd.Flags().BoolVar(&noEdit, "no-edit", false, "Do not open the entry in the editor")
	return cmd
}

// reportCreate prints a created entry. A failed sync is reported after the
// entry, which stays in place.
func reportCreate(a *app, result *repository.CreateResult, err error) error {
	if err != nil && (result == nil || !errors.Is(err, repository.ErrSyncFailed)) {
		return a.fail(err)
	}

	if a.printer.IsJSON() {
		data := map[string]any{
			"path":    result.Path,
			"created": result.Created,
			"sync":    result.Sync,
		}
		if err != nil {
			data["warning"] = err.Error()
		}
		if jsonErr := a.printer.WriteJSON(data); jsonErr != nil {
			return jsonErr
		}
	} else {
		verb := "Created"
		if !result.Created {
			verb = "Reused"
		}
		a.printer.Println(verb + " " + a.printer.Accent(filepath.Base(result.Path)))
		if result.Sync != nil {
			printSync(a, result.Sync)
		}
	}

	// The JSON document above already carries the sync failure.
	return output.FromError(err)
}
