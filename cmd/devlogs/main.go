// Package main provides the entry point for the devlogs CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/devlogs/internal/config"
	"github.com/gorewood/devlogs/internal/output"
	"github.com/gorewood/devlogs/internal/repository"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the devlogs CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devlogs",
		Short: "A per-project developer log",
		Long: `Devlogs - keep a dated developer log and numbered issues next to your code.

A devlogs repository is a directory (./.devlogs by default) holding:
  - Dated log entries rendered from a template, one per minute at most
  - Numbered issues (e.g. RLP-4) drawn from a persistent counter
  - Optional one-way mirroring to a second directory with rsync

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'devlogs --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("color", config.ColorAuto, "Color output: auto, always, never")
	flags.String("dir", repository.DefaultDirName, "Repository directory")
	flags.BoolP("verbose", "v", false, "Log debug output to stderr")
	flags.String("editor", "", "Editor command (default $VISUAL, $EDITOR, vi)")
	flags.Duration("lock-timeout", repository.DefaultLockTimeout, "How long to wait for the issue counter lock")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "write", Title: "Writing Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "read", Title: "Reading Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "sync", Title: "Sync Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newNewCmd(), "write")
	addGroupedCommand(cmd, newIssueCmd(), "write")

	addGroupedCommand(cmd, newLsCmd(), "read")
	addGroupedCommand(cmd, newIssuesCmd(), "read")
	addGroupedCommand(cmd, newLastCmd(), "read")

	addGroupedCommand(cmd, newSyncCmd(), "sync")
	addGroupedCommand(cmd, newServeCmd(), "sync")

	addGroupedCommand(cmd, newInitCmd(), "admin")
	addGroupedCommand(cmd, newVersionCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
