package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/devlogs/internal/output"
	"github.com/gorewood/devlogs/internal/repository"
)

// lsFlags holds the command-line flags for the ls command.
type lsFlags struct {
	asc    bool
	since  string
	until  string
	selekt bool
	issues bool
}

// newLsCmd creates the ls command.
func newLsCmd() *cobra.Command {
	flags := &lsFlags{}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List log entries",
		Long: `List log entries, newest first.

With --select, pick an entry from the list and read it in your pager.
With --issues, list issues instead of log entries. Issues have no time
filter, so --since and --until cannot be combined with --issues.

Examples:
  devlogs ls
  devlogs ls --asc --since 2w
  devlogs ls --since "last monday" --until yesterday
  devlogs ls --select`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.issues {
				if flags.since != "" || flags.until != "" {
					printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false)
					return fail(printer, output.NewUserError("--since and --until filter log entries and cannot be used with --issues"))
				}
				return runIssues(cmd, flags.asc, flags.selekt)
			}
			return runLs(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.asc, "asc", false, "Oldest first")
	cmd.Flags().StringVar(&flags.since, "since", "", "Only entries at or after this time (24h, 7d, 2023-01-17, yesterday)")
	cmd.Flags().StringVar(&flags.until, "until", "", "Only entries at or before this time")
	cmd.Flags().BoolVarP(&flags.selekt, "select", "s", false, "Choose an entry and page it")
	cmd.Flags().BoolVar(&flags.issues, "issues", false, "List issues instead of log entries")

	return cmd
}

func listDirection(asc bool) repository.Direction {
	if asc {
		return repository.Ascending
	}
	return repository.Descending
}

// filterByTime keeps entries in [since, until]. Zero bounds are open.
func filterByTime(entries []repository.LogEntry, since, until time.Time) []repository.LogEntry {
	kept := make([]repository.LogEntry, 0, len(entries))
	for _, e := range entries {
		if !since.IsZero() && e.Time.Before(since) {
			continue
		}
		if !until.IsZero() && e.Time.After(until) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func runLs(cmd *cobra.Command, flags *lsFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	now := time.Now()
	var since, until time.Time
	if flags.since != "" {
		if since, err = parseSinceValue(flags.since, now); err != nil {
			return a.fail(output.NewUserError(err.Error()))
		}
	}
	if flags.until != "" {
		if until, err = parseUntilValue(flags.until, now); err != nil {
			return a.fail(output.NewUserError(err.Error()))
		}
	}

	repo, err := a.openRepository(false)
	if err != nil {
		return a.fail(err)
	}
	entries, err := repo.List(listDirection(flags.asc))
	if err != nil {
		return a.fail(err)
	}
	entries = filterByTime(entries, since, until)

	if flags.selekt {
		paths := make([]string, len(entries))
		labels := make([]string, len(entries))
		for i, e := range entries {
			paths[i] = e.Path
			labels[i] = e.Time.Format(repository.DisplayTimeLayout)
		}
		return selectAndPage(a, "Log entries", labels, paths, repository.ErrNoEntries)
	}

	if a.printer.IsJSON() {
		return a.printer.WriteJSON(map[string]any{"count": len(entries), "entries": entries})
	}
	if len(entries) == 0 {
		a.printer.Hint("No log entries. Run 'devlogs new' to write one.")
		return nil
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Time.Format(repository.DisplayTimeLayout), e.Name}
	}
	a.printer.Table([]string{"DATE", "FILE"}, rows)
	return nil
}

// selectAndPage lets the user choose one of paths and shows it in the pager.
// An empty list fails with empty.
func selectAndPage(a *app, title string, labels, paths []string, empty error) error {
	if len(paths) == 0 {
		return a.fail(empty)
	}
	if !a.interactive() {
		return a.fail(output.NewUserError("--select needs an interactive terminal"))
	}

	choice, err := a.chooser().Choose(a.cmd.Context(), title, labels)
	if err != nil {
		return a.fail(err)
	}
	return pageFile(a, paths[choice])
}

// pageFile renders a markdown file and shows it through the pager.
func pageFile(a *app, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return a.fail(fmt.Errorf("reading %s: %w", path, err))
	}
	if err := a.pager().Page(a.cmd.Context(), a.printer.RenderMarkdown(string(content))); err != nil {
		return a.fail(output.NewSystemErrorWithCause(err.Error(), err))
	}
	return nil
}

// newIssuesCmd creates the issues command.
func newIssuesCmd() *cobra.Command {
	var asc, selekt bool

	cmd := &cobra.Command{
		Use:   "issues",
		Short: "List issues",
		Long: `List issues, highest number first.

With --select, pick an issue and read it in your pager.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIssues(cmd, asc, selekt)
		},
	}

	cmd.Flags().BoolVar(&asc, "asc", false, "Lowest number first")
	cmd.Flags().BoolVarP(&selekt, "select", "s", false, "Choose an issue and page it")
	return cmd
}

func runIssues(cmd *cobra.Command, asc, selekt bool) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	repo, err := a.openRepository(false)
	if err != nil {
		return a.fail(err)
	}
	issues, err := repo.ListIssues(listDirection(asc))
	if err != nil {
		return a.fail(err)
	}

	if selekt {
		paths := make([]string, len(issues))
		labels := make([]string, len(issues))
		for i, is := range issues {
			paths[i] = is.Path
			labels[i] = is.Code + "  " + is.Name
		}
		return selectAndPage(a, "Issues", labels, paths, output.NewUserError("no issues found"))
	}

	if a.printer.IsJSON() {
		return a.printer.WriteJSON(map[string]any{"count": len(issues), "issues": issues})
	}
	if len(issues) == 0 {
		a.printer.Hint("No issues. Run 'devlogs new-issue' to open one.")
		return nil
	}
	rows := make([][]string, len(issues))
	for i, is := range issues {
		rows[i] = []string{is.Code, is.Name}
	}
	a.printer.Table([]string{"CODE", "FILE"}, rows)
	return nil
}
