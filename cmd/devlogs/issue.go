package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/devlogs/internal/repository"
)

// issueFlags holds the command-line flags for the new-issue command.
type issueFlags struct {
	title        string
	description  string
	reproduction string
	noEdit       bool
}

// newIssueCmd creates the new-issue command.
func newIssueCmd() *cobra.Command {
	flags := &issueFlags{}

	cmd := &cobra.Command{
		Use:   "new-issue",
		Short: "Create the next numbered issue and open it",
		Long: `Create the next numbered issue (SHORTCODE-N) from the repository's issue
template and open it in your editor. Issue numbers come from the
repository's counter and are never reused, even after an issue file is
deleted.

Missing title, description or reproduction steps are asked for in a
terminal. Titles are at most 25 characters.

Examples:
  devlogs new-issue
  devlogs new-issue --title "Crash on save" --description "Saving crashes" --reproduction "Save twice"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNewIssue(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "Issue title")
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "What is wrong")
	cmd.Flags().StringVarP(&flags.reproduction, "reproduction", "r", "", "How to reproduce it")
	cmd.Flags().BoolVar(&flags.noEdit, "no-edit", false, "Do not open the issue in the editor")

	return cmd
}

func runNewIssue(cmd *cobra.Command, flags *issueFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	repo, err := a.openRepository(!flags.noEdit)
	if err != nil {
		return a.fail(err)
	}

	preset := map[string]string{}
	for flag, key := range map[string]string{
		"title":        repository.FieldTitle,
		"description":  repository.FieldDescription,
		"reproduction": repository.FieldReproduction,
	} {
		if cmd.Flags().Changed(flag) {
			preset[key], _ = cmd.Flags().GetString(flag)
		}
	}

	input, err := repository.CollectIssueInput(cmd.Context(), a.prompter(), preset)
	if err != nil {
		return a.fail(err)
	}

	result, err := repo.CreateIssue(cmd.Context(), input)
	return reportCreate(a, result, err)
}
