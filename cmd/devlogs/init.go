package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/devlogs/internal/repository"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	force       bool
	dirPath     string
	name        string
	description string
	shortCode   string
	mirror      string
	noMirror    bool
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a devlogs repository",
		Long: `Create a devlogs repository.

Asks for the project name, description, issue short code and an optional
mirror directory, then writes the repository config, the log and issue
templates, the issue directory and the issue counter.

Any answer given as a flag is not asked for. Without a terminal every
required answer must be given as a flag.

Examples:
  devlogs init
  devlogs init --name "Relic" --description "Relic server" --short-code RLP --no-mirror
  devlogs init --dir-path ~/notes/relic --mirror /mnt/backup/relic
  devlogs init --force      # rewrite config and templates, keep issue numbering`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing repository")
	cmd.Flags().StringVar(&flags.dirPath, "dir-path", "", "Directory to create (defaults to --dir)")
	cmd.Flags().StringVar(&flags.name, "name", "", "Project name")
	cmd.Flags().StringVar(&flags.description, "description", "", "Project description")
	cmd.Flags().StringVar(&flags.shortCode, "short-code", "", "Issue short code, 1 to 3 characters")
	cmd.Flags().StringVar(&flags.mirror, "mirror", "", "Mirror the repository to this directory")
	cmd.Flags().BoolVar(&flags.noMirror, "no-mirror", false, "Do not mirror the repository")
	cmd.MarkFlagsMutuallyExclusive("mirror", "no-mirror")

	return cmd
}

// preset returns the answers given on the command line.
func (f *initFlags) preset(cmd *cobra.Command) map[string]string {
	preset := map[string]string{}
	if cmd.Flags().Changed("name") {
		preset[repository.FieldName] = f.name
	}
	if cmd.Flags().Changed("description") {
		preset[repository.FieldDescription] = f.description
	}
	if cmd.Flags().Changed("short-code") {
		preset[repository.FieldShortCode] = f.shortCode
	}
	switch {
	case cmd.Flags().Changed("mirror"):
		preset[repository.FieldMirror] = "true"
		preset[repository.FieldMirrorPath] = f.mirror
	case f.noMirror:
		preset[repository.FieldMirror] = "false"
	}
	return preset
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	dir := a.settings.Dir
	if flags.dirPath != "" {
		dir = flags.dirPath
	}

	in := repository.NewInitializer(a.prompter(), nil, a.logger)
	result, err := in.Run(cmd.Context(), repository.InitOptions{
		Force:  flags.force,
		Dir:    dir,
		Preset: flags.preset(cmd),
	})
	if err != nil {
		if result != nil && !a.printer.IsJSON() {
			printInitSteps(a, result)
		}
		return a.fail(err)
	}

	if a.printer.IsJSON() {
		return a.printer.WriteJSON(map[string]any{
			"status": "ok",
			"dir":    result.Dir,
			"config": result.Config,
			"steps":  result.Steps,
		})
	}

	a.printer.Println(a.printer.Accent(result.Config.Name) + " devlog initialized in " + result.Dir)
	printInitSteps(a, result)
	a.printer.Println()
	a.printer.Hint("Run 'devlogs new' to write the first entry.")
	return nil
}

func printInitSteps(a *app, result *repository.InitResult) {
	rows := make([][]string, 0, len(result.Steps))
	for _, step := range result.Steps {
		detail := step.Path
		if step.Error != "" {
			detail = step.Error
		}
		rows = append(rows, []string{step.Status, step.Name, detail})
	}
	a.printer.Section("Steps")
	a.printer.Table([]string{"STATUS", "STEP", "PATH"}, rows)
}
