package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gorewood/devlogs/internal/config"
	"github.com/gorewood/devlogs/internal/launch"
	"github.com/gorewood/devlogs/internal/mirror"
	"github.com/gorewood/devlogs/internal/output"
	"github.com/gorewood/devlogs/internal/prompt"
	"github.com/gorewood/devlogs/internal/repository"
)

// app is the per-invocation state shared by commands: resolved settings,
// the logger and the printer.
type app struct {
	cmd      *cobra.Command
	settings *config.Settings
	logger   *slog.Logger
	printer  *output.Printer
}

// newApp loads settings for cmd. Errors are already reported through the printer.
func newApp(cmd *cobra.Command) (*app, error) {
	settings, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr())
		return nil, fail(printer, output.NewUserError("invalid settings: "+err.Error()))
	}

	isTTY := output.ResolveColorMode(settings.Color, output.IsTTY(cmd.OutOrStdout()))
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())

	logger := config.NewLogger(cmd.ErrOrStderr(), settings)
	config.LogSettings(settings, logger)

	return &app{cmd: cmd, settings: settings, logger: logger, printer: printer}, nil
}

// fail converts err to an exit-coded error. JSON mode prints it here;
// in human mode fang renders the returned error.
func fail(printer *output.Printer, err error) error {
	coded := output.FromError(err)
	if printer.IsJSON() {
		printer.Error(coded)
	}
	return coded
}

func (a *app) fail(err error) error {
	return fail(a.printer, err)
}

// interactive reports whether prompts can be shown.
func (a *app) interactive() bool {
	return !a.printer.IsJSON() && term.IsTerminal(int(os.Stdin.Fd()))
}

// prompter returns the huh form in an interactive terminal and nil
// otherwise, so missing required answers fail instead of blocking.
func (a *app) prompter() prompt.Prompter {
	if !a.interactive() {
		return nil
	}
	return prompt.NewForm(os.Getenv("ACCESSIBLE") != "")
}

// chooser returns the huh select list. Callers check interactive first.
func (a *app) chooser() prompt.Chooser {
	return prompt.NewForm(os.Getenv("ACCESSIBLE") != "")
}

func (a *app) editor() *launch.Program {
	ed := launch.NewProgram(launch.ResolveEditor(a.settings.Editor))
	a.logger.Debug("resolved editor", "command", ed.Command())
	return ed
}

func (a *app) pager() *launch.Pager {
	p := launch.NewPager(launch.ResolvePager(a.settings.Pager))
	if out := a.cmd.OutOrStdout(); out != os.Stdout {
		p = p.WithOutput(out)
	}
	return p
}

// openRepository loads the repository from the configured directory.
// With edit set, new entries are opened in the editor.
func (a *app) openRepository(edit bool) (*repository.Repository, error) {
	opts := repository.Options{
		Logger:      a.logger,
		LockTimeout: a.settings.LockTimeout,
		Mirror:      mirror.NewRsync(a.settings.Rsync, a.settings.RsyncFlags, nil),
	}
	if edit && !a.printer.IsJSON() {
		opts.Editor = a.editor()
	}
	return repository.Load(a.settings.Dir, opts)
}
