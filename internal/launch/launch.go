// Package launch runs the external editor and pager programs devlogs hands
// files to.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultEditor is used when neither $VISUAL nor $EDITOR is set.
const DefaultEditor = "vi"

// DefaultPager is used when $PAGER is not set.
const DefaultPager = "less"

// ResolveEditor returns the editor command: the configured value, then
// $VISUAL, then $EDITOR, then DefaultEditor.
func ResolveEditor(configured string) string {
	for _, candidate := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return DefaultEditor
}

// ResolvePager returns the pager command: the configured value, then
// $PAGER, then DefaultPager.
func ResolvePager(configured string) string {
	for _, candidate := range []string{configured, os.Getenv("PAGER")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return DefaultPager
}

// Program is an external command that takes a file path as its last argument.
// The command string may include arguments, e.g. "code --wait".
type Program struct {
	command string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// NewProgram creates a Program attached to the process's standard streams.
func NewProgram(command string) *Program {
	return &Program{command: command, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// WithStreams replaces the standard streams the program is attached to.
func (p *Program) WithStreams(stdin io.Reader, stdout, stderr io.Writer) *Program {
	p.stdin, p.stdout, p.stderr = stdin, stdout, stderr
	return p
}

// Command returns the configured command string.
func (p *Program) Command() string {
	return p.command
}

// Open runs the program on path and waits for it to exit.
func (p *Program) Open(ctx context.Context, path string) error {
	parts := strings.Fields(p.command)
	if len(parts) == 0 {
		return errors.New("no program configured")
	}

	args := append(parts[1:len(parts):len(parts)], path)
	cmd := exec.CommandContext(ctx, parts[0], args...) // #nosec G204 -- command comes from the user's own settings
	cmd.Stdin = p.stdin
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", parts[0], err)
	}
	return nil
}
