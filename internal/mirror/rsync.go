// Package mirror copies a devlogs repository to a secondary directory with rsync.
package mirror

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the rsync executable looked up on PATH.
const DefaultBinary = "rsync"

// DefaultFlags mirrors in archive mode (recursive, preserving times and modes).
var DefaultFlags = []string{"-a"}

// Change describes one file or directory rsync transferred or touched.
type Change struct {
	Path    string `json:"path"`
	Summary string `json:"summary"`
	Code    string `json:"code"`
}

// CommandFunc runs an external command and returns its stdout and stderr.
type CommandFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// DefaultCommand runs the command with os/exec.
func DefaultCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Rsync mirrors directories by shelling out to rsync.
type Rsync struct {
	binary string
	flags  []string
	run    CommandFunc
}

// NewRsync creates an Rsync runner.
// An empty binary uses DefaultBinary, nil flags use DefaultFlags,
// and a nil run uses DefaultCommand.
func NewRsync(binary string, flags []string, run CommandFunc) *Rsync {
	if binary == "" {
		binary = DefaultBinary
	}
	if flags == nil {
		flags = DefaultFlags
	}
	if run == nil {
		run = DefaultCommand
	}
	return &Rsync{binary: binary, flags: flags, run: run}
}

// Args returns the full argument list passed to rsync for src and dest.
// --itemize-changes is always added so changes can be reported.
func (r *Rsync) Args(src, dest string) []string {
	args := make([]string, 0, len(r.flags)+3)
	args = append(args, r.flags...)
	args = append(args, "--itemize-changes", src, dest)
	return args
}

// Sync copies the contents of src into dest and returns what changed.
func (r *Rsync) Sync(ctx context.Context, src, dest string) ([]Change, error) {
	stdout, stderr, err := r.run(ctx, r.binary, r.Args(src, dest)...)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, fmt.Errorf("%s not found: ensure rsync is installed and in PATH", r.binary)
		}

		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s failed: %s: %w", r.binary, msg, err)
	}

	return ParseItemized(string(stdout)), nil
}
