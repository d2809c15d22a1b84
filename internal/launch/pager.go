package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// Pager pipes content through a pager when stdout is an interactive terminal
// and the content does not fit on one screen. Otherwise content is written
// straight to the output.
type Pager struct {
	command string
	out     io.Writer
	isTTY   func() bool
	height  func() int
}

// NewPager creates a Pager writing to os.Stdout.
func NewPager(command string) *Pager {
	fd := int(os.Stdout.Fd())
	return &Pager{
		command: command,
		out:     os.Stdout,
		isTTY:   func() bool { return term.IsTerminal(fd) },
		height: func() int {
			_, h, err := term.GetSize(fd)
			if err != nil {
				return 0
			}
			return h
		},
	}
}

// WithOutput directs output to w and disables paging, since w is not a terminal.
func (p *Pager) WithOutput(w io.Writer) *Pager {
	p.out = w
	p.isTTY = func() bool { return false }
	return p
}

// Page shows content, through the pager when appropriate.
func (p *Pager) Page(ctx context.Context, content string) error {
	parts := strings.Fields(p.command)
	if !p.isTTY() || len(parts) == 0 || fitsScreen(content, p.height()) {
		_, err := fmt.Fprint(p.out, content)
		return err
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...) // #nosec G204 -- pager is user-configured
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = p.out
	cmd.Stderr = os.Stderr

	// -R keeps colors, -F quits if one screen, -X leaves the screen intact.
	cmd.Env = os.Environ()
	if os.Getenv("LESS") == "" {
		cmd.Env = append(cmd.Env, "LESS=-RFX")
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running pager %s: %w", parts[0], err)
	}
	return nil
}

// fitsScreen reports whether content fits in a terminal of the given height.
func fitsScreen(content string, height int) bool {
	if height <= 0 {
		return false
	}
	return contentHeight(content) <= height-1
}

// contentHeight counts the lines in content.
func contentHeight(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
