package output

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/gorewood/devlogs/internal/config"
)

// ResolveColorMode reports whether output is styled for the color setting
// (the --color flag, DEVLOGS_COLOR or color in config.yaml). In auto mode
// only terminals are styled, and a non-empty NO_COLOR turns styling off.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		return isTTY && os.Getenv("NO_COLOR") == ""
	}
}

// IsTTY reports whether writer is backed by a terminal file descriptor.
func IsTTY(writer io.Writer) bool {
	f, ok := writer.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
