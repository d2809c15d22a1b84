package output

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// maxReadableWidth caps word wrapping on wide terminals.
const maxReadableWidth = 100

// RenderMarkdown renders markdown for a terminal with glamour, wrapping at
// the terminal width. Without a TTY, in JSON mode, or on any renderer error
// the text is returned unchanged.
func (p *Printer) RenderMarkdown(markdown string) string {
	if p.json || !p.isTTY {
		return markdown
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return renderMarkdown(markdown, min(width, maxReadableWidth))
}

func renderMarkdown(markdown string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
