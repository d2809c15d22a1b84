package render

import (
	"embed"
	"fmt"
)

// Built-in template names.
const (
	LogTemplate   = "log"
	IssueTemplate = "issue"
)

//go:embed templates/*.md
var builtinFS embed.FS

// Builtin returns the bundled default template with the given name.
func Builtin(name string) ([]byte, error) {
	path := "templates/" + name + ".md"
	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading builtin template %s: %w", path, err)
	}
	return data, nil
}
