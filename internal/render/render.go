// Package render substitutes variables into devlogs entry templates.
//
// Templates are plain markdown with {{name}} placeholders. Whitespace inside
// the braces is allowed ({{ name }}). Placeholders with no binding are left
// untouched so a user-edited template never loses text.
package render

import (
	"regexp"
	"sort"
)

// Vars binds placeholder names to their substitution values.
type Vars map[string]string

// placeholderRe matches {{name}} and {{ name }}.
var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Render substitutes vars into content and returns the rendered text.
func Render(content string, vars Vars) string {
	return placeholderRe.ReplaceAllStringFunc(content, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})
}

// Placeholders returns the distinct placeholder names used in content, sorted.
func Placeholders(content string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Unbound returns the placeholder names in content that vars does not bind.
func Unbound(content string, vars Vars) []string {
	var missing []string
	for _, name := range Placeholders(content) {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
