// Package prompt collects user input for devlogs through interactive forms.
//
// Callers describe what they need as a list of Fields; a Prompter fills the
// answers into a value map. Form is the interactive implementation backed by
// charmbracelet/huh. Static answers from a fixed map and is used for
// non-interactive runs and tests.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind selects the widget used for a field.
type Kind int

const (
	// KindInput is a single-line text input.
	KindInput Kind = iota
	// KindText is a multi-line text area.
	KindText
	// KindConfirm is a yes/no question. Answers are "true" or "false".
	KindConfirm
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("prompt aborted")

// Field describes one value to collect.
type Field struct {
	Key         string
	Title       string
	Description string
	Placeholder string
	Default     string
	Kind        Kind
	Required    bool

	// Validate checks a non-empty answer. Optional.
	Validate func(string) error

	// When reports whether the field applies given the answers so far.
	// A nil When always applies.
	When func(values map[string]string) bool
}

// Applies reports whether the field should be asked given current values.
func (f Field) Applies(values map[string]string) bool {
	return f.When == nil || f.When(values)
}

// Check validates an answer against the field's constraints.
func (f Field) Check(value string) error {
	if strings.TrimSpace(value) == "" {
		if f.Required {
			return fmt.Errorf("%s is required", f.label())
		}
		return nil
	}
	if f.Kind == KindConfirm {
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s must be yes or no", f.label())
		}
	}
	if f.Validate != nil {
		return f.Validate(value)
	}
	return nil
}

func (f Field) label() string {
	if f.Title != "" {
		return strings.TrimSuffix(f.Title, "?")
	}
	return f.Key
}

// Prompter collects answers for fields into values. Keys already present in
// values are treated as answered.
type Prompter interface {
	Collect(ctx context.Context, fields []Field, values map[string]string) error
}

// Chooser lets the user pick one option from a list. It returns the index
// of the chosen option.
type Chooser interface {
	Choose(ctx context.Context, title string, options []string) (int, error)
}

// Bool interprets a confirm answer. Unparsable or empty answers are false.
func Bool(value string) bool {
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

// Static answers prompts from a fixed map. Fields without an answer fall back
// to their default; a required field with neither is an error.
type Static map[string]string

// Collect implements Prompter.
func (s Static) Collect(_ context.Context, fields []Field, values map[string]string) error {
	for _, f := range fields {
		if _, done := values[f.Key]; done || !f.Applies(values) {
			continue
		}
		val, ok := s[f.Key]
		if !ok {
			val = f.Default
		}
		if err := f.Check(val); err != nil {
			return err
		}
		values[f.Key] = val
	}
	return nil
}

// Choose implements Chooser by picking the option at index s["choice"],
// defaulting to the first option.
func (s Static) Choose(_ context.Context, _ string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}
	idx := 0
	if raw, ok := s["choice"]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n >= len(options) {
			return 0, fmt.Errorf("invalid choice %q", raw)
		}
		idx = n
	}
	return idx, nil
}
