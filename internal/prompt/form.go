package prompt

import (
	"context"
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"
)

// Form is an interactive Prompter and Chooser backed by huh.
type Form struct {
	accessible bool
}

// NewForm creates a Form. Accessible mode renders plain prompts without
// the TUI, which suits screen readers and dumb terminals.
func NewForm(accessible bool) *Form {
	return &Form{accessible: accessible}
}

// Collect implements Prompter. Each field gets its own group so that
// conditional fields can be hidden based on earlier answers.
func (f *Form) Collect(ctx context.Context, fields []Field, values map[string]string) error {
	answers := make(map[string]*string, len(fields))
	confirms := make(map[string]*bool)

	current := func() map[string]string {
		merged := make(map[string]string, len(values)+len(answers))
		for k, v := range values {
			merged[k] = v
		}
		for k, v := range answers {
			merged[k] = *v
		}
		for k, v := range confirms {
			merged[k] = strconv.FormatBool(*v)
		}
		return merged
	}

	groups := make([]*huh.Group, 0, len(fields))
	for _, field := range fields {
		if _, done := values[field.Key]; done {
			continue
		}
		var widget huh.Field
		if field.Kind == KindConfirm {
			b := Bool(field.Default)
			confirms[field.Key] = &b
			widget = huh.NewConfirm().
				Title(field.Title).
				Description(field.Description).
				Value(&b)
		} else {
			s := field.Default
			answers[field.Key] = &s
			widget = buildTextField(field, &s)
		}

		group := huh.NewGroup(widget)
		if field.When != nil {
			when := field.When
			group = group.WithHideFunc(func() bool { return !when(current()) })
		}
		groups = append(groups, group)
	}

	if len(groups) == 0 {
		return nil
	}

	form := huh.NewForm(groups...).WithTheme(huh.ThemeCharm()).WithAccessible(f.accessible)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}

	final := current()
	for _, field := range fields {
		if _, done := values[field.Key]; done || !field.Applies(final) {
			continue
		}
		values[field.Key] = final[field.Key]
	}
	return nil
}

// buildTextField creates an input or text area bound to value.
func buildTextField(field Field, value *string) huh.Field {
	validate := func(s string) error { return field.Check(s) }

	if field.Kind == KindText {
		return huh.NewText().
			Title(field.Title).
			Description(field.Description).
			Placeholder(field.Placeholder).
			CharLimit(5000).
			Value(value).
			Validate(validate)
	}
	return huh.NewInput().
		Title(field.Title).
		Description(field.Description).
		Placeholder(field.Placeholder).
		Value(value).
		Validate(validate)
}

// Choose implements Chooser with a huh select list.
func (f *Form) Choose(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}
	opts := make([]huh.Option[int], len(options))
	for i, label := range options {
		opts[i] = huh.NewOption(label, i)
	}

	var choice int
	sel := huh.NewSelect[int]().Title(title).Options(opts...).Value(&choice)
	form := huh.NewForm(huh.NewGroup(sel)).WithTheme(huh.ThemeCharm()).WithAccessible(f.accessible)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0, ErrAborted
		}
		return 0, err
	}
	return choice, nil
}
