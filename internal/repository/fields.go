package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gorewood/devlogs/internal/prompt"
)

// Prompt field keys.
const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldShortCode    = "short_code"
	FieldMirror       = "mirror"
	FieldMirrorPath   = "mirror_path"
	FieldTitle        = "title"
	FieldReproduction = "reproduction"
)

// MaxIssueTitleLen is the longest issue title accepted from prompts and flags.
const MaxIssueTitleLen = 25

// InitFields returns the metadata collected when initializing a repository.
func InitFields() []prompt.Field {
	return []prompt.Field{
		{Key: FieldName, Title: "What is the project name?", Required: true},
		{Key: FieldDescription, Title: "What is the project description?", Required: true},
		{
			Key:         FieldShortCode,
			Title:       "What is the project short code?",
			Description: "Up to 3 letters, used to number issues (e.g. RLP-1)",
			Required:    true,
			Validate:    ValidateShortCode,
		},
		{Key: FieldMirror, Title: "Do you want to mirror these logs?", Kind: prompt.KindConfirm, Default: "false"},
		{
			Key:      FieldMirrorPath,
			Title:    "Path to mirror directory",
			Required: true,
			When:     func(v map[string]string) bool { return prompt.Bool(v[FieldMirror]) },
		},
	}
}

// IssueFields returns the content collected when creating an issue.
func IssueFields() []prompt.Field {
	return []prompt.Field{
		{
			Key:      FieldTitle,
			Title:    "What is the issue title?",
			Required: true,
			Validate: validateIssueTitle,
		},
		{Key: FieldDescription, Title: "Describe the issue", Kind: prompt.KindText, Default: "There is an issue with..."},
		{Key: FieldReproduction, Title: "Describe the reproduction steps", Kind: prompt.KindText, Default: "To reproduce the issue..."},
	}
}

func validateIssueTitle(s string) error {
	if utf8.RuneCountInString(s) > MaxIssueTitleLen {
		return fmt.Errorf("title may be at most %d characters", MaxIssueTitleLen)
	}
	return nil
}

// Collect resolves fields from preset answers first and asks p for the rest.
// Preset answers are validated like prompted ones. A nil p makes any missing
// required answer an ErrInvalidArgument.
func Collect(ctx context.Context, p prompt.Prompter, fields []prompt.Field, preset map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		if v, ok := preset[f.Key]; ok {
			values[f.Key] = v
		}
	}

	if p != nil && hasMissing(fields, values) {
		if err := p.Collect(ctx, fields, values); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}

	for _, f := range fields {
		if !f.Applies(values) {
			delete(values, f.Key)
			continue
		}
		v, ok := values[f.Key]
		if !ok {
			v = f.Default
			values[f.Key] = v
		}
		if err := f.Check(v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	return values, nil
}

// hasMissing reports whether any applicable field lacks an answer.
func hasMissing(fields []prompt.Field, values map[string]string) bool {
	for _, f := range fields {
		if _, ok := values[f.Key]; !ok && f.Applies(values) {
			return true
		}
	}
	return false
}

// CollectIssueInput gathers a new issue's content from preset values and p.
func CollectIssueInput(ctx context.Context, p prompt.Prompter, preset map[string]string) (IssueInput, error) {
	values, err := Collect(ctx, p, IssueFields(), preset)
	if err != nil {
		return IssueInput{}, err
	}
	return IssueInput{
		Title:        strings.TrimSpace(values[FieldTitle]),
		Description:  values[FieldDescription],
		Reproduction: values[FieldReproduction],
	}, nil
}

// configFromValues builds a Config from collected init answers.
func configFromValues(values map[string]string) *Config {
	cfg := &Config{
		Name:        strings.TrimSpace(values[FieldName]),
		Description: strings.TrimSpace(values[FieldDescription]),
		ShortCode:   strings.TrimSpace(values[FieldShortCode]),
	}
	if prompt.Bool(values[FieldMirror]) {
		cfg.Mirror = MirrorConfig{Enabled: true, Path: strings.TrimSpace(values[FieldMirrorPath])}
	}
	return cfg
}
