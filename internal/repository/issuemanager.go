package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorewood/devlogs/internal/render"
)

// IssueSeparator joins the issue code and the title slug in file names.
const IssueSeparator = "__"

// IssueInput is the user-supplied content of a new issue.
type IssueInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Reproduction string `json:"reproduction"`
}

// IssueEntry is a numbered issue file.
type IssueEntry struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Number int    `json:"number"`
}

// IssueManager creates and lists numbered issue entries. Numbers come from
// the persisted counter, never from the files on disk, so they are not reused
// after an issue file is deleted.
type IssueManager struct {
	store       *ConfigStore
	now         func() time.Time
	logger      *slog.Logger
	lockTimeout time.Duration
}

// NewIssueManager creates an IssueManager. A nil now uses time.Now, a nil
// logger uses slog.Default and a zero lockTimeout uses DefaultLockTimeout.
func NewIssueManager(store *ConfigStore, now func() time.Time, logger *slog.Logger, lockTimeout time.Duration) *IssueManager {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IssueManager{store: store, now: now, logger: logger, lockTimeout: lockTimeout}
}

// SnakeCase replaces spaces and hyphens with underscores and lower-cases s.
// Runs of path separators and dots collapse to one underscore, so the
// result is always a single path element.
func SnakeCase(s string) string {
	return strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(fileSlug(s)))
}

// IssueCode returns the upper-cased issue identifier, e.g. "RLP-1".
func IssueCode(shortCode string, index int) string {
	return strings.ToUpper(shortCode + "-" + strconv.Itoa(index))
}

// IssueFileName returns the lower-cased issue file name,
// e.g. "rlp-1__user_validation_fails.md".
func IssueFileName(shortCode string, index int, title string) string {
	return strings.ToLower(IssueCode(shortCode, index) + IssueSeparator + SnakeCase(title) + ".md")
}

// CreateEntry writes a new issue numbered from the counter and returns its
// path. The counter is incremented only when a new file is written; if the
// computed file already exists nothing is written and created is false.
func (m *IssueManager) CreateEntry(ctx context.Context, input IssueInput) (path string, created bool, err error) {
	if strings.TrimSpace(input.Title) == "" {
		return "", false, fmt.Errorf("%w: issue title is required", ErrInvalidArgument)
	}

	cfg, err := m.store.Values()
	if err != nil {
		return "", false, err
	}

	err = m.store.withCounterLock(ctx, m.lockTimeout, func() error {
		doc, readErr := m.store.ReadCounter()
		if readErr != nil {
			return readErr
		}

		index := doc.Issues.NextIndex
		code := IssueCode(cfg.ShortCode, index)
		name := IssueFileName(cfg.ShortCode, index, input.Title)
		if !isPlainFileName(name) {
			return fmt.Errorf("%w: issue file name %q is not a plain file name", ErrInvalidArgument, name)
		}
		path = filepath.Join(m.store.IssueDir(), name)

		if fileExists(path) {
			m.logger.Debug("issue already exists, counter unchanged", "path", path, "index", index)
			return nil
		}

		content, renderErr := m.render(code, input)
		if renderErr != nil {
			return renderErr
		}
		if writeErr := writeNewFile(path, []byte(content)); writeErr != nil {
			if errors.Is(writeErr, os.ErrExist) {
				return nil
			}
			return fmt.Errorf("writing issue %s: %w", path, writeErr)
		}
		created = true

		doc.Issues.NextIndex = index + 1
		if writeErr := m.store.WriteCounter(doc); writeErr != nil {
			return writeErr
		}
		m.logger.Debug("created issue", "path", path, "code", code, "next_index", doc.Issues.NextIndex)
		return nil
	})
	if err != nil {
		return "", created, err
	}
	return path, created, nil
}

// render fills the issue template for a new issue.
func (m *IssueManager) render(code string, input IssueInput) (string, error) {
	tmpl, err := os.ReadFile(m.store.IssueTemplatePath())
	if err != nil {
		return "", fmt.Errorf("reading issue template: %w", err)
	}
	return renderTemplate(m.logger, m.store.IssueTemplatePath(), string(tmpl), render.Vars{
		"title":        code + ": " + input.Title,
		"code":         code,
		"description":  input.Description,
		"reproduction": input.Reproduction,
		"time":         m.now().Format(DisplayTimeLayout),
	}), nil
}

// ListEntries returns issues sorted by number in the given direction.
// Equal numbers keep directory order.
func (m *IssueManager) ListEntries(direction Direction) ([]IssueEntry, error) {
	if err := direction.Validate(); err != nil {
		return nil, err
	}

	cfg, err := m.store.Values()
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(m.store.IssueDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []IssueEntry{}, nil
		}
		return nil, fmt.Errorf("reading issue directory: %w", err)
	}

	prefix := strings.ToLower(cfg.ShortCode) + "-"
	entries := []IssueEntry{}
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasPrefix(strings.ToLower(de.Name()), prefix) {
			continue
		}
		number, err := parseIssueNumber(de.Name(), len(prefix))
		if err != nil {
			return nil, err
		}
		entries = append(entries, IssueEntry{
			Path:   filepath.Join(m.store.IssueDir(), de.Name()),
			Name:   de.Name(),
			Code:   IssueCode(cfg.ShortCode, number),
			Number: number,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return direction.less(int64(entries[i].Number), int64(entries[j].Number))
	})
	return entries, nil
}

// parseIssueNumber extracts N from "<code>-<N>__<slug>.md".
func parseIssueNumber(name string, prefixLen int) (int, error) {
	tag, _, _ := strings.Cut(name, IssueSeparator)
	tag = strings.TrimSuffix(tag, ".md")
	if prefixLen > len(tag) {
		return 0, fmt.Errorf("%w: %s has no issue number", ErrCorruptEntry, name)
	}
	n, err := strconv.Atoi(tag[prefixLen:])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s has no issue number", ErrCorruptEntry, name)
	}
	return n, nil
}
