package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gorewood/devlogs/internal/render"
)

// Log entry naming.
const (
	// LogFileSuffix ends every log entry file name.
	LogFileSuffix = "_log.md"
	// LogTimeLayout is the file name prefix, e.g. 11-22-2022__13h43m.
	LogTimeLayout = "01-02-2006__15h04m"
	// DisplayTimeLayout is the human-readable time bound into templates.
	DisplayTimeLayout = "01-02-2006 15:04"
)

// LogEntry is a dated log file in the repository directory.
type LogEntry struct {
	Path string    `json:"path"`
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

// LogManager creates and lists dated log entries.
type LogManager struct {
	store  *ConfigStore
	now    func() time.Time
	logger *slog.Logger
}

// NewLogManager creates a LogManager. A nil now uses time.Now and a nil
// logger uses slog.Default.
func NewLogManager(store *ConfigStore, now func() time.Time, logger *slog.Logger) *LogManager {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LogManager{store: store, now: now, logger: logger}
}

// LogFileName returns the entry file name for t.
func LogFileName(t time.Time) string {
	return t.Format(LogTimeLayout) + LogFileSuffix
}

// ParseLogFileName recovers the timestamp from a log entry file name.
// Hours written space-padded (" 9h05m") are accepted as well as zero-padded.
func ParseLogFileName(name string) (time.Time, error) {
	prefix, ok := strings.CutSuffix(filepath.Base(name), LogFileSuffix)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s does not end in %s", ErrCorruptEntry, name, LogFileSuffix)
	}
	prefix = strings.ReplaceAll(prefix, " ", "0")
	t, err := time.ParseInLocation(LogTimeLayout, prefix, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, name, err)
	}
	return t, nil
}

// renderTemplate renders tmpl and warns about placeholders left unbound,
// which stay in the entry as written.
func renderTemplate(logger *slog.Logger, path, tmpl string, vars render.Vars) string {
	if missing := render.Unbound(tmpl, vars); len(missing) > 0 {
		logger.Warn("template has unbound placeholders", "template", path, "names", missing)
	}
	return render.Render(tmpl, vars)
}

// CreateEntry creates the log entry for the current minute and returns its
// path. If the entry already exists it is left untouched and created is false.
func (m *LogManager) CreateEntry() (path string, created bool, err error) {
	now := m.now()
	path = filepath.Join(m.store.Dir(), LogFileName(now))

	if fileExists(path) {
		m.logger.Debug("reusing log entry", "path", path)
		return path, false, nil
	}

	cfg, err := m.store.Values()
	if err != nil {
		return "", false, err
	}

	tmpl, err := os.ReadFile(m.store.LogTemplatePath())
	if err != nil {
		return "", false, fmt.Errorf("reading log template: %w", err)
	}

	content := renderTemplate(m.logger, m.store.LogTemplatePath(), string(tmpl), render.Vars{
		"time":        now.Format(DisplayTimeLayout),
		"date":        now.Format("01-02-2006"),
		"project":     cfg.Name,
		"description": cfg.Description,
		"short_code":  cfg.ShortCode,
	})

	if err := writeNewFile(path, []byte(content)); err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("writing log entry %s: %w", path, err)
	}

	m.logger.Debug("created log entry", "path", path)
	return path, true, nil
}

// ListEntries returns every log entry sorted by time in the given direction.
// A file with the log suffix whose prefix is not a timestamp fails the whole
// listing with ErrCorruptEntry.
func (m *LogManager) ListEntries(direction Direction) ([]LogEntry, error) {
	if err := direction.Validate(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(m.store.Dir())
	if err != nil {
		return nil, fmt.Errorf("reading repository directory: %w", err)
	}

	var entries []LogEntry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), LogFileSuffix) {
			continue
		}
		t, err := ParseLogFileName(de.Name())
		if err != nil {
			return nil, err
		}
		entries = append(entries, LogEntry{
			Path: filepath.Join(m.store.Dir(), de.Name()),
			Name: de.Name(),
			Time: t,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return direction.less(entries[i].Time.Unix(), entries[j].Time.Unix())
	})
	return entries, nil
}
