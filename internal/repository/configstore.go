package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File and directory names inside a repository directory.
const (
	DefaultDirName        = ".devlogs"
	ConfigFileName        = ".devlogs.config.yml"
	CounterFileName       = ".devlogs.data.yml"
	LogTemplateFileName   = ".log_template.md"
	IssueTemplateFileName = ".issue_template.md"
	IssueDirName          = "issues"
	LockFileName          = ".devlogs.lock"
	InfoFileSuffix        = ".devlogs.info.md"
)

// ConfigStore owns a repository directory. It derives every path inside it
// and reads the persisted config and counter documents.
type ConfigStore struct {
	dir    string
	values *Config
}

// NewConfigStore creates a store for dir without touching the filesystem.
// An empty dir uses DefaultDirName in the working directory.
func NewConfigStore(dir string) *ConfigStore {
	if dir == "" {
		dir = DefaultDirName
	}
	return &ConfigStore{dir: dir}
}

// LoadConfigStore returns a store for an existing repository at dir.
// Returns ErrRepositoryNotFound if dir or its config file does not exist.
// The config itself is parsed lazily by Values.
func LoadConfigStore(dir string) (*ConfigStore, error) {
	store := NewConfigStore(dir)
	if _, err := os.Stat(store.dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrRepositoryNotFound, store.dir)
		}
		return nil, fmt.Errorf("checking repository %s: %w", store.dir, err)
	}
	if _, err := os.Stat(store.ConfigPath()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s (missing %s)", ErrRepositoryNotFound, store.dir, ConfigFileName)
		}
		return nil, fmt.Errorf("checking repository config %s: %w", store.ConfigPath(), err)
	}
	return store, nil
}

// Dir returns the repository directory.
func (s *ConfigStore) Dir() string { return s.dir }

// ConfigPath returns the path of the config file.
func (s *ConfigStore) ConfigPath() string { return filepath.Join(s.dir, ConfigFileName) }

// CounterPath returns the path of the issue counter file.
func (s *ConfigStore) CounterPath() string { return filepath.Join(s.dir, CounterFileName) }

// LogTemplatePath returns the path of the log entry template.
func (s *ConfigStore) LogTemplatePath() string { return filepath.Join(s.dir, LogTemplateFileName) }

// IssueTemplatePath returns the path of the issue entry template.
func (s *ConfigStore) IssueTemplatePath() string {
	return filepath.Join(s.dir, IssueTemplateFileName)
}

// IssueDir returns the directory holding issue entries.
func (s *ConfigStore) IssueDir() string { return filepath.Join(s.dir, IssueDirName) }

// LockPath returns the path of the advisory lock guarding the counter.
func (s *ConfigStore) LockPath() string { return filepath.Join(s.dir, LockFileName) }

// InfoPath returns the path of the project info file for a project name.
// Spaces become underscores and the name is lower-cased. Path separators
// and dots are replaced, so the file always sits directly in the repository.
func (s *ConfigStore) InfoPath(projectName string) string {
	base := strings.ToLower(strings.ReplaceAll(fileSlug(projectName), " ", "_"))
	return filepath.Join(s.dir, base+InfoFileSuffix)
}

// fileSlug replaces each run of '/', '\' and '.' in s with one underscore.
func fileSlug(s string) string {
	var b strings.Builder
	inRun := false
	for _, r := range s {
		if r == '/' || r == '\\' || r == '.' || r == filepath.Separator {
			if !inRun {
				b.WriteByte('_')
			}
			inRun = true
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// isPlainFileName reports whether name names a file in the current directory.
func isPlainFileName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name &&
		!strings.ContainsAny(name, `/\`)
}

// MirrorSource returns the directory with a trailing separator so that a
// mirror copies the directory's contents rather than nesting the directory.
func (s *ConfigStore) MirrorSource() string {
	if strings.HasSuffix(s.dir, string(filepath.Separator)) {
		return s.dir
	}
	return s.dir + string(filepath.Separator)
}

// Values parses the config file on first use and caches the result.
// Returns ErrConfigParse if the file is missing or malformed.
func (s *ConfigStore) Values() (*Config, error) {
	if s.values != nil {
		return s.values, nil
	}

	data, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfigParse, s.ConfigPath(), err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.ConfigPath(), err)
	}
	s.values = cfg
	return cfg, nil
}

// WriteConfig persists cfg as the repository config and caches it.
func (s *ConfigStore) WriteConfig(cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := atomicWrite(s.ConfigPath(), data); err != nil {
		return fmt.Errorf("writing %s: %w", s.ConfigPath(), err)
	}
	s.values = cfg
	return nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// writeNewFile creates path with content, failing with os.ErrExist if the
// file is already there. It never overwrites.
func writeNewFile(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// fileExists reports whether path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
