package repository

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// MaxShortCodeLen is the longest allowed issue short code.
const MaxShortCodeLen = 3

// MirrorConfig controls one-way mirroring of the repository directory.
type MirrorConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

// Config is the persisted repository metadata.
type Config struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description"`
	ShortCode   string       `yaml:"short_code" json:"short_code"`
	Mirror      MirrorConfig `yaml:"mirror" json:"mirror"`
}

// MirrorEnabled reports whether the repository is mirrored.
func (c *Config) MirrorEnabled() bool {
	return c.Mirror.Enabled
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		return errors.New("description is required")
	}
	if err := ValidateShortCode(c.ShortCode); err != nil {
		return err
	}
	if c.Mirror.Enabled && strings.TrimSpace(c.Mirror.Path) == "" {
		return errors.New("mirror path is required when mirroring is enabled")
	}
	return nil
}

// ValidateShortCode checks that code is 1 to 3 characters with no whitespace
// or path separators, since it becomes part of issue file names.
func ValidateShortCode(code string) error {
	n := utf8.RuneCountInString(code)
	if n == 0 || n > MaxShortCodeLen {
		return fmt.Errorf("short code must be 1 to %d characters", MaxShortCodeLen)
	}
	if strings.ContainsAny(code, " \t\n/\\") {
		return errors.New("short code must not contain spaces or slashes")
	}
	return nil
}

// ParseConfig decodes and validates a config document.
// Unknown keys are rejected so typos fail loudly instead of being ignored.
func ParseConfig(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: config file is empty", ErrConfigParse)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &cfg, nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
