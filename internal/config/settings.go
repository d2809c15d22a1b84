package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// EnvPrefix prefixes every environment override, e.g. DEVLOGS_DIR.
const EnvPrefix = "DEVLOGS"

// Settings are the user-level devlogs settings. Repository metadata lives in
// the repository's own config file, not here.
type Settings struct {
	Dir         string        `mapstructure:"dir"`
	Editor      string        `mapstructure:"editor"`
	Pager       string        `mapstructure:"pager"`
	Rsync       string        `mapstructure:"rsync"`
	RsyncFlags  []string      `mapstructure:"rsync_flags"`
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
	Color       string        `mapstructure:"color"`
	LogLevel    string        `mapstructure:"log_level"`
}

// flagKeys maps settings keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"dir":          "dir",
	"color":        "color",
	"editor":       "editor",
	"lock_timeout": "lock-timeout",
}

// Load loads settings with optional CLI flag overrides.
// Priority: CLI flags > DEVLOGS_* environment > settings file > defaults.
// If flags is nil, only the file, env vars and defaults are used.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	return LoadFile(SettingsPath(), flags)
}

// LoadFile is Load with an explicit settings file. A missing file is not an error.
func LoadFile(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("dir", ".devlogs")
	v.SetDefault("editor", "")
	v.SetDefault("pager", "")
	v.SetDefault("rsync", "rsync")
	v.SetDefault("rsync_flags", []string{"-a"})
	v.SetDefault("lock_timeout", 2*time.Second)
	v.SetDefault("color", ColorAuto)
	v.SetDefault("log_level", "warn")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading settings %s: %w", path, err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	// A flag list given as one space-separated env string ("-a --delete").
	if len(settings.RsyncFlags) == 1 && strings.Contains(settings.RsyncFlags[0], " ") {
		settings.RsyncFlags = strings.Fields(settings.RsyncFlags[0])
	}
	settings.Dir = expandHomeDir(settings.Dir)
	settings.Color = strings.ToLower(strings.TrimSpace(settings.Color))

	if flags != nil {
		if verbose, err := flags.GetBool("verbose"); err == nil && verbose {
			settings.LogLevel = "debug"
		}
	}

	if err := Validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks settings values.
func Validate(s *Settings) error {
	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New("color must be 'auto', 'always' or 'never', got: " + s.Color)
	}
	if s.LockTimeout <= 0 {
		return errors.New("lock_timeout must be positive")
	}
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("dir cannot be empty")
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a level name such as "debug" or "warn" to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("unknown log_level %q", name)
	}
	return level, nil
}

// expandHomeDir expands a leading ~ to the user's home directory.
func expandHomeDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + strings.TrimPrefix(path, "~")
}
