package config

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a text logger writing to w at the settings' level.
// An unparsable level falls back to warn.
func NewLogger(w io.Writer, s *Settings) *slog.Logger {
	level, err := ParseLevel(s.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// LogSettings logs the resolved settings at debug level.
func LogSettings(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.DebugContext(ctx, "Config: dir", "value", s.Dir)
	if s.Editor != "" {
		logger.DebugContext(ctx, "Config: editor", "value", s.Editor)
	}
	if s.Pager != "" {
		logger.DebugContext(ctx, "Config: pager", "value", s.Pager)
	}
	logger.DebugContext(ctx, "Config: rsync", "value", s.Rsync, "flags", strings.Join(s.RsyncFlags, " "))
	logger.DebugContext(ctx, "Config: lock_timeout", "value", s.LockTimeout)
	logger.DebugContext(ctx, "Config: color", "value", s.Color)
}

// SettingsLogValue returns a slog.Value grouping the settings.
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("dir", s.Dir),
		slog.String("editor", s.Editor),
		slog.String("pager", s.Pager),
		slog.String("rsync", s.Rsync),
		slog.Any("rsync_flags", s.RsyncFlags),
		slog.Duration("lock_timeout", s.LockTimeout),
		slog.String("color", s.Color),
		slog.String("log_level", s.LogLevel),
	)
}
