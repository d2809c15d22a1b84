package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorewood/devlogs/internal/mirror"
)

// Mirror copies the contents of src into dest and reports what changed.
type Mirror interface {
	Sync(ctx context.Context, src, dest string) ([]mirror.Change, error)
}

// SyncResult describes a completed mirror run.
type SyncResult struct {
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Changes     []mirror.Change `json:"changes"`
}

// SyncManager mirrors the repository directory to the configured path.
type SyncManager struct {
	store  *ConfigStore
	mirror Mirror
	logger *slog.Logger
}

// NewSyncManager creates a SyncManager. A nil mirror uses rsync with default
// flags and a nil logger uses slog.Default.
func NewSyncManager(store *ConfigStore, m Mirror, logger *slog.Logger) *SyncManager {
	if m == nil {
		m = mirror.NewRsync("", nil, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncManager{store: store, mirror: m, logger: logger}
}

// Run mirrors the repository. It returns (nil, nil) without invoking the
// mirror tool when mirroring is disabled. Failures wrap ErrSyncFailed and
// leave the destination as the tool left it.
func (m *SyncManager) Run(ctx context.Context) (*SyncResult, error) {
	cfg, err := m.store.Values()
	if err != nil {
		return nil, err
	}
	if !cfg.MirrorEnabled() {
		return nil, nil
	}

	src := m.store.MirrorSource()
	dest := cfg.Mirror.Path
	m.logger.Debug("mirroring repository", "source", src, "destination", dest)

	changes, err := m.mirror.Sync(ctx, src, dest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	m.logger.Debug("mirror complete", "changes", len(changes))
	return &SyncResult{Source: src, Destination: dest, Changes: changes}, nil
}
