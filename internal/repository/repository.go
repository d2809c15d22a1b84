// Package repository implements the devlogs repository model: a directory of
// dated log entries and numbered issue entries rendered from templates, with
// optional one-way mirroring to a second directory.
package repository

import (
	"context"
	"log/slog"
	"time"
)

// Opener opens a file for the user, typically in an external editor.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Options configures a Repository. Zero values select the defaults.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Editor opens newly created entries. Nil skips editing.
	Editor Opener
	// Mirror performs sync. Defaults to rsync.
	Mirror Mirror
	// Logger receives debug output. Defaults to slog.Default.
	Logger *slog.Logger
	// LockTimeout bounds the wait for the issue counter lock.
	LockTimeout time.Duration
}

// Repository composes the config store and the log, issue and sync managers
// for one repository directory. Managers are created on first use and cached.
type Repository struct {
	store *ConfigStore
	opts  Options

	logs   *LogManager
	issues *IssueManager
	syncer *SyncManager
}

// CreateResult describes a created or reused entry and the sync that followed.
type CreateResult struct {
	Path    string      `json:"path"`
	Created bool        `json:"created"`
	Sync    *SyncResult `json:"sync,omitempty"`
}

// Load opens the repository at path. Returns ErrRepositoryNotFound if there
// is none and ErrConfigParse if its config is malformed.
func Load(path string, opts Options) (*Repository, error) {
	store, err := LoadConfigStore(path)
	if err != nil {
		return nil, err
	}
	if _, err := store.Values(); err != nil {
		return nil, err
	}
	return New(store, opts), nil
}

// New creates a Repository over an existing store.
func New(store *ConfigStore, opts Options) *Repository {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Repository{store: store, opts: opts}
}

// Dir returns the repository directory.
func (r *Repository) Dir() string { return r.store.Dir() }

// Store returns the underlying config store.
func (r *Repository) Store() *ConfigStore { return r.store }

// Config returns the cached repository config.
func (r *Repository) Config() (*Config, error) { return r.store.Values() }

func (r *Repository) logManager() *LogManager {
	if r.logs == nil {
		r.logs = NewLogManager(r.store, r.opts.Now, r.opts.Logger)
	}
	return r.logs
}

func (r *Repository) issueManager() *IssueManager {
	if r.issues == nil {
		r.issues = NewIssueManager(r.store, r.opts.Now, r.opts.Logger, r.opts.LockTimeout)
	}
	return r.issues
}

func (r *Repository) syncManager() *SyncManager {
	if r.syncer == nil {
		r.syncer = NewSyncManager(r.store, r.opts.Mirror, r.opts.Logger)
	}
	return r.syncer
}

// Create creates (or reuses) the log entry for the current minute, opens it
// in the editor and syncs. A sync failure is returned together with the
// result; the entry stays in place.
func (r *Repository) Create(ctx context.Context) (*CreateResult, error) {
	path, created, err := r.logManager().CreateEntry()
	if err != nil {
		return nil, err
	}
	return r.finish(ctx, path, created)
}

// CreateIssue writes a new numbered issue, opens it in the editor and syncs.
// A sync failure is returned together with the result.
func (r *Repository) CreateIssue(ctx context.Context, input IssueInput) (*CreateResult, error) {
	path, created, err := r.issueManager().CreateEntry(ctx, input)
	if err != nil {
		return nil, err
	}
	return r.finish(ctx, path, created)
}

func (r *Repository) finish(ctx context.Context, path string, created bool) (*CreateResult, error) {
	result := &CreateResult{Path: path, Created: created}

	if r.opts.Editor != nil {
		if err := r.opts.Editor.Open(ctx, path); err != nil {
			r.opts.Logger.Warn("editor exited with error", "path", path, "error", err)
		}
	}

	syncResult, err := r.Sync(ctx)
	result.Sync = syncResult
	if err != nil {
		return result, err
	}
	return result, nil
}

// Sync mirrors the repository when mirroring is enabled. With mirroring
// disabled it returns (nil, nil) and invokes nothing.
func (r *Repository) Sync(ctx context.Context) (*SyncResult, error) {
	cfg, err := r.store.Values()
	if err != nil {
		return nil, err
	}
	if !cfg.MirrorEnabled() {
		return nil, nil
	}
	return r.syncManager().Run(ctx)
}

// List returns log entries in the given direction.
func (r *Repository) List(direction Direction) ([]LogEntry, error) {
	return r.logManager().ListEntries(direction)
}

// ListIssues returns issue entries in the given direction.
func (r *Repository) ListIssues(direction Direction) ([]IssueEntry, error) {
	return r.issueManager().ListEntries(direction)
}

// Last returns the most recent log entry, or ErrNoEntries if there are none.
func (r *Repository) Last() (*LogEntry, error) {
	entries, err := r.List(Descending)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return &entries[0], nil
}
