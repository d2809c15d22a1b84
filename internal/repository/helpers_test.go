package repository

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gorewood/devlogs/internal/mirror"
)

// --- Test Helpers ---

type fakeClock struct{ t time.Time }

func newClock(year int, month time.Month, day, hour, minute int) *fakeClock {
	return &fakeClock{t: time.Date(year, month, day, hour, minute, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time { return c.t }

type mirrorCall struct{ src, dest string }

// fakeMirror records sync invocations.
type fakeMirror struct {
	calls   []mirrorCall
	changes []mirror.Change
	err     error
}

func (m *fakeMirror) Sync(_ context.Context, src, dest string) ([]mirror.Change, error) {
	m.calls = append(m.calls, mirrorCall{src, dest})
	if m.err != nil {
		return nil, m.err
	}
	return m.changes, nil
}

// fakeOpener records opened paths.
type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(_ context.Context, path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func basePreset() map[string]string {
	return map[string]string{
		FieldName:        "Relic Project",
		FieldDescription: "Notes for the relic project",
		FieldShortCode:   "rlp",
		FieldMirror:      "false",
	}
}

// initRepo initializes a repository in a temp dir and returns its store.
func initRepo(t *testing.T, preset map[string]string) *ConfigStore {
	t.Helper()
	dir := filepath.Join(t.TempDir(), DefaultDirName)
	in := NewInitializer(nil, nil, discardLogger())
	_, err := in.Run(context.Background(), InitOptions{Dir: dir, Preset: preset})
	require.NoError(t, err)

	store, err := LoadConfigStore(dir)
	require.NoError(t, err)
	return store
}
