package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// DefaultLockTimeout bounds how long issue creation waits for the counter lock.
const DefaultLockTimeout = 2 * time.Second

// ErrCounterLocked is returned when another devlogs process holds the counter lock.
var ErrCounterLocked = errors.New("issue counter is locked by another devlogs process")

// IssueCounter holds the next issue number.
type IssueCounter struct {
	NextIndex int `yaml:"index" json:"index"`
}

// CounterDocument is the persisted data file. Only the issue counter is
// interpreted; the other sections are carried through unchanged.
type CounterDocument struct {
	Issues     IssueCounter   `yaml:"issues"`
	Logs       map[string]any `yaml:"logs"`
	Repository map[string]any `yaml:"repository"`
}

// NewCounterDocument returns the document written at init time.
func NewCounterDocument() *CounterDocument {
	return &CounterDocument{
		Issues:     IssueCounter{NextIndex: 1},
		Logs:       map[string]any{},
		Repository: map[string]any{},
	}
}

// ReadCounter loads the counter document.
// Returns ErrConfigParse if the file is missing, malformed, or the index is below 1.
func (s *ConfigStore) ReadCounter() (*CounterDocument, error) {
	data, err := os.ReadFile(s.CounterPath())
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfigParse, s.CounterPath(), err)
	}

	var doc CounterDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, s.CounterPath(), err)
	}
	if doc.Issues.NextIndex < 1 {
		return nil, fmt.Errorf("%w: %s: issues.index must be at least 1, got %d",
			ErrConfigParse, s.CounterPath(), doc.Issues.NextIndex)
	}
	return &doc, nil
}

// WriteCounter persists the whole counter document atomically.
func (s *ConfigStore) WriteCounter(doc *CounterDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding counter: %w", err)
	}
	if err := atomicWrite(s.CounterPath(), data); err != nil {
		return fmt.Errorf("writing %s: %w", s.CounterPath(), err)
	}
	return nil
}

// withCounterLock runs fn while holding the advisory counter lock.
// The lock only coordinates devlogs processes; it does not make the
// repository safe for arbitrary concurrent edits.
func (s *ConfigStore) withCounterLock(ctx context.Context, timeout time.Duration, fn func() error) error {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	lock := flock.New(s.LockPath())
	locked, err := lock.TryLockContext(lockCtx, 20*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrCounterLocked
		}
		return fmt.Errorf("locking issue counter: %w", err)
	}
	if !locked {
		return ErrCounterLocked
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}
