package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/devlogs/internal/repository"
)

func TestParseTimeValue(t *testing.T) {
	now := time.Date(2023, 3, 15, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"hours", "24h", now.Add(-24 * time.Hour)},
		{"days", "7d", time.Date(2023, 3, 8, 14, 30, 0, 0, time.Local)},
		{"weeks", "2w", time.Date(2023, 3, 1, 14, 30, 0, 0, time.Local)},
		{"months", "1m", time.Date(2023, 2, 15, 14, 30, 0, 0, time.Local)},
		{"date", "2023-01-17", time.Date(2023, 1, 17, 0, 0, 0, 0, time.Local)},
		{"rfc3339", "2023-01-17T10:00:00Z", time.Date(2023, 1, 17, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeValue(tt.value, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestParseTimeValue_Phrase(t *testing.T) {
	now := time.Date(2023, 3, 15, 14, 30, 0, 0, time.Local)

	got, err := parseTimeValue("yesterday", now)
	require.NoError(t, err)
	y, m, d := got.Date()
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.March, m)
	assert.Equal(t, 14, d)
}

func TestParseTimeValue_Invalid(t *testing.T) {
	now := time.Now()
	for _, value := range []string{"banana", "0d"} {
		t.Run(value, func(t *testing.T) {
			_, err := parseTimeValue(value, now)
			assert.Error(t, err)
		})
	}
}

func TestParseUntilValue_DateCoversWholeDay(t *testing.T) {
	now := time.Date(2023, 3, 15, 14, 30, 0, 0, time.Local)

	got, err := parseUntilValue("2023-01-17", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 17, 23, 59, 59, 0, time.Local), got)

	got, err = parseUntilValue("24h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), got)
}

func TestParseSinceValue_Error(t *testing.T) {
	_, err := parseSinceValue("banana", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--since")
}

func TestFilterByTime(t *testing.T) {
	at := func(day int) repository.LogEntry {
		return repository.LogEntry{Name: "e", Time: time.Date(2023, 1, day, 12, 0, 0, 0, time.UTC)}
	}
	entries := []repository.LogEntry{at(1), at(5), at(10)}

	tests := []struct {
		name         string
		since, until time.Time
		want         int
	}{
		{"open", time.Time{}, time.Time{}, 3},
		{"since inclusive", at(5).Time, time.Time{}, 2},
		{"until inclusive", time.Time{}, at(5).Time, 2},
		{"both", at(2).Time, at(9).Time, 1},
		{"empty range", at(11).Time, time.Time{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, filterByTime(entries, tt.since, tt.until), tt.want)
		})
	}
}
