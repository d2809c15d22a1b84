package main

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// durationRegex matches duration strings like "24h", "7d", "30d".
var durationRegex = regexp.MustCompile(`^(\d+)([hdwm])$`)

// naturalParser understands phrases like "yesterday" or "last monday 9am".
var naturalParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// parseSinceValue parses a --since value into a time.Time cutoff.
// Accepts:
//   - Durations: "24h", "7d", "2w", "1m" (hours, days, weeks, months)
//   - Dates: "2023-01-17" (YYYY-MM-DD, local time)
//   - RFC3339 timestamps
//   - Phrases: "yesterday", "last friday"
func parseSinceValue(value string, now time.Time) (time.Time, error) {
	t, err := parseTimeValue(value, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since value %q; use duration (24h, 7d, 2w), date (2023-01-17) or a phrase (yesterday)", value)
	}
	return t, nil
}

// parseUntilValue parses a --until value into a time.Time cutoff.
// Date-only values extend to the end of that day.
func parseUntilValue(value string, now time.Time) (time.Time, error) {
	cutoff, err := parseTimeValue(value, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --until value %q; use duration (24h, 7d, 2w), date (2023-01-17) or a phrase (yesterday)", value)
	}
	if len(value) == 10 && value[4] == '-' && value[7] == '-' {
		cutoff = cutoff.Add(24*time.Hour - time.Second)
	}
	return cutoff, nil
}

// parseTimeValue parses a duration, date, timestamp or phrase relative to now.
func parseTimeValue(value string, now time.Time) (time.Time, error) {
	if matches := durationRegex.FindStringSubmatch(value); len(matches) == 3 {
		return parseDuration(matches[1], matches[2], now)
	}

	if t, err := time.ParseInLocation(time.DateOnly, value, now.Location()); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	if r, err := naturalParser.Parse(value, now); err == nil && r != nil {
		return r.Time, nil
	}

	return time.Time{}, fmt.Errorf("invalid time value: %s", value)
}

// parseDuration converts a numeric value and unit to a cutoff before now.
func parseDuration(numStr, unit string, now time.Time) (time.Time, error) {
	num, err := strconv.Atoi(numStr)
	if err != nil || num <= 0 {
		return time.Time{}, fmt.Errorf("invalid duration number: %s", numStr)
	}

	switch unit {
	case "h":
		return now.Add(-time.Duration(num) * time.Hour), nil
	case "d":
		return now.AddDate(0, 0, -num), nil
	case "w":
		return now.AddDate(0, 0, -num*7), nil
	case "m":
		return now.AddDate(0, -num, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
