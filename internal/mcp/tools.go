package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/devlogs/internal/mirror"
	"github.com/gorewood/devlogs/internal/repository"
)

// --- Shared types ---

// LogRef is a log entry in tool output.
type LogRef struct {
	Name string `json:"name" jsonschema:"entry file name"`
	Path string `json:"path" jsonschema:"entry file path"`
	Time string `json:"time" jsonschema:"entry timestamp (RFC3339, minute precision)"`
}

// IssueRef is an issue entry in tool output.
type IssueRef struct {
	Code string `json:"code" jsonschema:"issue code such as RLP-3"`
	Name string `json:"name" jsonschema:"issue file name"`
	Path string `json:"path" jsonschema:"issue file path"`
}

// SyncSummary reports a mirror run.
type SyncSummary struct {
	Enabled     bool            `json:"enabled"               jsonschema:"whether mirroring is configured"`
	Destination string          `json:"destination,omitempty" jsonschema:"mirror directory"`
	Changes     []mirror.Change `json:"changes,omitempty"     jsonschema:"files and directories rsync touched"`
}

func toLogRef(e repository.LogEntry) LogRef {
	return LogRef{Name: e.Name, Path: e.Path, Time: e.Time.Format(time.RFC3339)}
}

func toSyncSummary(r *repository.SyncResult) *SyncSummary {
	if r == nil {
		return &SyncSummary{Enabled: false}
	}
	return &SyncSummary{Enabled: true, Destination: r.Destination, Changes: r.Changes}
}

func direction(ascending bool) repository.Direction {
	if ascending {
		return repository.Ascending
	}
	return repository.Descending
}

// parseBound parses an RFC3339 timestamp or a YYYY-MM-DD date in local time.
func parseBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use RFC3339 or YYYY-MM-DD", s)
}

// parseUntilBound is parseBound where a bare date covers that whole day.
func parseUntilBound(s string) (time.Time, error) {
	t, err := parseBound(s)
	if err != nil {
		return t, err
	}
	if _, dateErr := time.Parse(time.DateOnly, strings.TrimSpace(s)); dateErr == nil {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}

// --- list_logs ---

// ListLogsInput filters the log listing.
type ListLogsInput struct {
	Ascending bool   `json:"ascending,omitempty" jsonschema:"oldest first instead of newest first"`
	Since     string `json:"since,omitempty"     jsonschema:"only entries at or after this time (RFC3339 or YYYY-MM-DD)"`
	Until     string `json:"until,omitempty"     jsonschema:"only entries at or before this time (RFC3339, or YYYY-MM-DD for the whole day)"`
	Limit     int    `json:"limit,omitempty"     jsonschema:"maximum entries to return (0 for all)"`
}

// ListLogsOutput is the log listing.
type ListLogsOutput struct {
	Count   int      `json:"count"   jsonschema:"number of entries returned"`
	Entries []LogRef `json:"entries" jsonschema:"log entries in the requested order"`
}

func handleListLogs(s *session) mcp.ToolHandlerFor[ListLogsInput, ListLogsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListLogsInput) (*mcp.CallToolResult, ListLogsOutput, error) {
		var since, until time.Time
		var err error
		if input.Since != "" {
			if since, err = parseBound(input.Since); err != nil {
				return nil, ListLogsOutput{}, err
			}
		}
		if input.Until != "" {
			if until, err = parseUntilBound(input.Until); err != nil {
				return nil, ListLogsOutput{}, err
			}
		}

		s.mu.Lock()
		entries, err := s.repo.List(direction(input.Ascending))
		s.mu.Unlock()
		if err != nil {
			return nil, ListLogsOutput{}, fmt.Errorf("listing logs: %w", err)
		}

		out := ListLogsOutput{Entries: []LogRef{}}
		for _, e := range entries {
			if !since.IsZero() && e.Time.Before(since) {
				continue
			}
			if !until.IsZero() && e.Time.After(until) {
				continue
			}
			out.Entries = append(out.Entries, toLogRef(e))
			if input.Limit > 0 && len(out.Entries) == input.Limit {
				break
			}
		}
		out.Count = len(out.Entries)
		return nil, out, nil
	}
}

// --- list_issues ---

// ListIssuesInput orders and limits the issue listing.
type ListIssuesInput struct {
	Ascending bool `json:"ascending,omitempty" jsonschema:"lowest number first instead of highest first"`
	Limit     int  `json:"limit,omitempty"     jsonschema:"maximum issues to return (0 for all)"`
}

// ListIssuesOutput is the issue listing.
type ListIssuesOutput struct {
	Count  int        `json:"count"  jsonschema:"number of issues returned"`
	Issues []IssueRef `json:"issues" jsonschema:"issues in the requested order"`
}

func handleListIssues(s *session) mcp.ToolHandlerFor[ListIssuesInput, ListIssuesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListIssuesInput) (*mcp.CallToolResult, ListIssuesOutput, error) {
		s.mu.Lock()
		issues, err := s.repo.ListIssues(direction(input.Ascending))
		s.mu.Unlock()
		if err != nil {
			return nil, ListIssuesOutput{}, fmt.Errorf("listing issues: %w", err)
		}

		if input.Limit > 0 && len(issues) > input.Limit {
			issues = issues[:input.Limit]
		}
		out := ListIssuesOutput{Count: len(issues), Issues: make([]IssueRef, 0, len(issues))}
		for _, is := range issues {
			out.Issues = append(out.Issues, IssueRef{Code: is.Code, Name: is.Name, Path: is.Path})
		}
		return nil, out, nil
	}
}

// --- last_log ---

// LastLogInput takes no parameters.
type LastLogInput struct{}

// LastLogOutput is the newest log entry with its content.
type LastLogOutput struct {
	Entry   LogRef `json:"entry"   jsonschema:"the most recent log entry"`
	Content string `json:"content" jsonschema:"markdown content of the entry"`
}

func handleLastLog(s *session) mcp.ToolHandlerFor[LastLogInput, LastLogOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ LastLogInput) (*mcp.CallToolResult, LastLogOutput, error) {
		s.mu.Lock()
		entry, err := s.repo.Last()
		s.mu.Unlock()
		if err != nil {
			return nil, LastLogOutput{}, err
		}

		content, err := os.ReadFile(entry.Path)
		if err != nil {
			return nil, LastLogOutput{}, fmt.Errorf("reading %s: %w", entry.Name, err)
		}
		return nil, LastLogOutput{Entry: toLogRef(*entry), Content: string(content)}, nil
	}
}

// --- create_log / create_issue ---

// CreateLogInput takes no parameters.
type CreateLogInput struct{}

// CreateOutput reports a created or reused entry.
type CreateOutput struct {
	Path    string       `json:"path"              jsonschema:"entry file path"`
	Created bool         `json:"created"           jsonschema:"false when an existing entry was reused"`
	Sync    *SyncSummary `json:"sync"              jsonschema:"mirror result"`
	Warning string       `json:"warning,omitempty" jsonschema:"non-fatal problem such as a failed mirror"`
}

// toCreateOutput keeps the entry when only the follow-up sync failed.
func toCreateOutput(result *repository.CreateResult, err error) (CreateOutput, error) {
	if err != nil && (result == nil || !errors.Is(err, repository.ErrSyncFailed)) {
		return CreateOutput{}, err
	}
	out := CreateOutput{Path: result.Path, Created: result.Created, Sync: toSyncSummary(result.Sync)}
	if err != nil {
		out.Sync = &SyncSummary{Enabled: true}
		out.Warning = err.Error()
	}
	return out, nil
}

func handleCreateLog(s *session) mcp.ToolHandlerFor[CreateLogInput, CreateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CreateLogInput) (*mcp.CallToolResult, CreateOutput, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		out, err := toCreateOutput(s.repo.Create(ctx))
		return nil, out, err
	}
}

// CreateIssueInput is the content of a new issue.
type CreateIssueInput struct {
	Title        string `json:"title"                  jsonschema:"short issue title, at most 25 characters (required)"`
	Description  string `json:"description,omitempty"  jsonschema:"what is wrong"`
	Reproduction string `json:"reproduction,omitempty" jsonschema:"steps to reproduce"`
}

func handleCreateIssue(s *session) mcp.ToolHandlerFor[CreateIssueInput, CreateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateIssueInput) (*mcp.CallToolResult, CreateOutput, error) {
		preset := map[string]string{repository.FieldTitle: input.Title}
		if input.Description != "" {
			preset[repository.FieldDescription] = input.Description
		}
		if input.Reproduction != "" {
			preset[repository.FieldReproduction] = input.Reproduction
		}
		issue, err := repository.CollectIssueInput(ctx, nil, preset)
		if err != nil {
			return nil, CreateOutput{}, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		out, err := toCreateOutput(s.repo.CreateIssue(ctx, issue))
		return nil, out, err
	}
}

// --- sync ---

// SyncInput takes no parameters.
type SyncInput struct{}

func handleSync(s *session) mcp.ToolHandlerFor[SyncInput, SyncSummary] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ SyncInput) (*mcp.CallToolResult, SyncSummary, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		result, err := s.repo.Sync(ctx)
		if err != nil {
			return nil, SyncSummary{}, err
		}
		return nil, *toSyncSummary(result), nil
	}
}
