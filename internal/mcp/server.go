// Package mcp provides a Model Context Protocol server for devlogs.
// It exposes repository operations as MCP tools so an agent can read and
// write a project's devlog without the interactive CLI.
package mcp

import (
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/devlogs/internal/repository"
)

// NewServer creates an MCP server with all devlogs tools registered.
// The repository should be built without an editor; tools never block on one.
func NewServer(version string, repo *repository.Repository) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "devlogs",
		Version: version,
	}, nil)
	registerTools(server, &session{repo: repo})
	return server
}

// session serializes tool calls against one repository.
type session struct {
	mu   sync.Mutex
	repo *repository.Repository
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that add files.
func writeAnnotations(idempotent bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  idempotent,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all devlogs tools to the server.
func registerTools(server *mcp.Server, s *session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_logs",
		Description: "List dated log entries, newest first unless ascending=true. Supports since/until (RFC3339 or YYYY-MM-DD) and limit.",
		Annotations: readOnlyAnnotations(),
	}, handleListLogs(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_issues",
		Description: "List numbered issue entries, highest number first unless ascending=true.",
		Annotations: readOnlyAnnotations(),
	}, handleListIssues(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "last_log",
		Description: "Return the most recent log entry including its markdown content.",
		Annotations: readOnlyAnnotations(),
	}, handleLastLog(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_log",
		Description: "Create the log entry for the current minute from the log template, or return the existing one. Mirrors the repository afterwards when mirroring is enabled.",
		Annotations: writeAnnotations(true),
	}, handleCreateLog(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_issue",
		Description: "Create the next numbered issue (e.g. RLP-4) from the issue template. Mirrors the repository afterwards when mirroring is enabled.",
		Annotations: writeAnnotations(false),
	}, handleCreateIssue(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync",
		Description: "Mirror the repository directory to its configured mirror path. Does nothing when mirroring is disabled.",
		Annotations: writeAnnotations(true),
	}, handleSync(s))
}
