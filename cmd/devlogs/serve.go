package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	devlogsmcp "github.com/gorewood/devlogs/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run devlogs as a Model Context Protocol (MCP) server over stdio.

This exposes the repository in --dir as MCP tools that any MCP-capable
agent environment can use. Entries created through the server are never
opened in an editor.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "devlogs": {
        "command": "devlogs",
        "args": ["serve", "--dir", "/path/to/project/.devlogs"]
      }
    }
  }

Available tools: list_logs, list_issues, last_log, create_log, create_issue, sync`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			repo, err := a.openRepository(false)
			if err != nil {
				return a.fail(err)
			}
			server := devlogsmcp.NewServer(buildVersion(), repo)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
