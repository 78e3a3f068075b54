package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/retrieval-engine/internal/adapters/driving/mcp"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing the index_data and
search_notes tools.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start a streamable HTTP server instead, for the MCP Inspector
or remote access.

Examples:
  # Stdio mode (default)
  retrieval-engine serve

  # HTTP mode
  retrieval-engine serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "notes": {
        "command": "/path/to/retrieval-engine",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := initServices(cmd.Context(), false); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Ingest:  ingestService,
		Query:   queryService,
		Status:  statusService,
		DataDir: appSettings.DataDir,
	})
	if err != nil {
		return err
	}

	if servePort > 0 {
		addr := fmt.Sprintf(":%d", servePort)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
