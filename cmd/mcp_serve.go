package cmd

import (
	"context"
	"log"
	"os"

	"github.com/chris-regnier/moodctl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes journal tools
over stdio transport.

Available tools:
  - list_entries: List entries with risk level and theme, by date range
  - entry_by_date: Fetch the analysis for one date
  - create_entry: Write today's entry and return its analysis

Example MCP client config:
  {
    "mcpServers": {
      "moodctl": {
        "command": "/path/to/moodctl",
        "args": ["mcp-serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// The service client is already initialized in PersistentPreRunE
	if svc == nil {
		return cmd.Help()
	}

	server := mcptools.CreateMCPServer(mcptools.Deps{
		Service: svc,
		Drafts:  drafts,
		DataDir: appConfig.DataDir,
		Now:     now,
	})

	// Log to stderr (stdout is reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("Starting moodctl MCP server (stdio transport)")
	log.Printf("Service: %s", appConfig.Server.BaseURL)
	log.Printf("Data directory: %s", appConfig.DataDir)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// Blocks until the transport is closed
	return server.Run(ctx, &mcp.StdioTransport{})
}
