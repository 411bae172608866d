package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MarkZakelj/pytoty/internal/core"
	"github.com/MarkZakelj/pytoty/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run pytoty as an MCP server over stdio",
	Long: `Run pytoty as a Model Context Protocol server communicating over
stdin/stdout, exposing convert_source and scan_models tools to AI coding
assistants.

Register it in your assistant's MCP configuration as "pytoty mcp".`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// stdout carries the MCP protocol, so the server gets its own converter
	// with progress echo silenced.
	converter := core.NewConverter(io.Discard, nil, nil)

	server := mcp.NewServer(converter, appVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
