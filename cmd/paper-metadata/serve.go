package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-metadata/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the paper_metadata tool over MCP stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing a single tool,
paper_metadata, which resolves an identifier and returns the record as JSON.

Logs go to stderr; stdout carries only JSON-RPC frames.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.log.Info("mcp server starting", zap.String("version", version))
		srv := mcp.NewServer(app.resolver, version, app.log)
		return srv.Serve(cmd.Context(), os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
