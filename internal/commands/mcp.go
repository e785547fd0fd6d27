package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/c4board/c4board/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Expose project and model operations as MCP tools over stdio, backed by
the same database as the HTTP API. Intended for local assistant clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		db, svcs, err := openServices(logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.Auth.Token != "" {
			// Stdio clients cannot send headers; the transport is local anyway.
			logger.Warn("auth token is ignored on the stdio transport")
		}

		server := mcp.NewServer(mcp.Config{
			Services: mcp.Services{
				Projects: svcs.projects,
				Models:   svcs.models,
				Backups:  svcs.backups,
			},
			Logger: logger,
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-stop
			logger.Info("shutting down")
			cancel()
		}()

		logger.Info("starting stdio transport")
		if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
			return fmt.Errorf("stdio server error: %w", err)
		}
		return nil
	},
}
