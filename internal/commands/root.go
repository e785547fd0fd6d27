// Package commands wires the c4board command line: the API server, the MCP
// server and the remote admin commands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c4board/c4board/internal/config"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "c4board",
	Short: "Self-hosted C4 architecture diagram workspace",
	Long: `c4board stores hierarchical C4 architecture diagrams (systems,
containers, components and code elements) as models grouped into projects.

Run the HTTP API with "c4board serve", expose the same data to assistants
over MCP with "c4board mcp", and manage a running server with the backup,
restore and status commands.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $C4BOARD_CONFIG_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() {
	if cfgFile != "" {
		os.Setenv("C4BOARD_CONFIG_PATH", cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
}

// newLogger builds the process logger from config. Logs go to stderr so
// command output and the MCP stdio channel stay clean.
func newLogger() *slog.Logger {
	return newLoggerTo(os.Stderr)
}

func newLoggerTo(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Log.Level)}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
