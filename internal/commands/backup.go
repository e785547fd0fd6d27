package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/c4board/c4board/internal/client"
)

var backupOutput string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Download a full backup from a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.New(cfg.Client.ServerURL)
		if err != nil {
			return err
		}

		archive, err := c.ExportBackup(cmd.Context())
		if err != nil {
			return fmt.Errorf("exporting backup: %w", err)
		}

		out := backupOutput
		if out == "" {
			out = fmt.Sprintf("c4board-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
		}

		data, err := json.MarshalIndent(archive, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding backup: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing backup file: %w", err)
		}

		fmt.Printf("wrote %s (%d projects, %d models)\n", out, len(archive.Projects), len(archive.Models))
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "output file (default: c4board-backup-<date>.json)")
}
