package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c4board/c4board/internal/client"
	"github.com/c4board/c4board/internal/domain/backup"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace a running server's data with a backup file",
	Long: `Upload a backup archive to a running server. The server replaces all of
its projects and models in one transaction; on any failure the previous data
is left intact.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading backup file: %w", err)
		}

		var archive backup.Archive
		if err := json.Unmarshal(data, &archive); err != nil {
			return fmt.Errorf("parsing backup file: %w", err)
		}

		c, err := client.New(cfg.Client.ServerURL)
		if err != nil {
			return err
		}

		result, err := c.Restore(cmd.Context(), archive)
		if err != nil {
			return fmt.Errorf("restoring backup: %w", err)
		}

		fmt.Printf("restored %d projects, %d models\n", result.Projects, result.Models)
		return nil
	},
}
