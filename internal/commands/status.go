package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c4board/c4board/internal/client"
	"github.com/c4board/c4board/internal/domain/backup"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check a running server's health",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.New(cfg.Client.ServerURL)
		if err != nil {
			return err
		}

		report, err := c.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("checking status: %w", err)
		}

		fmt.Printf("db: %s (%dms)\n", report.DB.Status, report.DB.LatencyMs)
		if report.DB.Status != backup.StatusOK {
			if report.DB.Error != "" {
				fmt.Printf("error: %s\n", report.DB.Error)
			}
			return fmt.Errorf("database is %s", report.DB.Status)
		}
		return nil
	},
}
