package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the indexed corpus and configuration status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	ctx := context.Background()
	status, err := indexService.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read corpus status: %w", err)
	}

	cmd.Println("Corpus")
	cmd.Printf("  Pages:      %d\n", status.PageCount)
	cmd.Printf("  Chunks:     %d\n", status.ChunkCount)
	cmd.Printf("  Summaries:  %d\n", status.SummaryCount)
	cmd.Println()

	if status.PageCount == 0 {
		cmd.Println("No claim indexed yet. Run 'claimant index <claim.json>' to build the corpus.")
		cmd.Println()
	}

	if settingsService != nil {
		if err := settingsService.Validate(); err != nil {
			cmd.Printf("Configuration: %v\n", err)
			cmd.Println("Run 'claimant settings wizard' to fix configuration issues.")
		} else {
			cmd.Println("Configuration is valid.")
		}
	}

	return nil
}
