package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent questions and answers",
	Long:  `Show the most recent question/answer exchanges, newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of exchanges (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output exchanges as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	ctx := context.Background()
	exchanges, err := askService.Exchanges(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if historyJSON {
		return outputHistoryJSON(cmd, exchanges)
	}

	return outputHistoryTable(cmd, exchanges)
}

func outputHistoryJSON(cmd *cobra.Command, exchanges []domain.Exchange) error {
	data, err := json.MarshalIndent(exchanges, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal exchanges: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputHistoryTable(cmd *cobra.Command, exchanges []domain.Exchange) error {
	if len(exchanges) == 0 {
		cmd.Println("No questions asked yet.")
		return nil
	}

	for i, ex := range exchanges {
		cmd.Printf("[%d] %s (%s)\n", i+1, ex.CreatedAt.Format("2006-01-02 15:04"), ex.Intent)
		cmd.Printf("  Q: %s\n", ex.Question)
		cmd.Printf("  A: %s\n", truncate(ex.Answer, 200))
		cmd.Println()
	}

	return nil
}
