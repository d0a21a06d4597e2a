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
	askDetail         bool
	askOverview       bool
	askTopK           int
	askMergeThreshold int
	askJSON           bool
	askShowSources    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed claim",
	Long: `Ask a natural-language question about the indexed claim.

The question is routed to one of two retrieval engines: the detail
engine pulls precise chunks for fact questions, the overview engine
pulls page summaries for claim-wide questions. Use --detail or
--overview to bypass the router and force a path.

Examples:
  claimant ask "How long were the skid marks?"
  claimant ask --overview "Summarize the whole claim"
  claimant ask --show-sources "What did the medical exam find?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askDetail, "detail", false, "force detail (needle) retrieval")
	askCmd.Flags().BoolVar(&askOverview, "overview", false, "force overview (summary) retrieval")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of units to retrieve (0 = configured default)")
	askCmd.Flags().IntVar(&askMergeThreshold, "merge-threshold", 0, "sibling chunks needed to pull in the full page (0 = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVarP(&askShowSources, "show-sources", "s", false, "list the retrieved sources under the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if askService == nil {
		return errors.New("ask service not configured")
	}
	if askDetail && askOverview {
		return errors.New("--detail and --overview are mutually exclusive")
	}

	opts := domain.AskOptions{
		TopK:           askTopK,
		MergeThreshold: askMergeThreshold,
	}
	switch {
	case askDetail:
		opts.Intent = domain.IntentDetail
	case askOverview:
		opts.Intent = domain.IntentOverview
	}

	ctx := context.Background()
	answer, err := askService.Ask(ctx, question, opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, answer)
	}

	return outputAskText(cmd, answer)
}

func outputAskJSON(cmd *cobra.Command, answer domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, answer domain.Answer) error {
	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Printf("Intent: %s\n", answer.Intent)

	switch answer.Intent {
	case domain.IntentOverview:
		cmd.Printf("Summaries used: %d\n", answer.SummariesUsed)
	default:
		cmd.Printf("Chunks used: %d", answer.ChunksUsed)
		if answer.PagesMerged > 0 {
			cmd.Printf(" (full pages merged: %d)", answer.PagesMerged)
		}
		cmd.Println()
	}

	if askShowSources && len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, src := range answer.Sources {
			cmd.Printf("  [%d] page %d: %s", i+1, src.PageNumber, src.Header)
			if src.Score > 0 {
				cmd.Printf(" (%.2f)", src.Score)
			}
			cmd.Println()
			cmd.Printf("      %s\n", truncate(src.Content, 160))
		}
	}

	return nil
}

// truncate shortens s to at most n runes, appending an ellipsis marker.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
