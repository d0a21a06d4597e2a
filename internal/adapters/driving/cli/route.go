package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route [question]",
	Short: "Show how a question would be routed",
	Long: `Classify a question without answering it.

Prints whether the question would go to the detail engine (precise
fact lookup over chunks) or the overview engine (synthesis over page
summaries). Useful for checking the router before a real ask.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	ctx := context.Background()
	intent, err := askService.Route(ctx, args[0])
	if err != nil {
		return fmt.Errorf("routing failed: %w", err)
	}

	cmd.Printf("Intent: %s\n", intent)
	cmd.Printf("  %s\n", intent.Description())
	return nil
}
