package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claimant-cli/internal/claimfile"
)

var indexCmd = &cobra.Command{
	Use:   "index [claim file]",
	Short: "Index a claim document",
	Long: `Index a claim document from a JSON file.

Each page is segmented into sentence-bounded chunks and summarised by
the configured LLM; chunks and summaries are embedded and persisted.
Re-indexing the same file overwrites the previous records in place.

Example:
  claimant index claim.json`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	pages, err := claimfile.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading claim file: %w", err)
	}

	cmd.Printf("Indexing %d page(s) from %s...\n", len(pages), args[0])

	ctx := context.Background()
	stats, err := indexService.IndexClaim(ctx, pages)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Println("Indexing complete.")
	cmd.Printf("  Pages indexed:      %d\n", stats.PagesIndexed)
	cmd.Printf("  Chunks created:     %d\n", stats.ChunksCreated)
	cmd.Printf("  Summaries created:  %d\n", stats.SummariesCreated)

	return nil
}
