package driving

import (
	"context"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

// IndexService builds the two-tier retrieval corpus from claim pages.
type IndexService interface {
	// IndexClaim segments, embeds and persists the given pages, and
	// generates one summary per page. Existing records with the same IDs
	// are overwritten.
	IndexClaim(ctx context.Context, pages []domain.Page) (IndexStats, error)

	// Pages returns all indexed pages ordered by page number.
	Pages(ctx context.Context) ([]domain.Page, error)

	// Status reports the size of the indexed corpus.
	Status(ctx context.Context) (CorpusStatus, error)
}

// IndexStats reports what one indexing run produced.
type IndexStats struct {
	// PagesIndexed is the number of pages persisted.
	PagesIndexed int

	// ChunksCreated is the total number of chunks across all pages.
	ChunksCreated int

	// SummariesCreated is the number of page summaries generated.
	SummariesCreated int
}

// CorpusStatus reports the current size of the indexed corpus.
type CorpusStatus struct {
	// PageCount is the number of indexed pages.
	PageCount int

	// ChunkCount is the number of indexed chunks.
	ChunkCount int

	// SummaryCount is the number of indexed summaries.
	SummaryCount int
}
