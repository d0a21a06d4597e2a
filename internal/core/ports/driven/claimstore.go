package driven

import (
	"context"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

// ClaimStore persists the indexed claim: pages, chunks, summaries and the
// question log. Backed by SQLite for metadata and embedding storage.
//
// All writes are insert-or-replace keyed by the caller-chosen ID; the core
// never deletes records. Re-indexing overwrites through deterministic IDs.
type ClaimStore interface {
	// SavePage stores or updates a page.
	SavePage(ctx context.Context, page *domain.Page) error

	// SaveChunks stores chunks for a page.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// SaveSummary stores or updates the summary for a page.
	SaveSummary(ctx context.Context, summary *domain.Summary) error

	// SaveExchange appends a question/answer pair to the ask log.
	SaveExchange(ctx context.Context, exchange *domain.Exchange) error

	// GetPage retrieves a page by ID.
	GetPage(ctx context.Context, id string) (*domain.Page, error)

	// ListPages returns all pages ordered by page number.
	ListPages(ctx context.Context) ([]domain.Page, error)

	// ListChunks returns all chunks across all pages.
	ListChunks(ctx context.Context) ([]domain.Chunk, error)

	// ListSummaries returns all page summaries.
	ListSummaries(ctx context.Context) ([]domain.Summary, error)

	// ListExchanges returns the most recent exchanges, newest first.
	// A limit of 0 returns all.
	ListExchanges(ctx context.Context, limit int) ([]domain.Exchange, error)
}
