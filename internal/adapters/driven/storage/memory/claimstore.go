package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
)

// Ensure ClaimStore implements the interface.
var _ driven.ClaimStore = (*ClaimStore)(nil)

// ClaimStore is an in-memory implementation of driven.ClaimStore.
// It mirrors the SQLite store's semantics: writes are insert-or-replace
// keyed by ID, and nothing is ever deleted.
type ClaimStore struct {
	mu        sync.RWMutex
	pages     map[string]domain.Page
	chunks    map[string]domain.Chunk
	summaries map[string]domain.Summary
	exchanges []domain.Exchange
}

// NewClaimStore creates a new in-memory claim store.
func NewClaimStore() *ClaimStore {
	return &ClaimStore{
		pages:     make(map[string]domain.Page),
		chunks:    make(map[string]domain.Chunk),
		summaries: make(map[string]domain.Summary),
	}
}

// SavePage stores or updates a page.
func (s *ClaimStore) SavePage(_ context.Context, page *domain.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[page.ID] = *page
	return nil
}

// SaveChunks stores chunks for a page.
func (s *ClaimStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

// SaveSummary stores or updates the summary for a page.
func (s *ClaimStore) SaveSummary(_ context.Context, summary *domain.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.ID] = *summary
	return nil
}

// SaveExchange appends a question/answer pair to the ask log.
func (s *ClaimStore) SaveExchange(_ context.Context, exchange *domain.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, *exchange)
	return nil
}

// GetPage retrieves a page by ID.
func (s *ClaimStore) GetPage(_ context.Context, id string) (*domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &page, nil
}

// ListPages returns all pages ordered by page number.
func (s *ClaimStore) ListPages(_ context.Context) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Page, 0, len(s.pages))
	for id := range s.pages {
		result = append(result, s.pages[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

// ListChunks returns all chunks across all pages, ordered by page number
// then position.
func (s *ClaimStore) ListChunks(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Chunk, 0, len(s.chunks))
	for id := range s.chunks {
		result = append(result, s.chunks[id])
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].PageNumber != result[j].PageNumber {
			return result[i].PageNumber < result[j].PageNumber
		}
		return result[i].Position < result[j].Position
	})
	return result, nil
}

// ListSummaries returns all page summaries ordered by page number.
func (s *ClaimStore) ListSummaries(_ context.Context) ([]domain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Summary, 0, len(s.summaries))
	for id := range s.summaries {
		result = append(result, s.summaries[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PageNumber < result[j].PageNumber
	})
	return result, nil
}

// ListExchanges returns the most recent exchanges, newest first.
// A limit of 0 returns all.
func (s *ClaimStore) ListExchanges(_ context.Context, limit int) ([]domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Exchange, len(s.exchanges))
	copy(result, s.exchanges)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}
