package mcp

import (
	"context"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
)

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer    domain.Answer
	intent    domain.RouteIntent
	exchanges []domain.Exchange
	err       error

	lastQuestion string
	lastOpts     domain.AskOptions
}

func (m *mockAskService) Ask(
	_ context.Context,
	question string,
	opts domain.AskOptions,
) (domain.Answer, error) {
	m.lastQuestion = question
	m.lastOpts = opts
	return m.answer, m.err
}

func (m *mockAskService) Route(_ context.Context, question string) (domain.RouteIntent, error) {
	m.lastQuestion = question
	return m.intent, m.err
}

func (m *mockAskService) Exchanges(_ context.Context, _ int) ([]domain.Exchange, error) {
	return m.exchanges, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	pages  []domain.Page
	stats  driving.IndexStats
	status driving.CorpusStatus
	err    error
}

func (m *mockIndexService) IndexClaim(_ context.Context, _ []domain.Page) (driving.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockIndexService) Pages(_ context.Context) ([]domain.Page, error) {
	return m.pages, m.err
}

func (m *mockIndexService) Status(_ context.Context) (driving.CorpusStatus, error) {
	return m.status, m.err
}

// mockClaimStore is a mock implementation of driven.ClaimStore.
type mockClaimStore struct {
	page      *domain.Page
	pages     []domain.Page
	chunks    []domain.Chunk
	summaries []domain.Summary
	exchanges []domain.Exchange
	err       error
}

func (m *mockClaimStore) SavePage(_ context.Context, _ *domain.Page) error {
	return m.err
}

func (m *mockClaimStore) SaveChunks(_ context.Context, _ []domain.Chunk) error {
	return m.err
}

func (m *mockClaimStore) SaveSummary(_ context.Context, _ *domain.Summary) error {
	return m.err
}

func (m *mockClaimStore) SaveExchange(_ context.Context, _ *domain.Exchange) error {
	return m.err
}

func (m *mockClaimStore) GetPage(_ context.Context, _ string) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockClaimStore) ListPages(_ context.Context) ([]domain.Page, error) {
	return m.pages, m.err
}

func (m *mockClaimStore) ListChunks(_ context.Context) ([]domain.Chunk, error) {
	return m.chunks, m.err
}

func (m *mockClaimStore) ListSummaries(_ context.Context) ([]domain.Summary, error) {
	return m.summaries, m.err
}

func (m *mockClaimStore) ListExchanges(_ context.Context, _ int) ([]domain.Exchange, error) {
	return m.exchanges, m.err
}
