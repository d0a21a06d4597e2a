package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
)

// MockAskService implements driving.AskService for CLI tests.
type MockAskService struct {
	AskFunc       func(ctx context.Context, question string, opts domain.AskOptions) (domain.Answer, error)
	RouteFunc     func(ctx context.Context, question string) (domain.RouteIntent, error)
	ExchangesFunc func(ctx context.Context, limit int) ([]domain.Exchange, error)
}

func (m *MockAskService) Ask(
	ctx context.Context, question string, opts domain.AskOptions,
) (domain.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, opts)
	}
	return domain.Answer{
		Text:       "The skid marks measured 18 metres.",
		Intent:     domain.IntentDetail,
		ChunksUsed: 3,
		Sources: []domain.Source{
			{
				ID:         "chunk_1",
				PageID:     "page_2",
				PageNumber: 2,
				Header:     "Police Report",
				Type:       domain.PageTypeDetails,
				Content:    "Skid marks of approximately 18 metres were recorded.",
				Score:      0.91,
			},
		},
	}, nil
}

func (m *MockAskService) Route(ctx context.Context, question string) (domain.RouteIntent, error) {
	if m.RouteFunc != nil {
		return m.RouteFunc(ctx, question)
	}
	return domain.IntentDetail, nil
}

func (m *MockAskService) Exchanges(ctx context.Context, limit int) ([]domain.Exchange, error) {
	if m.ExchangesFunc != nil {
		return m.ExchangesFunc(ctx, limit)
	}
	return []domain.Exchange{
		{
			ID:        "ex_1",
			Question:  "how long were the skid marks?",
			Intent:    domain.IntentDetail,
			Answer:    "The skid marks measured 18 metres.",
			CreatedAt: time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		},
	}, nil
}

// MockIndexService implements driving.IndexService for CLI tests.
type MockIndexService struct {
	IndexClaimFunc func(ctx context.Context, pages []domain.Page) (driving.IndexStats, error)
	PagesFunc      func(ctx context.Context) ([]domain.Page, error)
	StatusFunc     func(ctx context.Context) (driving.CorpusStatus, error)
}

func (m *MockIndexService) IndexClaim(
	ctx context.Context, pages []domain.Page,
) (driving.IndexStats, error) {
	if m.IndexClaimFunc != nil {
		return m.IndexClaimFunc(ctx, pages)
	}
	return driving.IndexStats{
		PagesIndexed:     len(pages),
		ChunksCreated:    len(pages) * 4,
		SummariesCreated: len(pages),
	}, nil
}

func (m *MockIndexService) Pages(ctx context.Context) ([]domain.Page, error) {
	if m.PagesFunc != nil {
		return m.PagesFunc(ctx)
	}
	return nil, nil
}

func (m *MockIndexService) Status(ctx context.Context) (driving.CorpusStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	return driving.CorpusStatus{PageCount: 5, ChunkCount: 22, SummaryCount: 5}, nil
}

// MockSettingsService implements driving.SettingsService for CLI tests.
type MockSettingsService struct {
	GetFunc      func() (*domain.AppSettings, error)
	SaveFunc     func(settings *domain.AppSettings) error
	ValidateFunc func() error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	settings := domain.DefaultAppSettings()
	return &settings, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(settings)
	}
	return nil
}

func (m *MockSettingsService) SetEmbeddingProvider(
	provider domain.AIProvider, model, apiKey string,
) error {
	return nil
}

func (m *MockSettingsService) SetLLMProvider(
	provider domain.AIProvider, model, apiKey string,
) error {
	return nil
}

func (m *MockSettingsService) SetRetrieval(retrieval domain.RetrievalSettings) error {
	return nil
}

func (m *MockSettingsService) Validate() error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc()
	}
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *MockSettingsService) ValidateEmbeddingConfig() error {
	return nil
}

func (m *MockSettingsService) ValidateLLMConfig() error {
	return nil
}

// setupTestServices swaps the package-level services for mocks and
// returns a cleanup that restores the previous values.
func setupTestServices() func() {
	prevAsk := askService
	prevIndex := indexService
	prevSettings := settingsService

	askService = &MockAskService{}
	indexService = &MockIndexService{}
	settingsService = &MockSettingsService{}

	return func() {
		askService = prevAsk
		indexService = prevIndex
		settingsService = prevSettings
	}
}
