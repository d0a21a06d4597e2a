package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
	"github.com/custodia-labs/claimant-cli/internal/logger"
)

// Ensure AskService implements the interfaces.
var (
	_ driving.AskService      = (*AskService)(nil)
	_ driven.PromptStoreAware = (*AskService)(nil)
)

// Fixed answer texts. Retrieval and generation failures are reported
// through these so the answer object stays well-formed in every case.
const (
	msgNoInformation    = "I couldn't find relevant information to answer your question."
	msgGenerationFailed = "An error occurred while generating the answer."
)

// AskService answers questions over the indexed claim. It routes each
// question to the detail engine (needle chunks) or the overview engine
// (page summaries) and records the exchange.
type AskService struct {
	claimStore       driven.ClaimStore
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
	settingsService  driving.SettingsService
	promptStore      driven.PromptStore
}

// NewAskService creates a new ask service.
// The settingsService parameter is optional (can be nil); defaults are
// used when it is absent or fails.
func NewAskService(
	claimStore driven.ClaimStore,
	embeddingService driven.EmbeddingService,
	llmService driven.LLMService,
	settingsService driving.SettingsService,
) *AskService {
	return &AskService{
		claimStore:       claimStore,
		embeddingService: embeddingService,
		llmService:       llmService,
		settingsService:  settingsService,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AskService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ask answers a question over the indexed claim.
// The question is classified first unless opts.Intent forces a path.
// Retrieval and generation failures surface through the answer text;
// an error return means the question or service wiring is unusable.
func (s *AskService) Ask(
	ctx context.Context, question string, opts domain.AskOptions,
) (domain.Answer, error) {
	logger.Section("Ask")

	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	if s.claimStore == nil {
		return domain.Answer{}, domain.ErrStoreUnavailable
	}
	if s.embeddingService == nil {
		return domain.Answer{}, domain.ErrEmbeddingUnavailable
	}
	if s.llmService == nil {
		return domain.Answer{}, domain.ErrLLMUnavailable
	}

	logger.Debug("Question: %q", question)

	settings := s.currentSettings()

	intent := opts.Intent
	if intent == "" {
		intent = s.classify(ctx, question, settings.Generation)
	} else {
		logger.Debug("Intent forced: %s", intent)
	}
	logger.Info("Intent: %s", intent)

	var answer domain.Answer
	switch intent {
	case domain.IntentOverview:
		answer = s.answerOverview(ctx, question, opts, settings)
	default:
		answer = s.answerDetail(ctx, question, opts, settings)
	}
	answer.Intent = intent

	s.recordExchange(ctx, question, answer)

	return answer, nil
}

// Route classifies the question without answering it.
func (s *AskService) Route(ctx context.Context, question string) (domain.RouteIntent, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	if s.llmService == nil {
		return "", domain.ErrLLMUnavailable
	}

	settings := s.currentSettings()
	return s.classify(ctx, question, settings.Generation), nil
}

// Exchanges returns the most recent question/answer pairs, newest first.
func (s *AskService) Exchanges(ctx context.Context, limit int) ([]domain.Exchange, error) {
	if s.claimStore == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", domain.ErrInvalidInput)
	}

	exchanges, err := s.claimStore.ListExchanges(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	return exchanges, nil
}

// currentSettings reads the live settings, falling back to defaults.
func (s *AskService) currentSettings() domain.AppSettings {
	if s.settingsService == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := s.settingsService.Get()
	if err != nil || settings == nil {
		logger.Warn("Failed to load settings: %v (using defaults)", err)
		return domain.DefaultAppSettings()
	}
	return *settings
}

// recordExchange appends the answer to the ask log. Best effort: a
// persistence failure is logged and never fails the answer.
func (s *AskService) recordExchange(ctx context.Context, question string, answer domain.Answer) {
	exchange := &domain.Exchange{
		ID:            uuid.New().String(),
		Question:      question,
		Intent:        answer.Intent,
		Answer:        answer.Text,
		ChunksUsed:    answer.ChunksUsed,
		PagesMerged:   answer.PagesMerged,
		SummariesUsed: answer.SummariesUsed,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.claimStore.SaveExchange(ctx, exchange); err != nil {
		logger.Warn("Failed to record exchange: %v", err)
		return
	}
	logger.Debug("Exchange recorded: %s", exchange.ID)
}

// loadPrompt returns the named prompt from the prompt store, or the
// fallback when no store is set or the load fails.
func (s *AskService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		return fallback
	}
	return prompt
}
