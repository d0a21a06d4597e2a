package services

import (
	"context"

	"github.com/custodia-labs/claimant-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
)

// --- Mock implementations shared across service tests ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Embed returns the per-text override when present, else the default
// embedding.
type mockEmbeddingService struct {
	embedding  []float32
	embeddings map[string][]float32
	embedErr   error
	batchErr   error
	dims       int
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if v, ok := m.embeddings[text]; ok {
		return v, nil
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.embeddings[text]; ok {
			result[i] = v
		} else {
			result[i] = m.embedding
		}
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 1536
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockLLMService implements driven.LLMService for testing.
// Chat replays chatReplies in call order, repeating the last entry, and
// captures the most recent messages and options for assertions.
type mockLLMService struct {
	chatReplies   []string
	chatErr       error
	generateReply string
	generateErr   error

	chatCalls    int
	lastMessages []driven.ChatMessage
	lastChatOpts driven.ChatOptions
	prompts      []string
	lastGenOpts  driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.lastGenOpts = opts
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.generateReply, nil
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.chatCalls++
	m.lastMessages = messages
	m.lastChatOpts = opts
	if m.chatErr != nil {
		return "", m.chatErr
	}
	if len(m.chatReplies) == 0 {
		return "", nil
	}
	i := m.chatCalls - 1
	if i >= len(m.chatReplies) {
		i = len(m.chatReplies) - 1
	}
	return m.chatReplies[i], nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

// lastUserMessage returns the content of the trailing user message from
// the most recent Chat call.
func (m *mockLLMService) lastUserMessage() string {
	for i := len(m.lastMessages) - 1; i >= 0; i-- {
		if m.lastMessages[i].Role == "user" {
			return m.lastMessages[i].Content
		}
	}
	return ""
}

// lastSystemMessage returns the content of the system message from the
// most recent Chat call.
func (m *mockLLMService) lastSystemMessage() string {
	for _, msg := range m.lastMessages {
		if msg.Role == "system" {
			return msg.Content
		}
	}
	return ""
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}

// failingClaimStore wraps the in-memory claim store with injectable
// failures.
type failingClaimStore struct {
	*memory.ClaimStore
	listChunksErr    error
	listSummariesErr error
	getPageErr       error
	saveExchangeErr  error
	savePageErr      error
}

func (s *failingClaimStore) ListChunks(ctx context.Context) ([]domain.Chunk, error) {
	if s.listChunksErr != nil {
		return nil, s.listChunksErr
	}
	return s.ClaimStore.ListChunks(ctx)
}

func (s *failingClaimStore) ListSummaries(ctx context.Context) ([]domain.Summary, error) {
	if s.listSummariesErr != nil {
		return nil, s.listSummariesErr
	}
	return s.ClaimStore.ListSummaries(ctx)
}

func (s *failingClaimStore) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	if s.getPageErr != nil {
		return nil, s.getPageErr
	}
	return s.ClaimStore.GetPage(ctx, id)
}

func (s *failingClaimStore) SaveExchange(ctx context.Context, exchange *domain.Exchange) error {
	if s.saveExchangeErr != nil {
		return s.saveExchangeErr
	}
	return s.ClaimStore.SaveExchange(ctx, exchange)
}

func (s *failingClaimStore) SavePage(ctx context.Context, page *domain.Page) error {
	if s.savePageErr != nil {
		return s.savePageErr
	}
	return s.ClaimStore.SavePage(ctx, page)
}
