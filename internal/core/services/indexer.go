package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
	"github.com/custodia-labs/claimant-cli/internal/logger"
	"github.com/custodia-labs/claimant-cli/internal/segmenter"
)

// Ensure IndexService implements the interfaces.
var (
	_ driving.IndexService    = (*IndexService)(nil)
	_ driven.PromptStoreAware = (*IndexService)(nil)
)

// defaultSummariseOverviewPrompt generates the synopsis of the claim
// overview page. Placeholders: header, date, parties, content; the date
// is repeated in the instructions.
const defaultSummariseOverviewPrompt = `You are analyzing an insurance claim overview page.

Page Header: %[1]s
Claim Date: %[2]s
Involved Parties: %[3]s
Content: %[4]s

Create a brief summary (75-100 words maximum) that captures:
1. Claim ID and date (use Claim Date: %[2]s)
2. Policyholder name and vehicle
3. Incident type, location, and when it occurred
4. Total estimated claim value

Include the specific date. Keep it concise and factual. Summary:`

// defaultSummariseDetailsPrompt generates the synopsis of a detail page.
// Same placeholder order as the overview prompt.
const defaultSummariseDetailsPrompt = `You are analyzing an insurance claim detail page.

Page Header: %[1]s
Event Date: %[2]s
Involved Parties: %[3]s
Content: %[4]s

Create a brief summary (75-100 words maximum) that captures:
1. When this event occurred (use the Event Date: %[2]s)
2. What happened (2-3 key actions)
3. Key people/organizations involved (from the Involved Parties listed above)
4. Most important finding or detail
5. Any costs or financial amounts mentioned

Include the specific date and relevant parties in your summary. Be concise and focus on facts only. Summary:`

// IndexService builds the two-tier corpus: it segments pages into
// overlapping chunks, generates one summary per page, embeds both tiers
// and persists everything through the claim store.
type IndexService struct {
	claimStore       driven.ClaimStore
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
	settingsService  driving.SettingsService
	promptStore      driven.PromptStore
}

// NewIndexService creates a new index service.
// The settingsService parameter is optional (can be nil); segmentation
// defaults are used when it is absent or fails.
func NewIndexService(
	claimStore driven.ClaimStore,
	embeddingService driven.EmbeddingService,
	llmService driven.LLMService,
	settingsService driving.SettingsService,
) *IndexService {
	return &IndexService{
		claimStore:       claimStore,
		embeddingService: embeddingService,
		llmService:       llmService,
		settingsService:  settingsService,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *IndexService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// IndexClaim segments, summarises, embeds and persists the given pages.
// Records are keyed by deterministic IDs, so re-indexing the same pages
// overwrites in place. Indexing stops at the first failing page; pages
// persisted before the failure stay persisted, and the returned stats
// cover the completed pages.
func (s *IndexService) IndexClaim(ctx context.Context, pages []domain.Page) (driving.IndexStats, error) {
	logger.Section("Index Claim")

	var stats driving.IndexStats

	if len(pages) == 0 {
		return stats, fmt.Errorf("%w: no pages to index", domain.ErrInvalidInput)
	}
	if s.claimStore == nil {
		return stats, domain.ErrStoreUnavailable
	}
	if s.embeddingService == nil {
		return stats, domain.ErrEmbeddingUnavailable
	}
	if s.llmService == nil {
		return stats, domain.ErrLLMUnavailable
	}

	retrieval := s.retrievalSettings()
	seg := segmenter.New(
		segmenter.WithChunkSize(retrieval.ChunkSize),
		segmenter.WithOverlap(retrieval.ChunkOverlap),
		segmenter.WithMinChunkSize(retrieval.MinChunkSize),
	)
	logger.Debug("Segmentation: chunk_size=%d, overlap=%d, min_chunk_size=%d",
		retrieval.ChunkSize, retrieval.ChunkOverlap, retrieval.MinChunkSize)

	for _, page := range pages {
		if err := validatePage(page); err != nil {
			return stats, err
		}
	}

	for _, page := range pages {
		logger.Info("Indexing %s: %s (%d chars)", page.ID, page.Header, len(page.Content))

		if err := s.indexPage(ctx, page, seg, &stats); err != nil {
			return stats, err
		}
		stats.PagesIndexed++
	}

	logger.Info("Indexed %d pages: %d chunks, %d summaries",
		stats.PagesIndexed, stats.ChunksCreated, stats.SummariesCreated)
	return stats, nil
}

// Pages returns all indexed pages ordered by page number.
func (s *IndexService) Pages(ctx context.Context) ([]domain.Page, error) {
	if s.claimStore == nil {
		return nil, domain.ErrStoreUnavailable
	}
	pages, err := s.claimStore.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// Status reports the size of the indexed corpus.
func (s *IndexService) Status(ctx context.Context) (driving.CorpusStatus, error) {
	var status driving.CorpusStatus

	if s.claimStore == nil {
		return status, domain.ErrStoreUnavailable
	}

	pages, err := s.claimStore.ListPages(ctx)
	if err != nil {
		return status, fmt.Errorf("list pages: %w", err)
	}
	chunks, err := s.claimStore.ListChunks(ctx)
	if err != nil {
		return status, fmt.Errorf("list chunks: %w", err)
	}
	summaries, err := s.claimStore.ListSummaries(ctx)
	if err != nil {
		return status, fmt.Errorf("list summaries: %w", err)
	}

	status.PageCount = len(pages)
	status.ChunkCount = len(chunks)
	status.SummaryCount = len(summaries)
	return status, nil
}

// indexPage persists one page with its chunks and summary.
func (s *IndexService) indexPage(
	ctx context.Context, page domain.Page, seg *segmenter.Segmenter, stats *driving.IndexStats,
) error {
	now := time.Now().UTC()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	page.UpdatedAt = now

	if err := s.claimStore.SavePage(ctx, &page); err != nil {
		return fmt.Errorf("save page %s: %w", page.ID, err)
	}

	chunks := seg.Segment(page)
	logger.Debug("  %d chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}
	embeddings, err := s.embeddingService.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks for page %s: %w", page.ID, err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embed chunks for page %s: got %d embeddings for %d chunks",
			page.ID, len(embeddings), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	if err := s.claimStore.SaveChunks(ctx, chunks); err != nil {
		return fmt.Errorf("save chunks for page %s: %w", page.ID, err)
	}
	stats.ChunksCreated += len(chunks)

	summary, err := s.summarisePage(ctx, page)
	if err != nil {
		return err
	}
	if err := s.claimStore.SaveSummary(ctx, summary); err != nil {
		return fmt.Errorf("save summary for page %s: %w", page.ID, err)
	}
	stats.SummariesCreated++
	logger.Debug("  summary %s (%d chars)", summary.ID, len(summary.Content))

	return nil
}

// summarisePage generates and embeds the page synopsis, choosing the
// prompt by page type.
func (s *IndexService) summarisePage(ctx context.Context, page domain.Page) (*domain.Summary, error) {
	name := driven.PromptSummariseDetails
	fallback := defaultSummariseDetailsPrompt
	if page.Type == domain.PageTypeOverview {
		name = driven.PromptSummariseOverview
		fallback = defaultSummariseOverviewPrompt
	}

	date := page.Date
	if date == "" {
		date = "date not specified"
	}
	parties := "not specified"
	if len(page.Parties) > 0 {
		parties = strings.Join(page.Parties, ", ")
	}

	prompt := fmt.Sprintf(s.loadPrompt(name, fallback), page.Header, date, parties, page.Content)

	text, err := s.llmService.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   s.generationSettings().OverviewMaxTokens,
		Temperature: s.generationSettings().OverviewTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("summarise page %s: %w", page.ID, err)
	}
	text = strings.TrimSpace(text)

	embedding, err := s.embeddingService.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed summary for page %s: %w", page.ID, err)
	}

	return &domain.Summary{
		ID:             page.ID + "_summary",
		PageID:         page.ID,
		PageNumber:     page.Number,
		Header:         page.Header,
		Date:           page.Date,
		Parties:        page.Parties,
		Type:           page.Type,
		Content:        text,
		OriginalLength: len(page.Content),
		Embedding:      embedding,
	}, nil
}

// retrievalSettings reads the live retrieval settings, falling back to
// defaults.
func (s *IndexService) retrievalSettings() domain.RetrievalSettings {
	if s.settingsService == nil {
		return domain.DefaultRetrievalSettings()
	}
	settings, err := s.settingsService.Get()
	if err != nil || settings == nil {
		logger.Warn("Failed to load settings: %v (using defaults)", err)
		return domain.DefaultRetrievalSettings()
	}
	return settings.Retrieval
}

// generationSettings reads the live generation settings, falling back to
// defaults.
func (s *IndexService) generationSettings() domain.GenerationSettings {
	if s.settingsService == nil {
		return domain.DefaultGenerationSettings()
	}
	settings, err := s.settingsService.Get()
	if err != nil || settings == nil {
		return domain.DefaultGenerationSettings()
	}
	return settings.Generation
}

// loadPrompt returns the named prompt from the prompt store, or the
// fallback when no store is set or the load fails.
func (s *IndexService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		return fallback
	}
	return prompt
}

// validatePage rejects pages the corpus cannot represent.
func validatePage(page domain.Page) error {
	if strings.TrimSpace(page.ID) == "" {
		return fmt.Errorf("%w: page has no ID", domain.ErrInvalidInput)
	}
	if !page.Type.IsValid() {
		return fmt.Errorf("%w: page %s has type %q", domain.ErrInvalidPageType, page.ID, page.Type)
	}
	if strings.TrimSpace(page.Content) == "" {
		return fmt.Errorf("%w: page %s has no content", domain.ErrInvalidInput, page.ID)
	}
	return nil
}
