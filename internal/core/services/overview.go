package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claimant-cli/internal/logger"
)

// defaultOverviewSystemPrompt steers synthesis answers: complete but
// concise, and free of internal document structure.
const defaultOverviewSystemPrompt = `You are an assistant providing high-level summaries and overviews of an insurance claim.

Your task:
1. Answer the user's question by synthesizing information from the insurance claim documents
2. Provide CONCISE BUT COMPLETE answers (typically 3-5 sentences)
3. Include key supporting facts, evidence, and relevant details
4. Ensure the answer fully addresses all aspects of the question
5. Be thorough without being redundant or verbose
6. Match the directness of the question - broad questions get brief overviews, specific questions get focused details
7. If the answer requires specific details not available, acknowledge this
8. Keep answers clear, well-organized, and professional
9. DO NOT mention "pages", "summaries", or internal document structure
10. Present information naturally as a cohesive narrative

Format your response with clear structure. Be comprehensive but concise.`

// answerOverview runs the summary engine. Overview-type summaries are
// always included regardless of similarity; the remaining budget goes to
// the highest-ranked detail-page summaries.
func (s *AskService) answerOverview(
	ctx context.Context, question string, opts domain.AskOptions, settings domain.AppSettings,
) domain.Answer {
	topK := opts.TopK
	if topK <= 0 {
		topK = settings.Retrieval.OverviewTopK
	}
	logger.Debug("Overview retrieval: top_k=%d", topK)

	summaries, err := s.claimStore.ListSummaries(ctx)
	if err != nil {
		logger.Warn("Failed to load summaries: %v", err)
		return domain.Answer{Text: msgNoInformation}
	}
	if len(summaries) == 0 {
		logger.Warn("No summaries indexed")
		return domain.Answer{Text: msgNoInformation}
	}
	logger.Debug("Corpus: %d summaries", len(summaries))

	var overviews, others []domain.Summary
	for _, summary := range summaries {
		if summary.Type == domain.PageTypeOverview {
			overviews = append(overviews, summary)
		} else {
			others = append(others, summary)
		}
	}
	logger.Debug("Overview summaries always included: %d", len(overviews))

	queryEmbedding, err := s.embeddingService.Embed(ctx, question)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return domain.Answer{Text: msgNoInformation}
	}

	scored := rankSummaries(queryEmbedding, others)
	budget := topK - len(overviews)
	if budget < 0 {
		budget = 0
	}
	if budget > len(scored) {
		budget = len(scored)
	}
	scored = scored[:budget]

	// Overview summaries first, carrying a zero score, then the ranked
	// detail-page summaries.
	selected := make([]domain.Summary, 0, len(overviews)+len(scored))
	scores := make([]float64, 0, len(overviews)+len(scored))
	for _, overview := range overviews {
		selected = append(selected, overview)
		scores = append(scores, 0)
	}
	for _, sc := range scored {
		selected = append(selected, others[sc.idx])
		scores = append(scores, sc.score)
	}

	parts := make([]string, len(selected))
	sources := make([]domain.Source, len(selected))
	for i, summary := range selected {
		parts[i] = fmt.Sprintf("[Page %d: %s]\n%s", summary.PageNumber, summary.Header, summary.Content)
		sources[i] = domain.Source{
			ID:         summary.ID,
			PageID:     summary.PageID,
			PageNumber: summary.PageNumber,
			Header:     summary.Header,
			Type:       summary.Type,
			Content:    summary.Content,
			Score:      scores[i],
		}
		logger.Debug("  %d. %s (page %d, similarity: %.4f)", i+1, summary.ID, summary.PageNumber, scores[i])
	}

	answer := domain.Answer{
		Sources:       sources,
		SummariesUsed: len(selected),
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: s.loadPrompt(driven.PromptOverviewSystem, defaultOverviewSystemPrompt)},
		{Role: "user", Content: fmt.Sprintf(
			"Insurance claim summaries:\n\n%s\n\nQuestion: %s\n\nAnswer:",
			strings.Join(parts, "\n\n"), question)},
	}

	text, err := s.llmService.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   settings.Generation.OverviewMaxTokens,
		Temperature: settings.Generation.OverviewTemperature,
	})
	if err != nil {
		logger.Warn("Answer generation failed: %v", err)
		answer.Text = msgGenerationFailed
		return answer
	}

	answer.Text = strings.TrimSpace(text)
	return answer
}
