package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claimant-cli/internal/logger"
)

// defaultDetailSystemPrompt grounds needle answers in the retrieved
// context and keeps the internal document structure out of the reply.
const defaultDetailSystemPrompt = `You are a precise assistant answering questions about an insurance claim.

Your task:
1. Answer the user's question using the provided context from the insurance claim documents
2. Be specific and cite exact details (times, dates, numbers, names) when available
3. If the answer is not in the context, say "The information is not available in the provided documents."
4. Keep answers concise, factual, and professional
5. DO NOT mention "chunks", "pages", or internal document structure in your answer
6. Present information naturally as if reading from a complete document

IMPORTANT: Answer directly and professionally without referencing the document structure.`

// answerDetail runs the needle engine: rank chunks against the question,
// take the top K, and auto-merge the full parent page in whenever the
// merge threshold of sibling chunks is met. All retrieved chunks stay in
// the context; the parent pages are appended as supplementary context.
func (s *AskService) answerDetail(
	ctx context.Context, question string, opts domain.AskOptions, settings domain.AppSettings,
) domain.Answer {
	topK := opts.TopK
	if topK <= 0 {
		topK = settings.Retrieval.DetailTopK
	}
	threshold := opts.MergeThreshold
	if threshold <= 0 {
		threshold = settings.Retrieval.MergeThreshold
	}
	logger.Debug("Detail retrieval: top_k=%d, merge_threshold=%d", topK, threshold)

	chunks, err := s.claimStore.ListChunks(ctx)
	if err != nil {
		logger.Warn("Failed to load chunks: %v", err)
		return domain.Answer{Text: msgNoInformation}
	}
	if len(chunks) == 0 {
		logger.Warn("No chunks indexed")
		return domain.Answer{Text: msgNoInformation}
	}
	logger.Debug("Corpus: %d chunks", len(chunks))

	queryEmbedding, err := s.embeddingService.Embed(ctx, question)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return domain.Answer{Text: msgNoInformation}
	}

	scored := rankChunks(queryEmbedding, chunks)
	if topK < len(scored) {
		scored = scored[:topK]
	}

	retrieved := make([]domain.Chunk, len(scored))
	sources := make([]domain.Source, len(scored))
	for i, sc := range scored {
		chunk := chunks[sc.idx]
		retrieved[i] = chunk
		sources[i] = domain.Source{
			ID:         chunk.ID,
			PageID:     chunk.PageID,
			PageNumber: chunk.PageNumber,
			Header:     chunk.Header,
			Type:       chunk.PageType,
			Content:    chunk.Content,
			Score:      sc.score,
		}
		logger.Debug("  %d. %s (page %d, similarity: %.4f)", i+1, chunk.ID, chunk.PageNumber, sc.score)
	}

	// Count retrieved chunks per parent page to decide auto-merge.
	pageChunkCount := make(map[string]int)
	for _, chunk := range retrieved {
		pageChunkCount[chunk.PageID]++
	}
	pagesToMerge := make(map[string]bool)
	for pageID, count := range pageChunkCount {
		if count >= threshold {
			pagesToMerge[pageID] = true
		}
	}
	if len(pagesToMerge) > 0 {
		logger.Info("Auto-merge threshold met for %d parent page(s)", len(pagesToMerge))
	}

	contextText, merged := s.buildDetailContext(ctx, retrieved, pagesToMerge)

	answer := domain.Answer{
		Sources:     sources,
		ChunksUsed:  len(retrieved),
		PagesMerged: merged,
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: s.loadPrompt(driven.PromptDetailSystem, defaultDetailSystemPrompt)},
		{Role: "user", Content: fmt.Sprintf(
			"Context from insurance claim:\n\n%s\n\nQuestion: %s\n\nAnswer:", contextText, question)},
	}

	text, err := s.llmService.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   settings.Generation.DetailMaxTokens,
		Temperature: settings.Generation.DetailTemperature,
	})
	if err != nil {
		logger.Warn("Answer generation failed: %v", err)
		answer.Text = msgGenerationFailed
		return answer
	}

	answer.Text = strings.TrimSpace(text)
	return answer
}

// buildDetailContext assembles the LLM context: every retrieved chunk in
// rank order, then each merged parent page once, in the order its first
// chunk was retrieved. Returns the context and the number of parent
// pages actually merged.
func (s *AskService) buildDetailContext(
	ctx context.Context, retrieved []domain.Chunk, pagesToMerge map[string]bool,
) (string, int) {
	separator := strings.Repeat("=", 70)

	parts := make([]string, 0, len(retrieved)+len(pagesToMerge)+3)
	for i, chunk := range retrieved {
		parts = append(parts, fmt.Sprintf("[Chunk %d - Page %d: %s]\n%s",
			i+1, chunk.PageNumber, chunk.Header, chunk.Content))
	}

	merged := 0
	if len(pagesToMerge) > 0 {
		parts = append(parts,
			"\n"+separator,
			"[ADDITIONAL CONTEXT - Full Parent Pages]",
			separator+"\n",
		)

		added := make(map[string]bool)
		for _, chunk := range retrieved {
			if !pagesToMerge[chunk.PageID] || added[chunk.PageID] {
				continue
			}

			page, err := s.claimStore.GetPage(ctx, chunk.PageID)
			if err != nil {
				logger.Warn("Failed to load parent page %s: %v", chunk.PageID, err)
				continue
			}

			parts = append(parts, fmt.Sprintf("[FULL PAGE - Page %d: %s]\n%s\n",
				page.Number, page.Header, page.Content))
			added[chunk.PageID] = true
			merged++
			logger.Debug("Merged parent page %s as supplementary context", page.ID)
		}
	}

	return strings.Join(parts, "\n\n"), merged
}
