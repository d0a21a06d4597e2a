package services

import (
	"math"
	"sort"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

// scoredUnit holds one retrieval unit after scoring, before hydration.
type scoredUnit struct {
	idx   int // index into the scored slice
	id    string
	score float64
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 when the vectors differ in length or either has zero norm.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// sortScored orders units by descending score. Equal scores order by
// unit ID ascending so results do not depend on store enumeration order.
func sortScored(units []scoredUnit) {
	sort.Slice(units, func(i, j int) bool {
		if units[i].score != units[j].score {
			return units[i].score > units[j].score
		}
		return units[i].id < units[j].id
	})
}

// rankChunks scores every chunk against the query embedding and returns
// them best first.
func rankChunks(query []float32, chunks []domain.Chunk) []scoredUnit {
	scored := make([]scoredUnit, len(chunks))
	for i := range chunks {
		scored[i] = scoredUnit{
			idx:   i,
			id:    chunks[i].ID,
			score: cosineSimilarity(query, chunks[i].Embedding),
		}
	}
	sortScored(scored)
	return scored
}

// rankSummaries scores every summary against the query embedding and
// returns them best first.
func rankSummaries(query []float32, summaries []domain.Summary) []scoredUnit {
	scored := make([]scoredUnit, len(summaries))
	for i := range summaries {
		scored[i] = scoredUnit{
			idx:   i,
			id:    summaries[i].ID,
			score: cosineSimilarity(query, summaries[i].Embedding),
		}
	}
	sortScored(scored)
	return scored
}
