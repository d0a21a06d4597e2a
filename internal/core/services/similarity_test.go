package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{1, 2, 3},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 0},
			b:        []float32{-1, 0},
			expected: -1.0,
		},
		{
			name:     "scaled vectors keep similarity",
			a:        []float32{1, 1},
			b:        []float32{5, 5},
			expected: 1.0,
		},
		{
			name:     "length mismatch",
			a:        []float32{1, 2, 3},
			b:        []float32{1, 2},
			expected: 0.0,
		},
		{
			name:     "zero vector",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "empty vectors",
			a:        nil,
			b:        nil,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSortScored_DescendingByScore(t *testing.T) {
	units := []scoredUnit{
		{id: "a", score: 0.2},
		{id: "b", score: 0.9},
		{id: "c", score: 0.5},
	}

	sortScored(units)

	assert.Equal(t, "b", units[0].id)
	assert.Equal(t, "c", units[1].id)
	assert.Equal(t, "a", units[2].id)
}

func TestSortScored_TieBreaksByID(t *testing.T) {
	units := []scoredUnit{
		{id: "page_3_chunk_0", score: 0.5},
		{id: "page_1_chunk_0", score: 0.5},
		{id: "page_2_chunk_0", score: 0.5},
	}

	sortScored(units)

	assert.Equal(t, "page_1_chunk_0", units[0].id)
	assert.Equal(t, "page_2_chunk_0", units[1].id)
	assert.Equal(t, "page_3_chunk_0", units[2].id)
}

func TestRankChunks_PreservesIndex(t *testing.T) {
	query := []float32{1, 0}
	chunks := []domain.Chunk{
		{ID: "low", Embedding: []float32{0.1, 1}},
		{ID: "high", Embedding: []float32{1, 0.1}},
	}

	scored := rankChunks(query, chunks)

	assert.Equal(t, "high", scored[0].id)
	assert.Equal(t, 1, scored[0].idx)
	assert.Equal(t, "low", scored[1].id)
	assert.Equal(t, 0, scored[1].idx)
}

func TestRankSummaries_PreservesIndex(t *testing.T) {
	query := []float32{0, 1}
	summaries := []domain.Summary{
		{ID: "page_1_summary", Embedding: []float32{0, 1}},
		{ID: "page_2_summary", Embedding: []float32{1, 0}},
	}

	scored := rankSummaries(query, summaries)

	assert.Equal(t, "page_1_summary", scored[0].id)
	assert.Equal(t, 0, scored[0].idx)
	assert.InDelta(t, 1.0, scored[0].score, 1e-9)
}
