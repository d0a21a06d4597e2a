// Package segmenter turns claim pages into sentence-bounded, overlapping
// chunks for needle retrieval. A chunk boundary never splits a sentence.
package segmenter

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

// DefaultChunkSize is the default target chunk length in characters.
const DefaultChunkSize = 400

// DefaultOverlap is the default overlap budget between consecutive chunks.
const DefaultOverlap = 50

// DefaultMinChunkSize is the default floor below which a tail chunk is
// merged into its predecessor.
const DefaultMinChunkSize = 200

// Segmenter splits pages into chunks of whole sentences.
type Segmenter struct {
	chunkSize    int
	overlap      int
	minChunkSize int
}

// Option configures the segmenter.
type Option func(*Segmenter)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Segmenter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap budget between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Segmenter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithMinChunkSize sets the minimum tail chunk size in characters.
func WithMinChunkSize(size int) Option {
	return func(s *Segmenter) {
		if size >= 0 {
			s.minChunkSize = size
		}
	}
}

// New creates a new segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		chunkSize:    DefaultChunkSize,
		overlap:      DefaultOverlap,
		minChunkSize: DefaultMinChunkSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Segment splits the page content into chunks.
//
// Sentences are accumulated greedily until adding the next one would push
// the chunk past the target size (counting one joining space per added
// sentence). Each new chunk is seeded with the previous chunk's last
// sentence plus as many earlier sentences as fit within the overlap
// budget, in order. A trailing chunk below the minimum size is merged
// into its predecessor rather than emitted on its own.
func (s *Segmenter) Segment(page domain.Page) []domain.Chunk {
	sentences := SplitSentences(page.Content)
	if len(sentences) == 0 {
		// A page the sentence detector cannot handle still yields one
		// chunk covering the whole page text.
		return []domain.Chunk{s.stamp(page, 0, []string{page.Content})}
	}

	var groups [][]string
	var current []string
	currentLen := 0

	for _, sent := range sentences {
		potential := currentLen + len(sent)
		if len(current) > 0 {
			potential++ // joining space
		}

		if len(current) > 0 && potential > s.chunkSize {
			groups = append(groups, current)

			seed, seedLen := s.overlapSuffix(current)
			current = append(seed, sent)
			currentLen = seedLen + len(sent)
			if seedLen > 0 {
				currentLen++
			}
			continue
		}

		current = append(current, sent)
		currentLen = potential
	}

	if len(current) > 0 {
		tailText := strings.Join(current, " ")
		if len(groups) > 0 && len(tailText) < s.minChunkSize {
			// Merge the short tail into the previous chunk.
			last := len(groups) - 1
			groups[last] = append(groups[last], current...)
		} else {
			groups = append(groups, current)
		}
	}

	chunks := make([]domain.Chunk, 0, len(groups))
	for i, group := range groups {
		chunks = append(chunks, s.stamp(page, i, group))
	}
	return chunks
}

// overlapSuffix returns the sentences seeding the next chunk: the closed
// chunk's last sentence, extended backwards while the combined length
// (one joining space per sentence) stays within the overlap budget. The
// last sentence always seeds, even when it alone exceeds the budget, so
// consecutive chunks share at least one sentence. A zero budget disables
// seeding entirely.
// Returns the seed sentences in original order and their combined length.
func (s *Segmenter) overlapSuffix(closed []string) ([]string, int) {
	if s.overlap <= 0 || len(closed) == 0 {
		return nil, 0
	}

	last := closed[len(closed)-1]
	seed := []string{last}
	length := len(last)

	for i := len(closed) - 2; i >= 0; i-- {
		if length+1+len(closed[i]) > s.overlap {
			break
		}
		seed = append([]string{closed[i]}, seed...)
		length += 1 + len(closed[i])
	}

	return seed, length
}

// stamp builds a chunk from its sentences and the parent page metadata.
func (s *Segmenter) stamp(page domain.Page, index int, sentences []string) domain.Chunk {
	return domain.Chunk{
		ID:            fmt.Sprintf("%s_chunk_%d", page.ID, index),
		PageID:        page.ID,
		PageNumber:    page.Number,
		Header:        page.Header,
		Date:          page.Date,
		Parties:       page.Parties,
		PageType:      page.Type,
		Content:       strings.Join(sentences, " "),
		Position:      index,
		SentenceCount: len(sentences),
	}
}
