package domain

import "time"

// RouteIntent is the classified intent of a question.
type RouteIntent string

// Recognised intents.
const (
	// IntentDetail seeks a narrow, precise fact from the claim.
	IntentDetail RouteIntent = "detail"

	// IntentOverview seeks a synthesis across the whole claim.
	IntentOverview RouteIntent = "overview"
)

// IsValid returns true if the intent is recognised.
func (i RouteIntent) IsValid() bool {
	switch i {
	case IntentDetail, IntentOverview:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i RouteIntent) String() string {
	return string(i)
}

// Description returns a human-readable description of the intent.
func (i RouteIntent) Description() string {
	switch i {
	case IntentDetail:
		return "Detail (needle retrieval over chunks)"
	case IntentOverview:
		return "Overview (summary retrieval over pages)"
	default:
		return "Unknown"
	}
}

// AskOptions configures a single question.
type AskOptions struct {
	// TopK is the number of units to retrieve. Zero uses the configured
	// default for the chosen engine.
	TopK int

	// MergeThreshold overrides the auto-merge threshold for the detail
	// engine. Zero uses the configured default.
	MergeThreshold int

	// Intent forces a retrieval path, bypassing the router.
	// Empty routes normally.
	Intent RouteIntent
}

// Source is one cited unit backing an answer.
type Source struct {
	// ID is the chunk or summary ID.
	ID string

	// PageID is the owning page.
	PageID string

	// PageNumber is the owning page number.
	PageNumber int

	// Header is the owning page heading.
	Header string

	// Type is the owning page type.
	Type PageType

	// Content is the cited text.
	Content string

	// Score is the cosine similarity against the question. Units included
	// unconditionally (overview-type summaries) carry a zero score.
	Score float64
}

// Answer is the structured result of a question.
// It is well-formed in every case: retrieval and generation failures are
// reported through Text with the computed sources preserved.
type Answer struct {
	// Text is the generated answer, or a fixed failure message.
	Text string

	// Intent is the retrieval path that produced this answer.
	Intent RouteIntent

	// Sources lists the retrieved units backing the answer.
	Sources []Source

	// ChunksUsed counts retrieved chunks (detail path).
	ChunksUsed int

	// PagesMerged counts parent pages pulled in by auto-merge (detail path).
	PagesMerged int

	// SummariesUsed counts included summaries (overview path).
	SummariesUsed int
}

// Exchange is one persisted question/answer pair.
type Exchange struct {
	// ID is a generated unique identifier.
	ID string

	// Question is the raw question text.
	Question string

	// Intent is the routed retrieval path.
	Intent RouteIntent

	// Answer is the answer text as returned to the caller.
	Answer string

	// ChunksUsed counts retrieved chunks (detail path).
	ChunksUsed int

	// PagesMerged counts auto-merged pages (detail path).
	PagesMerged int

	// SummariesUsed counts included summaries (overview path).
	SummariesUsed int

	// CreatedAt is when the question was asked.
	CreatedAt time.Time
}
