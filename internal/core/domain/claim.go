package domain

import "time"

// PageType classifies a claim page as a high-level overview or a detail page.
type PageType string

// Recognised page types.
const (
	// PageTypeOverview marks a page summarising the claim as a whole.
	PageTypeOverview PageType = "Overview"

	// PageTypeDetails marks a page covering a specific aspect of the claim.
	PageTypeDetails PageType = "Details"
)

// IsValid returns true if the page type is recognised.
func (t PageType) IsValid() bool {
	switch t {
	case PageTypeOverview, PageTypeDetails:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t PageType) String() string {
	return string(t)
}

// Page represents one full page of the claim document.
// It is the parent unit of retrieval: chunks and the page summary
// link back to it by ID. Pages are created once during indexing and
// never mutated afterwards.
type Page struct {
	// ID is the unique page identifier (e.g. "page_1").
	ID string

	// Number is the 1-based page number.
	Number int

	// Header is the page heading.
	Header string

	// Date is the event date printed on the page, verbatim.
	Date string

	// Parties lists the people and organisations involved on this page.
	Parties []string

	// Type classifies the page as Overview or Details.
	Type PageType

	// Content is the full page text.
	Content string

	// CreatedAt is when the page was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the page was last re-indexed.
	UpdatedAt time.Time
}

// Chunk represents a sentence-bounded span of a single page.
// It is the fine retrieval granule: consecutive chunks of the same page
// overlap by whole sentences, and a chunk never splits a sentence.
type Chunk struct {
	// ID is derived from the parent page: "{page_id}_chunk_{index}".
	ID string

	// PageID links to the parent Page. This is a relation, not ownership;
	// the page is looked up through the store when needed.
	PageID string

	// PageNumber is the parent page number.
	PageNumber int

	// Header is copied from the parent page.
	Header string

	// Date is copied from the parent page.
	Date string

	// Parties is copied from the parent page.
	Parties []string

	// PageType is copied from the parent page.
	PageType PageType

	// Content is the chunk text: whole sentences joined by single spaces.
	Content string

	// Position is the ordinal index within the parent page.
	Position int

	// SentenceCount is the number of sentences in the chunk.
	SentenceCount int

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}

// Summary represents the generated synopsis of one page.
// Exactly one summary exists per page, enforced by ID derivation.
type Summary struct {
	// ID is derived from the parent page: "{page_id}_summary".
	ID string

	// PageID links to the summarised Page.
	PageID string

	// PageNumber is the parent page number.
	PageNumber int

	// Header is copied from the parent page.
	Header string

	// Date is copied from the parent page.
	Date string

	// Parties is copied from the parent page.
	Parties []string

	// Type mirrors the parent page type. Overview summaries are always
	// included in overview retrieval regardless of similarity rank.
	Type PageType

	// Content is the generated summary text.
	Content string

	// OriginalLength is the character length of the summarised page.
	OriginalLength int

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}
