// Package claimfile loads claim documents from JSON page files.
//
// A claim file carries one page per entry with the metadata the retrieval
// core needs: header, event date, involved parties and the Overview or
// Details type tag.
package claimfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

// claimDocument is the on-disk JSON shape.
type claimDocument struct {
	ClaimID string      `json:"claim_id"`
	Pages   []claimPage `json:"pages"`
}

// claimPage is one page entry in the claim file.
type claimPage struct {
	PageID          string   `json:"page_id"`
	PageNumber      int      `json:"page_number"`
	Header          string   `json:"header"`
	Date            string   `json:"date"`
	InvolvedParties []string `json:"involved_parties"`
	Type            string   `json:"type"`
	Content         string   `json:"content"`
}

// Load reads and validates a claim file, returning its pages in file order.
func Load(path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading claim file: %w", err)
	}

	var doc claimDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing claim file: %w", err)
	}

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: claim file has no pages", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(doc.Pages))
	pages := make([]domain.Page, 0, len(doc.Pages))

	for i, p := range doc.Pages {
		if p.PageID == "" {
			return nil, fmt.Errorf("%w: page %d has no page_id", domain.ErrInvalidInput, i+1)
		}
		if seen[p.PageID] {
			return nil, fmt.Errorf("%w: duplicate page_id %q", domain.ErrInvalidInput, p.PageID)
		}
		seen[p.PageID] = true

		pageType := domain.PageType(p.Type)
		if !pageType.IsValid() {
			return nil, fmt.Errorf("%w: page %q has type %q", domain.ErrInvalidPageType, p.PageID, p.Type)
		}

		if p.Content == "" {
			return nil, fmt.Errorf("%w: page %q has no content", domain.ErrInvalidInput, p.PageID)
		}

		number := p.PageNumber
		if number == 0 {
			number = i + 1
		}

		pages = append(pages, domain.Page{
			ID:      p.PageID,
			Number:  number,
			Header:  p.Header,
			Date:    p.Date,
			Parties: p.InvolvedParties,
			Type:    pageType,
			Content: p.Content,
		})
	}

	return pages, nil
}
