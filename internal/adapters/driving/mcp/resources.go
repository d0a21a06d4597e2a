package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Claimant resources.
	uriScheme = "claimant://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing the indexed pages.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "pages",
		Name:        "pages",
		Description: "List of all indexed claim pages",
		MIMEType:    "application/json",
	}, s.handlePagesResource)

	// Template for full page content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{pageId}",
		Name:        "page-content",
		Description: "Full text of a specific claim page",
		MIMEType:    "text/plain",
	}, s.handlePageContentResource)

	// Template for page summaries.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "summaries/{pageId}",
		Name:        "page-summary",
		Description: "Generated summary of a specific claim page",
		MIMEType:    "text/plain",
	}, s.handleSummaryResource)
}

// handlePagesResource returns a list of all indexed pages.
func (s *Server) handlePagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	pages, err := s.ports.Index.Pages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	// Build simplified page list.
	type pageInfo struct {
		ID      string   `json:"id"`
		Number  int      `json:"number"`
		Header  string   `json:"header"`
		Date    string   `json:"date"`
		Type    string   `json:"type"`
		Parties []string `json:"parties,omitempty"`
	}

	infos := make([]pageInfo, len(pages))
	for i := range pages {
		infos[i] = pageInfo{
			ID:      pages[i].ID,
			Number:  pages[i].Number,
			Header:  pages[i].Header,
			Date:    pages[i].Date,
			Type:    pages[i].Type.String(),
			Parties: pages[i].Parties,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling pages: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePageContentResource returns the full text of a specific page.
func (s *Server) handlePageContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract pageId from URI: claimant://pages/{pageId}
	pageID := extractID(req.Params.URI, "pages/")
	if pageID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.Store.GetPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("getting page: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     page.Content,
		}},
	}, nil
}

// handleSummaryResource returns the generated summary of a specific page.
func (s *Server) handleSummaryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract pageId from URI: claimant://summaries/{pageId}
	pageID := extractID(req.Params.URI, "summaries/")
	if pageID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	summaries, err := s.ports.Store.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}

	for i := range summaries {
		if summaries[i].PageID == pageID {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     summaries[i].Content,
				}},
			}, nil
		}
	}

	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// extractID extracts the trailing ID from a URI like claimant://{section}{id}.
func extractID(uri, section string) string {
	prefix := uriScheme + section

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
