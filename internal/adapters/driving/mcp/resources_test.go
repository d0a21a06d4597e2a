package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		section  string
		expected string
	}{
		{
			name:     "valid page URI",
			uri:      "claimant://pages/page_2",
			section:  "pages/",
			expected: "page_2",
		},
		{
			name:     "valid summary URI",
			uri:      "claimant://summaries/page_1",
			section:  "summaries/",
			expected: "page_1",
		},
		{
			name:     "invalid scheme",
			uri:      "file://pages/page_2",
			section:  "pages/",
			expected: "",
		},
		{
			name:     "trailing path segment",
			uri:      "claimant://pages/page_2/chunks",
			section:  "pages/",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			section:  "pages/",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractID(tt.uri, tt.section)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handlePagesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns indexed pages as JSON", func(t *testing.T) {
		mockIndex := &mockIndexService{
			pages: []domain.Page{
				{
					ID:      "page_1",
					Number:  1,
					Header:  "Claim Overview",
					Date:    "March 8, 2024",
					Type:    domain.PageTypeOverview,
					Parties: []string{"Sarah Mitchell"},
				},
				{
					ID:     "page_2",
					Number: 2,
					Header: "Collision Details",
					Type:   domain.PageTypeDetails,
				},
			},
		}

		ports := &Ports{Ask: &mockAskService{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handlePagesResource(ctx, readRequest("claimant://pages"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "page_1")
		assert.Contains(t, result.Contents[0].Text, "Claim Overview")
		assert.Contains(t, result.Contents[0].Text, "Collision Details")
	})

	t.Run("no index service yields empty list", func(t *testing.T) {
		ports := &Ports{Ask: &mockAskService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handlePagesResource(ctx, readRequest("claimant://pages"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on listing failure", func(t *testing.T) {
		mockIndex := &mockIndexService{err: errors.New("db locked")}
		ports := &Ports{Ask: &mockAskService{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handlePagesResource(ctx, readRequest("claimant://pages"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "db locked")
	})
}

func TestServer_handlePageContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns full page text", func(t *testing.T) {
		store := &mockClaimStore{
			page: &domain.Page{
				ID:      "page_2",
				Content: "Skid marks measured 42 feet.",
			},
		}

		ports := &Ports{Ask: &mockAskService{}, Store: store}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handlePageContentResource(ctx, readRequest("claimant://pages/page_2"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "Skid marks measured 42 feet.", result.Contents[0].Text)
	})

	t.Run("no store yields not found", func(t *testing.T) {
		ports := &Ports{Ask: &mockAskService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handlePageContentResource(ctx, readRequest("claimant://pages/page_2"))

		require.Error(t, err)
	})

	t.Run("malformed URI yields not found", func(t *testing.T) {
		ports := &Ports{Ask: &mockAskService{}, Store: &mockClaimStore{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handlePageContentResource(ctx, readRequest("claimant://summaries/page_2"))

		require.Error(t, err)
	})
}

func TestServer_handleSummaryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the page summary", func(t *testing.T) {
		store := &mockClaimStore{
			summaries: []domain.Summary{
				{ID: "page_1_summary", PageID: "page_1", Content: "Overview of the claim."},
				{ID: "page_2_summary", PageID: "page_2", Content: "Collision on Maple Avenue."},
			},
		}

		ports := &Ports{Ask: &mockAskService{}, Store: store}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleSummaryResource(ctx, readRequest("claimant://summaries/page_2"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "Collision on Maple Avenue.", result.Contents[0].Text)
	})

	t.Run("unknown page yields not found", func(t *testing.T) {
		store := &mockClaimStore{
			summaries: []domain.Summary{
				{ID: "page_1_summary", PageID: "page_1", Content: "Overview."},
			},
		}

		ports := &Ports{Ask: &mockAskService{}, Store: store}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleSummaryResource(ctx, readRequest("claimant://summaries/page_9"))

		require.Error(t, err)
	})
}
