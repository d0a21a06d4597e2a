package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the natural-language question about the claim"`
	Intent   string `json:"intent,omitempty" jsonschema:"force a retrieval path: detail or overview (default: routed automatically)"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of units to retrieve (default: configured value)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer        string         `json:"answer"`
	Intent        string         `json:"intent"`
	Sources       []SourceOutput `json:"sources,omitempty"`
	ChunksUsed    int            `json:"chunks_used"`
	PagesMerged   int            `json:"pages_merged"`
	SummariesUsed int            `json:"summaries_used"`
}

// SourceOutput represents a single cited source.
type SourceOutput struct {
	ID         string  `json:"id"`
	PageID     string  `json:"page_id"`
	PageNumber int     `json:"page_number"`
	Header     string  `json:"header"`
	Score      float64 `json:"score"`
}

// RouteInput is the input schema for the route tool.
type RouteInput struct {
	Question string `json:"question" jsonschema:"the question to classify without answering"`
}

// RouteOutput is the output schema for the route tool.
type RouteOutput struct {
	Intent      string `json:"intent"`
	Description string `json:"description"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about the indexed insurance claim",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "route",
		Description: "Classify a question as detail or overview without answering it",
	}, s.handleRoute)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	opts := domain.AskOptions{TopK: input.TopK}

	if input.Intent != "" {
		intent := domain.RouteIntent(input.Intent)
		if !intent.IsValid() {
			return nil, AskOutput{}, fmt.Errorf("unknown intent %q, use %q or %q",
				input.Intent, domain.IntentDetail, domain.IntentOverview)
		}
		opts.Intent = intent
	}

	answer, err := s.ports.Ask.Ask(ctx, input.Question, opts)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:        answer.Text,
		Intent:        answer.Intent.String(),
		Sources:       make([]SourceOutput, len(answer.Sources)),
		ChunksUsed:    answer.ChunksUsed,
		PagesMerged:   answer.PagesMerged,
		SummariesUsed: answer.SummariesUsed,
	}

	for i := range answer.Sources {
		output.Sources[i] = SourceOutput{
			ID:         answer.Sources[i].ID,
			PageID:     answer.Sources[i].PageID,
			PageNumber: answer.Sources[i].PageNumber,
			Header:     answer.Sources[i].Header,
			Score:      answer.Sources[i].Score,
		}
	}

	return nil, output, nil
}

// handleRoute handles the route tool invocation.
func (s *Server) handleRoute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RouteInput,
) (*mcp.CallToolResult, RouteOutput, error) {
	intent, err := s.ports.Ask.Route(ctx, input.Question)
	if err != nil {
		return nil, RouteOutput{}, err
	}

	return nil, RouteOutput{
		Intent:      intent.String(),
		Description: intent.Description(),
	}, nil
}
