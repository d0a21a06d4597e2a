package mcp

import (
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers and routes questions over the indexed claim.
	Ask driving.AskService

	// Index reports the indexed pages and corpus status.
	Index driving.IndexService

	// Store reads pages and summaries for the resource handlers.
	Store driven.ClaimStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	// Index and Store only back the browse resources; without them the
	// resources report not-found.
	return nil
}
