// Package tui provides an interactive terminal question/answer loop for claimant.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers and routes questions, and serves the exchange history.
	Ask driving.AskService

	// Index reports indexed pages and corpus size for the status line.
	Index driving.IndexService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(ask driving.AskService, index driving.IndexService) *Ports {
	return &Ports{
		Ask:   ask,
		Index: index,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	// Index is optional; without it the corpus status is omitted.
	return nil
}
