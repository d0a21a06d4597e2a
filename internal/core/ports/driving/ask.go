// Package driving provides interfaces for actors that drive the application (primary/inbound ports).
package driving

import (
	"context"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

// AskService answers natural-language questions over the indexed claim.
type AskService interface {
	// Ask routes the question to the detail or overview engine and
	// returns a structured answer. The returned answer is well-formed in
	// every case; retrieval and generation failures are reported through
	// the answer text, never as errors.
	Ask(ctx context.Context, question string, opts domain.AskOptions) (domain.Answer, error)

	// Route classifies the question without answering it.
	Route(ctx context.Context, question string) (domain.RouteIntent, error)

	// Exchanges returns the most recent question/answer pairs, newest
	// first. A limit of 0 returns all.
	Exchanges(ctx context.Context, limit int) ([]domain.Exchange, error)
}
