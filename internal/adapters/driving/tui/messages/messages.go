// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

// AskRequested is a command to answer a question.
type AskRequested struct {
	Question string
	Options  domain.AskOptions
}

// AskCompleted carries the answer back to the model.
type AskCompleted struct {
	Answer domain.Answer
	Err    error
}

// HistoryLoaded carries the recent exchanges from the service.
type HistoryLoaded struct {
	Exchanges []domain.Exchange
	Err       error
}

// StatusLoaded carries the corpus counts for the status line.
type StatusLoaded struct {
	PageCount    int
	ChunkCount   int
	SummaryCount int
	Err          error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAsk is the question input and answer view.
	ViewAsk ViewType = iota
	// ViewHistory lists recent question/answer exchanges.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAsk:
		return "ask"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
