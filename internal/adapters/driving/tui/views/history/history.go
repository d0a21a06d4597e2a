// Package history provides the exchange history view for the TUI.
package history

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
)

// historyLimit caps how many exchanges the view loads.
const historyLimit = 50

// View lists recent question/answer exchanges, newest first.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	askService driving.AskService
	ctx        context.Context

	exchanges []domain.Exchange
	selected  int
	err       error

	width  int
	height int
	ready  bool
}

// NewView creates a new history view.
func NewView(s *styles.Styles, km *keymap.KeyMap, askService driving.AskService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		askService: askService,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the exchange history.
func (v *View) Init() tea.Cmd {
	return v.loadHistory()
}

// loadHistory fetches recent exchanges from the ask service.
func (v *View) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if v.askService == nil {
			return messages.HistoryLoaded{Err: nil}
		}
		exchanges, err := v.askService.Exchanges(v.ctx, historyLimit)
		return messages.HistoryLoaded{Exchanges: exchanges, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.HistoryLoaded:
		v.err = msg.Err
		v.exchanges = msg.Exchanges
		v.selected = 0
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewAsk}
		}
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(msg.String(), v.keymap.Down):
		if v.selected < len(v.exchanges)-1 {
			v.selected++
		}
	}

	return v, nil
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 4)
	sections = append(sections, v.styles.Title.Render("History"), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if len(v.exchanges) == 0 {
		sections = append(sections, v.styles.Muted.Render("No questions asked yet."))
		sections = append(sections, "", v.styles.Help.Render("[esc] back"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	for i, ex := range v.exchanges {
		sections = append(sections, v.renderExchange(i, ex))
	}

	sections = append(sections, "", v.styles.Help.Render("[↑/↓] navigate  [esc] back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderExchange renders one exchange entry.
func (v *View) renderExchange(i int, ex domain.Exchange) string {
	head := fmt.Sprintf("%s  [%s]", ex.CreatedAt.Format("2006-01-02 15:04"), ex.Intent)

	question := "Q: " + ex.Question
	answer := "A: " + ex.Answer
	if len(answer) > 160 {
		answer = answer[:160] + "..."
	}

	var headStyle lipgloss.Style
	if i == v.selected {
		headStyle = v.styles.Selected
	} else {
		headStyle = v.styles.Subtitle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headStyle.Render(head),
		v.styles.Normal.Render(question),
		v.styles.Muted.Render(answer),
		"",
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Exchanges returns the loaded exchanges.
func (v *View) Exchanges() []domain.Exchange {
	return v.exchanges
}

// Selected returns the index of the highlighted exchange.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
