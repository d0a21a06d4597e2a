// Package ask provides the question/answer view for the TUI.
package ask

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
)

// View represents the ask view with question input, answer and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	statusbar *status.Bar

	askService driving.AskService
	ctx        context.Context

	width       int
	height      int
	ready       bool
	err         error
	focusInput  bool // true = typing the question, false = reading the answer
	answer      *domain.Answer
	showSources bool
}

// NewView creates a new ask view.
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
		input:      input.NewQuestionInput(s),
		statusbar:  status.NewBar(s, km),
		askService: askService,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AskCompleted:
		v.handleAskCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc backs out of the answer first, then quits.
	if msg.Type == tea.KeyEsc {
		if !v.focusInput {
			v.startNewQuestion()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}

	// Enter in input mode submits the question
	if msg.Type == tea.KeyEnter && v.focusInput {
		question := strings.TrimSpace(v.input.Value())
		if question == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateThinking)
		v.focusInput = false
		v.input.Blur()
		return v, v.performAsk(question)
	}

	// Input mode: all other keys go to the input
	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Answer mode keys
	switch msg.String() {
	case "n":
		v.startNewQuestion()
		return v, nil
	case "s":
		v.showSources = !v.showSources
		return v, nil
	case "h":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHistory}
		}
	}

	return v, nil
}

// startNewQuestion returns to input mode, keeping the last answer visible
// until the next one replaces it.
func (v *View) startNewQuestion() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// performAsk answers the question through the ask service.
func (v *View) performAsk(question string) tea.Cmd {
	return func() tea.Msg {
		if v.askService == nil {
			return messages.ErrorOccurred{Err: ErrNoAskService}
		}

		answer, err := v.askService.Ask(v.ctx, question, domain.AskOptions{})
		return messages.AskCompleted{Answer: answer, Err: err}
	}
}

// handleAskCompleted processes the finished answer.
func (v *View) handleAskCompleted(msg messages.AskCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	answer := msg.Answer
	v.answer = &answer
	v.statusbar.SetState(status.StateAnswered)
	v.statusbar.SetIntent(answer.Intent.String())
	v.focusInput = false
	v.input.Blur()
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	// Header
	header := v.styles.Title.Render("Claimant")
	sections = append(sections, header, "")

	// Question input
	sections = append(sections, v.input.View(), "")

	// Error display
	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	// Answer
	if v.answer != nil {
		sections = append(sections, v.renderAnswer())
	}

	// Status bar at bottom
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAnswer renders the answer text, retrieval stats and sources.
func (v *View) renderAnswer() string {
	wrap := v.styles.Normal.Width(v.width - 4)

	parts := make([]string, 0, 6)
	parts = append(parts, wrap.Render(v.answer.Text), "")

	badge := v.styles.Subtitle.Render("[" + v.answer.Intent.String() + "]")
	var stats string
	switch v.answer.Intent {
	case domain.IntentOverview:
		stats = fmt.Sprintf("%d summaries", v.answer.SummariesUsed)
	default:
		stats = fmt.Sprintf("%d chunks", v.answer.ChunksUsed)
		if v.answer.PagesMerged > 0 {
			stats += fmt.Sprintf(", %d pages merged", v.answer.PagesMerged)
		}
	}
	parts = append(parts, badge+" "+v.styles.Muted.Render(stats))

	if v.showSources && len(v.answer.Sources) > 0 {
		parts = append(parts, "", v.renderSources())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderSources renders the cited sources in a bordered box.
func (v *View) renderSources() string {
	lines := make([]string, 0, len(v.answer.Sources))
	for i, src := range v.answer.Sources {
		head := fmt.Sprintf("[%d] page %d: %s", i+1, src.PageNumber, src.Header)
		if src.Score > 0 {
			head += fmt.Sprintf(" (%.2f)", src.Score)
		}
		lines = append(lines, v.styles.Normal.Render(head))

		content := src.Content
		if len(content) > 120 {
			content = content[:120] + "..."
		}
		lines = append(lines, v.styles.Muted.Render("    "+content))
	}

	box := v.styles.Border.Padding(0, 1).Width(v.width - 4)
	return box.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Question returns the current question text.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the question text.
func (v *View) SetQuestion(question string) {
	v.input.SetValue(question)
}

// Answer returns the last answer, or nil before the first ask.
func (v *View) Answer() *domain.Answer {
	return v.answer
}

// ShowingSources returns whether the source list is visible.
func (v *View) ShowingSources() bool {
	return v.showSources
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to its initial input state.
func (v *View) Reset() {
	v.startNewQuestion()
	v.answer = nil
	v.showSources = false
}
