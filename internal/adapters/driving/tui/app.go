package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/views/ask"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/views/history"
)

// App is the root Bubbletea model. It owns the views and routes
// messages between them.
type App struct {
	ports  *Ports
	styles *styles.Styles
	keymap *keymap.KeyMap
	ctx    context.Context

	currentView  messages.ViewType
	previousView messages.ViewType

	askView     *ask.View
	historyView *history.View

	width  int
	height int
	ready  bool
}

// NewApp creates a new TUI application from the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		styles:      s,
		keymap:      km,
		ctx:         context.Background(),
		currentView: messages.ViewAsk,
		askView:     ask.NewView(s, km, ports.Ask),
		historyView: history.NewView(s, km, ports.Ask),
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView = a.askView.WithContext(ctx)
	a.historyView = a.historyView.WithContext(ctx)
	return a
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("claimant"),
		a.askView.Init(),
	)
}

// Update handles messages and updates the model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.askView.SetDimensions(msg.Width, msg.Height)
		a.historyView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.handleGlobalKey(msg) {
			return a, nil
		}

	case messages.Quit:
		return a, tea.Quit

	case messages.ViewChanged:
		return a, a.switchView(msg.View)
	}

	return a.updateCurrentView(msg)
}

// handleGlobalKey handles keys that apply regardless of the active
// view. Returns true when the key was consumed.
func (a *App) handleGlobalKey(msg tea.KeyMsg) bool {
	// The ask view owns plain keystrokes while its input is focused.
	if a.currentView == messages.ViewAsk && a.askView.InputFocused() {
		return false
	}

	switch {
	case key.Matches(msg, a.keymap.Help):
		if a.currentView == messages.ViewHelp {
			a.currentView = a.previousView
		} else {
			a.previousView = a.currentView
			a.currentView = messages.ViewHelp
		}
		return true

	case a.currentView == messages.ViewHelp && key.Matches(msg, a.keymap.Back):
		a.currentView = a.previousView
		return true
	}

	return false
}

// switchView changes the active view and runs its init command.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.previousView = a.currentView
	a.currentView = view

	if view == messages.ViewHistory {
		return a.historyView.Init()
	}
	return nil
}

// updateCurrentView forwards a message to the active view.
func (a *App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
		// Help is static.
	}

	return a, cmd
}

// View renders the current view.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.askView.View()
	}
}

// viewHelp renders the keybinding reference.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, row := range a.keymap.FullHelp() {
		for _, binding := range row {
			h := binding.Help()
			line := lipgloss.JoinHorizontal(lipgloss.Top,
				a.styles.Subtitle.Render(padRight(h.Key, 10)),
				a.styles.Normal.Render(h.Desc),
			)
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("[?] or [esc] to close help"))
	return b.String()
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the app dimensions directly. Used in tests.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.askView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}

// AskView returns the ask view. Used in tests.
func (a *App) AskView() *ask.View {
	return a.askView
}

// HistoryView returns the history view. Used in tests.
func (a *App) HistoryView() *history.View {
	return a.historyView
}
