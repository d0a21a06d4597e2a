package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Ask:   &MockAskService{},
		Index: &MockIndexService{},
	}
}

// answerQuestion drives the app to the answered state so that
// answer-mode keys are active.
func answerQuestion(app *App) {
	app.SetDimensions(80, 24)
	app.Update(messages.AskCompleted{
		Answer: domain.Answer{Text: "The claim was filed on 12 March.", Intent: domain.IntentDetail},
	})
}

func TestNewApp_Success(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewAsk, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := &Ports{
		Ask:   nil,
		Index: &MockIndexService{},
	}

	app, err := NewApp(ports)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	cmd := app.Init()

	// Init returns a batch command
	assert.NotNil(t, cmd)
}

func TestApp_Update_WindowSize(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_Typing(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	for _, r := range "when" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "when", app.AskView().Question())
}

func TestApp_Update_AskCompleted(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	msg := messages.AskCompleted{
		Answer: domain.Answer{Text: "Two vehicles were involved.", Intent: domain.IntentOverview},
	}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	require.NotNil(t, app.AskView().Answer())
	assert.Equal(t, "Two vehicles were involved.", app.AskView().Answer().Text)
}

func TestApp_Update_AskCompleted_WithError(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	msg := messages.AskCompleted{Err: errors.New("llm unreachable")}
	app.Update(msg)

	assert.Error(t, app.AskView().Err())
}

func TestApp_Update_ViewChanged_History(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewHistory})

	assert.Equal(t, messages.ViewHistory, app.CurrentView())
	// Switching to history triggers the history load command.
	assert.NotNil(t, cmd)
}

func TestApp_Update_Quit(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_CtrlC(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_HelpToggle(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	answerQuestion(app) // input loses focus, global keys active

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, messages.ViewAsk, app.CurrentView())
}

func TestApp_HelpClosesOnEsc(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	answerQuestion(app)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	require.Equal(t, messages.ViewHelp, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewAsk, app.CurrentView())
}

func TestApp_HelpNotTriggeredWhileTyping(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})

	assert.Equal(t, messages.ViewAsk, app.CurrentView())
	assert.Equal(t, "?", app.AskView().Question())
}

func TestApp_View_NotReady(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	view := app.View()

	assert.Contains(t, view, "Initialising")
}

func TestApp_View_Help(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	answerQuestion(app)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	view := app.View()

	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "quit")
}
