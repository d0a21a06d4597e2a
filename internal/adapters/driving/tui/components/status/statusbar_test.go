package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "", bar.Intent())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.Init()

	assert.Nil(t, cmd)
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	updated, cmd := bar.Update(msg)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_SetState(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateThinking)

	assert.Equal(t, StateThinking, bar.State())
}

func TestStatusBar_SetMessage(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetMessage("db locked")

	assert.Equal(t, "db locked", bar.Message())
}

func TestStatusBar_SetIntent(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetIntent("overview")

	assert.Equal(t, "overview", bar.Intent())
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(100)

	assert.Equal(t, 100, bar.Width())
}

func TestStatusBar_View_Thinking(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)

	bar.SetState(StateThinking)

	assert.Contains(t, bar.View(), "Thinking")
}

func TestStatusBar_View_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)

	bar.SetState(StateError)
	bar.SetMessage("llm unreachable")

	assert.Contains(t, bar.View(), "llm unreachable")
}

func TestStatusBar_View_Answered(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)

	bar.SetState(StateAnswered)
	bar.SetIntent("detail")

	assert.Contains(t, bar.View(), "detail")
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("gone")
	bar.SetIntent("detail")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "", bar.Intent())
}
