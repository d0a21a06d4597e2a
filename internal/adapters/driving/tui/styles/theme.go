// Package styles holds the colour theme and lipgloss styles shared by
// the claimant TUI views.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette the TUI renders with.
type Theme struct {
	// Primary is the accent used for titles and selections.
	Primary lipgloss.Color

	// Secondary is the accent used for subtitles and intents.
	Secondary lipgloss.Color

	// Background is the base background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for secondary text such as hints and timestamps.
	Muted lipgloss.Color

	// Success marks completed operations.
	Success lipgloss.Color

	// Warning marks degraded but working states.
	Warning lipgloss.Color

	// Error marks failures.
	Error lipgloss.Color

	// Border is the frame colour for inputs and panels.
	Border lipgloss.Color
}

// DefaultTheme returns the claimant palette, tuned for dark terminals.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2F6FEB"), // Blue
		Secondary:  lipgloss.Color("#2BB3A3"), // Teal
		Background: lipgloss.Color("#14171F"), // Near black
		Foreground: lipgloss.Color("#D8DEE9"), // Light gray
		Muted:      lipgloss.Color("#707A8C"), // Slate
		Success:    lipgloss.Color("#7FBF7F"), // Green
		Warning:    lipgloss.Color("#E5C07B"), // Amber
		Error:      lipgloss.Color("#E06C75"), // Red
		Border:     lipgloss.Color("#3B4252"), // Frame gray
	}
}

// Styles contains pre-configured lipgloss styles derived from a Theme.
type Styles struct {
	theme *Theme

	// Title style for view headers.
	Title lipgloss.Style

	// Subtitle style for section headers.
	Subtitle lipgloss.Style

	// Normal style for body text.
	Normal lipgloss.Style

	// Muted style for hints and metadata.
	Muted lipgloss.Style

	// Selected style for the highlighted list entry.
	Selected lipgloss.Style

	// Error style for failure messages.
	Error lipgloss.Style

	// Success style for confirmation messages.
	Success lipgloss.Style

	// Warning style for degraded-state messages.
	Warning lipgloss.Style

	// InputField style for the question input frame.
	InputField lipgloss.Style

	// StatusBar style for the bottom status line.
	StatusBar lipgloss.Style

	// Help style for key binding hints.
	Help lipgloss.Style

	// Border style for framed containers.
	Border lipgloss.Style
}

// NewStyles derives the style set from a theme. A nil theme falls back
// to the default palette.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#11141B")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme these styles were derived from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
