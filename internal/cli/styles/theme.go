// Package styles provides the lipgloss styling used by the tabdeck
// CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds lipgloss colors and styles for CLI rendering.
type Theme struct {
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Error  lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	ErrorStyle   lipgloss.Style
	ActiveTab    lipgloss.Style
	InactiveTab  lipgloss.Style
	GroupHeader  lipgloss.Style
	PinnedMarker lipgloss.Style
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() *Theme {
	t := &Theme{
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#909090"),
		Accent: lipgloss.Color("#4ade80"),
		Error:  lipgloss.Color("#f87171"),
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	t.Normal = lipgloss.NewStyle().Foreground(t.Text)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	t.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.InactiveTab = lipgloss.NewStyle().Foreground(t.Text)
	t.GroupHeader = lipgloss.NewStyle().Bold(true).Foreground(t.Muted)
	t.PinnedMarker = lipgloss.NewStyle().Foreground(t.Accent)

	return t
}
