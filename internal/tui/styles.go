package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arxanas/scm-record/internal/theme"
)

// Styles holds all lipgloss styles derived from a theme.
type Styles struct {
	FileHeader    lipgloss.Style
	SectionHeader lipgloss.Style
	Focused       lipgloss.Style

	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffHunkHeader lipgloss.Style

	Border    lipgloss.Style
	CardBg    lipgloss.Style
	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	Accent    lipgloss.Style

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
}

// NewStyles builds the rendering styles for t.
func NewStyles(t theme.Theme) Styles {
	return Styles{
		FileHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HeaderFg)).
			Bold(true),
		SectionHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HunkFg)),
		Focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SelectedFg)).
			Background(lipgloss.Color(t.SelectedBg)).
			Bold(true),

		DiffAdded: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.AddedFg)).
			Background(lipgloss.Color(t.AddedBg)),
		DiffRemoved: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.RemovedFg)).
			Background(lipgloss.Color(t.RemovedBg)),
		DiffContext: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Fg)),
		DiffHunkHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HunkFg)),

		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BorderFg)),
		CardBg: lipgloss.NewStyle().
			Background(lipgloss.Color(t.CardBg)),
		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.StatusBarBg)).
			Foreground(lipgloss.Color(t.StatusBarFg)),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HelpKeyFg)).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HelpDescFg)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.AccentFg)),

		Dialog: lipgloss.NewStyle().
			Background(lipgloss.Color(t.CardBg)).
			Foreground(lipgloss.Color(t.Fg)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFg)).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.AccentFg)).
			Bold(true),
	}
}
