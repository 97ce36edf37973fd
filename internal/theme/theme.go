// Package theme maps a named color scheme onto the hex values the TUI's
// styles are built from. Palettes are sourced from the Catppuccin project
// rather than hand-picked, so "dark"/"light" track the upstream palette
// instead of drifting from it over time.
package theme

import catppuccin "github.com/catppuccin/go"

// Theme defines color values for the UI. All values are hex color strings.
// This package has no lipgloss dependency — styles.go bridges theme to
// lipgloss.
type Theme struct {
	Bg string
	Fg string

	// Diff colors
	AddedFg   string
	AddedBg   string
	RemovedFg string
	RemovedBg string
	HunkFg    string

	// Line numbers
	LineNumFg        string
	LineNumAddedFg   string
	LineNumRemovedFg string

	// Header bar
	HeaderBg string
	HeaderFg string

	// Hunk
	HunkBg string

	// Card
	CardBg string

	// Selection highlight (the row at focus)
	SelectedBg string
	SelectedFg string

	// Chrome
	BorderFg    string
	StatusBarBg string
	StatusBarFg string
	HelpKeyFg   string
	HelpDescFg  string

	// Accent
	AccentFg string

	// Chroma syntax theme name
	ChromaStyle string
}

// Themes is the registry of built-in themes.
var Themes = map[string]Theme{
	"dark":  DarkTheme(),
	"light": LightTheme(),
}

// DarkTheme returns the Catppuccin Mocha-derived theme.
func DarkTheme() Theme { return FromFlavour(catppuccin.Mocha, "catppuccin-mocha") }

// LightTheme returns the Catppuccin Latte-derived theme.
func LightTheme() Theme { return FromFlavour(catppuccin.Latte, "catppuccin-latte") }

// FromFlavour derives a Theme from a Catppuccin flavour, tagging it with
// the chroma style name internal/highlight should use to render code
// under it.
func FromFlavour(f catppuccin.Flavour, chromaStyle string) Theme {
	return Theme{
		Bg: f.Base().Hex,
		Fg: f.Text().Hex,

		AddedFg:   f.Green().Hex,
		AddedBg:   f.Surface0().Hex,
		RemovedFg: f.Red().Hex,
		RemovedBg: f.Surface0().Hex,
		HunkFg:    f.Mauve().Hex,

		LineNumFg:        f.Overlay0().Hex,
		LineNumAddedFg:   f.Green().Hex,
		LineNumRemovedFg: f.Red().Hex,

		HeaderBg: f.Mantle().Hex,
		HeaderFg: f.Pink().Hex,

		HunkBg: f.Mantle().Hex,
		CardBg: f.Surface0().Hex,

		SelectedBg: f.Surface1().Hex,
		SelectedFg: f.Lavender().Hex,

		BorderFg:    f.Mauve().Hex,
		StatusBarBg: f.Crust().Hex,
		StatusBarFg: f.Subtext1().Hex,
		HelpKeyFg:   f.Pink().Hex,
		HelpDescFg:  f.Overlay1().Hex,

		AccentFg: f.Mauve().Hex,

		ChromaStyle: chromaStyle,
	}
}
