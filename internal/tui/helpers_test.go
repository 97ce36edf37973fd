package tui

import "github.com/arxanas/scm-record/internal/theme"

func testTheme() theme.Theme {
	return theme.DarkTheme()
}
