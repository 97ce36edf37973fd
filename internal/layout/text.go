package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is used wherever a caller has no configured preference
// (focus/navigation recomputes, which never display their text).
const DefaultTabWidth = 8

// expandTabs replaces each tab with enough spaces to reach the next stop of
// tabWidth columns, tracking display column rather than byte offset so
// wide runes don't throw off later stops.
func expandTabs(s string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// fitCols expands tabs (at tabWidth-column stops) and truncates s with an
// ellipsis marker so that its display width never exceeds cols. No
// horizontal scrolling is provided: anything past cols is simply cut off.
func fitCols(s string, cols, tabWidth int) string {
	s = expandTabs(s, tabWidth)
	if cols <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= cols {
		return s
	}
	if cols == 1 {
		return runewidth.Truncate(s, 1, "")
	}
	return runewidth.Truncate(s, cols, "…")
}
