package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arxanas/scm-record/internal/highlight"
	"github.com/arxanas/scm-record/internal/layout"
)

func (m *Model) View() string {
	if dlg := m.dialogs.top(); dlg != nil {
		return m.renderWithDialog(dlg)
	}
	return m.renderFrame()
}

func (m *Model) renderFrame() string {
	var b strings.Builder
	b.WriteString(m.renderContent())
	b.WriteByte('\n')
	b.WriteString(m.renderStatusBar())
	b.WriteByte('\n')
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m *Model) renderWithDialog(dlg *Dialog) string {
	base := m.renderFrame()
	box := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dlg.Form.View())
	return lipgloss.JoinVertical(lipgloss.Left, base, box)
}

// renderContent lowers the full render-line list to text and hands it to
// the bubbles viewport component, which owns wrapping and the actual
// on-screen clip; m.vp (internal/layout's pure model) stays the source of
// truth for *where* that clip starts, fed in via bv.YOffset.
func (m *Model) renderContent() string {
	cols := m.width
	if cols <= 0 {
		cols = 80
	}
	lines := layout.Layout(m.cs, m.ex, cols, m.tabWidth)

	var b strings.Builder
	hl := highlight.New(m.theme.ChromaStyle)
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderLine(l, hl))
	}

	m.bv.SetContent(b.String())
	m.bv.YOffset = m.vp.Top
	return m.bv.View()
}

func (m *Model) renderLine(l layout.RenderLine, hl *highlight.Highlighter) string {
	style := m.styleFor(l.Kind)
	if m.hasFocus && l.Path == m.focus {
		style = m.styles.Focused
	}

	text := l.Text
	switch l.Kind {
	case layout.RemovedLine, layout.AddedLine:
		bg := m.theme.AddedBg
		if l.Kind == layout.RemovedLine {
			bg = m.theme.RemovedBg
		}
		text = hl.Line(l.Text, m.currentFilename(l), bg)
	}
	return style.Render(text)
}

func (m *Model) currentFilename(l layout.RenderLine) string {
	if l.Path.File < 0 || l.Path.File >= len(m.cs.Files) {
		return ""
	}
	return m.cs.Files[l.Path.File].DisplayPath()
}

func (m *Model) styleFor(k layout.LineKind) lipgloss.Style {
	switch k {
	case layout.FileHeader:
		return m.styles.FileHeader
	case layout.SectionHeader:
		return m.styles.SectionHeader
	case layout.RemovedLine:
		return m.styles.DiffRemoved
	case layout.AddedLine:
		return m.styles.DiffAdded
	case layout.UnchangedLine:
		return m.styles.DiffContext
	default:
		return m.styles.DiffContext
	}
}

func (m *Model) renderStatusBar() string {
	total, accepted := 0, 0
	for i := range m.cs.Files {
		total++
		if isFullyAccepted(m.cs, i) {
			accepted++
		}
	}
	text := fmt.Sprintf(" %d/%d files fully selected", accepted, total)
	if m.readOnly {
		text += "  [read-only]"
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	return m.styles.StatusBar.Width(width).Render(text)
}

func (m *Model) renderHelpBar() string {
	type binding struct{ key, desc string }
	bindings := []binding{
		{"space", "toggle"}, {"enter", "toggle+next"}, {"tab", "expand"},
		{"j/k", "move"}, {"i", "invert"}, {"a", "all"}, {"c", "confirm"}, {"q", "quit"},
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, m.styles.HelpKey.Render(b.key)+" "+m.styles.HelpDesc.Render(b.desc))
	}
	return " " + strings.Join(parts, "  ")
}
