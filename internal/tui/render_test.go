package tui

import (
	"strings"
	"testing"

	"github.com/arxanas/scm-record/internal/record"
)

// Exact pixel-for-pixel snapshots aren't used here: lipgloss output embeds
// ANSI escapes that shift with terminal profile detection, which this suite
// has no way to pin down without actually running the program. Instead these
// assertions check the structural content a reviewer would look for.

func TestViewContainsFileAndStatusBar(t *testing.T) {
	t.Parallel()
	m := newTestModel(false)

	view := m.View()

	if !strings.Contains(view, "a.txt") {
		t.Error("view should show the file's display path")
	}
	if !strings.Contains(view, "files fully selected") {
		t.Error("view should include the status bar")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should include the help bar")
	}
}

func TestViewShowsReadOnlyTag(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)

	if !strings.Contains(m.View(), "[read-only]") {
		t.Error("read-only sessions should show a status bar tag")
	}
}

func TestViewReflectsFullSelection(t *testing.T) {
	t.Parallel()
	m := newTestModel(false)

	if !strings.Contains(m.View(), "0/1 files fully selected") {
		t.Errorf("expected 0/1 before any toggle, got:\n%s", m.View())
	}

	record.Toggle(m.cs, record.FilePath(0))

	if !strings.Contains(m.View(), "1/1 files fully selected") {
		t.Errorf("expected 1/1 after toggling the whole file to selected, got:\n%s", m.View())
	}
}

func TestViewRendersDialogOverBaseFrame(t *testing.T) {
	t.Parallel()
	m := newTestModel(false)
	m.dialogs.push(newConfirmQuitDialog())

	view := m.View()
	if !strings.Contains(view, "Discard changes?") {
		t.Error("an open dialog should render over the base frame")
	}
}

func TestRenderContentRespectsNarrowViewport(t *testing.T) {
	t.Parallel()
	m := newTestModel(false)
	resizeTestModel(m, 10, 3)

	content := m.renderContent()
	lines := strings.Split(content, "\n")
	if len(lines) != 1 {
		t.Errorf("expected exactly 1 visible line for a 1-row viewport, got %d", len(lines))
	}
}
