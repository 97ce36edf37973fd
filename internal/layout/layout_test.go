package layout

import (
	"strings"
	"testing"

	"github.com/arxanas/scm-record/internal/record"
)

func sampleChangeSet() *record.ChangeSet {
	return record.New([]record.FileChange{
		{
			OldPath: "a.txt",
			NewPath: "a.txt",
			Sections: []record.Section{
				{Kind: record.SectionUnchanged, Context: [][]byte{[]byte("ctx1"), []byte("ctx2")}},
				{
					Kind:    record.SectionChanged,
					Removed: []record.Line{{Content: []byte("old")}},
					Added:   []record.Line{{Content: []byte("new")}},
				},
			},
		},
	})
}

func TestLayoutFileHeaderAlwaysPresent(t *testing.T) {
	t.Parallel()
	cs := sampleChangeSet()
	ex := NewExpansionState(cs)

	lines := Layout(cs, ex, 80, DefaultTabWidth)
	if len(lines) == 0 || lines[0].Kind != FileHeader {
		t.Fatalf("expected first render line to be a FileHeader, got %+v", lines)
	}
}

func TestLayoutUnchangedSectionCollapsedByDefault(t *testing.T) {
	t.Parallel()
	cs := sampleChangeSet()
	ex := NewExpansionState(cs)

	lines := Layout(cs, ex, 80, DefaultTabWidth)
	var sawHeader, sawContext bool
	for _, l := range lines {
		if l.Kind == SectionHeader && strings.Contains(l.Text, "unchanged") {
			sawHeader = true
		}
		if l.Kind == UnchangedLine {
			sawContext = true
		}
	}
	if !sawHeader {
		t.Error("expected a collapsed-unchanged-section header line")
	}
	if sawContext {
		t.Error("unchanged section should be collapsed by default, context lines should not appear")
	}
}

func TestLayoutChangedSectionExpandedByDefault(t *testing.T) {
	t.Parallel()
	cs := sampleChangeSet()
	ex := NewExpansionState(cs)

	lines := Layout(cs, ex, 80, DefaultTabWidth)
	var sawRemoved, sawAdded bool
	for _, l := range lines {
		if l.Kind == RemovedLine {
			sawRemoved = true
		}
		if l.Kind == AddedLine {
			sawAdded = true
		}
	}
	if !sawRemoved || !sawAdded {
		t.Error("Changed section should expand by default, showing removed and added lines")
	}
}

// TestExpansionSafety covers invariant 7: collapsing a container never
// changes any toggle bit, and re-expanding restores an identical tri-state.
func TestExpansionSafety(t *testing.T) {
	t.Parallel()
	cs := sampleChangeSet()
	record.Toggle(cs, record.LinePath(0, 1, record.SideAdded, 0))
	before := record.Compute(cs, record.FilePath(0))

	ex := NewExpansionState(cs)
	ex.ToggleContaining(cs, record.SectionPath(0, 1))
	if ex.SectionExpanded(cs, 0, 1) {
		t.Fatal("section should now be collapsed")
	}
	if got := record.Compute(cs, record.FilePath(0)); got != before {
		t.Fatalf("tri-state changed across collapse: %v -> %v", before, got)
	}

	ex.ToggleContaining(cs, record.SectionPath(0, 1))
	if !ex.SectionExpanded(cs, 0, 1) {
		t.Fatal("section should be re-expanded")
	}
	if got := record.Compute(cs, record.FilePath(0)); got != before {
		t.Fatalf("tri-state changed across re-expand: %v -> %v", before, got)
	}
}

func TestToggleAllCollapsesThenExpandsEverything(t *testing.T) {
	t.Parallel()
	cs := sampleChangeSet()
	ex := NewExpansionState(cs)

	ex.ToggleAll(cs)
	if ex.FileExpanded(cs, 0) {
		t.Error("ToggleAll should collapse every container on first call")
	}
	if ex.SectionExpanded(cs, 0, 1) {
		t.Error("ToggleAll should collapse the Changed section too")
	}

	ex.ToggleAll(cs)
	if !ex.FileExpanded(cs, 0) {
		t.Error("second ToggleAll should expand everything back")
	}
}

func TestFitColsTruncatesWithEllipsis(t *testing.T) {
	t.Parallel()
	got := fitCols("0123456789", 5, DefaultTabWidth)
	if got != "0123…" {
		t.Errorf("fitCols = %q, want %q", got, "0123…")
	}
}

func TestFitColsExpandsTabs(t *testing.T) {
	t.Parallel()
	got := fitCols("a\tb", 20, DefaultTabWidth)
	if got != "a       b" {
		t.Errorf("fitCols tab expansion = %q, want %q", got, "a       b")
	}
}

func TestViewportReconcileFocus(t *testing.T) {
	t.Parallel()
	v := &Viewport{Top: 0, Rows: 10}

	v.ReconcileFocus(15, 100)
	if v.Top != 6 {
		t.Errorf("Top = %d, want 6 (15-10+1)", v.Top)
	}

	v.ReconcileFocus(2, 100)
	if v.Top != 2 {
		t.Errorf("Top = %d, want 2", v.Top)
	}
}

func TestViewportScrollClampsToContent(t *testing.T) {
	t.Parallel()
	v := &Viewport{Top: 0, Rows: 10}
	v.ScrollLines(-5, 20)
	if v.Top != 0 {
		t.Errorf("Top = %d, want 0 (cannot scroll above start)", v.Top)
	}
	v.ScrollLines(100, 20)
	if v.Top != 10 {
		t.Errorf("Top = %d, want 10 (clamped to total-rows)", v.Top)
	}
}
