package keymap

import (
	"github.com/arxanas/scm-record/internal/layout"
	"github.com/arxanas/scm-record/internal/record"
)

// Effect is what the controller should do in response to a dispatched
// command. Dispatch mutates cs/foc/vp/ex in place and returns Effect purely
// to tell the controller which parts of the frame need attention; it never
// performs I/O itself.
type Effect struct {
	Quit    bool
	Outcome string // "accept" or "discard", meaningful only when Quit

	FocusChanged     bool
	ExpansionChanged bool
	ScrollChanged    bool

	// Err is set when the command failed against the current model state —
	// currently only a Toggle/ToggleAndAdvance whose focus Path no longer
	// resolves. Non-fatal: the controller logs it and continues.
	Err error
}

const unboundedCols = 1 << 30

func focusable(k layout.LineKind) bool {
	switch k {
	case layout.FileHeader, layout.SectionHeader, layout.RemovedLine, layout.AddedLine, layout.ModeLine, layout.BinaryLine:
		return true
	default:
		return false
	}
}

// focusRows returns the full render line list alongside the row index of
// each focusable line, built fresh from the current model and expansion
// state. Per §9 this could be cached and invalidated on expansion/model
// change instead of recomputed on every dispatch; Dispatch takes the
// simpler pure-recompute route since layout.Layout is already a cheap pure
// function of (cs, ex).
func focusRows(cs *record.ChangeSet, ex *layout.ExpansionState) []layout.RenderLine {
	return layout.Layout(cs, ex, unboundedCols, layout.DefaultTabWidth)
}

func rowOf(lines []layout.RenderLine, p record.Path) int {
	for i, l := range lines {
		if l.Path == p {
			return i
		}
	}
	return 0
}

// moveFocus advances foc by one focusable position in display order,
// stopping (not wrapping) at the first or last position.
func moveFocus(lines []layout.RenderLine, foc *record.Path, forward bool) bool {
	cur := rowOf(lines, *foc)
	if forward {
		for i := cur + 1; i < len(lines); i++ {
			if focusable(lines[i].Kind) {
				*foc = lines[i].Path
				return true
			}
		}
	} else {
		for i := cur - 1; i >= 0; i-- {
			if focusable(lines[i].Kind) {
				*foc = lines[i].Path
				return true
			}
		}
	}
	return false
}

// nearestFocusableAtOrAfter returns the path of the first focusable line at
// index >= row, falling back to the nearest focusable line before it if
// none exists past the end.
func nearestFocusableAtOrAfter(lines []layout.RenderLine, row int) (record.Path, bool) {
	if row < 0 {
		row = 0
	}
	for i := row; i < len(lines); i++ {
		if focusable(lines[i].Kind) {
			return lines[i].Path, true
		}
	}
	for i := row - 1; i >= 0; i-- {
		if focusable(lines[i].Kind) {
			return lines[i].Path, true
		}
	}
	return record.Path{}, false
}

// Dispatch applies cmd to the model, expansion state, focus, and viewport,
// returning the resulting effect. It is a pure function of its arguments:
// all state changes are visible only through the pointers passed in.
func Dispatch(cmd Command, cs *record.ChangeSet, foc *record.Path, vp *layout.Viewport, ex *layout.ExpansionState) Effect {
	switch cmd {
	case Quit:
		return Effect{Quit: true, Outcome: "discard"}

	case Confirm:
		return Effect{Quit: true, Outcome: "accept"}

	case ToggleExpand:
		ex.ToggleContaining(cs, *foc)
		return Effect{ExpansionChanged: true}

	case ToggleExpandAll:
		ex.ToggleAll(cs)
		return Effect{ExpansionChanged: true}

	case FocusNext:
		lines := focusRows(cs, ex)
		changed := moveFocus(lines, foc, true)
		return Effect{FocusChanged: changed}

	case FocusPrev:
		lines := focusRows(cs, ex)
		changed := moveFocus(lines, foc, false)
		return Effect{FocusChanged: changed}

	case FocusNextSameKind, FocusPrevSameKind:
		// Not yet implemented: accepted as a no-op.
		return Effect{}

	case Toggle:
		err := record.Toggle(cs, *foc)
		return Effect{Err: err}

	case ToggleAndAdvance:
		err := record.Toggle(cs, *foc)
		lines := focusRows(cs, ex)
		changed := moveFocus(lines, foc, true)
		return Effect{FocusChanged: changed, Err: err}

	case Invert:
		record.Invert(cs)
		return Effect{}

	case ToggleAllUniform:
		record.ToggleAllUniform(cs)
		return Effect{}

	case ScrollLineUp:
		lines := focusRows(cs, ex)
		vp.ScrollLines(-1, len(lines))
		return Effect{ScrollChanged: true}

	case ScrollLineDown:
		lines := focusRows(cs, ex)
		vp.ScrollLines(1, len(lines))
		return Effect{ScrollChanged: true}

	case ScrollPageUp:
		lines := focusRows(cs, ex)
		vp.ScrollPage(false, len(lines))
		return Effect{ScrollChanged: true}

	case ScrollPageDown:
		lines := focusRows(cs, ex)
		vp.ScrollPage(true, len(lines))
		return Effect{ScrollChanged: true}

	case ScrollHalfPageUp:
		return scrollHalfPage(cs, foc, vp, ex, -1)

	case ScrollHalfPageDown:
		return scrollHalfPage(cs, foc, vp, ex, 1)

	default:
		return Effect{}
	}
}

// scrollHalfPage moves both the viewport and focus by rows/2 lines in the
// given direction so that focus keeps the same screen row.
func scrollHalfPage(cs *record.ChangeSet, foc *record.Path, vp *layout.Viewport, ex *layout.ExpansionState, dir int) Effect {
	lines := focusRows(cs, ex)
	delta := dir * vp.HalfPage()

	oldRow := rowOf(lines, *foc)
	newRow := oldRow + delta
	if newRow < 0 {
		newRow = 0
	}
	if newRow > len(lines)-1 {
		newRow = len(lines) - 1
	}

	vp.ScrollLines(delta, len(lines))
	if p, ok := nearestFocusableAtOrAfter(lines, newRow); ok {
		*foc = p
	}
	return Effect{FocusChanged: true, ScrollChanged: true}
}
