package layout

// Viewport is the scrollable window onto a rendered line list: top is the
// index of the first visible render line, rows is the terminal height
// available for content (excluding any fixed chrome like a status bar).
type Viewport struct {
	Top  int
	Rows int
}

func clampTop(top, rows, total int) int {
	maxTop := total - rows
	if maxTop < 0 {
		maxTop = 0
	}
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top
}

// ScrollLines moves the viewport by delta screen lines without touching
// focus, clamped so top never leaves [0, max(0, total-rows)].
func (v *Viewport) ScrollLines(delta, total int) {
	v.Top = clampTop(v.Top+delta, v.Rows, total)
}

// ScrollPage moves the viewport by rows-1 lines, the standard page step.
func (v *Viewport) ScrollPage(down bool, total int) {
	step := v.Rows - 1
	if step < 1 {
		step = 1
	}
	if !down {
		step = -step
	}
	v.ScrollLines(step, total)
}

// HalfPage returns rows/2, the step used by scroll-half-page-up/down. The
// keymap dispatcher applies this same delta to both the viewport and the
// focus index so focus keeps the same screen row.
func (v *Viewport) HalfPage() int {
	h := v.Rows / 2
	if h < 1 {
		h = 1
	}
	return h
}

// ReconcileFocus implements invariant 3: if row lies outside [top,
// top+rows), nudge top to the nearest edge so row becomes visible again.
func (v *Viewport) ReconcileFocus(row, total int) {
	switch {
	case row < v.Top:
		v.Top = row
	case row >= v.Top+v.Rows:
		v.Top = row - v.Rows + 1
	}
	v.Top = clampTop(v.Top, v.Rows, total)
}

// Visible returns the [start, end) slice bounds of lines currently on
// screen out of a list of length total.
func (v *Viewport) Visible(total int) (start, end int) {
	start = clampTop(v.Top, v.Rows, total)
	end = start + v.Rows
	if end > total {
		end = total
	}
	return start, end
}
