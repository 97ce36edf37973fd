package layout

import (
	"fmt"

	"github.com/arxanas/scm-record/internal/record"
)

// LineKind classifies a single rendered screen line.
type LineKind int

const (
	FileHeader LineKind = iota
	SectionHeader
	UnchangedLine
	RemovedLine
	AddedLine
	ModeLine
	BinaryLine
	Blank
)

// RenderLine is one line of the frame: its kind, the model path it
// originates from (used for focus navigation and hit-testing), and its
// text already fit to the target column width.
type RenderLine struct {
	Kind LineKind
	Path record.Path
	Text string
}

func glyph(s record.State) string {
	switch s {
	case record.StateAll:
		return "[x]"
	case record.StatePartial:
		return "[~]"
	default:
		return "[ ]"
	}
}

func lineGlyph(toggled bool) string {
	if toggled {
		return "[x]"
	}
	return "[ ]"
}

// Layout computes the full list of render lines for cs at the given
// expansion state, fit to cols columns. Tabs expand to tabWidth-column
// stops (pass DefaultTabWidth absent a configured preference); lines that
// would overflow cols are truncated with an ellipsis. No horizontal
// scrolling is provided.
func Layout(cs *record.ChangeSet, ex *ExpansionState, cols, tabWidth int) []RenderLine {
	var out []RenderLine
	for fi := range cs.Files {
		fc := &cs.Files[fi]
		fp := record.FilePath(fi)
		header := fmt.Sprintf("%s %s", glyph(record.Compute(cs, fp)), fc.DisplayPath())
		out = append(out, RenderLine{Kind: FileHeader, Path: fp, Text: fitCols(header, cols, tabWidth)})

		if !ex.FileExpanded(cs, fi) {
			continue
		}
		for si := range fc.Sections {
			out = append(out, layoutSection(cs, ex, fi, si, cols, tabWidth)...)
		}
	}
	return out
}

func layoutSection(cs *record.ChangeSet, ex *ExpansionState, fi, si int, cols, tabWidth int) []RenderLine {
	sec := &cs.Files[fi].Sections[si]
	sp := record.SectionPath(fi, si)
	expanded := ex.SectionExpanded(cs, fi, si)

	switch sec.Kind {
	case record.SectionUnchanged:
		if !expanded {
			text := fmt.Sprintf("⋯ %d unchanged lines", len(sec.Context))
			return []RenderLine{{Kind: SectionHeader, Path: sp, Text: fitCols(text, cols, tabWidth)}}
		}
		lines := make([]RenderLine, 0, len(sec.Context))
		for i, ctx := range sec.Context {
			lines = append(lines, RenderLine{
				Kind: UnchangedLine,
				Path: record.LinePath(fi, si, record.SideRemoved, i),
				Text: fitCols("  "+string(ctx), cols, tabWidth),
			})
		}
		return lines

	case record.SectionChanged:
		if !expanded {
			text := fmt.Sprintf("%s %d removed, %d added", glyph(record.Compute(cs, sp)), len(sec.Removed), len(sec.Added))
			return []RenderLine{{Kind: SectionHeader, Path: sp, Text: fitCols(text, cols, tabWidth)}}
		}
		lines := make([]RenderLine, 0, len(sec.Removed)+len(sec.Added))
		for i, l := range sec.Removed {
			text := fmt.Sprintf("%s -%s", lineGlyph(l.Toggled), string(l.Content))
			lines = append(lines, RenderLine{
				Kind: RemovedLine,
				Path: record.LinePath(fi, si, record.SideRemoved, i),
				Text: fitCols(text, cols, tabWidth),
			})
		}
		for i, l := range sec.Added {
			text := fmt.Sprintf("%s +%s", lineGlyph(l.Toggled), string(l.Content))
			lines = append(lines, RenderLine{
				Kind: AddedLine,
				Path: record.LinePath(fi, si, record.SideAdded, i),
				Text: fitCols(text, cols, tabWidth),
			})
		}
		return lines

	case record.SectionFileMode:
		text := fmt.Sprintf("%s file mode changed", glyph(record.Compute(cs, sp)))
		lines := []RenderLine{{Kind: SectionHeader, Path: sp, Text: fitCols(text, cols, tabWidth)}}
		if expanded {
			lines = append(lines,
				RenderLine{Kind: ModeLine, Path: sp, Text: fitCols(fmt.Sprintf("  before: %04o", sec.BeforeMode.Perm()), cols, tabWidth)},
				RenderLine{Kind: ModeLine, Path: sp, Text: fitCols(fmt.Sprintf("  after:  %04o", sec.AfterMode.Perm()), cols, tabWidth)},
			)
		}
		return lines

	case record.SectionBinary:
		text := fmt.Sprintf("%s binary file (%s)", glyph(record.Compute(cs, sp)), sec.DisplayHint)
		return []RenderLine{{Kind: BinaryLine, Path: sp, Text: fitCols(text, cols, tabWidth)}}

	default:
		return nil
	}
}
