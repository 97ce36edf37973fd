// Package layout turns a record.ChangeSet plus its expansion state into the
// flat list of screen lines the TUI controller renders each frame. It knows
// nothing about terminal I/O or styling beyond column width — that is
// internal/tui's and internal/highlight's concern.
package layout

import "github.com/arxanas/scm-record/internal/record"

type containerKey struct {
	File    int
	Section int // -1 for the file container itself
}

// ExpansionState tracks which containers (files and sections) are expanded.
// Files default to expanded; Unchanged sections default to collapsed; every
// other section kind defaults to expanded. It is plain data, not derived
// from the ChangeSet, so collapsing never touches a toggle bit (invariant:
// expansion safety).
type ExpansionState struct {
	overrides map[containerKey]bool
}

// NewExpansionState builds the default expansion state for cs.
func NewExpansionState(cs *record.ChangeSet) *ExpansionState {
	return &ExpansionState{overrides: make(map[containerKey]bool)}
}

func defaultExpanded(cs *record.ChangeSet, key containerKey) bool {
	if key.Section == -1 {
		return true
	}
	fc := &cs.Files[key.File]
	if key.Section < 0 || key.Section >= len(fc.Sections) {
		return true
	}
	return fc.Sections[key.Section].Kind != record.SectionUnchanged
}

func (e *ExpansionState) isExpanded(cs *record.ChangeSet, key containerKey) bool {
	if v, ok := e.overrides[key]; ok {
		return v
	}
	return defaultExpanded(cs, key)
}

// FileExpanded reports whether file's sections are rendered.
func (e *ExpansionState) FileExpanded(cs *record.ChangeSet, file int) bool {
	return e.isExpanded(cs, containerKey{File: file, Section: -1})
}

// SectionExpanded reports whether section's content lines are rendered.
func (e *ExpansionState) SectionExpanded(cs *record.ChangeSet, file, section int) bool {
	return e.isExpanded(cs, containerKey{File: file, Section: section})
}

// ToggleContaining flips the expansion of whichever container holds p: the
// file if p addresses a whole file, otherwise the section p's line or
// section-header belongs to.
func (e *ExpansionState) ToggleContaining(cs *record.ChangeSet, p record.Path) {
	key := containerKey{File: p.File, Section: -1}
	if !p.IsFile() {
		key.Section = p.Section
	}
	e.overrides[key] = !e.isExpanded(cs, key)
}

// ToggleAll flips a global collapse/expand latch across every file and
// section container in cs.
func (e *ExpansionState) ToggleAll(cs *record.ChangeSet) {
	target := false
	for i := range cs.Files {
		if !e.FileExpanded(cs, i) {
			target = true
			break
		}
	}
	for i := range cs.Files {
		e.overrides[containerKey{File: i, Section: -1}] = target
		for j := range cs.Files[i].Sections {
			e.overrides[containerKey{File: i, Section: j}] = target
		}
	}
}
