package record

import "github.com/mitchellh/hashstructure/v2"

// combine derives a container's tri-state from its children's tri-states.
// An empty slice (a container with no selectable leaves, e.g. a file made
// entirely of Unchanged sections) is vacuously StateNone: it cannot change
// tri-state, per the Unchanged-only-file edge case.
func combine(states []State) State {
	if len(states) == 0 {
		return StateNone
	}
	allAll, allNone := true, true
	for _, s := range states {
		if s != StateAll {
			allAll = false
		}
		if s != StateNone {
			allNone = false
		}
	}
	switch {
	case allAll:
		return StateAll
	case allNone:
		return StateNone
	default:
		return StatePartial
	}
}

func sectionState(sec *Section) State {
	switch sec.Kind {
	case SectionUnchanged:
		return StateNone
	case SectionChanged:
		if len(sec.Removed) == 0 && len(sec.Added) == 0 {
			return StateNone
		}
		allAll, allNone := true, true
		for _, l := range sec.Removed {
			if l.Toggled {
				allNone = false
			} else {
				allAll = false
			}
		}
		for _, l := range sec.Added {
			if l.Toggled {
				allNone = false
			} else {
				allAll = false
			}
		}
		switch {
		case allAll:
			return StateAll
		case allNone:
			return StateNone
		default:
			return StatePartial
		}
	case SectionFileMode:
		if sec.ModeToggled {
			return StateAll
		}
		return StateNone
	case SectionBinary:
		if sec.BinaryToggled {
			return StateAll
		}
		return StateNone
	default:
		return StateNone
	}
}

func fileState(fc *FileChange) State {
	var states []State
	for i := range fc.Sections {
		if fc.Sections[i].Kind == SectionUnchanged {
			continue
		}
		states = append(states, sectionState(&fc.Sections[i]))
	}
	return combine(states)
}

func rootState(cs *ChangeSet) State {
	states := make([]State, 0, len(cs.Files))
	for i := range cs.Files {
		states = append(states, fileState(&cs.Files[i]))
	}
	return combine(states)
}

// Compute returns the tri-state of the container (or leaf) p addresses.
// It is a pure function of the leaves under p: nothing is cached, so it is
// always consistent with the current toggle bits (invariant: tri-state
// values are never stored independently of leaves).
func Compute(cs *ChangeSet, p Path) State {
	if p.File < 0 || p.File >= len(cs.Files) {
		return StateNone
	}
	fc := &cs.Files[p.File]
	if p.IsFile() {
		return fileState(fc)
	}
	if p.Section < 0 || p.Section >= len(fc.Sections) {
		return StateNone
	}
	sec := &fc.Sections[p.Section]
	if p.IsSection() {
		return sectionState(sec)
	}
	// Leaf: its own bit, trivially all-or-none.
	if b := cs.leaf(p); b != nil {
		if *b {
			return StateAll
		}
		return StateNone
	}
	return StateNone
}

// setLeaves sets every togglable leaf under p to val.
func setLeaves(cs *ChangeSet, p Path, val bool) {
	if p.File < 0 || p.File >= len(cs.Files) {
		return
	}
	fc := &cs.Files[p.File]
	if p.IsFile() {
		walkLeaves(fc, func(b *bool) { *b = val })
		return
	}
	if p.Section < 0 || p.Section >= len(fc.Sections) {
		return
	}
	sec := &fc.Sections[p.Section]
	if p.IsSection() {
		walkSectionLeaves(sec, func(b *bool) { *b = val })
		return
	}
	if b := cs.leaf(p); b != nil {
		*b = val
	}
}

// Toggle applies the selection-algebra toggle rule at path p:
//   - a leaf flips its own bit;
//   - a container whose current tri-state is StateAll is driven to
//     StateNone (every leaf cleared);
//   - a container whose current tri-state is StateNone or StatePartial is
//     driven to StateAll (every leaf set).
//
// This gives the expected none -> all -> none cycle for a homogeneous
// group while resolving a partial selection toward completion. Returns a
// *PathError, and leaves cs unchanged, if p does not address anything in
// cs — a caller bug (a stale or hand-built Path), not a data problem.
func Toggle(cs *ChangeSet, p Path) error {
	if !cs.Resolves(p) {
		return &PathError{Path: p, Op: "toggle"}
	}
	if p.IsLine() {
		if b := cs.leaf(p); b != nil {
			*b = !*b
		}
		return nil
	}
	cur := Compute(cs, p)
	setLeaves(cs, p, cur != StateAll)
	return nil
}

// Invert flips every leaf bit in the ChangeSet.
func Invert(cs *ChangeSet) {
	for i := range cs.Files {
		walkLeaves(&cs.Files[i], func(b *bool) { *b = !*b })
	}
}

// ToggleAllUniform applies the root cycle rule to the whole ChangeSet: if
// every file is StateAll, clear everything; otherwise select everything.
func ToggleAllUniform(cs *ChangeSet) {
	target := rootState(cs) != StateAll
	for i := range cs.Files {
		walkLeaves(&cs.Files[i], func(b *bool) { *b = target })
	}
}

// leafSnapshot is the structurally-hashable shape of a ChangeSet's toggle
// bits, used to detect whether anything was toggled since session entry
// without threading a dirty flag through every mutation path.
type leafSnapshot struct {
	Bits []bool
}

func snapshot(cs *ChangeSet) leafSnapshot {
	var bits []bool
	for i := range cs.Files {
		walkLeaves(&cs.Files[i], func(b *bool) { bits = append(bits, *b) })
	}
	return leafSnapshot{Bits: bits}
}

// Fingerprint returns a structural hash of every toggle bit in cs. Two
// ChangeSets (or the same ChangeSet at two points in time) with equal
// Fingerprints have identical selections.
func Fingerprint(cs *ChangeSet) (uint64, error) {
	return hashstructure.Hash(snapshot(cs), hashstructure.FormatV2, nil)
}
