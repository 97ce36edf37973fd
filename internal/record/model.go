// Package record implements the in-memory change-selection data model: the
// typed representation of a proposed set of file modifications, the
// tri-state selection algebra over it, and the derivation of the two
// reconstructed ("selected"/"unselected") file contents from a selection
// state. It owns no terminal I/O and no filesystem access — those are the
// concern of internal/tui and internal/difftool respectively.
package record

import "os"

// State is a container's aggregate selection tri-state.
type State int

const (
	StateNone State = iota
	StatePartial
	StateAll
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StatePartial:
		return "partial"
	case StateAll:
		return "all"
	default:
		return "unknown"
	}
}

// SectionKind discriminates the tagged union of Section payloads.
type SectionKind int

const (
	SectionUnchanged SectionKind = iota
	SectionChanged
	SectionFileMode
	SectionBinary
)

// Line is a single line within a Changed section's removed or added list.
type Line struct {
	Content []byte
	Toggled bool
}

// Section is one contiguous, typed portion of a file's diff. Only the
// fields relevant to Kind are meaningful; the others are zero.
type Section struct {
	Kind SectionKind

	// SectionUnchanged
	Context [][]byte

	// SectionChanged
	Removed []Line
	Added   []Line

	// SectionFileMode
	BeforeMode  os.FileMode
	AfterMode   os.FileMode
	ModeToggled bool

	// SectionBinary
	BeforeObjectID uint64
	AfterObjectID  uint64
	BeforeSize     int64
	AfterSize      int64
	DisplayHint    string // e.g. "image/png", "application/octet-stream"
	BinaryToggled  bool
}

// FileChange is one file's entry in a ChangeSet.
type FileChange struct {
	// OldPath is the path before the change. Empty means the file did not
	// exist before (an add).
	OldPath string
	// NewPath is the path after the change. Empty means the file does not
	// exist after (a delete).
	NewPath string
	Sections []Section
}

// DisplayPath returns the path to show the user: the after-path for
// anything but a pure delete, the before-path otherwise.
func (fc FileChange) DisplayPath() string {
	if fc.NewPath != "" {
		return fc.NewPath
	}
	return fc.OldPath
}

// ChangeSet is the complete in-memory description of a proposed set of file
// modifications. Iteration order is stable and reflects display order.
type ChangeSet struct {
	Files []FileChange
}

// New constructs a ChangeSet from an ordered list of file changes.
func New(files []FileChange) *ChangeSet {
	return &ChangeSet{Files: files}
}

// Resolves reports whether p addresses something real in cs: an existing
// file, an existing section of it, or an existing line within a Changed
// section. Callers that build a Path from user input or stale state (rather
// than from a fresh layout traversal) should check this before mutating.
func (cs *ChangeSet) Resolves(p Path) bool {
	if p.File < 0 || p.File >= len(cs.Files) {
		return false
	}
	if p.IsFile() {
		return true
	}
	fc := &cs.Files[p.File]
	if p.Section < 0 || p.Section >= len(fc.Sections) {
		return false
	}
	if p.IsSection() {
		return true
	}
	return cs.leaf(p) != nil
}

// leaf resolves a line-granularity Path to the toggle bit it addresses, or
// nil if the path does not address a leaf (or is out of range).
func (cs *ChangeSet) leaf(p Path) *bool {
	if p.File < 0 || p.File >= len(cs.Files) {
		return nil
	}
	fc := &cs.Files[p.File]
	if p.Section < 0 || p.Section >= len(fc.Sections) {
		return nil
	}
	sec := &fc.Sections[p.Section]
	switch sec.Kind {
	case SectionChanged:
		if p.Line < 0 {
			return nil
		}
		list := sec.Removed
		if p.Side == SideAdded {
			list = sec.Added
		}
		if p.Line >= len(list) {
			return nil
		}
		if p.Side == SideAdded {
			return &sec.Added[p.Line].Toggled
		}
		return &sec.Removed[p.Line].Toggled
	case SectionFileMode:
		return &sec.ModeToggled
	case SectionBinary:
		return &sec.BinaryToggled
	default:
		return nil
	}
}

// walkLeaves invokes fn for every togglable leaf bit in fc's sections.
func walkLeaves(fc *FileChange, fn func(*bool)) {
	for i := range fc.Sections {
		sec := &fc.Sections[i]
		switch sec.Kind {
		case SectionChanged:
			for j := range sec.Removed {
				fn(&sec.Removed[j].Toggled)
			}
			for j := range sec.Added {
				fn(&sec.Added[j].Toggled)
			}
		case SectionFileMode:
			fn(&sec.ModeToggled)
		case SectionBinary:
			fn(&sec.BinaryToggled)
		}
	}
}

// walkSectionLeaves invokes fn for every togglable leaf bit in a single
// section.
func walkSectionLeaves(sec *Section, fn func(*bool)) {
	switch sec.Kind {
	case SectionChanged:
		for j := range sec.Removed {
			fn(&sec.Removed[j].Toggled)
		}
		for j := range sec.Added {
			fn(&sec.Added[j].Toggled)
		}
	case SectionFileMode:
		fn(&sec.ModeToggled)
	case SectionBinary:
		fn(&sec.BinaryToggled)
	}
}
