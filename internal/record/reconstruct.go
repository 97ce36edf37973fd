package record

import "os"

// ReconstructedFile is one file's content as derived from a ChangeSet plus
// its current selection state. Content is the raw bytes that would be
// written to disk; no re-encoding of line endings or charset is performed.
type ReconstructedFile struct {
	// Path is the file's display/output path: the after-path for anything
	// but a pure delete, the before-path otherwise.
	Path string
	// Omit is true when this reconstruction has no file at all — an added
	// file with nothing accepted, or a deleted file whose deletion was
	// accepted in full. Content, Mode, and ObjectID are meaningless when
	// Omit is true.
	Omit bool

	Content []byte

	HasMode bool
	Mode    os.FileMode

	Binary   bool
	ObjectID uint64
}

// Reconstruct derives the selected and unselected content of every file in
// cs from its current selection state. See package doc and spec §4.3 for
// the per-section rules.
func Reconstruct(cs *ChangeSet) (selected, unselected []ReconstructedFile) {
	selected = make([]ReconstructedFile, 0, len(cs.Files))
	unselected = make([]ReconstructedFile, 0, len(cs.Files))
	for i := range cs.Files {
		fc := &cs.Files[i]
		selected = append(selected, reconstructOne(fc, false))
		unselected = append(unselected, reconstructOne(fc, true))
	}
	return selected, unselected
}

// reconstructOne builds one side of the reconstruction for fc. invert
// selects the "unselected" rules (every inclusion test negated relative to
// "selected").
func reconstructOne(fc *FileChange, invert bool) ReconstructedFile {
	out := ReconstructedFile{Path: fc.DisplayPath()}

	var content []byte
	for i := range fc.Sections {
		sec := &fc.Sections[i]
		switch sec.Kind {
		case SectionUnchanged:
			for _, line := range sec.Context {
				content = append(content, line...)
			}
		case SectionChanged:
			for _, l := range sec.Removed {
				include := !l.Toggled
				if invert {
					include = !include
				}
				if include {
					content = append(content, l.Content...)
				}
			}
			for _, l := range sec.Added {
				include := l.Toggled
				if invert {
					include = !include
				}
				if include {
					content = append(content, l.Content...)
				}
			}
		case SectionFileMode:
			out.HasMode = true
			useAfter := sec.ModeToggled
			if invert {
				useAfter = !useAfter
			}
			if useAfter {
				out.Mode = sec.AfterMode
			} else {
				out.Mode = sec.BeforeMode
			}
		case SectionBinary:
			out.Binary = true
			useAfter := sec.BinaryToggled
			if invert {
				useAfter = !useAfter
			}
			if useAfter {
				out.ObjectID = sec.AfterObjectID
			} else {
				out.ObjectID = sec.BeforeObjectID
			}
		}
	}
	out.Content = content

	state := fileState(fc)
	switch {
	case fc.OldPath == "" && !invert:
		// Added file: the selected side omits it entirely until something
		// is accepted.
		out.Omit = state == StateNone
	case fc.NewPath == "" && invert:
		// Deleted file: the unselected (residual working) side omits it
		// entirely once the deletion is accepted in full.
		out.Omit = state == StateAll
	}
	return out
}
