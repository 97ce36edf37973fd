package difftool

import (
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/arxanas/scm-record/internal/record"
)

// Write persists the reconstructed *selected* side of cs to right, creating
// and removing files and chmod-ing per the reconstructed mode. Only ever
// called on the accept path, from inside the session before it exits
// (§4.8 — the discard path never writes).
func Write(cs *record.ChangeSet, left, right string) error {
	rightIsDir := isDir(right)

	selected, _ := record.Reconstruct(cs)
	for _, rf := range selected {
		target := right
		if rightIsDir {
			target = filepath.Join(right, rf.Path)
		}

		if rf.Omit {
			if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
				return &record.WriteError{Path: rf.Path, Err: err}
			}
			continue
		}

		content := rf.Content
		if rf.Binary {
			b, err := resolveBinaryContent(rf, left, right, rightIsDir)
			if err != nil {
				return &record.WriteError{Path: rf.Path, Err: err}
			}
			content = b
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return &record.WriteError{Path: rf.Path, Err: err}
		}
		mode := os.FileMode(0o644)
		if rf.HasMode {
			mode = rf.Mode
		}
		if err := os.WriteFile(target, content, mode); err != nil {
			return &record.WriteError{Path: rf.Path, Err: err}
		}
		if rf.HasMode {
			if err := os.Chmod(target, rf.Mode); err != nil {
				return &record.WriteError{Path: rf.Path, Err: err}
			}
		}
	}
	return nil
}

// resolveBinaryContent recovers the actual bytes for a binary file
// reconstruction, which carries only an opaque object ID (§4.3). If the
// accepted ID matches what's already on the right-hand side, no reread is
// needed; otherwise the pre-change bytes are reread from left, the only
// other place they still exist.
func resolveBinaryContent(rf record.ReconstructedFile, left, right string, rightIsDir bool) ([]byte, error) {
	currentRight := right
	if rightIsDir {
		currentRight = filepath.Join(right, rf.Path)
	}
	if b, err := os.ReadFile(currentRight); err == nil {
		if xxhash.Sum64(b) == rf.ObjectID {
			return b, nil
		}
	}

	leftIsDir := isDir(left)
	currentLeft := left
	if leftIsDir {
		currentLeft = filepath.Join(left, rf.Path)
	}
	return os.ReadFile(currentLeft)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
