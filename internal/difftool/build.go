// Package difftool builds a record.ChangeSet from two on-disk trees and
// writes the accepted selection back, the two halves of the diff-editor
// front-end used by cmd/scm-diff-editor.
package difftool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/arxanas/scm-record/internal/record"
)

// binarySniffLen mirrors git's own heuristic: a NUL within the first 8000
// bytes marks a file binary.
const binarySniffLen = 8000

var vcsExcludes = []string{".git/**", ".hg/**", ".jj/**"}

// side is one of the two trees being compared, resolved once up front.
type side struct {
	root  string
	isDir bool
	files map[string]fs.FileInfo
}

func loadSide(root string) (side, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return side{root: root}, nil
	}
	if err != nil {
		return side{}, err
	}
	if !info.IsDir() {
		return side{root: root, files: map[string]fs.FileInfo{filepath.Base(root): info}}, nil
	}
	files, err := walkTree(root)
	return side{root: root, isDir: true, files: files}, err
}

func walkTree(root string) (map[string]fs.FileInfo, error) {
	out := map[string]fs.FileInfo{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if excluded(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out[rel] = info
		return nil
	})
	return out, err
}

func excluded(rel string) bool {
	for _, pat := range vcsExcludes {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

func (s side) path(rel string) string {
	if !s.isDir {
		return s.root
	}
	return filepath.Join(s.root, rel)
}

func (s side) has(rel string) bool {
	_, ok := s.files[rel]
	return ok
}

// Build walks left and right (each a file or a directory) concurrently and
// returns a ChangeSet with one entry for every relative path present on
// either side (identical files included), in a stable sorted order.
func Build(ctx context.Context, left, right string) (*record.ChangeSet, error) {
	var ls, rs side
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) { ls, err = loadSide(left); return })
	g.Go(func() (err error) { rs, err = loadSide(right); return })
	if err := g.Wait(); err != nil {
		return nil, &record.ModelConstructionError{File: left, Reason: err.Error()}
	}

	relSet := make(map[string]struct{}, len(ls.files)+len(rs.files))
	for rel := range ls.files {
		relSet[rel] = struct{}{}
	}
	for rel := range rs.files {
		relSet[rel] = struct{}{}
	}
	rels := make([]string, 0, len(relSet))
	for rel := range relSet {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	files := make([]record.FileChange, len(rels))
	g2, gctx := errgroup.WithContext(ctx)
	for i, rel := range rels {
		i, rel := i, rel
		g2.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fc, err := buildFileChange(ls, rs, rel)
			if err != nil {
				return err
			}
			files[i] = fc
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		var mce *record.ModelConstructionError
		if errors.As(err, &mce) {
			return nil, mce
		}
		return nil, &record.ModelConstructionError{Reason: err.Error()}
	}
	return record.New(files), nil
}

func buildFileChange(ls, rs side, rel string) (record.FileChange, error) {
	leftPresent, rightPresent := ls.has(rel), rs.has(rel)

	fc := record.FileChange{}
	if leftPresent {
		fc.OldPath = rel
	}
	if rightPresent {
		fc.NewPath = rel
	}

	var before, after []byte
	var beforeMode, afterMode os.FileMode
	var err error
	if leftPresent {
		if before, err = os.ReadFile(ls.path(rel)); err != nil {
			return record.FileChange{}, &record.ModelConstructionError{File: rel, Reason: err.Error()}
		}
		beforeMode = ls.files[rel].Mode()
	}
	if rightPresent {
		if after, err = os.ReadFile(rs.path(rel)); err != nil {
			return record.FileChange{}, &record.ModelConstructionError{File: rel, Reason: err.Error()}
		}
		afterMode = rs.files[rel].Mode()
	}

	if isBinary(before) || isBinary(after) {
		fc.Sections = []record.Section{binarySection(before, after, leftPresent, rightPresent)}
		return fc, nil
	}

	var sections []record.Section
	if leftPresent && rightPresent && beforeMode.Perm() != afterMode.Perm() {
		sections = append(sections, record.Section{Kind: record.SectionFileMode, BeforeMode: beforeMode, AfterMode: afterMode})
	}
	sections = append(sections, diffSections(before, after)...)
	fc.Sections = sections
	return fc, nil
}

func isBinary(b []byte) bool {
	n := len(b)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(b[:n], 0) >= 0
}

func binarySection(before, after []byte, leftPresent, rightPresent bool) record.Section {
	sec := record.Section{Kind: record.SectionBinary}
	if leftPresent {
		sec.BeforeObjectID = xxhash.Sum64(before)
		sec.BeforeSize = int64(len(before))
	}
	if rightPresent {
		sec.AfterObjectID = xxhash.Sum64(after)
		sec.AfterSize = int64(len(after))
	}
	size := sec.AfterSize
	if !rightPresent {
		size = sec.BeforeSize
	}
	sec.DisplayHint = fmt.Sprintf("binary file (%s)", humanize.Bytes(uint64(size)))
	return sec
}

// diffSections lowers a two-sided byte diff into an ordered list of
// Unchanged/Changed sections. udiff.Strings runs the same Myers algorithm
// the pack already leans on for "two strings in, an edit script out", with
// edits aligned to whole lines.
func diffSections(before, after []byte) []record.Section {
	src := string(before)
	edits := udiff.LineEdits(src, udiff.Strings(src, string(after)))
	if len(edits) == 0 {
		if len(before) == 0 {
			return nil
		}
		return []record.Section{{Kind: record.SectionUnchanged, Context: splitLines(before)}}
	}

	var sections []record.Section
	cursor := 0
	for _, e := range edits {
		if e.Start > cursor {
			sections = append(sections, record.Section{
				Kind:    record.SectionUnchanged,
				Context: splitLines([]byte(src[cursor:e.Start])),
			})
		}
		sections = append(sections, record.Section{
			Kind:    record.SectionChanged,
			Removed: linesFromChunks(splitLines([]byte(src[e.Start:e.End]))),
			Added:   linesFromChunks(splitLines([]byte(e.New))),
		})
		cursor = e.End
	}
	if cursor < len(src) {
		sections = append(sections, record.Section{
			Kind:    record.SectionUnchanged,
			Context: splitLines([]byte(src[cursor:])),
		})
	}
	return sections
}

func linesFromChunks(chunks [][]byte) []record.Line {
	if len(chunks) == 0 {
		return nil
	}
	lines := make([]record.Line, len(chunks))
	for i, c := range chunks {
		lines[i] = record.Line{Content: c}
	}
	return lines
}

// splitLines breaks b on every '\n', keeping the newline with the line it
// terminates, so concatenating the result reproduces b exactly.
func splitLines(b []byte) [][]byte {
	if len(b) == 0 {
		return nil
	}
	parts := bytes.SplitAfter(b, []byte("\n"))
	if len(parts) > 0 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	return parts
}
