package difftool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arxanas/scm-record/internal/record"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return dir
}

func findFile(cs *record.ChangeSet, path string) *record.FileChange {
	for i := range cs.Files {
		if cs.Files[i].DisplayPath() == path {
			return &cs.Files[i]
		}
	}
	return nil
}

func TestBuildModifiedFileProducesChangedSection(t *testing.T) {
	t.Parallel()
	left := writeTree(t, map[string]string{"a.txt": "one\ntwo\nthree\n"})
	right := writeTree(t, map[string]string{"a.txt": "one\ntwo-edited\nthree\n"})

	cs, err := Build(context.Background(), left, right)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fc := findFile(cs, "a.txt")
	if fc == nil {
		t.Fatal("expected a.txt in the change set")
	}
	var sawChanged bool
	for _, sec := range fc.Sections {
		if sec.Kind == record.SectionChanged {
			sawChanged = true
		}
	}
	if !sawChanged {
		t.Error("expected at least one Changed section")
	}
}

func TestBuildAddedFileHasNoOldPath(t *testing.T) {
	t.Parallel()
	left := writeTree(t, map[string]string{})
	right := writeTree(t, map[string]string{"new.txt": "hello\n"})

	cs, err := Build(context.Background(), left, right)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fc := findFile(cs, "new.txt")
	if fc == nil {
		t.Fatal("expected new.txt in the change set")
	}
	if fc.OldPath != "" {
		t.Errorf("OldPath = %q, want empty for an added file", fc.OldPath)
	}
}

func TestBuildDeletedFileHasNoNewPath(t *testing.T) {
	t.Parallel()
	left := writeTree(t, map[string]string{"gone.txt": "bye\n"})
	right := writeTree(t, map[string]string{})

	cs, err := Build(context.Background(), left, right)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fc := findFile(cs, "gone.txt")
	if fc == nil {
		t.Fatal("expected gone.txt in the change set")
	}
	if fc.NewPath != "" {
		t.Errorf("NewPath = %q, want empty for a deleted file", fc.NewPath)
	}
}

func TestBuildIdenticalFileHasNoChangedSection(t *testing.T) {
	t.Parallel()
	content := "same\ncontent\n"
	left := writeTree(t, map[string]string{"same.txt": content})
	right := writeTree(t, map[string]string{"same.txt": content})

	cs, err := Build(context.Background(), left, right)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fc := findFile(cs, "same.txt")
	if fc == nil {
		t.Fatal("expected same.txt in the change set")
	}
	for _, sec := range fc.Sections {
		if sec.Kind == record.SectionChanged {
			t.Error("identical files should produce no Changed section")
		}
	}
}

func TestBuildExcludesVCSDirectories(t *testing.T) {
	t.Parallel()
	left := writeTree(t, map[string]string{".git/HEAD": "ref: refs/heads/main\n", "a.txt": "x\n"})
	right := writeTree(t, map[string]string{".git/HEAD": "ref: refs/heads/main\n", "a.txt": "x\n"})

	cs, err := Build(context.Background(), left, right)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if findFile(cs, ".git/HEAD") != nil {
		t.Error(".git contents should be excluded from the walk")
	}
}

func TestBuildDetectsBinaryFiles(t *testing.T) {
	t.Parallel()
	before := []byte{0x00, 0x01, 0x02, 'a', 'b'}
	after := []byte{0x00, 0x01, 0x02, 'a', 'c'}
	left := writeTree(t, map[string]string{"img.bin": string(before)})
	right := writeTree(t, map[string]string{"img.bin": string(after)})

	cs, err := Build(context.Background(), left, right)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fc := findFile(cs, "img.bin")
	if fc == nil {
		t.Fatal("expected img.bin in the change set")
	}
	if len(fc.Sections) != 1 || fc.Sections[0].Kind != record.SectionBinary {
		t.Fatalf("expected a single Binary section, got %+v", fc.Sections)
	}
	if fc.Sections[0].BeforeObjectID == fc.Sections[0].AfterObjectID {
		t.Error("differing binary content should hash to different object IDs")
	}
}

func TestBuildDetectsFileModeChange(t *testing.T) {
	t.Parallel()
	left := writeTree(t, map[string]string{"script.sh": "echo hi\n"})
	right := writeTree(t, map[string]string{"script.sh": "echo hi\n"})
	if err := os.Chmod(filepath.Join(right, "script.sh"), 0o755); err != nil {
		t.Fatalf("Chmod: %v", err)
	}

	cs, err := Build(context.Background(), left, right)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fc := findFile(cs, "script.sh")
	if fc == nil {
		t.Fatal("expected script.sh in the change set")
	}
	var sawMode bool
	for _, sec := range fc.Sections {
		if sec.Kind == record.SectionFileMode {
			sawMode = true
			if sec.BeforeMode.Perm() == sec.AfterMode.Perm() {
				t.Error("expected differing permissions in the FileMode section")
			}
		}
	}
	if !sawMode {
		t.Error("expected a FileMode section for the chmod")
	}
}
