package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func firstLogLine(t *testing.T, path string) map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatal("expected at least one log line")
	}
	var line map[string]any
	if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	return line
}

func TestNewWritesSessionTaggedNDJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.log")

	logger, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info().Str("event", "session-start").Msg("hello")

	line := firstLogLine(t, path)
	if _, ok := line["session_id"]; !ok {
		t.Error("log line missing session_id field")
	}
	if line["event"] != "session-start" {
		t.Errorf("event = %v, want session-start", line["event"])
	}
}

func TestNewGeneratesDistinctSessionIDs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	l1, err := New(filepath.Join(dir, "a.log"))
	if err != nil {
		t.Fatal(err)
	}
	l2, err := New(filepath.Join(dir, "b.log"))
	if err != nil {
		t.Fatal(err)
	}
	l1.Info().Msg("a")
	l2.Info().Msg("b")

	id1 := firstLogLine(t, filepath.Join(dir, "a.log"))["session_id"]
	id2 := firstLogLine(t, filepath.Join(dir, "b.log"))["session_id"]
	if id1 == id2 {
		t.Error("two loggers should not share a session_id")
	}
}
