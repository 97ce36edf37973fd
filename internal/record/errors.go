package record

import "fmt"

// ModelConstructionError is returned when a ChangeSet cannot be built from
// its inputs — e.g. one side of the comparison, or one of its files,
// cannot be read.
type ModelConstructionError struct {
	File   string
	Reason string
}

func (e *ModelConstructionError) Error() string {
	return fmt.Sprintf("record: cannot construct change set for %q: %s", e.File, e.Reason)
}

// PathError reports a Path that does not address anything in the
// ChangeSet it was used against — a programming error in the caller
// (internal/tui or internal/difftool), not a data problem.
type PathError struct {
	Path Path
	Op   string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("record: %s: path %+v does not address the change set", e.Op, e.Path)
}

// TerminalError reports a failure to initialize, read from, or render to
// the terminal. Fatal: the session aborts and the controller runs its
// cleanup path before returning this.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("record: terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error { return e.Err }

// WriteError reports a failure to persist the reconstructed side back to
// disk. Recoverable: the diff-editor front-end surfaces it in a modal and
// lets the user retry or abandon.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("record: write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// UsageError reports invalid CLI arguments or mutually exclusive flags
// passed to a front-end binary. Reported to standard error; the process
// exits with status 2.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %s", e.Reason)
}
