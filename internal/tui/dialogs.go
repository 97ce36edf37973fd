package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// DialogKind distinguishes the modal dialogs the controller can show.
type DialogKind int

const (
	DialogConfirmQuit DialogKind = iota
	DialogWriteError
)

// Dialog wraps a huh.Form with the bookkeeping the controller needs to
// route key events to it and interpret its result once submitted.
type Dialog struct {
	Kind      DialogKind
	Form      *huh.Form
	Path      string
	Err       error
	confirmed bool
}

func newConfirmQuitDialog() *Dialog {
	d := &Dialog{Kind: DialogConfirmQuit}
	d.Form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Discard changes?").
			Description("Some selections have been toggled since you started. Quit without applying them?").
			Affirmative("Discard").
			Negative("Keep editing").
			Value(&d.confirmed),
	))
	return d
}

// newWriteErrorDialog builds the recoverable write-failure modal required
// by §4.8: it names the offending path and the OS message, and lets the
// user retry the write or abandon the session (abandon -> Failed outcome).
// confirmed reports "retry" when true.
func newWriteErrorDialog(path string, err error) *Dialog {
	d := &Dialog{Kind: DialogWriteError, Path: path, Err: err}
	d.Form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Write error").
			Description(fmt.Sprintf("%s\n%v", path, err)).
			Affirmative("Retry").
			Negative("Abandon").
			Value(&d.confirmed),
	))
	return d
}

// dialogStack is a depth-capped stack of modal dialogs: while any dialog is
// present, the base key map is suppressed and only the top dialog's keys
// are live.
type dialogStack struct {
	stack []*Dialog
}

const maxDialogDepth = 2

// push adds dlg to the top of the stack. It reports false (and does not
// push) if the stack is already at its depth cap.
func (s *dialogStack) push(dlg *Dialog) bool {
	if len(s.stack) >= maxDialogDepth {
		return false
	}
	s.stack = append(s.stack, dlg)
	return true
}

func (s *dialogStack) pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *dialogStack) top() *Dialog {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *dialogStack) empty() bool { return len(s.stack) == 0 }
