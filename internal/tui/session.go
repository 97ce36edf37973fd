package tui

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/arxanas/scm-record/internal/record"
	"github.com/arxanas/scm-record/internal/theme"
)

// runSession drives one interactive session to completion: it acquires the
// terminal, runs the Bubble Tea event loop, and guarantees the terminal is
// restored on every exit path, including a SIGINT/SIGTERM or a cancelled
// ctx arriving mid session (Bubble Tea's own signal handling doesn't cover
// a foreign process stealing the tty out from under it).
func runSession(ctx context.Context, cs *record.ChangeSet, t theme.Theme, readOnly bool, logger zerolog.Logger, write func(*record.ChangeSet) error) (Result, error) {
	fd := int(os.Stdin.Fd())
	var state *term.State
	if term.IsTerminal(fd) {
		var err error
		state, err = term.GetState(fd)
		if err != nil {
			return Result{}, &record.TerminalError{Op: "query terminal state", Err: err}
		}
	}
	restore := func() {
		if state != nil {
			_ = term.Restore(fd, state)
		}
	}
	defer restore()

	m := New(cs, t, readOnly, logger, write)
	program := tea.NewProgram(m, tea.WithAltScreen())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-sigCh:
			restore()
			program.Quit()
		case <-ctx.Done():
			restore()
			program.Quit()
		case <-stop:
		}
	}()

	finalModel, err := program.Run()
	if err != nil {
		return Result{}, &record.TerminalError{Op: "event loop", Err: err}
	}
	fm, ok := finalModel.(*Model)
	if !ok {
		return Result{}, &record.TerminalError{Op: "event loop", Err: errUnexpectedModel}
	}
	return fm.Result(), nil
}

var errUnexpectedModel = errors.New("bubbletea returned an unexpected model type")
