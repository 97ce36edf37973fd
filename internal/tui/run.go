package tui

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arxanas/scm-record/internal/config"
	"github.com/arxanas/scm-record/internal/record"
	"github.com/arxanas/scm-record/internal/theme"
)

// Mode selects what a session lets the user do. ModeDiffViewOnly is used
// by scm-diff-editor's --read-only flag and by any host that only wants a
// browsable diff with no selection side effects.
type Mode int

const (
	ModeRecord Mode = iota
	ModeDiffViewOnly
)

// Run is the library entry point: hand it a ChangeSet and a Mode and it
// drives one interactive terminal session to completion, returning the
// outcome the host should act on. ctx cancellation is honored the same way
// a SIGINT is: the terminal is restored and the session ends as if the user
// quit without confirming.
//
// write persists an accepted selection; it runs inside the session so a
// failure can open the recoverable write-error dialog (§4.8) before the
// terminal is torn down, rather than after Run has already returned. Pass
// nil for a read-only/diff-view-only session, or when the host persists the
// selection itself outside of Run.
//
// The session's color theme follows the shared on-disk preference
// (internal/config's Theme field, via theme.Themes), falling back to the
// dark theme for an unset or unrecognized name.
func Run(ctx context.Context, cs *record.ChangeSet, mode Mode, write func(*record.ChangeSet) error) (Result, error) {
	t := resolveTheme(config.Load().Theme)
	readOnly := mode == ModeDiffViewOnly
	res, err := runSession(ctx, cs, t, readOnly, zerolog.Nop(), write)
	if err != nil {
		return Result{Outcome: Failed, Err: err}, err
	}
	return res, nil
}

func resolveTheme(name string) theme.Theme {
	if t, ok := theme.Themes[name]; ok {
		return t
	}
	return theme.DarkTheme()
}
