// Package tui implements the interactive change-selection controller: a
// single-threaded, cooperative Bubble Tea event loop over a
// record.ChangeSet, backed by internal/layout for rendering and
// internal/keymap for command dispatch.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/arxanas/scm-record/internal/config"
	"github.com/arxanas/scm-record/internal/keymap"
	"github.com/arxanas/scm-record/internal/layout"
	"github.com/arxanas/scm-record/internal/record"
	"github.com/arxanas/scm-record/internal/theme"
)

// Outcome is the terminal state of a session: Built -> Editing <-> Dialog
// -> {Accepted, Discarded, Failed}.
type Outcome int

const (
	Discarded Outcome = iota
	Accepted
	Failed
)

// Result is what a session resolves to once the event loop exits. ChangeSet
// is populated only when Outcome is Accepted — it is the same *ChangeSet
// the session was given, carrying whatever selection the user left it in.
type Result struct {
	Outcome   Outcome
	ChangeSet *record.ChangeSet
	Err       error
}

const unboundedCols = 1 << 30

// Model is the Bubble Tea model driving one change-selection session.
type Model struct {
	cs       *record.ChangeSet
	ex       *layout.ExpansionState
	vp       *layout.Viewport
	focus    record.Path
	hasFocus bool

	// bv is the actual scrollable content pane. vp is the pure,
	// bubbletea-free logical viewport that internal/keymap's Dispatch
	// reads and mutates (Dispatch must stay a plain function of state so
	// it's testable without a running program); bv mirrors vp.Top as its
	// YOffset and does the line-wrapping/rendering bubbles already solves
	// well, so the controller doesn't reimplement it.
	bv viewport.Model

	styles   Styles
	theme    theme.Theme
	tabWidth int

	readOnly         bool
	entryFingerprint uint64

	dialogs dialogStack

	width, height int

	logger zerolog.Logger
	result Result

	// write persists the accepted selection, invoked from the event loop
	// itself (not after it returns) so a failure can open the recoverable
	// WriteError dialog while the terminal is still owned by this session.
	// nil when the session has nowhere to persist to (e.g. a read-only
	// view, or an embedder that handles persistence outside the loop).
	write func(*record.ChangeSet) error
}

// New builds a session Model over cs. readOnly disables every mutating
// command; only navigation and quit remain live. write is called with cs
// when the user confirms acceptance, and again on each Retry from the
// write-error dialog; pass nil if there is nothing to persist (accept then
// exits immediately, as discard always does).
func New(cs *record.ChangeSet, t theme.Theme, readOnly bool, logger zerolog.Logger, write func(*record.ChangeSet) error) *Model {
	fp, _ := record.Fingerprint(cs)
	tabWidth := config.Load().TabWidth
	if tabWidth <= 0 {
		tabWidth = layout.DefaultTabWidth
	}
	m := &Model{
		cs:               cs,
		ex:               layout.NewExpansionState(cs),
		vp:               &layout.Viewport{Rows: 1},
		bv:               viewport.New(0, 1),
		styles:           NewStyles(t),
		theme:            t,
		tabWidth:         tabWidth,
		readOnly:         readOnly,
		entryFingerprint: fp,
		logger:           logger,
		write:            write,
	}
	if len(cs.Files) > 0 {
		m.focus = record.FilePath(0)
		m.hasFocus = true
	}
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

func contentRows(height int) int {
	// One row reserved for the status bar, one for the help bar.
	rows := height - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if dlg := m.dialogs.top(); dlg != nil {
		return m.updateDialog(dlg, msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Rows = contentRows(msg.Height)
		m.bv.Width = msg.Width
		m.bv.Height = contentRows(msg.Height)
		m.reconcileFocus()
		m.bv.YOffset = m.vp.Top
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

// readOnlyAllowed reports whether cmd may run while the session is
// read-only: navigation, scrolling, and quit remain live; every command
// that could mutate the model or exit with "accept" is suppressed.
func readOnlyAllowed(cmd keymap.Command) bool {
	switch cmd {
	case keymap.Quit,
		keymap.ToggleExpand, keymap.ToggleExpandAll,
		keymap.FocusNext, keymap.FocusPrev,
		keymap.FocusNextSameKind, keymap.FocusPrevSameKind,
		keymap.ScrollLineUp, keymap.ScrollLineDown,
		keymap.ScrollPageUp, keymap.ScrollPageDown,
		keymap.ScrollHalfPageUp, keymap.ScrollHalfPageDown:
		return true
	default:
		return false
	}
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := keymap.Lookup(msg.String())
	if !ok {
		return m, nil
	}
	if m.readOnly && !readOnlyAllowed(cmd) {
		return m, nil
	}

	if cmd == keymap.Quit {
		return m.handleQuit()
	}

	eff := keymap.Dispatch(cmd, m.cs, &m.focus, m.vp, m.ex)
	if eff.Err != nil {
		m.logger.Error().Err(eff.Err).Msg("dispatch")
	}
	if eff.Quit {
		if eff.Outcome == "accept" {
			return m.attemptAccept()
		}
		m.logger.Info().Str("outcome", eff.Outcome).Msg("session exit")
		m.result = Result{Outcome: Discarded}
		return m, tea.Quit
	}

	// Invariant 6 (focus visibility) applies to every command except
	// scroll-line-up/down, which §4.5 explicitly allows to scroll focus
	// off-screen.
	if cmd != keymap.ScrollLineUp && cmd != keymap.ScrollLineDown {
		m.reconcileFocus()
	}
	m.bv.YOffset = m.vp.Top
	return m, nil
}

// attemptAccept runs the accept path: persist the selection via m.write (if
// any), then quit with Accepted, or — per §4.8 — open the recoverable
// WriteError dialog and keep the session alive so the user can retry or
// abandon.
func (m *Model) attemptAccept() (tea.Model, tea.Cmd) {
	if m.write == nil {
		m.logger.Info().Str("outcome", "accept").Msg("session exit")
		m.result = Result{Outcome: Accepted, ChangeSet: m.cs}
		return m, tea.Quit
	}
	if err := m.write(m.cs); err != nil {
		var we *record.WriteError
		path := ""
		if errors.As(err, &we) {
			path = we.Path
		}
		m.logger.Error().Err(err).Str("path", path).Msg("write failed")
		m.dialogs.push(newWriteErrorDialog(path, err))
		return m, nil
	}
	m.logger.Info().Str("outcome", "accept").Msg("session exit")
	m.result = Result{Outcome: Accepted, ChangeSet: m.cs}
	return m, tea.Quit
}

// handleQuit implements the quit command's dirty check: if any leaf has
// been toggled since session entry, open the confirm-quit dialog instead
// of exiting immediately.
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	fp, err := record.Fingerprint(m.cs)
	if err == nil && fp != m.entryFingerprint {
		m.dialogs.push(newConfirmQuitDialog())
		return m, nil
	}
	m.result = Result{Outcome: Discarded}
	return m, tea.Quit
}

func (m *Model) reconcileFocus() {
	if !m.hasFocus {
		return
	}
	lines := layout.Layout(m.cs, m.ex, unboundedCols, m.tabWidth)
	row := 0
	for i, l := range lines {
		if l.Path == m.focus {
			row = i
			break
		}
	}
	m.vp.ReconcileFocus(row, len(lines))
}

func (m *Model) updateDialog(dlg *Dialog, msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := dlg.Form.Update(msg)
	dlg.Form = updated.(*huh.Form)

	switch dlg.Form.State {
	case huh.StateCompleted:
		return m.resolveDialog(dlg)
	case huh.StateAborted:
		m.dialogs.pop()
		return m, nil
	default:
		return m, cmd
	}
}

// resolveDialog applies dlg's outcome once its form completes, popping it
// first since both branches below either quit or return to the base frame
// — neither leaves this dialog on the stack.
func (m *Model) resolveDialog(dlg *Dialog) (tea.Model, tea.Cmd) {
	m.dialogs.pop()
	switch dlg.Kind {
	case DialogConfirmQuit:
		if dlg.confirmed {
			m.result = Result{Outcome: Discarded}
			return m, tea.Quit
		}
		return m, nil

	case DialogWriteError:
		if dlg.confirmed {
			// Retry: re-run the write, which may succeed, push a fresh
			// WriteError dialog, or (in principle) quit.
			return m.attemptAccept()
		}
		m.logger.Error().Err(dlg.Err).Str("path", dlg.Path).Msg("write abandoned")
		m.result = Result{Outcome: Failed, Err: dlg.Err}
		return m, tea.Quit
	}
	return m, nil
}

// Result returns the session's terminal outcome. Only meaningful after the
// Bubble Tea program has returned.
func (m *Model) Result() Result { return m.result }
