// Command scm-diff-editor is the two-pane diff-editor front-end: it builds
// a change set from two on-disk trees, runs the interactive controller,
// and writes the accepted selection back. It is meant to be invoked as a
// `git difftool` / `hg extdiff` / Jujutsu `ui.diff-editor` backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arxanas/scm-record/internal/config"
	"github.com/arxanas/scm-record/internal/difftool"
	"github.com/arxanas/scm-record/internal/logging"
	"github.com/arxanas/scm-record/internal/record"
	"github.com/arxanas/scm-record/internal/tui"
)

// Exit codes per the diff-editor CLI contract: 0 on accept or clean
// discard, 1 on a failed accept/write, 2 on a usage error.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

var version = "dev"

var (
	flagReadOnly bool
	flagColor    string
)

var rootCmd = &cobra.Command{
	Use:          "scm-diff-editor <LEFT> <RIGHT>",
	Short:        "Interactive two-pane diff editor",
	Version:      version,
	RunE:         runEditor,
	SilenceUsage: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(2)(cmd, args); err != nil {
			return &record.UsageError{Reason: err.Error()}
		}
		return nil
	},
}

// exitCode is set by runEditor and read back in main, since cobra's RunE
// can only report an error, not a specific exit status.
var exitCode = exitOK

func init() {
	rootCmd.Flags().BoolVar(&flagReadOnly, "read-only", false, "disable every toggle/confirm command; browse only")
	rootCmd.Flags().StringVar(&flagColor, "color", "auto", "color mode: auto, always, never")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &record.UsageError{Reason: err.Error()}
	})
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var usage *record.UsageError
		if errors.As(err, &usage) {
			return exitUsage
		}
		return exitFail
	}
	return exitCode
}

func validColorMode(mode string) bool {
	return mode == "auto" || mode == "always" || mode == "never"
}

func runEditor(cmd *cobra.Command, args []string) error {
	left, right := args[0], args[1]
	cfg := config.Load()

	// An explicit flag always wins; absent one, fall back to the on-disk
	// preference so a user who always runs read-only or always-color
	// doesn't have to pass the flag on every invocation.
	if !cmd.Flags().Changed("read-only") {
		flagReadOnly = cfg.ReadOnly
	}
	if !cmd.Flags().Changed("color") && cfg.Color != "" {
		flagColor = string(cfg.Color)
	}

	if !validColorMode(flagColor) {
		exitCode = exitUsage
		return &record.UsageError{Reason: fmt.Sprintf("invalid --color value %q", flagColor)}
	}
	if _, err := os.Stat(left); err != nil {
		exitCode = exitUsage
		return &record.UsageError{Reason: fmt.Sprintf("left path %q: %v", left, err)}
	}

	applyColorMode(flagColor)

	logPath := cfg.LogPath
	if logPath == "" {
		logPath = filepath.Join(os.TempDir(), "scm-diff-editor.log")
	}
	logger, err := logging.New(logPath)
	if err != nil {
		exitCode = exitFail
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	cs, err := difftool.Build(ctx, left, right)
	if err != nil {
		logger.Error().Err(err).Msg("change set construction failed")
		exitCode = exitFail
		return err
	}

	mode := tui.ModeRecord
	if flagReadOnly {
		mode = tui.ModeDiffViewOnly
	}
	// write runs inside the session itself: a failure opens the
	// recoverable write-error dialog (retry/abandon) while the TUI still
	// owns the terminal, rather than surfacing after Run has returned.
	write := func(selected *record.ChangeSet) error {
		return difftool.Write(selected, left, right)
	}
	res, err := tui.Run(ctx, cs, mode, write)
	if err != nil {
		logger.Error().Err(err).Msg("session failed")
		exitCode = exitFail
		return err
	}

	switch res.Outcome {
	case tui.Failed:
		// The user abandoned a failed write; res.Err is the last WriteError.
		exitCode = exitFail
		return res.Err
	default:
		exitCode = exitOK
		return nil
	}
}

// applyColorMode overrides lipgloss/termenv's own auto-detection for the
// --color=always/never cases; "auto" leaves termenv's NO_COLOR/TERM/
// COLORTERM detection (already wired at package init) alone, except for
// the controlling-tty check resolveAutoColor adds.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		resolveAutoColor()
	}
}

// resolveAutoColor implements the §9 open-question resolution: color is
// enabled when stdout is a terminal *or* a controlling terminal is present,
// since diff-editor invocations from a host SCM often redirect stdout while
// the alternate screen still renders to the real tty.
func resolveAutoColor() {
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	if f, err := os.Open("/dev/tty"); err == nil {
		defer f.Close()
		if term.IsTerminal(int(f.Fd())) {
			lipgloss.SetColorProfile(termenv.NewOutput(f).EnvColorProfile())
			return
		}
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
