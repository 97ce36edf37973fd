// Package logging configures the structured logger used throughout a
// session. Logs always go to a file, never to stdout/stderr: the
// controller owns the terminal's alt-screen buffer, and interleaving log
// lines with it would corrupt the display.
package logging

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New opens (creating if necessary) the NDJSON log file at path and
// returns a logger tagged with a fresh session ID, so lines from
// concurrent invocations can be told apart after the fact.
func New(path string) (zerolog.Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return zerolog.New(f).With().
		Timestamp().
		Str("session_id", uuid.NewString()).
		Logger(), nil
}
