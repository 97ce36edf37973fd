// Package keymap translates terminal key events into the fixed command set
// the TUI controller understands, and applies each command to the model as
// a pure function of (command, state) -> effect.
package keymap

// Command is one entry in the fixed key -> command table.
type Command int

const (
	Quit Command = iota
	Confirm
	ToggleExpand
	ToggleExpandAll
	FocusNext
	FocusPrev
	FocusNextSameKind
	FocusPrevSameKind
	Toggle
	ToggleAndAdvance
	Invert
	ToggleAllUniform
	ScrollLineUp
	ScrollLineDown
	ScrollPageUp
	ScrollPageDown
	ScrollHalfPageUp
	ScrollHalfPageDown
)

func (c Command) String() string {
	switch c {
	case Quit:
		return "quit"
	case Confirm:
		return "confirm"
	case ToggleExpand:
		return "toggle-expand"
	case ToggleExpandAll:
		return "toggle-expand-all"
	case FocusNext:
		return "focus-next"
	case FocusPrev:
		return "focus-prev"
	case FocusNextSameKind:
		return "focus-next-same-kind"
	case FocusPrevSameKind:
		return "focus-prev-same-kind"
	case Toggle:
		return "toggle"
	case ToggleAndAdvance:
		return "toggle-and-advance"
	case Invert:
		return "invert"
	case ToggleAllUniform:
		return "toggle-all-uniform"
	case ScrollLineUp:
		return "scroll-line-up"
	case ScrollLineDown:
		return "scroll-line-down"
	case ScrollPageUp:
		return "scroll-page-up"
	case ScrollPageDown:
		return "scroll-page-down"
	case ScrollHalfPageUp:
		return "scroll-half-page-up"
	case ScrollHalfPageDown:
		return "scroll-half-page-down"
	default:
		return "unknown"
	}
}

// Table is the fixed key -> command binding. Keys are bubbletea's
// tea.KeyMsg.String() form.
var Table = map[string]Command{
	"q":      Quit,
	"ctrl+c": Quit,
	"c":      Confirm,
	"tab":    ToggleExpand,
	"A":      ToggleExpandAll,
	"down":   FocusNext,
	"j":      FocusNext,
	"up":     FocusPrev,
	"k":      FocusPrev,
	"J":      FocusNextSameKind,
	"K":      FocusPrevSameKind,
	" ":      Toggle,
	"space":  Toggle,
	"enter":  ToggleAndAdvance,
	"i":      Invert,
	"a":      ToggleAllUniform,
	"ctrl+y": ScrollLineUp,
	"ctrl+e": ScrollLineDown,
	"pgup":   ScrollPageUp,
	"ctrl+b": ScrollPageUp,
	"pgdown": ScrollPageDown,
	"ctrl+f": ScrollPageDown,
	"ctrl+u": ScrollHalfPageUp,
	"ctrl+d": ScrollHalfPageDown,
}

// Lookup resolves a key string to its bound command, if any.
func Lookup(key string) (Command, bool) {
	cmd, ok := Table[key]
	return cmd, ok
}
