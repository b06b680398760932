package mode

import "fmt"

// Mode is a session state.
type Mode int

const (
	// Normal is kinetic pointer control.
	Normal Mode = iota
	// Hint is single pass full screen hint selection.
	Hint
	// Hint2 is hint selection refined by a second, finer pass.
	Hint2
	// Grid is recursive grid bisection.
	Grid
	// Screen selects a screen.
	Screen
	// History selects a previously clicked position.
	History
	// HintSpec selects from caller supplied hints.
	HintSpec
)

var modeNames = map[Mode]string{
	Normal:   "normal",
	Hint:     "hint",
	Hint2:    "hint2",
	Grid:     "grid",
	Screen:   "screen",
	History:  "history",
	HintSpec: "hintspec",
}

// String returns the mode name.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Parse returns the mode named s.
func Parse(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
