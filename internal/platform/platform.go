// Package platform defines the capabilities keywarp needs from the host
// windowing system.
//
// The mode engine never talks to a window system directly. A backend
// implements Platform: it captures keyboard input, reports and moves the
// pointer, enumerates screens, and draws the boxes and hint labels the
// modes ask for. Drawing calls are buffered until Commit.
package platform

import (
	"time"

	"github.com/dshills/keywarp/internal/input/key"
)

// PollInterval is how long mode loops wait for input before treating the
// timeout as a tick.
const PollInterval = 10 * time.Millisecond

// MaxLabel is the longest hint label.
const MaxLabel = 15

// Screen is an opaque handle to one display.
type Screen int

// Hint is a labeled target drawn on a screen. X and Y are the top-left
// corner of the hint box.
type Hint struct {
	X, Y, W, H int
	Label      string
}

// Center returns the pixel the pointer should land on when h is chosen.
func (h Hint) Center() (int, int) {
	return h.X + h.W/2, h.Y + h.H/2
}

// HintStyle is how hint boxes and labels are painted.
type HintStyle struct {
	Background   string
	Foreground   string
	BorderRadius int
	Font         string
}

// ScrollDirection is the direction of one scroll unit.
type ScrollDirection int

const (
	// ScrollDown scrolls content down.
	ScrollDown ScrollDirection = iota + 1
	// ScrollRight scrolls content right.
	ScrollRight
	// ScrollLeft scrolls content left.
	ScrollLeft
	// ScrollUp scrolls content up.
	ScrollUp
)

// String returns the direction name.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollDown:
		return "down"
	case ScrollRight:
		return "right"
	case ScrollLeft:
		return "left"
	case ScrollUp:
		return "up"
	default:
		return "none"
	}
}

// Input is exclusive keyboard access.
type Input interface {
	// Grab routes all keyboard input to keywarp until Ungrab.
	Grab()
	Ungrab()

	// NextEvent waits up to timeout for the next key event. ok is false
	// when the timeout elapsed first.
	NextEvent(timeout time.Duration) (ev key.Event, ok bool)
}

// Pointer controls the mouse pointer.
type Pointer interface {
	// Position returns the screen under the pointer and the pointer
	// coordinates relative to it.
	Position() (Screen, int, int)
	Move(scr Screen, x, y int)

	Down(button int)
	Up(button int)
	Click(button int)

	// Show and Hide toggle the native cursor.
	Show()
	Hide()

	Scroll(dir ScrollDirection)
	CopySelection()
}

// Display enumerates screens and draws overlays.
type Display interface {
	Screens() []Screen
	Size(scr Screen) (w, h int)

	DrawBox(scr Screen, x, y, w, h int, color string)
	DrawHints(scr Screen, hints []Hint)
	SetHintStyle(style HintStyle)
	Clear(scr Screen)

	// Commit flushes pending draw operations.
	Commit()
}

// Clock is a monotonic clock.
type Clock interface {
	// Now returns the time elapsed since an arbitrary fixed point.
	Now() time.Duration
}

// Platform is everything a backend provides.
type Platform interface {
	Input
	Pointer
	Display
	Clock
	key.Keymap
}
