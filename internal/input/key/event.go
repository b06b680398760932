package key

import "fmt"

// Code identifies a physical key as reported by the platform.
// Zero is never a valid key.
type Code uint8

// Event is a single key (or button) transition delivered by the platform.
type Event struct {
	Code    Code
	Mods    Modifier
	Pressed bool
}

// Press returns a press event for code with the given modifiers.
func Press(code Code, mods Modifier) Event {
	return Event{Code: code, Mods: mods, Pressed: true}
}

// Release returns a release event for code with the given modifiers.
func Release(code Code, mods Modifier) Event {
	return Event{Code: code, Mods: mods}
}

// String returns a debug representation of the event.
func (e Event) String() string {
	state := "up"
	if e.Pressed {
		state = "down"
	}
	return fmt.Sprintf("code=%d mods=%q %s", e.Code, e.Mods.String(), state)
}
