// Package mode runs a keywarp session: the state machine that moves
// between normal, hint, grid and screen selection modes until the user
// exits or clicks.
//
// # Modes
//
//   - Normal: kinetic pointer movement, warps, clicks, drag and scroll
//   - Hint, Hint2: full screen hints, optionally refined by a second pass
//   - History: hints over previously clicked positions
//   - HintSpec: hints supplied by the caller
//   - Grid: recursive bisection of a region around the pointer
//   - Screen: jump to the center of another screen
//
// Every mode entry clears the binding whitelist; each mode then
// whitelists only its own bindings for the duration of its loop.
//
// # Lifecycle
//
//	        hint / hint2 / history / screen
//	┌────────┐ ─────────────────────────▶ ┌──────────┐
//	│ Normal │                            │ sub-mode │
//	└────────┘ ◀───────────────────────── └──────────┘
//	     │          done or cancelled
//	     │
//	     ▼ exit, copy_and_exit, oneshot_buttons
//	  Result
//
// Grid hands the event that ended it back to Normal, which processes it
// as if it had been typed there. In oneshot sessions every sub-mode ends
// the session instead of returning to Normal.
package mode
