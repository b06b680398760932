package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keywarp/internal/input/key"
)

// specialKeys names the non-rune tcell keys that have a keymap entry.
var specialKeys = map[tcell.Key]string{
	tcell.KeyEscape:     "esc",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pageup",
	tcell.KeyPgDn:       "pagedown",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyF1:         "f1",
	tcell.KeyF2:         "f2",
	tcell.KeyF3:         "f3",
	tcell.KeyF4:         "f4",
	tcell.KeyF5:         "f5",
	tcell.KeyF6:         "f6",
	tcell.KeyF7:         "f7",
	tcell.KeyF8:         "f8",
	tcell.KeyF9:         "f9",
	tcell.KeyF10:        "f10",
	tcell.KeyF11:        "f11",
	tcell.KeyF12:        "f12",
}

// convertKey turns a tcell key event into a press. ok is false for keys
// the keymap does not know.
func (t *Terminal) convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())

	var name string
	switch k := e.Key(); {
	case k == tcell.KeyRune:
		name = string(e.Rune())
		if name == " " {
			name = "space"
		}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ && k != tcell.KeyTab && k != tcell.KeyEnter && k != tcell.KeyBackspace:
		name = string(rune('a' + k - tcell.KeyCtrlA))
		mods = mods.With(key.ModCtrl)
	default:
		n, ok := specialKeys[k]
		if !ok {
			return key.Event{}, false
		}
		name = n
	}

	code, shifted, ok := t.LookupCode(name)
	if !ok {
		return key.Event{}, false
	}
	if shifted {
		mods = mods.With(key.ModShift)
	}
	return key.Press(code, mods), true
}

// convertMod converts tcell modifier mask to key modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}
