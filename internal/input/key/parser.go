package key

import (
	"errors"
	"fmt"
	"strings"
)

// Unbind is the binding value that disables an option.
const Unbind = "unbind"

// Parse errors
var (
	ErrEmptyBinding    = errors.New("empty key binding")
	ErrInvalidModifier = errors.New("invalid modifier")
	ErrUnknownKey      = errors.New("unknown key name")
)

// Binding is a parsed key binding: a key code and the exact modifiers
// that must accompany it.
type Binding struct {
	Code Code
	Mods Modifier
}

// ParseBinding parses a single binding token such as "C-u" or "X".
//
// Modifier prefixes are consumed left to right; anything other than A, M,
// S or C before a '-' is an error. The remaining key name is resolved
// through km, and names the keymap reports as inherently shifted add Shift
// to the result.
func ParseBinding(km Keymap, s string) (Binding, error) {
	if s == "" {
		return Binding{}, ErrEmptyBinding
	}

	var b Binding
	rest := s
	for len(rest) > 1 && rest[1] == '-' {
		mod, ok := modifierLetters[rest[0]]
		if !ok {
			return Binding{}, fmt.Errorf("%w: %q in %q", ErrInvalidModifier, rest[:1], s)
		}
		b.Mods = b.Mods.With(mod)
		rest = rest[2:]
	}
	if rest == "" {
		return Binding{}, fmt.Errorf("%w: %q has no key name", ErrEmptyBinding, s)
	}

	code, shifted, ok := km.LookupCode(rest)
	if !ok || code == 0 {
		return Binding{}, fmt.Errorf("%w: %q", ErrUnknownKey, rest)
	}
	b.Code = code
	if shifted {
		b.Mods = b.Mods.With(ModShift)
	}
	return b, nil
}

// ParseBindings parses a space separated binding list. The Unbind
// sentinel yields a nil list and unbound set to true.
func ParseBindings(km Keymap, s string) (list []Binding, unbound bool, err error) {
	s = strings.TrimSpace(s)
	if s == Unbind {
		return nil, true, nil
	}
	for _, tok := range strings.Fields(s) {
		b, err := ParseBinding(km, tok)
		if err != nil {
			return nil, false, err
		}
		list = append(list, b)
	}
	return list, false, nil
}

// Format returns the canonical binding string for b. Parsing the result
// with the same keymap yields b again.
func (b Binding) Format(km Keymap) string {
	name, ok := km.LookupName(b.Code, b.Mods.Has(ModShift))
	if !ok {
		return fmt.Sprintf("<%d>", b.Code)
	}
	_, implicit, _ := km.LookupCode(name)
	return b.Mods.Prefix(!implicit) + name
}

// EventName returns the key name for ev, honoring Shift. Non-shift
// modifiers are not included.
func EventName(km Keymap, ev Event) string {
	name, _ := km.LookupName(ev.Code, ev.Mods.Has(ModShift))
	return name
}

// FormatEvent renders ev in binding syntax, e.g. "C-o".
func FormatEvent(km Keymap, ev Event) string {
	return Binding{Code: ev.Code, Mods: ev.Mods}.Format(km)
}
