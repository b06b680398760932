// Package key provides input events and the key-binding grammar.
//
// A binding is written as zero or more modifier prefixes followed by a key
// name:
//
//	x        the x key
//	X        shift+x (the keymap reports X as an inherently shifted name)
//	C-u      control+u
//	A-M-x    alt+meta+x
//	S-esc    shift+escape
//	unbind   disables the option
//
// Modifier letters are A (Alt), M (Meta), S (Shift) and C (Control). Key
// names are resolved through a Keymap, which maps between raw key codes and
// their human-readable names.
//
// A Matcher compares live events against parsed bindings. Release events are
// compared using the modifiers that were held when the key went down, so a
// key released after its modifier still matches the binding it was pressed
// under.
package key
