package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/keywarp/internal/input/key"
)

// Entry is a parsed option value. Entries are immutable once created.
type Entry struct {
	Def      *Definition
	Raw      string
	Int      int
	Bindings []key.Binding
	Unbound  bool
}

func newEntry(km key.Keymap, def *Definition, raw string) (*Entry, error) {
	raw = strings.TrimSpace(raw)
	e := &Entry{Def: def, Raw: raw}

	switch def.Type {
	case TypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not an integer", ErrInvalidValue, def.Name, raw)
		}
		e.Int = n
	case TypeKey, TypeButton:
		list, unbound, err := key.ParseBindings(km, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, def.Name, err)
		}
		e.Bindings = list
		e.Unbound = unbound
	}
	return e, nil
}
