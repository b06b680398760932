package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/dshills/keywarp/internal/app"
	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/input/key"
)

// listStyles renders the list output. Colors are dropped when w is not a
// terminal.
type listStyles struct {
	name, kind, value, desc lipgloss.Style
}

func newListStyles(w io.Writer) listStyles {
	r := lipgloss.NewRenderer(w)
	return listStyles{
		name:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4500")).Width(24),
		kind:  r.NewStyle().Faint(true).Width(8),
		value: r.NewStyle().Foreground(lipgloss.Color("#a1aba7")),
		desc:  r.NewStyle().Faint(true).PaddingLeft(2),
	}
}

// listKeys prints every key name of the keymap, one per line.
func listKeys(w io.Writer) error {
	for _, name := range key.USKeymap().Names() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// listOptions prints the config options with their current values. A
// non-empty pattern keeps only the options whose name fuzzy matches it,
// best match first.
func listOptions(w io.Writer, opts app.Options, pattern string) error {
	reg, err := config.New(key.USKeymap(), zerolog.Nop())
	if err != nil {
		return err
	}
	if err := reg.LoadFile(opts.ConfigPath); err != nil {
		return err
	}

	defs := filterDefinitions(config.Definitions(), pattern)
	st := newListStyles(w)
	var b strings.Builder
	for _, def := range defs {
		value := reg.String(def.Name)
		if def.Type.IsBinding() {
			value = reg.Describe(def.Name)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			st.name.Render(string(def.Name)),
			st.kind.Render(def.Type.String()),
			st.value.Render(value),
		))
		b.WriteByte('\n')
		if def.Description != "" {
			b.WriteString(st.desc.Render(def.Description))
			b.WriteByte('\n')
		}
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func filterDefinitions(defs []config.Definition, pattern string) []config.Definition {
	if pattern == "" {
		return defs
	}
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = string(d.Name)
	}
	matches := fuzzy.Find(pattern, names)
	out := make([]config.Definition, 0, len(matches))
	for _, m := range matches {
		out = append(out, defs[m.Index])
	}
	return out
}
