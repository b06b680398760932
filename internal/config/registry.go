package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/keywarp/internal/config/loader"
	"github.com/dshills/keywarp/internal/input/key"
)

type snapshot struct {
	entries map[Option]*Entry
}

func (s *snapshot) clone() *snapshot {
	return &snapshot{entries: maps.Clone(s.entries)}
}

// Registry holds the active option values and matches key events against
// binding options.
//
// Values are published as immutable snapshots, so readers on any goroutine
// always see one complete configuration. The whitelist and the press
// cache belong to the goroutine running the mode loops.
type Registry struct {
	keymap  key.Keymap
	matcher *key.Matcher
	log     zerolog.Logger

	writeMu sync.Mutex
	current atomic.Pointer[snapshot]

	whitelist map[Option]bool
}

// New creates a registry holding the default values.
func New(km key.Keymap, log zerolog.Logger) (*Registry, error) {
	r := &Registry{
		keymap:  km,
		matcher: key.NewMatcher(),
		log:     log.With().Str("component", "config").Logger(),
	}
	snap, err := r.defaults()
	if err != nil {
		return nil, err
	}
	r.current.Store(snap)
	return r, nil
}

// Keymap returns the keymap bindings are resolved with.
func (r *Registry) Keymap() key.Keymap {
	return r.keymap
}

func (r *Registry) defaults() (*snapshot, error) {
	snap := &snapshot{entries: make(map[Option]*Entry, len(definitions))}
	for i := range definitions {
		def := &definitions[i]
		e, err := newEntry(r.keymap, def, def.Default)
		if err != nil {
			return nil, fmt.Errorf("default for %s: %w", def.Name, err)
		}
		snap.entries[def.Name] = e
	}
	return snap, nil
}

func (r *Registry) snap() *snapshot {
	return r.current.Load()
}

// Add sets a single option. It returns false without error when name is
// not a known option, and an error wrapping ErrInvalidValue when raw does
// not parse as the option's type. Add does not run whole-configuration
// checks; use Validate afterwards when that matters.
func (r *Registry) Add(name, raw string) (bool, error) {
	def, ok := definitionIndex[Option(name)]
	if !ok {
		return false, nil
	}
	e, err := newEntry(r.keymap, def, raw)
	if err != nil {
		return false, err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	next := r.snap().clone()
	next.entries[def.Name] = e
	r.current.Store(next)
	return true, nil
}

// Load replaces the configuration with the defaults overridden by pairs.
// Unknown keys are logged and skipped. Any invalid value or failed
// whole-configuration check aborts the load and leaves the current values
// untouched.
func (r *Registry) Load(pairs []loader.Pair) error {
	next, err := r.defaults()
	if err != nil {
		return err
	}
	for _, p := range pairs {
		def, ok := definitionIndex[Option(p.Key)]
		if !ok {
			r.log.Warn().Str("key", p.Key).Int("line", p.Line).Msg("ignoring unknown config option")
			continue
		}
		e, err := newEntry(r.keymap, def, p.Value)
		if err != nil {
			if p.Line > 0 {
				return fmt.Errorf("line %d: %w", p.Line, err)
			}
			return err
		}
		next.entries[def.Name] = e
	}
	if err := validate(next); err != nil {
		return err
	}

	r.writeMu.Lock()
	r.current.Store(next)
	r.writeMu.Unlock()
	return nil
}

// LoadFile loads the configuration file at path. A missing file is not an
// error: the defaults are installed and a warning is logged.
func (r *Registry) LoadFile(path string) error {
	pairs, err := loader.Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		r.log.Warn().Str("path", path).Msg("config file not found, using defaults")
		pairs = nil
	}
	if err := r.Load(pairs); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	r.log.Debug().Str("path", path).Int("overrides", len(pairs)).Msg("config loaded")
	return nil
}

// Validate runs the whole-configuration checks on the current values.
func (r *Registry) Validate() error {
	return validate(r.snap())
}

// Entry returns the parsed value of opt.
func (r *Registry) Entry(opt Option) *Entry {
	return r.snap().entries[opt]
}

// Int returns the value of an integer option, or zero.
func (r *Registry) Int(opt Option) int {
	if e := r.Entry(opt); e != nil {
		return e.Int
	}
	return 0
}

// String returns the raw value of an option.
func (r *Registry) String(opt Option) string {
	if e := r.Entry(opt); e != nil {
		return e.Raw
	}
	return ""
}

// Bindings returns the parsed bindings of a key or button option.
func (r *Registry) Bindings(opt Option) []key.Binding {
	if e := r.Entry(opt); e != nil {
		return e.Bindings
	}
	return nil
}

// Whitelist limits matching to the given binding options. Called with no
// options it makes every binding option eligible again.
func (r *Registry) Whitelist(opts ...Option) {
	if len(opts) == 0 {
		r.whitelist = nil
		return
	}
	wl := make(map[Option]bool, len(opts))
	for _, o := range opts {
		wl[o] = true
	}
	r.whitelist = wl
}

// ClearWhitelist makes every binding option eligible.
func (r *Registry) ClearWhitelist() {
	r.whitelist = nil
}

// Match tests ev against the bindings of opt. It returns the 1-based
// position of the matching binding, or zero.
//
// Only whitelisted binding options match, and an unbound option never
// does. Key options require the exact modifiers; button options also
// accept an event whose code matches with different modifiers.
func (r *Registry) Match(ev key.Event, opt Option) int {
	e := r.Entry(opt)
	if e == nil || e.Unbound || !e.Def.Type.IsBinding() {
		return 0
	}
	if r.whitelist != nil && !r.whitelist[opt] {
		return 0
	}
	idx, res := r.matcher.Index(ev, e.Bindings)
	switch {
	case idx == 0:
		return 0
	case res == key.Exact, e.Def.Type == TypeButton:
		return idx
	default:
		return 0
	}
}

// MatchAny returns the first of opts that ev matches.
func (r *Registry) MatchAny(ev key.Event, opts ...Option) (Option, int) {
	for _, o := range opts {
		if idx := r.Match(ev, o); idx > 0 {
			return o, idx
		}
	}
	return "", 0
}

// Describe renders a binding option in canonical form, e.g. "A-M-x".
func (r *Registry) Describe(opt Option) string {
	e := r.Entry(opt)
	if e == nil {
		return ""
	}
	if e.Unbound {
		return key.Unbind
	}
	parts := make([]string, 0, len(e.Bindings))
	for _, b := range e.Bindings {
		parts = append(parts, b.Format(r.keymap))
	}
	return strings.Join(parts, " ")
}
