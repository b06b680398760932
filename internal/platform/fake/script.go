package fake

import (
	"time"

	"github.com/dshills/keywarp/internal/input/key"
)

// Script builds event sequences from binding strings.
type Script struct {
	km    key.Keymap
	steps []Step
	wait  time.Duration
}

// NewScript starts an empty script resolved through km.
func NewScript(km key.Keymap) *Script {
	return &Script{km: km}
}

func (s *Script) binding(spec string) key.Binding {
	b, err := key.ParseBinding(s.km, spec)
	if err != nil {
		panic(err)
	}
	return b
}

func (s *Script) add(ev key.Event) *Script {
	s.steps = append(s.steps, Step{After: s.wait, Event: ev})
	s.wait = 0
	return s
}

// Wait delays the next event by d.
func (s *Script) Wait(d time.Duration) *Script {
	s.wait += d
	return s
}

// Press adds a key press.
func (s *Script) Press(spec string) *Script {
	b := s.binding(spec)
	return s.add(key.Press(b.Code, b.Mods))
}

// Release adds a key release. Modifiers are not reported on release, as
// on real keyboards once the modifier is lifted first.
func (s *Script) Release(spec string) *Script {
	b := s.binding(spec)
	return s.add(key.Release(b.Code, key.ModNone))
}

// Tap adds a press immediately followed by its release.
func (s *Script) Tap(specs ...string) *Script {
	for _, spec := range specs {
		s.Press(spec).Release(spec)
	}
	return s
}

// Steps returns the built script.
func (s *Script) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}
