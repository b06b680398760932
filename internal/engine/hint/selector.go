package hint

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

// Outcome is how a selection ended.
type Outcome int

const (
	// Selected means exactly one hint was left and the pointer was moved
	// to it.
	Selected Outcome = iota + 1

	// Unmatched means the typed prefix matched no hint.
	Unmatched

	// Cancelled means hint_exit was pressed.
	Cancelled
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Unmatched:
		return "unmatched"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Selection is the result of a selection loop.
type Selection struct {
	Outcome Outcome
	Hint    platform.Hint
}

// Host is what the selection loop needs from the platform.
type Host interface {
	Grab()
	Ungrab()
	NextEvent(timeout time.Duration) (key.Event, bool)

	Move(scr platform.Screen, x, y int)
	Show()
	Hide()

	DrawHints(scr platform.Screen, hints []platform.Hint)
	Clear(scr platform.Screen)
	Commit()
}

// Bindings matches events and scopes which options may match.
type Bindings interface {
	Match(ev key.Event, opt config.Option) int
	Whitelist(opts ...config.Option)
}

// Selector narrows a hint set as the user types label characters.
type Selector struct {
	host     Host
	km       key.Keymap
	bindings Bindings
	log      zerolog.Logger
}

// NewSelector creates a selector.
func NewSelector(host Host, km key.Keymap, b Bindings, log zerolog.Logger) *Selector {
	return &Selector{host: host, km: km, bindings: b, log: log}
}

// Select grabs the keyboard and filters hints by the typed prefix until
// one hint is left, none are, or hint_exit is pressed. Undo bindings edit
// the prefix without ending the loop. The error is non-nil only when ctx
// ends first.
func (s *Selector) Select(ctx context.Context, scr platform.Screen, hints []platform.Hint) (Selection, error) {
	s.host.Grab()
	s.host.Hide()
	s.bindings.Whitelist(config.HintExit, config.HintUndo, config.HintUndoAll)
	defer func() {
		s.bindings.Whitelist()
		s.host.Ungrab()
		s.host.Clear(scr)
		s.host.Show()
		s.host.Commit()
	}()

	var buf []byte
	s.redraw(scr, hints, "")

	for {
		if err := ctx.Err(); err != nil {
			return Selection{}, err
		}

		ev, ok := s.host.NextEvent(platform.PollInterval)
		if !ok || !ev.Pressed {
			continue
		}

		switch {
		case s.bindings.Match(ev, config.HintExit) > 0:
			return Selection{Outcome: Cancelled}, nil
		case s.bindings.Match(ev, config.HintUndoAll) > 0:
			buf = buf[:0]
		case s.bindings.Match(ev, config.HintUndo) > 0:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		default:
			name := key.EventName(s.km, ev)
			if len(name) != 1 || len(buf) >= platform.MaxLabel {
				continue
			}
			buf = append(buf, name[0])
		}

		matched := s.redraw(scr, hints, string(buf))
		s.log.Debug().Str("prefix", string(buf)).Int("matched", len(matched)).Msg("hint filter")

		switch len(matched) {
		case 0:
			return Selection{Outcome: Unmatched}, nil
		case 1:
			h := matched[0]
			x, y := h.Center()
			s.host.Clear(scr)
			// Nudge first so targets that ignore zero-delta warps still
			// see motion.
			s.host.Move(scr, x+1, y+1)
			s.host.Move(scr, x, y)
			return Selection{Outcome: Selected, Hint: h}, nil
		}
	}
}

func (s *Selector) redraw(scr platform.Screen, hints []platform.Hint, prefix string) []platform.Hint {
	matched := Filter(hints, prefix)
	s.host.Clear(scr)
	s.host.DrawHints(scr, matched)
	s.host.Commit()
	return matched
}
