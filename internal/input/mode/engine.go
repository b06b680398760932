package mode

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/engine/grid"
	"github.com/dshills/keywarp/internal/engine/hint"
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/engine/motion"
	"github.com/dshills/keywarp/internal/engine/scroll"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

// Recorder persists clicked positions across sessions.
type Recorder interface {
	Add(x, y int) error
	Entries() ([]history.Position, error)
}

// Options controls one session.
type Options struct {
	// Oneshot ends the session after the first sub-mode instead of
	// returning to Normal, and makes buttons end the session unclicked.
	Oneshot bool

	// RecordHistory saves clicked and selected positions to the Recorder.
	RecordHistory bool

	// Hints are the targets offered in HintSpec mode.
	Hints []platform.Hint
}

// Result is how a session ended.
type Result struct {
	// Button is the mouse button that ended the session, or zero.
	Button int

	// X and Y are the final pointer position.
	X, Y int

	// Label is the chosen hint label when a hint mode ended the session.
	Label string

	// Selected is false when the session was exited or cancelled without
	// choosing a target.
	Selected bool
}

// TransitionFunc is called when a session changes mode.
type TransitionFunc func(from, to Mode)

// Engine runs sessions against a platform. The history ring survives
// across sessions.
type Engine struct {
	host platform.Platform
	reg  *config.Registry
	rec  Recorder
	ring *history.Ring
	out  io.Writer
	log  zerolog.Logger

	motion *motion.Controller
	scroll *scroll.Controller
	hints  *hint.Engine
	grid   *grid.Engine

	callbacks []TransitionFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput sets where the print binding writes. The default discards.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// WithRing shares a history ring with the engine.
func WithRing(r *history.Ring) Option {
	return func(e *Engine) {
		e.ring = r
	}
}

// OnTransition registers fn to be called on every mode change.
func OnTransition(fn TransitionFunc) Option {
	return func(e *Engine) {
		e.callbacks = append(e.callbacks, fn)
	}
}

// New creates an engine.
func New(host platform.Platform, reg *config.Registry, rec Recorder, log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		host: host,
		reg:  reg,
		rec:  rec,
		ring: history.NewRing(),
		out:  io.Discard,
		log:  log,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.motion = motion.New(host, host, motion.ConfigFrom(reg))
	e.scroll = scroll.New(host, scroll.ConfigFrom(reg))
	e.hints = hint.New(host, host, reg, hint.ConfigFrom(reg), log.With().Str("component", "hint").Logger())
	e.grid = grid.New(host, reg, e.motion, grid.ConfigFrom(reg), log.With().Str("component", "grid").Logger())
	return e
}

// Ring returns the session history ring.
func (e *Engine) Ring() *history.Ring {
	return e.ring
}

// SpecBoxSize returns the hint box size used for HintSpec hints on the
// screen under the pointer.
func (e *Engine) SpecBoxSize() (w, h int) {
	e.hints.Configure(hint.ConfigFrom(e.reg))
	return e.hints.SpecBoxSize()
}

// configure pulls the current registry values into the controllers so
// a reloaded config applies from the next session on.
func (e *Engine) configure() {
	e.motion.Configure(motion.ConfigFrom(e.reg))
	e.scroll.Configure(scroll.ConfigFrom(e.reg))
	e.hints.Configure(hint.ConfigFrom(e.reg))
	e.grid.Configure(grid.ConfigFrom(e.reg))
}

// Run runs one session starting in initial. It returns when the user
// exits, clicks a oneshot button, or a oneshot sub-mode finishes. The
// error is non-nil when ctx ends first or history cannot be saved.
func (e *Engine) Run(ctx context.Context, initial Mode, opts Options) (Result, error) {
	e.configure()
	s := &session{
		Engine:  e,
		log:     e.log.With().Str("session", uuid.NewString()).Logger(),
		opts:    opts,
		initial: initial,
	}
	s.log.Debug().Stringer("mode", initial).Bool("oneshot", opts.Oneshot).Msg("session start")

	res, err := s.run(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("session aborted")
		return res, err
	}
	s.log.Debug().Int("button", res.Button).Int("x", res.X).Int("y", res.Y).Bool("selected", res.Selected).Msg("session end")
	return res, nil
}

var normalTransitions = []struct {
	opt  config.Option
	mode Mode
}{
	{config.History, History},
	{config.Hint, Hint},
	{config.Hint2, Hint2},
	{config.Grid, Grid},
	{config.Screen, Screen},
}

// session is the state of one Run.
type session struct {
	*Engine

	log     zerolog.Logger
	opts    Options
	initial Mode
	mode    Mode

	pending    key.Event
	hasPending bool
}

func (s *session) setMode(to Mode) {
	from := s.mode
	s.mode = to
	if from == to {
		return
	}
	s.log.Debug().Stringer("from", from).Stringer("to", to).Msg("mode transition")
	for _, fn := range s.callbacks {
		fn(from, to)
	}
}

func (s *session) run(ctx context.Context) (Result, error) {
	s.mode = s.initial

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		s.reg.ClearWhitelist()

		if s.mode == Normal {
			out, err := s.normal(ctx)
			if err != nil {
				return Result{}, err
			}
			if out.done {
				return s.finish(out.button, "", out.button != 0), nil
			}
			next, ok := s.next(out.ev)
			if !ok {
				return s.finish(0, "", false), nil
			}
			s.setMode(next)
			continue
		}

		selected, label, button, err := s.subMode(ctx)
		if err != nil {
			return Result{}, err
		}
		if s.opts.Oneshot || s.mode == HintSpec {
			return s.finish(button, label, selected), nil
		}
		s.setMode(Normal)
	}
}

// next maps the event that ended Normal mode to the following mode. ok is
// false when the event ends the session.
func (s *session) next(ev key.Event) (Mode, bool) {
	for _, t := range normalTransitions {
		if s.reg.Match(ev, t.opt) > 0 {
			return t.mode, true
		}
	}
	return Normal, false
}

// subMode runs the current non-normal mode once.
func (s *session) subMode(ctx context.Context) (selected bool, label string, button int, err error) {
	var sel hint.Selection

	switch s.mode {
	case Hint, Hint2:
		s.recordRing()
		sel, err = s.hints.Full(ctx, s.mode == Hint2)

	case History:
		var entries []history.Position
		entries, err = s.rec.Entries()
		if err != nil {
			return false, "", 0, fmt.Errorf("load history: %w", err)
		}
		sel, err = s.hints.History(ctx, entries)

	case HintSpec:
		sel, err = s.hints.Spec(ctx, s.opts.Hints)

	case Grid:
		return s.gridMode(ctx)

	case Screen:
		selected, err = s.screen(ctx)
		return selected, "", 0, err

	default:
		return false, "", 0, fmt.Errorf("run %s: unsupported mode", s.mode)
	}
	if err != nil {
		return false, "", 0, err
	}

	s.log.Debug().Stringer("mode", s.mode).Stringer("outcome", sel.Outcome).Str("label", sel.Hint.Label).Msg("hint selection")
	if sel.Outcome != hint.Selected {
		return false, "", 0, nil
	}
	if err := s.recordFile(); err != nil {
		return false, "", 0, err
	}
	return true, sel.Hint.Label, 0, nil
}

// gridMode runs grid mode. The ending event is carried back to Normal,
// except grid_exit, which only returns there.
func (s *session) gridMode(ctx context.Context) (bool, string, int, error) {
	ev, err := s.grid.Run(ctx)
	if err != nil {
		return false, "", 0, err
	}

	s.hasPending = s.reg.Match(ev, config.GridExit) == 0
	s.pending = ev

	if !s.opts.Oneshot {
		return true, "", 0, nil
	}

	button := s.reg.Match(ev, config.Buttons)
	if button == 0 {
		button = s.reg.Match(ev, config.OneshotButtons)
	}
	if button > 0 {
		if err := s.recordFile(); err != nil {
			return false, "", 0, err
		}
	}
	return s.reg.Match(ev, config.Exit) == 0, "", button, nil
}

func (s *session) recordRing() {
	scr, x, y := s.host.Position()
	s.ring.Record(history.Position{Screen: scr, X: x, Y: y})
}

// recordFile saves the pointer position when the session records history.
func (s *session) recordFile() error {
	if !s.opts.RecordHistory {
		return nil
	}
	_, x, y := s.host.Position()
	if err := s.rec.Add(x, y); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

func (s *session) finish(button int, label string, selected bool) Result {
	_, x, y := s.host.Position()
	return Result{Button: button, X: x, Y: y, Label: label, Selected: selected}
}
