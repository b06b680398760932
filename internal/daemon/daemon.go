// Package daemon waits for activation keys and starts mode sessions.
//
// While idle only the activation bindings are matched. Each activation
// press runs one session to completion before the daemon listens again.
// Config changes reported by the watcher are applied between sessions.
package daemon

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/input/mode"
	"github.com/dshills/keywarp/internal/platform"
)

// IdlePoll is how long the daemon blocks for an event before checking for
// config changes and cancellation.
const IdlePoll = 100 * time.Millisecond

// Runner runs a single session.
type Runner interface {
	Run(ctx context.Context, initial mode.Mode, opts mode.Options) (mode.Result, error)
}

// ChangeSource reports pending config file changes.
type ChangeSource interface {
	Pending() bool
}

// activation maps the idle bindings to the session they start.
var activation = []struct {
	opt     config.Option
	mode    mode.Mode
	oneshot bool
}{
	{config.ActivationKey, mode.Normal, false},
	{config.HintActivationKey, mode.Hint, false},
	{config.Hint2ActivationKey, mode.Hint2, false},
	{config.GridActivationKey, mode.Grid, false},
	{config.ScreenActivationKey, mode.Screen, false},
	{config.HistoryActivationKey, mode.History, false},
	{config.HintOneshotKey, mode.Hint, true},
	{config.Hint2OneshotKey, mode.Hint2, true},
}

// Daemon is the idle loop.
type Daemon struct {
	input  platform.Input
	reg    *config.Registry
	runner Runner
	log    zerolog.Logger

	changes    ChangeSource
	configPath string

	sessions int
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithReload reloads path from the registry whenever src reports a change.
func WithReload(src ChangeSource, path string) Option {
	return func(d *Daemon) {
		d.changes = src
		d.configPath = path
	}
}

// New creates a daemon.
func New(input platform.Input, reg *config.Registry, runner Runner, log zerolog.Logger, opts ...Option) *Daemon {
	d := &Daemon{
		input:  input,
		reg:    reg,
		runner: runner,
		log:    log.With().Str("component", "daemon").Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Sessions returns how many sessions have been started.
func (d *Daemon) Sessions() int {
	return d.sessions
}

// Run listens for activation keys until ctx is cancelled. Cancellation is a
// clean shutdown and returns nil.
func (d *Daemon) Run(ctx context.Context) error {
	d.log.Info().Msg("daemon started")
	defer d.log.Info().Int("sessions", d.sessions).Msg("daemon stopped")

	for {
		if ctx.Err() != nil {
			return nil
		}
		d.reg.Whitelist(config.ActivationKeys...)

		ev, ok := d.input.NextEvent(IdlePoll)
		if !ok {
			d.maybeReload()
			continue
		}
		if !ev.Pressed {
			continue
		}

		m, opts, ok := d.lookup(ev)
		if !ok {
			continue
		}
		d.reg.ClearWhitelist()

		if err := d.session(ctx, m, opts); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

func (d *Daemon) lookup(ev key.Event) (mode.Mode, mode.Options, bool) {
	for _, a := range activation {
		if d.reg.Match(ev, a.opt) > 0 {
			return a.mode, mode.Options{Oneshot: a.oneshot, RecordHistory: true}, true
		}
	}
	return mode.Normal, mode.Options{}, false
}

func (d *Daemon) session(ctx context.Context, m mode.Mode, opts mode.Options) error {
	d.sessions++
	d.log.Debug().Stringer("mode", m).Bool("oneshot", opts.Oneshot).Msg("activation")

	res, err := d.runner.Run(ctx, m, opts)
	if err != nil {
		return err
	}
	d.log.Debug().
		Int("button", res.Button).
		Int("x", res.X).
		Int("y", res.Y).
		Bool("selected", res.Selected).
		Msg("session finished")
	return nil
}

// maybeReload applies a pending config change. A file that fails to load
// leaves the previous configuration in effect.
func (d *Daemon) maybeReload() {
	if d.changes == nil || !d.changes.Pending() {
		return
	}
	if err := d.reg.LoadFile(d.configPath); err != nil {
		d.log.Error().Err(err).Str("path", d.configPath).Msg("config reload failed, keeping previous config")
		return
	}
	d.log.Info().Str("path", d.configPath).Msg("config reloaded")
}
