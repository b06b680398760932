// Package app wires keywarp's components together and runs them, either
// as the long running daemon or as a single session started from the
// command line.
package app

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/config/watcher"
	"github.com/dshills/keywarp/internal/daemon"
	"github.com/dshills/keywarp/internal/engine/hint"
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/input/mode"
	"github.com/dshills/keywarp/internal/platform"
	"github.com/dshills/keywarp/internal/xdg"
)

// Application is the central coordinator for all keywarp components.
type Application struct {
	opts     Options
	log      zerolog.Logger
	platform platform.Platform

	registry *config.Registry
	history  *history.File
	engine   *mode.Engine
	metrics  *Metrics

	running atomic.Bool
}

// New creates an application on p and loads the configuration.
func New(opts Options, p platform.Platform, log zerolog.Logger) (*Application, error) {
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	app := &Application{
		opts:     opts,
		log:      log,
		platform: p,
		metrics:  NewMetrics(),
	}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Registry returns the option registry.
func (app *Application) Registry() *config.Registry {
	return app.registry
}

// Engine returns the mode engine.
func (app *Application) Engine() *mode.Engine {
	return app.engine
}

// History returns the persistent history file.
func (app *Application) History() *history.File {
	return app.history
}

// Metrics returns the session metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// IsRunning returns true while RunDaemon is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// RunDaemon holds the instance lock and serves activation keys until ctx
// is cancelled. The config file is reloaded when it changes.
func (app *Application) RunDaemon(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := xdg.Ensure(app.opts.LockDir); err != nil {
		return &InitError{Component: "lock", Err: err}
	}
	lock, err := daemon.AcquireLock(daemon.LockPath(app.opts.LockDir))
	if err != nil {
		return &InitError{Component: "lock", Err: err}
	}
	defer func() {
		if err := lock.Release(); err != nil {
			app.log.Warn().Err(err).Str("path", lock.Path()).Msg("release lock")
		}
	}()

	var dopts []daemon.Option
	w, err := watcher.New(app.opts.ConfigPath, watcher.WithLogger(componentLogger(app.log, "watcher")))
	if err != nil {
		app.log.Warn().Err(err).Msg("config hot reload disabled")
	} else {
		defer func() { _ = w.Close() }()
		dopts = append(dopts, daemon.WithReload(w, app.opts.ConfigPath))
	}

	runner := meteredRunner{engine: app.engine, clock: app.platform, metrics: app.metrics}
	d := daemon.New(app.platform, app.registry, runner, app.log, dopts...)
	err = d.Run(ctx)
	app.log.Info().EmbedObject(app.metrics.Snapshot()).Msg("session metrics")
	return err
}

// Request describes a session started from the command line.
type Request struct {
	// Mode is the initial mode of the session.
	Mode mode.Mode

	// Oneshot ends the session after the first sub-mode.
	Oneshot bool

	// Record saves selections, and a requested click, to the history file.
	Record bool

	// Drag holds the drag button down for the whole session.
	Drag bool

	// Click is a button clicked after the session or move. Zero clicks
	// nothing.
	Click int

	// Move skips the session and warps the pointer to (X, Y).
	Move bool
	X, Y int

	// Hints are the targets of a HintSpec session.
	Hints []platform.Hint
}

// RunOnce runs a single session, or a plain move, then the requested
// click.
func (app *Application) RunOnce(ctx context.Context, req Request) (mode.Result, error) {
	var res mode.Result
	if req.Move {
		scr, _, _ := app.platform.Position()
		app.platform.Move(scr, req.X, req.Y)
		res = mode.Result{X: req.X, Y: req.Y, Selected: true}
	} else {
		drag := app.registry.Int(config.DragButton)
		if req.Drag {
			app.platform.Down(drag)
		}
		var err error
		res, err = app.engine.Run(ctx, req.Mode, mode.Options{
			Oneshot:       req.Oneshot,
			RecordHistory: req.Record,
			Hints:         req.Hints,
		})
		if req.Drag {
			app.platform.Up(drag)
		}
		if err != nil {
			return res, NewOperationError("run", req.Mode.String(), err)
		}
	}

	if req.Click != 0 {
		app.platform.Click(req.Click)
		res.Button = req.Click
		if req.Record {
			_, x, y := app.platform.Position()
			if err := app.history.Add(x, y); err != nil {
				return res, NewOperationError("record", app.history.Path(), err)
			}
		}
	}
	return res, nil
}

// Query reads "label x y" hints from r and runs a single HintSpec
// selection over them.
func (app *Application) Query(ctx context.Context, r io.Reader) (mode.Result, error) {
	w, h := app.engine.SpecBoxSize()
	hints, err := hint.ParseSpec(r, w, h)
	if err != nil {
		return mode.Result{}, NewOperationError("query", "hints", err)
	}
	if len(hints) == 0 {
		return mode.Result{}, NewOperationError("query", "hints", fmt.Errorf("%w: no hints", hint.ErrBadSpec))
	}
	return app.RunOnce(ctx, Request{Mode: mode.HintSpec, Oneshot: true, Hints: hints})
}
