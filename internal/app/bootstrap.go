package app

import (
	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/input/mode"
)

// bootstrap initializes the components in dependency order. Only the
// config can fail; nothing before it holds resources.
func (app *Application) bootstrap() error {
	if err := app.initConfig(); err != nil {
		return err
	}
	app.history = history.NewFile(app.opts.HistoryPath)
	app.initEngine()
	return nil
}

// initConfig builds the option registry and loads the config file. A
// missing file leaves the defaults; an invalid one is fatal.
func (app *Application) initConfig() error {
	reg, err := config.New(app.platform, componentLogger(app.log, "config"))
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if err := reg.LoadFile(app.opts.ConfigPath); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.registry = reg
	return nil
}

// initEngine creates the mode engine. Mode transitions are logged at
// trace level.
func (app *Application) initEngine() {
	log := componentLogger(app.log, "mode")
	app.engine = mode.New(app.platform, app.registry, app.history, log,
		mode.WithOutput(app.opts.Output),
		mode.OnTransition(func(from, to mode.Mode) {
			log.Trace().Stringer("from", from).Stringer("to", to).Msg("transition")
		}),
	)
}
