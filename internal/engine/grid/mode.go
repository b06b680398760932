package grid

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/engine/motion"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

// Config holds the grid settings.
type Config struct {
	Rows, Cols  int
	LineSize    int
	BorderSize  int
	Color       string
	BorderColor string
	CursorSize  int
	CursorColor string
}

// ConfigFrom reads the grid settings from a registry.
func ConfigFrom(r *config.Registry) Config {
	return Config{
		Rows:        r.Int(config.GridNR),
		Cols:        r.Int(config.GridNC),
		LineSize:    r.Int(config.GridSize),
		BorderSize:  r.Int(config.GridBorderSize),
		Color:       r.String(config.GridColor),
		BorderColor: r.String(config.GridBorderColor),
		CursorSize:  r.Int(config.CursorSize),
		CursorColor: r.String(config.CursorColor),
	}
}

// Host is what grid mode needs from the platform.
type Host interface {
	Grab()
	Ungrab()
	NextEvent(timeout time.Duration) (key.Event, bool)

	Position() (platform.Screen, int, int)
	Move(scr platform.Screen, x, y int)
	Show()
	Hide()

	Size(scr platform.Screen) (w, h int)
	DrawBox(scr platform.Screen, x, y, w, h int, color string)
	Clear(scr platform.Screen)
	Commit()
}

// Bindings matches events and scopes which options may match.
type Bindings interface {
	Match(ev key.Event, opt config.Option) int
	Whitelist(opts ...config.Option)
}

var whitelist = []config.Option{
	config.GridUp, config.GridDown, config.GridRight, config.GridLeft,
	config.GridCutUp, config.GridCutDown, config.GridCutRight, config.GridCutLeft,
	config.GridKeys,
	config.Buttons, config.OneshotButtons,
	config.Grid, config.Hint, config.Exit, config.Drag, config.GridExit,
}

// exits end grid mode. The ending event is handed back to the caller.
var exits = []config.Option{
	config.Buttons, config.OneshotButtons,
	config.Grid, config.Hint, config.Exit, config.Drag, config.GridExit,
}

var cuts = map[config.Option]Direction{
	config.GridCutUp:    Up,
	config.GridCutDown:  Down,
	config.GridCutLeft:  Left,
	config.GridCutRight: Right,
}

// Engine runs grid mode.
type Engine struct {
	host     Host
	bindings Bindings
	motion   *motion.Controller
	cfg      Config
	log      zerolog.Logger

	scr    platform.Screen
	region Region
	drawn  bool
	lastX  int
	lastY  int
}

// New creates a grid engine. Grid movement keys drive m.
func New(host Host, b Bindings, m *motion.Controller, cfg Config, log zerolog.Logger) *Engine {
	return &Engine{host: host, bindings: b, motion: m, cfg: cfg, log: log}
}

// Configure replaces the settings.
func (e *Engine) Configure(cfg Config) {
	e.cfg = cfg
}

// Region returns the region as last drawn.
func (e *Engine) Region() Region {
	return e.region
}

// Run starts with a grid covering the screen under the pointer and
// returns the event that ended the mode.
func (e *Engine) Run(ctx context.Context) (key.Event, error) {
	e.host.Grab()
	e.host.Hide()
	e.motion.Reset()

	e.scr, _, _ = e.host.Position()
	w, h := e.host.Size(e.scr)
	e.region = Region{X: w / 2, Y: h / 2, W: w, H: h}
	e.host.Move(e.scr, e.region.X, e.region.Y)
	e.redraw(true)

	e.bindings.Whitelist(whitelist...)
	defer func() {
		e.bindings.Whitelist()
		e.host.Clear(e.scr)
		e.host.Show()
		e.host.Ungrab()
		e.host.Commit()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return key.Event{}, err
		}

		ev, ok := e.host.NextEvent(platform.PollInterval)
		_, e.region.X, e.region.Y = e.host.Position()

		if e.motion.ProcessKey(ev, ok, e.bindings, motion.GridKeys) {
			_, e.region.X, e.region.Y = e.host.Position()
			e.redraw(false)
			continue
		}
		if !ok || !ev.Pressed {
			continue
		}

		if idx := e.bindings.Match(ev, config.GridKeys); idx > 0 {
			if e.region.Select(idx, e.cfg.Rows, e.cfg.Cols) {
				e.moveAndRedraw()
			}
			continue
		}

		if opt, ok := e.matchCut(ev); ok {
			e.region.Cut(cuts[opt])
			e.moveAndRedraw()
			continue
		}

		for _, opt := range exits {
			if e.bindings.Match(ev, opt) > 0 {
				e.log.Debug().Str("binding", string(opt)).Msg("grid exit")
				return ev, nil
			}
		}
	}
}

func (e *Engine) matchCut(ev key.Event) (config.Option, bool) {
	for opt := range cuts {
		if e.bindings.Match(ev, opt) > 0 {
			return opt, true
		}
	}
	return "", false
}

func (e *Engine) moveAndRedraw() {
	e.host.Move(e.scr, e.region.X, e.region.Y)
	e.redraw(false)
}

// redraw paints the region unless the pointer has not moved since the last
// paint and force is unset.
func (e *Engine) redraw(force bool) {
	r := e.region
	if !force && e.drawn && r.X == e.lastX && r.Y == e.lastY {
		return
	}
	e.drawn = true
	e.lastX, e.lastY = r.X, r.Y

	e.host.Clear(e.scr)
	Paint(e.host, e.scr, r, e.cfg)
	e.host.Commit()
}

// Painter draws filled boxes.
type Painter interface {
	DrawBox(scr platform.Screen, x, y, w, h int, color string)
}

// Paint draws the grid for r: the border lines, the inner lines over
// them, and the cursor box at the center.
func Paint(p Painter, scr platform.Screen, r Region, cfg Config) {
	x := r.X - r.W/2
	y := r.Y - r.H/2
	b := cfg.BorderSize

	drawLines(p, scr, cfg, cfg.BorderColor, cfg.LineSize+2*b, x, y, r.W, r.H)
	drawLines(p, scr, cfg, cfg.Color, cfg.LineSize, x+b, y+b, r.W-2*b, r.H-2*b)

	cs := cfg.CursorSize
	p.DrawBox(scr, x+r.W/2-cs/2, y+r.H/2-cs/2, cs, cs, cfg.CursorColor)
}

// drawLines draws the rows+1 horizontal and cols+1 vertical bars of the
// grid, each sz thick. Regions too small to hold the bars are skipped.
func drawLines(p Painter, scr platform.Screen, cfg Config, color string, sz, x, y, w, h int) {
	nr, nc := cfg.Rows, cfg.Cols
	ygap := (h - (nr+1)*sz) / nr
	xgap := (w - (nc+1)*sz) / nc
	if xgap < 0 || ygap < 0 {
		return
	}

	for i := range nr + 1 {
		p.DrawBox(scr, x, y+(ygap+sz)*i, w, sz, color)
	}
	for i := range nc + 1 {
		p.DrawBox(scr, x+(xgap+sz)*i, y, sz, h, color)
	}
}
