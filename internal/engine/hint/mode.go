package hint

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

// Config holds the hint settings.
type Config struct {
	Chars       string
	Size        int
	Sift        SiftConfig
	HistorySize int
	Style       platform.HintStyle
}

// ConfigFrom reads the hint settings from a registry.
func ConfigFrom(r *config.Registry) Config {
	return Config{
		Chars: r.String(config.HintChars),
		Size:  r.Int(config.HintSize),
		Sift: SiftConfig{
			Chars: r.String(config.Hint2Chars),
			Size:  r.Int(config.Hint2Size),
			Gap:   r.Int(config.Hint2GapSize),
			Grid:  r.Int(config.Hint2GridSize),
		},
		HistorySize: r.Int(config.HistHintSize),
		Style: platform.HintStyle{
			Background:   r.String(config.HintBgColor),
			Foreground:   r.String(config.HintFgColor),
			BorderRadius: r.Int(config.HintBorderRadius),
			Font:         r.String(config.HintFont),
		},
	}
}

// Display is the platform surface hint modes run on.
type Display interface {
	Host
	Position() (platform.Screen, int, int)
	Size(scr platform.Screen) (w, h int)
	SetHintStyle(style platform.HintStyle)
}

// Engine runs the hint based modes on the screen under the pointer.
type Engine struct {
	host Display
	sel  *Selector
	cfg  Config
	log  zerolog.Logger
}

// New creates a hint engine.
func New(host Display, km key.Keymap, b Bindings, cfg Config, log zerolog.Logger) *Engine {
	e := &Engine{
		host: host,
		sel:  NewSelector(host, km, b, log),
		log:  log,
	}
	e.Configure(cfg)
	return e
}

// Configure replaces the settings.
func (e *Engine) Configure(cfg Config) {
	e.cfg = cfg
	e.host.SetHintStyle(cfg.Style)
}

// Full covers the screen with hints. With second set, a successful pick is
// refined by a finer grid around the chosen point.
func (e *Engine) Full(ctx context.Context, second bool) (Selection, error) {
	scr, _, _ := e.host.Position()
	sw, sh := e.host.Size(scr)

	sel, err := e.sel.Select(ctx, scr, Fullscreen(sw, sh, e.cfg.Size, e.cfg.Chars))
	if err != nil || sel.Outcome != Selected || !second {
		return sel, err
	}
	return e.sift(ctx)
}

func (e *Engine) sift(ctx context.Context) (Selection, error) {
	scr, x, y := e.host.Position()
	_, sh := e.host.Size(scr)
	return e.sel.Select(ctx, scr, Sift(x, y, sh, e.cfg.Sift))
}

// History offers the remembered positions as hints. An empty history
// ends immediately as Unmatched.
func (e *Engine) History(ctx context.Context, entries []history.Position) (Selection, error) {
	if len(entries) == 0 {
		return Selection{Outcome: Unmatched}, nil
	}
	scr, _, _ := e.host.Position()
	_, sh := e.host.Size(scr)
	return e.sel.Select(ctx, scr, History(entries, sh, e.cfg.HistorySize, e.cfg.Chars))
}

// Spec offers caller supplied hints.
func (e *Engine) Spec(ctx context.Context, hints []platform.Hint) (Selection, error) {
	if len(hints) == 0 {
		return Selection{Outcome: Unmatched}, nil
	}
	scr, _, _ := e.host.Position()
	return e.sel.Select(ctx, scr, hints)
}

// SpecBoxSize returns the box size for caller supplied hints on the
// screen under the pointer.
func (e *Engine) SpecBoxSize() (w, h int) {
	scr, _, _ := e.host.Position()
	sw, sh := e.host.Size(scr)
	return BoxSize(sw, sh, e.cfg.Size)
}
