package preview

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/engine/grid"
	"github.com/dshills/keywarp/internal/engine/hint"
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/input/mode"
)

// Modes lists the modes that have a static layout to preview.
var Modes = []mode.Mode{mode.Hint, mode.Hint2, mode.Grid, mode.Screen, mode.History}

// Render draws the initial layout of m, as configured in reg, onto c.
// History mode draws a hint for each of entries.
func Render(c *Canvas, m mode.Mode, reg *config.Registry, entries []history.Position) error {
	w, h := c.Size(0)
	hc := hint.ConfigFrom(reg)
	c.Clear(0)
	c.SetHintStyle(hc.Style)

	switch m {
	case mode.Hint:
		c.DrawHints(0, hint.Fullscreen(w, h, hc.Size, hc.Chars))
	case mode.Hint2:
		c.DrawHints(0, hint.Sift(w/2, h/2, h, hc.Sift))
	case mode.Grid:
		grid.Paint(c, 0, grid.Region{X: w / 2, Y: h / 2, W: w, H: h}, grid.ConfigFrom(reg))
	case mode.Screen:
		c.DrawHints(0, hint.Screens([][2]int{{w, h}}, reg.String(config.ScreenChars)))
	case mode.History:
		c.DrawHints(0, hint.History(entries, h, hc.HistorySize, hc.Chars))
	default:
		return fmt.Errorf("preview %s: no static layout", m)
	}
	c.Commit()
	return nil
}

// RenderPNGs renders each of modes on its own w x h canvas and returns the
// encoded PNGs in the same order.
func RenderPNGs(ctx context.Context, reg *config.Registry, w, h int, modes []mode.Mode, entries []history.Position) ([][]byte, error) {
	out := make([][]byte, len(modes))
	g, ctx := errgroup.WithContext(ctx)
	for i, m := range modes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := NewCanvas(w, h)
			if err != nil {
				return err
			}
			if err := Render(c, m, reg, entries); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := c.EncodePNG(&buf); err != nil {
				return fmt.Errorf("encode %s: %w", m, err)
			}
			out[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
