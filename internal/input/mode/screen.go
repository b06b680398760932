package mode

import (
	"context"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/engine/hint"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

// screen labels every screen and moves the pointer to the center of the
// one whose label is typed. Any other key press ends the mode without
// moving.
func (s *session) screen(ctx context.Context) (bool, error) {
	host, reg := s.host, s.reg

	screens := host.Screens()
	sizes := make([][2]int, len(screens))
	for i, scr := range screens {
		w, h := host.Size(scr)
		sizes[i] = [2]int{w, h}
	}
	hints := hint.Screens(sizes, reg.String(config.ScreenChars))
	for i, h := range hints {
		host.DrawHints(screens[i], []platform.Hint{h})
	}
	host.Commit()

	host.Grab()
	reg.Whitelist(config.HintExit)
	defer func() {
		reg.Whitelist()
		host.Ungrab()
		for _, scr := range screens {
			host.Clear(scr)
		}
		host.Commit()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		ev, ok := host.NextEvent(platform.PollInterval)
		if !ok || !ev.Pressed {
			continue
		}
		if reg.Match(ev, config.HintExit) > 0 {
			return false, nil
		}

		name := key.EventName(host, ev)
		for i, h := range hints {
			if h.Label == name {
				host.Move(screens[i], sizes[i][0]/2, sizes[i][1]/2)
				return true, nil
			}
		}
		return false, nil
	}
}
