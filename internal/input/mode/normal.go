package mode

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/engine/motion"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

var normalKeys = []config.Option{
	config.Accelerator,
	config.Bottom,
	config.Buttons,
	config.CopyAndExit,
	config.Decelerator,
	config.Down,
	config.Drag,
	config.End,
	config.Exit,
	config.Grid,
	config.Hint,
	config.Hint2,
	config.HistBack,
	config.HistForward,
	config.History,
	config.Left,
	config.Middle,
	config.OneshotButtons,
	config.Print,
	config.Right,
	config.Screen,
	config.ScrollDown,
	config.ScrollUp,
	config.Start,
	config.Top,
	config.Up,
}

// leaveNormal are the bindings that hand control back to the session
// loop.
var leaveNormal = []config.Option{
	config.Exit,
	config.Grid,
	config.Screen,
	config.History,
	config.Hint2,
	config.Hint,
}

// indicatorGap is the indicator's distance from the screen corner.
const indicatorGap = 10

type normalExit struct {
	ev     key.Event
	button int
	done   bool
}

// cursorView paints the normal mode cursor and indicator.
type cursorView struct {
	host     platform.Platform
	size     int
	color    string
	position string
	indColor string
	indSize  int

	last    platform.Screen
	painted bool
}

func newCursorView(host platform.Platform, reg *config.Registry) *cursorView {
	return &cursorView{
		host:     host,
		size:     reg.Int(config.CursorSize),
		color:    reg.String(config.CursorColor),
		position: reg.String(config.Indicator),
		indColor: reg.String(config.IndicatorColor),
		indSize:  reg.Int(config.IndicatorSize),
	}
}

func (v *cursorView) draw(scr platform.Screen, x, y int, hide bool) {
	if v.painted && v.last != scr {
		v.host.Clear(v.last)
	}
	v.last, v.painted = scr, true

	v.host.Clear(scr)
	if !hide {
		v.host.DrawBox(scr, x+1, y-v.size/2, v.size, v.size, v.color)
	}

	sw, sh := v.host.Size(scr)
	sz := v.indSize * sh / 1080
	var ix, iy int
	switch v.position {
	case "topleft":
		ix, iy = indicatorGap, indicatorGap
	case "topright":
		ix, iy = sw-sz-indicatorGap, indicatorGap
	case "bottomleft":
		ix, iy = indicatorGap, sh-sz-indicatorGap
	case "bottomright":
		ix, iy = sw-sz-indicatorGap, sh-sz-indicatorGap
	default:
		v.host.Commit()
		return
	}
	v.host.DrawBox(scr, ix, iy, sz, sz, v.indColor)
	v.host.Commit()
}

func (v *cursorView) clear() {
	if v.painted {
		v.host.Clear(v.last)
	}
}

// normal runs normal mode until a binding hands control elsewhere.
func (s *session) normal(ctx context.Context) (normalExit, error) {
	host, reg := s.host, s.reg

	systemCursor := reg.Int(config.NormalSystemCursor) != 0
	onTime, offTime := reg.BlinkInterval()
	view := newCursorView(host, reg)
	showCursor := !systemCursor
	dragging := false

	host.Grab()
	if !systemCursor {
		host.Hide()
	}
	s.motion.Reset()
	s.scroll.Reset()
	reg.Whitelist(normalKeys...)

	defer func() {
		s.scroll.Stop()
		reg.Whitelist()
		host.Show()
		view.clear()
		host.Ungrab()
		host.Commit()
	}()

	scr, mx, my := host.Position()
	view.draw(scr, mx, my, !showCursor)
	lastBlink := host.Now()

	move := func(x, y int) {
		host.Move(scr, x, y)
		view.draw(scr, x, y, !showCursor)
	}

	for {
		if err := ctx.Err(); err != nil {
			return normalExit{}, err
		}

		var (
			ev key.Event
			ok bool
		)
		if s.hasPending {
			ev, ok = s.pending, true
			s.hasPending = false
		} else {
			ev, ok = host.NextEvent(platform.PollInterval)
		}
		scr, mx, my = host.Position()

		if !systemCursor && onTime > 0 {
			now := host.Now()
			switch {
			case showCursor && now-lastBlink >= onTime:
				showCursor = false
				view.draw(scr, mx, my, true)
				lastBlink = now
			case !showCursor && now-lastBlink >= offTime:
				showCursor = true
				view.draw(scr, mx, my, false)
				lastBlink = now
			}
		}

		s.scroll.Tick()
		if s.motion.ProcessKey(ev, ok, reg, motion.NormalKeys) {
			scr, mx, my = host.Position()
			view.draw(scr, mx, my, !showCursor)
			continue
		}
		if !ok {
			continue
		}

		// Held bindings act on both edges.
		switch {
		case reg.Match(ev, config.ScrollDown) > 0:
			s.scrollKey(ev, platform.ScrollDown)
			view.draw(scr, mx, my, true)
			continue
		case reg.Match(ev, config.ScrollUp) > 0:
			s.scrollKey(ev, platform.ScrollUp)
			view.draw(scr, mx, my, true)
			continue
		case reg.Match(ev, config.Accelerator) > 0:
			if ev.Pressed {
				s.motion.Fast()
			} else {
				s.motion.Normal()
			}
			continue
		case reg.Match(ev, config.Decelerator) > 0:
			if ev.Pressed {
				s.motion.Slow()
			} else {
				s.motion.Normal()
			}
			continue
		}

		if !ev.Pressed {
			continue
		}

		sw, sh := host.Size(scr)
		switch {
		case reg.Match(ev, config.Top) > 0:
			move(mx, view.size/2)
		case reg.Match(ev, config.Bottom) > 0:
			move(mx, sh-view.size/2)
		case reg.Match(ev, config.Middle) > 0:
			move(mx, sh/2)
		case reg.Match(ev, config.Start) > 0:
			move(1, my)
		case reg.Match(ev, config.End) > 0:
			move(sw-view.size, my)

		case reg.Match(ev, config.HistBack) > 0:
			s.ring.Record(history.Position{Screen: scr, X: mx, Y: my})
			if p, ok := s.ring.Prev(); ok {
				scr = p.Screen
				move(p.X, p.Y)
			}
		case reg.Match(ev, config.HistForward) > 0:
			if p, ok := s.ring.Next(); ok {
				scr = p.Screen
				move(p.X, p.Y)
			}

		case reg.Match(ev, config.Drag) > 0:
			dragging = !dragging
			if dragging {
				host.Down(reg.Int(config.DragButton))
			} else {
				host.Up(reg.Int(config.DragButton))
			}

		case reg.Match(ev, config.CopyAndExit) > 0:
			host.Up(reg.Int(config.DragButton))
			host.CopySelection()
			return normalExit{done: true}, nil

		case matchAny(reg, ev, leaveNormal):
			return normalExit{ev: ev}, nil

		case reg.Match(ev, config.Print) > 0:
			fmt.Fprintf(s.out, "%d %d %s\n", mx, my, key.FormatEvent(host, ev))

		default:
			if btn := reg.Match(ev, config.Buttons); btn > 0 {
				if s.opts.Oneshot {
					if err := s.recordFile(); err != nil {
						return normalExit{}, err
					}
					return normalExit{button: btn, done: true}, nil
				}
				if err := s.click(scr, mx, my, btn); err != nil {
					return normalExit{}, err
				}
			} else if btn := reg.Match(ev, config.OneshotButtons); btn > 0 {
				if err := s.click(scr, mx, my, btn); err != nil {
					return normalExit{}, err
				}
				if err := s.chord(ctx, btn); err != nil {
					return normalExit{}, err
				}
				return normalExit{button: btn, done: true}, nil
			}
		}
	}
}

func (s *session) click(scr platform.Screen, x, y, btn int) error {
	s.ring.Record(history.Position{Screen: scr, X: x, Y: y})
	if err := s.recordFile(); err != nil {
		return err
	}
	s.host.Click(btn)
	return nil
}

// chord clicks btn again for every repeated press that arrives within
// oneshot_timeout of the previous click.
func (s *session) chord(ctx context.Context, btn int) error {
	timeout := time.Duration(s.reg.Int(config.OneshotTimeout)) * time.Millisecond
	deadline := s.host.Now() + timeout

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		remaining := deadline - s.host.Now()
		if remaining <= 0 {
			return nil
		}

		ev, ok := s.host.NextEvent(remaining)
		if !ok || !ev.Pressed {
			continue
		}
		if s.reg.Match(ev, config.OneshotButtons) == btn {
			s.host.Click(btn)
			deadline = s.host.Now() + timeout
		}
	}
}

func (s *session) scrollKey(ev key.Event, dir platform.ScrollDirection) {
	sc := s.scroll
	if !ev.Pressed {
		sc.Decelerate()
		return
	}
	if sc.Coasting() && sc.Direction() == dir {
		sc.ImpartImpulse()
	} else {
		sc.Stop()
	}
	sc.Accelerate(dir)
}

func matchAny(reg *config.Registry, ev key.Event, opts []config.Option) bool {
	_, idx := reg.MatchAny(ev, opts...)
	return idx > 0
}
