// Package fake provides a scripted in-memory platform for tests.
//
// Time is virtual: NextEvent advances the clock to the next scripted
// event, or by the full timeout when nothing is due, so physics and chord
// windows behave exactly as they would in real time without sleeping.
// Every side effect is recorded for assertions.
package fake

import (
	"fmt"
	"time"

	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

// Step is a scripted event delivered After the previous one.
type Step struct {
	After time.Duration
	Event key.Event
}

// Move is a recorded pointer move.
type Move struct {
	Screen platform.Screen
	X, Y   int
}

// Box is a recorded rectangle draw.
type Box struct {
	Screen     platform.Screen
	X, Y, W, H int
	Color      string
}

type size struct{ w, h int }

// Platform implements platform.Platform in memory.
type Platform struct {
	*key.TableKeymap

	now          time.Duration
	lastDelivery time.Duration
	script       []Step
	next         int

	idleLimit int
	idle      int
	onIdle    func()

	screens []size
	scr     platform.Screen
	x, y    int

	Grabbed      bool
	CursorHidden bool
	Style        platform.HintStyle

	Moves     []Move
	Clicks    []int
	Downs     []int
	Ups       []int
	Scrolls   []platform.ScrollDirection
	Boxes     []Box
	HintDraws [][]platform.Hint
	Clears    int
	Commits   int
	Copies    int

	// Log is every side effect in order, e.g. "move 0 10 20", "click 1".
	Log []string
}

// Option configures a fake platform.
type Option func(*Platform)

// WithScreen adds a screen of the given size. The first screen added is
// where the pointer starts.
func WithScreen(w, h int) Option {
	return func(p *Platform) {
		p.screens = append(p.screens, size{w, h})
	}
}

// WithPointer sets the initial pointer position on the first screen.
func WithPointer(x, y int) Option {
	return func(p *Platform) {
		p.x, p.y = x, y
	}
}

// WithScript sets the events NextEvent will deliver.
func WithScript(steps []Step) Option {
	return func(p *Platform) {
		p.script = steps
	}
}

// WithIdleCancel calls fn once NextEvent has timed out n times after the
// script ran out. Tests pass a context cancel func so loops that never
// reach a terminal binding still stop.
func WithIdleCancel(n int, fn func()) Option {
	return func(p *Platform) {
		p.idleLimit = n
		p.onIdle = fn
	}
}

// New creates a fake platform with a US keymap. Without WithScreen it has
// one 1920x1080 screen.
func New(opts ...Option) *Platform {
	p := &Platform{TableKeymap: key.USKeymap()}
	for _, opt := range opts {
		opt(p)
	}
	if len(p.screens) == 0 {
		p.screens = []size{{1920, 1080}}
	}
	return p
}

func (p *Platform) record(format string, args ...any) {
	p.Log = append(p.Log, fmt.Sprintf(format, args...))
}

// Remaining returns how many scripted events have not been delivered.
func (p *Platform) Remaining() int {
	return len(p.script) - p.next
}

// Grab implements platform.Input.
func (p *Platform) Grab() { p.Grabbed = true }

// Ungrab implements platform.Input.
func (p *Platform) Ungrab() { p.Grabbed = false }

// NextEvent implements platform.Input.
func (p *Platform) NextEvent(timeout time.Duration) (key.Event, bool) {
	if p.next < len(p.script) {
		step := p.script[p.next]
		due := p.lastDelivery + step.After
		if due <= p.now+timeout {
			if due > p.now {
				p.now = due
			}
			p.lastDelivery = p.now
			p.next++
			return step.Event, true
		}
		p.now += timeout
		return key.Event{}, false
	}

	p.now += timeout
	p.idle++
	if p.onIdle != nil && p.idle >= p.idleLimit {
		fn := p.onIdle
		p.onIdle = nil
		fn()
	}
	return key.Event{}, false
}

// Now implements platform.Clock.
func (p *Platform) Now() time.Duration { return p.now }

// Advance moves the virtual clock forward.
func (p *Platform) Advance(d time.Duration) { p.now += d }

// Position implements platform.Pointer.
func (p *Platform) Position() (platform.Screen, int, int) {
	return p.scr, p.x, p.y
}

// SetPosition moves the pointer without recording a move.
func (p *Platform) SetPosition(x, y int) {
	p.x, p.y = x, y
}

// Move implements platform.Pointer.
func (p *Platform) Move(scr platform.Screen, x, y int) {
	p.scr, p.x, p.y = scr, x, y
	p.Moves = append(p.Moves, Move{scr, x, y})
	p.record("move %d %d %d", scr, x, y)
}

// LastMove returns the most recent move.
func (p *Platform) LastMove() (Move, bool) {
	if len(p.Moves) == 0 {
		return Move{}, false
	}
	return p.Moves[len(p.Moves)-1], true
}

// Down implements platform.Pointer.
func (p *Platform) Down(button int) {
	p.Downs = append(p.Downs, button)
	p.record("down %d", button)
}

// Up implements platform.Pointer.
func (p *Platform) Up(button int) {
	p.Ups = append(p.Ups, button)
	p.record("up %d", button)
}

// Click implements platform.Pointer.
func (p *Platform) Click(button int) {
	p.Clicks = append(p.Clicks, button)
	p.record("click %d", button)
}

// Show implements platform.Pointer.
func (p *Platform) Show() { p.CursorHidden = false }

// Hide implements platform.Pointer.
func (p *Platform) Hide() { p.CursorHidden = true }

// Scroll implements platform.Pointer.
func (p *Platform) Scroll(dir platform.ScrollDirection) {
	p.Scrolls = append(p.Scrolls, dir)
}

// CopySelection implements platform.Pointer.
func (p *Platform) CopySelection() {
	p.Copies++
	p.record("copy")
}

// Screens implements platform.Display.
func (p *Platform) Screens() []platform.Screen {
	out := make([]platform.Screen, len(p.screens))
	for i := range p.screens {
		out[i] = platform.Screen(i)
	}
	return out
}

// Size implements platform.Display.
func (p *Platform) Size(scr platform.Screen) (int, int) {
	if int(scr) < 0 || int(scr) >= len(p.screens) {
		return 0, 0
	}
	s := p.screens[scr]
	return s.w, s.h
}

// DrawBox implements platform.Display.
func (p *Platform) DrawBox(scr platform.Screen, x, y, w, h int, color string) {
	p.Boxes = append(p.Boxes, Box{scr, x, y, w, h, color})
}

// DrawHints implements platform.Display.
func (p *Platform) DrawHints(_ platform.Screen, hints []platform.Hint) {
	cp := make([]platform.Hint, len(hints))
	copy(cp, hints)
	p.HintDraws = append(p.HintDraws, cp)
}

// LastHints returns the most recently drawn hint set.
func (p *Platform) LastHints() []platform.Hint {
	if len(p.HintDraws) == 0 {
		return nil
	}
	return p.HintDraws[len(p.HintDraws)-1]
}

// SetHintStyle implements platform.Display.
func (p *Platform) SetHintStyle(style platform.HintStyle) { p.Style = style }

// Clear implements platform.Display.
func (p *Platform) Clear(platform.Screen) {
	p.Clears++
}

// Commit implements platform.Display.
func (p *Platform) Commit() { p.Commits++ }

var _ platform.Platform = (*Platform)(nil)
