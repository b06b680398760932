// Package terminal implements platform.Platform on a terminal screen.
//
// The terminal is one virtual screen in which every cell stands for
// CellW x CellH pixels. The pointer is drawn as a highlighted cell and
// button actions are reported on the bottom status line, so sessions can
// be tried out, or scripted, where no display server is available.
package terminal

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

// Pixel size of one terminal cell.
const (
	CellW = 8
	CellH = 16
)

// Terminal implements platform.Platform using tcell.
type Terminal struct {
	*key.TableKeymap

	screen tcell.Screen
	events chan tcell.Event
	start  time.Time
	copy   func(string) error

	mu       sync.Mutex
	pending  []key.Event
	x, y     int
	hidden   bool
	style    platform.HintStyle
	status   string
	pointerC tcell.Color
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithClipboard replaces the system clipboard writer used by
// CopySelection.
func WithClipboard(fn func(string) error) Option {
	return func(t *Terminal) {
		t.copy = fn
	}
}

// WithPointerColor sets the color of the pointer cell.
func WithPointerColor(color string) Option {
	return func(t *Terminal) {
		t.pointerC = parseColor(color)
	}
}

// New creates a terminal platform on the controlling terminal.
func New(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, opts...), nil
}

// NewWithScreen creates a terminal platform on screen. Init must be
// called before use.
func NewWithScreen(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{
		TableKeymap: key.USKeymap(),
		screen:      screen,
		events:      make(chan tcell.Event, 64),
		start:       time.Now(),
		copy:        clipboard.WriteAll,
		pointerC:    tcell.ColorOrangeRed,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init takes over the terminal and starts reading events.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	t.screen.Clear()

	w, h := t.screen.Size()
	t.mu.Lock()
	t.x, t.y = w*CellW/2, h*CellH/2
	t.mu.Unlock()

	go t.pump()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

// pump forwards screen events until the screen is finalized.
func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			close(t.events)
			return
		}
		t.events <- ev
	}
}

// Grab implements platform.Input. The terminal always has the keyboard
// while keywarp runs.
func (t *Terminal) Grab() {}

// Ungrab implements platform.Input.
func (t *Terminal) Ungrab() {}

// NextEvent implements platform.Input. Terminals only report presses, so
// each press is followed by a synthesized release.
func (t *Terminal) NextEvent(timeout time.Duration) (key.Event, bool) {
	t.mu.Lock()
	if len(t.pending) > 0 {
		ev := t.pending[0]
		t.pending = t.pending[1:]
		t.mu.Unlock()
		return ev, true
	}
	t.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			return key.Event{}, false
		case tev, ok := <-t.events:
			if !ok {
				return key.Event{}, false
			}
			switch e := tev.(type) {
			case *tcell.EventKey:
				ev, ok := t.convertKey(e)
				if !ok {
					continue
				}
				t.mu.Lock()
				t.pending = append(t.pending, key.Release(ev.Code, ev.Mods))
				t.mu.Unlock()
				return ev, true
			case *tcell.EventResize:
				t.screen.Sync()
			}
		}
	}
}

// Position implements platform.Pointer.
func (t *Terminal) Position() (platform.Screen, int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return 0, t.x, t.y
}

// Move implements platform.Pointer. The pointer is kept on screen.
func (t *Terminal) Move(_ platform.Screen, x, y int) {
	w, h := t.Size(0)
	t.mu.Lock()
	t.x = min(max(x, 0), w-1)
	t.y = min(max(y, 0), h-1)
	t.mu.Unlock()
}

// Down implements platform.Pointer.
func (t *Terminal) Down(button int) {
	t.mu.Lock()
	t.status = fmt.Sprintf("down %d at %d %d", button, t.x, t.y)
	t.mu.Unlock()
}

// Up implements platform.Pointer.
func (t *Terminal) Up(button int) {
	t.mu.Lock()
	t.status = fmt.Sprintf("up %d at %d %d", button, t.x, t.y)
	t.mu.Unlock()
}

// Click implements platform.Pointer.
func (t *Terminal) Click(button int) {
	t.mu.Lock()
	t.status = fmt.Sprintf("click %d at %d %d", button, t.x, t.y)
	t.mu.Unlock()
}

// Show implements platform.Pointer.
func (t *Terminal) Show() {
	t.mu.Lock()
	t.hidden = false
	t.mu.Unlock()
}

// Hide implements platform.Pointer.
func (t *Terminal) Hide() {
	t.mu.Lock()
	t.hidden = true
	t.mu.Unlock()
}

// Scroll implements platform.Pointer.
func (t *Terminal) Scroll(dir platform.ScrollDirection) {
	t.mu.Lock()
	t.status = "scroll " + dir.String()
	t.mu.Unlock()
}

// CopySelection implements platform.Pointer. The word under the pointer
// is the selection.
func (t *Terminal) CopySelection() {
	word := t.wordAt(t.cell())
	t.mu.Lock()
	if err := t.copy(word); err != nil {
		t.status = "copy failed: " + err.Error()
	} else {
		t.status = fmt.Sprintf("copied %q", word)
	}
	t.mu.Unlock()
}

func (t *Terminal) wordAt(cx, cy int) string {
	w, _ := t.screen.Size()
	isSpace := func(x int) bool {
		r, _, _, _ := t.screen.GetContent(x, cy) //nolint:staticcheck // GetContent is the correct API
		return r == ' ' || r == 0
	}
	if isSpace(cx) {
		return ""
	}
	lo, hi := cx, cx
	for lo > 0 && !isSpace(lo-1) {
		lo--
	}
	for hi < w-1 && !isSpace(hi+1) {
		hi++
	}
	var sb strings.Builder
	for x := lo; x <= hi; x++ {
		r, _, _, _ := t.screen.GetContent(x, cy) //nolint:staticcheck // GetContent is the correct API
		sb.WriteRune(r)
	}
	return sb.String()
}

// Status returns the last pointer action message.
func (t *Terminal) Status() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Now implements platform.Clock.
func (t *Terminal) Now() time.Duration {
	return time.Since(t.start)
}

// cell returns the terminal cell under the pointer.
func (t *Terminal) cell() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.x / CellW, t.y / CellH
}
