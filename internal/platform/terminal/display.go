package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keywarp/internal/platform"
)

// Screens implements platform.Display.
func (t *Terminal) Screens() []platform.Screen {
	return []platform.Screen{0}
}

// Size implements platform.Display. The bottom row is the status line and
// is not part of the screen.
func (t *Terminal) Size(platform.Screen) (int, int) {
	w, h := t.screen.Size()
	return w * CellW, max(h-1, 1) * CellH
}

// DrawBox implements platform.Display. Every cell the box touches is
// painted.
func (t *Terminal) DrawBox(_ platform.Screen, x, y, w, h int, color string) {
	style := tcell.StyleDefault.Background(parseColor(color))
	x0, y0, x1, y1 := cellRect(x, y, w, h)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			t.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// DrawHints implements platform.Display. Each label is centered in its
// box, truncated to the box width.
func (t *Terminal) DrawHints(_ platform.Screen, hints []platform.Hint) {
	t.mu.Lock()
	style := tcell.StyleDefault.
		Background(parseColor(t.style.Background)).
		Foreground(parseColor(t.style.Foreground)).
		Bold(true)
	t.mu.Unlock()

	for _, h := range hints {
		x0, y0, x1, y1 := cellRect(h.X, h.Y, h.W, h.H)
		width := x1 - x0 + 1
		label := h.Label
		if len(label) > width {
			label = label[:width]
		}
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				t.screen.SetContent(cx, cy, ' ', nil, style)
			}
		}
		lx := x0 + (width-len(label))/2
		ly := y0 + (y1-y0)/2
		for i, r := range label {
			t.screen.SetContent(lx+i, ly, r, nil, style)
		}
	}
}

// SetHintStyle implements platform.Display.
func (t *Terminal) SetHintStyle(style platform.HintStyle) {
	t.mu.Lock()
	t.style = style
	t.mu.Unlock()
}

// Clear implements platform.Display.
func (t *Terminal) Clear(platform.Screen) {
	t.screen.Clear()
}

// Commit implements platform.Display. The pointer cell and the status
// line are drawn over the frame before it is shown.
func (t *Terminal) Commit() {
	w, h := t.screen.Size()
	cx, cy := t.cell()

	t.mu.Lock()
	hidden := t.hidden
	status := t.status
	pc := t.pointerC
	t.mu.Unlock()

	if !hidden {
		r, _, _, _ := t.screen.GetContent(cx, cy) //nolint:staticcheck // GetContent is the correct API
		t.screen.SetContent(cx, cy, r, nil, tcell.StyleDefault.Background(pc))
	}

	line := []rune(status)
	line = append(line, []rune(strings.Repeat(" ", max(w-len(line), 0)))...)
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, h-1, line[x], nil, tcell.StyleDefault.Reverse(true))
	}
	t.screen.Show()
}

// cellRect returns the inclusive cell range covering a pixel box.
func cellRect(x, y, w, h int) (x0, y0, x1, y1 int) {
	x0, y0 = x/CellW, y/CellH
	x1 = max((x+w-1)/CellW, x0)
	y1 = max((y+h-1)/CellH, y0)
	return x0, y0, x1, y1
}

// parseColor accepts #rrggbb and #rrggbbaa. The alpha channel is ignored.
func parseColor(s string) tcell.Color {
	if len(s) == 9 && s[0] == '#' {
		s = s[:7]
	}
	return tcell.GetColor(s)
}
