package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

func newTestTerminal(t *testing.T, opts ...Option) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(screen, opts...)
	require.NoError(t, term.Init())
	screen.SetSize(40, 11)
	t.Cleanup(term.Shutdown)
	return term, screen
}

var _ platform.Platform = (*Terminal)(nil)

func nextEvent(t *testing.T, term *Terminal) key.Event {
	t.Helper()
	ev, ok := term.NextEvent(time.Second)
	require.True(t, ok, "expected an event")
	return ev
}

func TestSize(t *testing.T) {
	term, _ := newTestTerminal(t)

	w, h := term.Size(0)
	assert.Equal(t, 40*CellW, w)
	assert.Equal(t, 10*CellH, h)
	assert.Equal(t, []platform.Screen{0}, term.Screens())
}

func TestNextEventRune(t *testing.T) {
	term, screen := newTestTerminal(t)
	km := key.USKeymap()

	screen.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)

	ev := nextEvent(t, term)
	assert.True(t, ev.Pressed)
	assert.Equal(t, "h", key.FormatEvent(km, ev))

	rel := nextEvent(t, term)
	assert.False(t, rel.Pressed)
	assert.Equal(t, ev.Code, rel.Code)
}

func TestNextEventShiftedRune(t *testing.T) {
	term, screen := newTestTerminal(t)
	km := key.USKeymap()

	screen.InjectKey(tcell.KeyRune, '$', tcell.ModNone)

	ev := nextEvent(t, term)
	b, err := key.ParseBinding(km, "$")
	require.NoError(t, err)
	assert.Equal(t, b.Code, ev.Code)
	assert.True(t, ev.Mods.Has(key.ModShift))
}

func TestNextEventSpecialKeys(t *testing.T) {
	term, screen := newTestTerminal(t)
	km := key.USKeymap()

	tests := []struct {
		key  tcell.Key
		mod  tcell.ModMask
		want string
	}{
		{tcell.KeyEscape, tcell.ModNone, "esc"},
		{tcell.KeyEnter, tcell.ModNone, "enter"},
		{tcell.KeyLeft, tcell.ModNone, "left"},
		{tcell.KeyF5, tcell.ModNone, "f5"},
		{tcell.KeyCtrlD, tcell.ModCtrl, "C-d"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			screen.InjectKey(tt.key, 0, tt.mod)
			ev := nextEvent(t, term)
			assert.Equal(t, tt.want, key.FormatEvent(km, ev))
			nextEvent(t, term)
		})
	}
}

func TestNextEventTimeout(t *testing.T) {
	term, _ := newTestTerminal(t)

	start := time.Now()
	_, ok := term.NextEvent(20 * time.Millisecond)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestMoveClamps(t *testing.T) {
	term, _ := newTestTerminal(t)

	term.Move(0, 100, 50)
	_, x, y := term.Position()
	assert.Equal(t, 100, x)
	assert.Equal(t, 50, y)

	term.Move(0, -5, 10000)
	_, x, y = term.Position()
	assert.Equal(t, 0, x)
	assert.Equal(t, 10*CellH-1, y)
}

func TestButtonsReportOnStatusLine(t *testing.T) {
	term, screen := newTestTerminal(t)
	term.Move(0, 16, 32)

	term.Click(1)
	assert.Equal(t, "click 1 at 16 32", term.Status())

	term.Down(3)
	assert.Equal(t, "down 3 at 16 32", term.Status())
	term.Up(3)
	assert.Equal(t, "up 3 at 16 32", term.Status())

	term.Scroll(platform.ScrollUp)
	assert.Equal(t, "scroll up", term.Status())

	term.Commit()
	r, _, style, _ := screen.GetContent(0, 10) //nolint:staticcheck // GetContent is the correct API
	assert.Equal(t, 's', r)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse)
}

func TestDrawBoxCoversCells(t *testing.T) {
	term, screen := newTestTerminal(t)

	term.DrawBox(0, 8, 16, 16, 16, "#ff0000")

	for _, cx := range []int{1, 2} {
		_, _, style, _ := screen.GetContent(cx, 1) //nolint:staticcheck // GetContent is the correct API
		_, bg, _ := style.Decompose()
		assert.Equal(t, tcell.GetColor("#ff0000"), bg, "cell %d", cx)
	}
	_, _, style, _ := screen.GetContent(3, 1) //nolint:staticcheck // GetContent is the correct API
	_, bg, _ := style.Decompose()
	assert.NotEqual(t, tcell.GetColor("#ff0000"), bg)
}

func TestDrawHintsCentersLabel(t *testing.T) {
	term, screen := newTestTerminal(t)
	term.SetHintStyle(platform.HintStyle{Background: "#1c1c1e", Foreground: "#a1aba7ff"})

	term.DrawHints(0, []platform.Hint{{X: 0, Y: 0, W: 5 * CellW, H: 3 * CellH, Label: "ab"}})

	var row []rune
	for cx := 0; cx < 5; cx++ {
		r, _, _, _ := screen.GetContent(cx, 1) //nolint:staticcheck // GetContent is the correct API
		row = append(row, r)
	}
	assert.Equal(t, " ab  ", string(row))

	_, _, style, _ := screen.GetContent(1, 1) //nolint:staticcheck // GetContent is the correct API
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.GetColor("#a1aba7"), fg)
	assert.Equal(t, tcell.GetColor("#1c1c1e"), bg)
}

func TestCommitDrawsPointer(t *testing.T) {
	term, screen := newTestTerminal(t, WithPointerColor("#00ff00"))
	term.Move(0, 3*CellW+2, 2*CellH+5)

	term.Commit()
	_, _, style, _ := screen.GetContent(3, 2) //nolint:staticcheck // GetContent is the correct API
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.GetColor("#00ff00"), bg)

	term.Clear(0)
	term.Hide()
	term.Commit()
	_, _, style, _ = screen.GetContent(3, 2) //nolint:staticcheck // GetContent is the correct API
	_, bg, _ = style.Decompose()
	assert.NotEqual(t, tcell.GetColor("#00ff00"), bg)
}

func TestCopySelection(t *testing.T) {
	var copied string
	term, screen := newTestTerminal(t, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	for i, r := range "foo barbaz qux" {
		screen.SetContent(i, 4, r, nil, tcell.StyleDefault)
	}

	term.Move(0, 6*CellW, 4*CellH)
	term.CopySelection()
	assert.Equal(t, "barbaz", copied)
	assert.Equal(t, `copied "barbaz"`, term.Status())

	copied = "unchanged"
	term.Move(0, 3*CellW, 4*CellH)
	term.CopySelection()
	assert.Equal(t, "", copied)
}

func TestCopySelectionError(t *testing.T) {
	term, _ := newTestTerminal(t, WithClipboard(func(string) error {
		return errors.New("no clipboard")
	}))

	term.CopySelection()
	assert.Equal(t, "copy failed: no clipboard", term.Status())
}

func TestNowAdvances(t *testing.T) {
	term, _ := newTestTerminal(t)

	a := term.Now()
	time.Sleep(2 * time.Millisecond)
	assert.Greater(t, term.Now(), a)
}
