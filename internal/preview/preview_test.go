package preview

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/input/mode"
)

func newRegistry(t *testing.T, options map[string]string) *config.Registry {
	t.Helper()
	reg, err := config.New(key.USKeymap(), zerolog.Nop())
	require.NoError(t, err)
	for k, v := range options {
		_, err := reg.Add(k, v)
		require.NoError(t, err)
	}
	return reg
}

func pixel(c *Canvas, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(c.Image().At(x, y)).(color.NRGBA)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ff4500", color.NRGBA{R: 0xff, G: 0x45, A: 0xff}, true},
		{"1c1c1e", color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff}, true},
		{"#00ff0080", color.NRGBA{G: 0xff, A: 0x80}, true},
		{"#fff", color.NRGBA{}, false},
		{"#gg0000", color.NRGBA{}, false},
		{"#000000zz", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrBadColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCanvasRejectsEmpty(t *testing.T) {
	_, err := NewCanvas(0, 10)
	assert.Error(t, err)
}

func TestRenderHint(t *testing.T) {
	reg := newRegistry(t, map[string]string{"hint_chars": "ab"})
	c, err := NewCanvas(1920, 1080)
	require.NoError(t, err)

	require.NoError(t, Render(c, mode.Hint, reg, nil))
	assert.Equal(t, 4, c.Labels)

	// First hint is 38x21 at (461, 259); its left edge is background.
	assert.Equal(t, color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff}, pixel(c, 462, 259+10))
	assert.Equal(t, uint8(0), pixel(c, 10, 10).A)
}

func TestRenderHint2(t *testing.T) {
	reg := newRegistry(t, nil)
	c, err := NewCanvas(1920, 1080)
	require.NoError(t, err)

	require.NoError(t, Render(c, mode.Hint2, reg, nil))
	assert.Equal(t, 9, c.Labels)
}

func TestRenderGrid(t *testing.T) {
	reg := newRegistry(t, nil)
	c, err := NewCanvas(1920, 1080)
	require.NoError(t, err)

	require.NoError(t, Render(c, mode.Grid, reg, nil))
	assert.Equal(t, 13, c.Boxes)
	assert.Equal(t, color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff}, pixel(c, 0, 0))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x45, A: 0xff}, pixel(c, 960, 540))
}

func TestRenderScreenAndHistory(t *testing.T) {
	reg := newRegistry(t, nil)
	c, err := NewCanvas(800, 600)
	require.NoError(t, err)

	require.NoError(t, Render(c, mode.Screen, reg, nil))
	assert.Equal(t, 1, c.Labels)

	entries := []history.Position{{X: 100, Y: 100}, {X: 400, Y: 300}, {X: 700, Y: 500}}
	require.NoError(t, Render(c, mode.History, reg, entries))
	assert.Equal(t, 3, c.Labels)
}

func TestRenderClearsPreviousLayout(t *testing.T) {
	reg := newRegistry(t, nil)
	c, err := NewCanvas(1920, 1080)
	require.NoError(t, err)

	require.NoError(t, Render(c, mode.Grid, reg, nil))
	require.NoError(t, Render(c, mode.Screen, reg, nil))
	assert.Equal(t, 0, c.Boxes)
	assert.Equal(t, uint8(0), pixel(c, 0, 0).A)
}

func TestRenderUnsupported(t *testing.T) {
	reg := newRegistry(t, nil)
	c, err := NewCanvas(100, 100)
	require.NoError(t, err)
	assert.Error(t, Render(c, mode.Normal, reg, nil))
}

func TestBadColorDrawsMagenta(t *testing.T) {
	c, err := NewCanvas(10, 10)
	require.NoError(t, err)
	c.DrawBox(0, 0, 0, 10, 10, "nope")
	assert.Equal(t, color.NRGBA{R: 0xff, B: 0xff, A: 0xff}, pixel(c, 5, 5))
}

func TestRenderPNGs(t *testing.T) {
	reg := newRegistry(t, nil)
	pngs, err := RenderPNGs(context.Background(), reg, 320, 200, []mode.Mode{mode.Hint, mode.Grid}, nil)
	require.NoError(t, err)
	require.Len(t, pngs, 2)

	for _, data := range pngs {
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 320, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	}
}

func TestRenderPNGsError(t *testing.T) {
	reg := newRegistry(t, nil)
	_, err := RenderPNGs(context.Background(), reg, 320, 200, []mode.Mode{mode.Hint, mode.Normal}, nil)
	assert.Error(t, err)
}
