// Package preview renders hint and grid layouts to images, so a config can
// be checked without activating keywarp.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/dshills/keywarp/internal/platform"
)

// ErrBadColor is returned for colors that are not #rrggbb or #rrggbbaa.
var ErrBadColor = errors.New("bad color")

// Canvas is an offscreen single screen display. It implements the drawing
// half of platform.Display.
type Canvas struct {
	w, h  int
	dc    *gg.Context
	font  *truetype.Font
	faces map[int]font.Face
	style platform.HintStyle

	// Boxes and Labels count what has been drawn since the last Clear.
	Boxes  int
	Labels int
}

// NewCanvas creates a transparent w x h canvas.
func NewCanvas(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d", w, h)
	}
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Canvas{
		w:     w,
		h:     h,
		dc:    gg.NewContext(w, h),
		font:  f,
		faces: make(map[int]font.Face),
	}, nil
}

// Screens implements platform.Display. A canvas has one screen.
func (c *Canvas) Screens() []platform.Screen {
	return []platform.Screen{0}
}

// Size implements platform.Display.
func (c *Canvas) Size(platform.Screen) (int, int) {
	return c.w, c.h
}

// DrawBox implements platform.Display. Boxes with an unparsable color are
// drawn opaque magenta so mistakes stand out.
func (c *Canvas) DrawBox(_ platform.Screen, x, y, w, h int, col string) {
	c.dc.SetColor(colorOrMagenta(col))
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
	c.Boxes++
}

// DrawHints implements platform.Display.
func (c *Canvas) DrawHints(_ platform.Screen, hints []platform.Hint) {
	bg := colorOrMagenta(c.style.Background)
	fg := colorOrMagenta(c.style.Foreground)
	r := float64(c.style.BorderRadius)

	for _, hn := range hints {
		x, y := float64(hn.X), float64(hn.Y)
		w, h := float64(hn.W), float64(hn.H)

		c.dc.SetColor(bg)
		c.dc.DrawRoundedRectangle(x, y, w, h, r)
		c.dc.Fill()

		c.dc.SetFontFace(c.face(hn.H))
		c.dc.SetColor(fg)
		c.dc.DrawStringAnchored(hn.Label, x+w/2, y+h/2, 0.5, 0.35)
		c.Labels++
	}
}

// SetHintStyle implements platform.Display.
func (c *Canvas) SetHintStyle(style platform.HintStyle) {
	c.style = style
}

// Clear implements platform.Display.
func (c *Canvas) Clear(platform.Screen) {
	c.dc.SetColor(color.Transparent)
	c.dc.Clear()
	c.Boxes, c.Labels = 0, 0
}

// Commit implements platform.Display.
func (c *Canvas) Commit() {}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// face returns a monospace face sized to fit a box h pixels high.
func (c *Canvas) face(h int) font.Face {
	size := max(h*2/3, 6)
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.font, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[size] = f
	return f
}

// ParseColor parses #rrggbb and #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	alpha := uint8(0xff)
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		alpha = uint8(a)
		hex = hex[:6]
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

func colorOrMagenta(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
	}
	return c
}
