// Package hint generates labeled targets and runs the incremental
// selection loop over them.
package hint

import (
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/platform"
)

// BoxSize returns the hint box size for a sw x sh screen. The width is
// taken from the larger dimension and the height from the smaller one, so
// boxes keep the same shape on rotated screens.
func BoxSize(sw, sh, size int) (w, h int) {
	if sw < sh {
		sw, sh = sh, sw
	}
	return sw * size / 1000, sh * size / 1000
}

// Fullscreen lays out len(chars)^2 hints evenly over a sw x sh screen.
// Hint (i, j) is labeled chars[i]+chars[j], columns first.
func Fullscreen(sw, sh, size int, chars string) []platform.Hint {
	n := len(chars)
	if n == 0 {
		return nil
	}
	w, h := BoxSize(sw, sh, size)

	colgap := sw/n - w
	rowgap := sh/n - h
	xoff := (sw - n*w - (n-1)*colgap) / 2
	yoff := (sh - n*h - (n-1)*rowgap) / 2

	hints := make([]platform.Hint, 0, n*n)
	for i := range n {
		for j := range n {
			hints = append(hints, platform.Hint{
				X:     xoff + i*(w+colgap),
				Y:     yoff + j*(h+rowgap),
				W:     w,
				H:     h,
				Label: string([]byte{chars[i], chars[j]}),
			})
		}
	}
	return hints
}

// SiftConfig sizes the second pass grid. Size and Gap are thousandths of
// the screen height.
type SiftConfig struct {
	Chars string
	Size  int
	Gap   int
	Grid  int
}

// Sift lays out a Grid x Grid block of single character hints centered on
// (x, y), for a screen sh pixels high.
func Sift(x, y, sh int, cfg SiftConfig) []platform.Hint {
	size := cfg.Size * sh / 1000
	gap := cfg.Gap * sh / 1000
	total := cfg.Grid*size + (cfg.Grid-1)*gap
	x0 := x - total/2
	y0 := y - total/2

	hints := make([]platform.Hint, 0, cfg.Grid*cfg.Grid)
	for col := range cfg.Grid {
		for row := range cfg.Grid {
			n := col*cfg.Grid + row
			if n >= len(cfg.Chars) {
				return hints
			}
			hints = append(hints, platform.Hint{
				X:     x0 + col*(size+gap),
				Y:     y0 + row*(size+gap),
				W:     size,
				H:     size,
				Label: cfg.Chars[n : n+1],
			})
		}
	}
	return hints
}

// History places one hint on each remembered position. Boxes are
// sizePct percent of the screen height.
func History(entries []history.Position, sh, sizePct int, chars string) []platform.Hint {
	sz := sh * sizePct / 100
	labels := Labels(len(entries), chars)

	hints := make([]platform.Hint, len(entries))
	for i, e := range entries {
		hints[i] = platform.Hint{
			X:     e.X - sz/2,
			Y:     e.Y - sz/2,
			W:     sz,
			H:     sz,
			Label: labels[i],
		}
	}
	return hints
}

// Labels returns n distinct labels of equal length, using the shortest
// length that fits.
func Labels(n int, chars string) []string {
	k := len(chars)
	if n == 0 || k == 0 {
		return nil
	}

	length, capacity := 1, k
	for capacity < n && k > 1 {
		length++
		capacity *= k
	}

	labels := make([]string, n)
	buf := make([]byte, length)
	for i := range n {
		v := i
		for p := length - 1; p >= 0; p-- {
			buf[p] = chars[v%k]
			v /= k
		}
		labels[i] = string(buf)
	}
	return labels
}

// Screens places one centered hint on each screen.
func Screens(sizes [][2]int, chars string) []platform.Hint {
	const box = 50

	hints := make([]platform.Hint, 0, len(sizes))
	for i, s := range sizes {
		if i >= len(chars) {
			break
		}
		hints = append(hints, platform.Hint{
			X:     s[0]/2 - box/2,
			Y:     s[1]/2 - box/2,
			W:     box,
			H:     box,
			Label: chars[i : i+1],
		})
	}
	return hints
}
