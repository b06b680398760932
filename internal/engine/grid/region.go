// Package grid narrows the pointer onto a target by repeatedly splitting a
// region around it.
package grid

// Direction is a side of the region.
type Direction int

const (
	// Up keeps the upper half.
	Up Direction = iota + 1
	// Down keeps the lower half.
	Down
	// Left keeps the left half.
	Left
	// Right keeps the right half.
	Right
)

// Region is a W x H rectangle centered on X, Y.
type Region struct {
	X, Y int
	W, H int
}

// Select narrows r to cell idx of an nr x nc grid, numbered row by row
// from 1, and centers it on that cell. It reports false and leaves r
// unchanged when idx is out of range.
func (r *Region) Select(idx, nr, nc int) bool {
	if idx < 1 || idx > nr*nc {
		return false
	}
	row := (idx - 1) / nc
	col := (idx - 1) % nc

	top := r.Y - r.H/2 + (r.H/nr)*row
	left := r.X - r.W/2 + (r.W/nc)*col

	r.H /= nr
	r.W /= nc
	r.X = left + r.W/2
	r.Y = top + r.H/2
	return true
}

// Cut keeps the half of r on side d.
func (r *Region) Cut(d Direction) {
	switch d {
	case Up:
		r.Y -= r.H / 4
		r.H /= 2
	case Down:
		r.Y += r.H / 4
		r.H /= 2
	case Left:
		r.X -= r.W / 4
		r.W /= 2
	case Right:
		r.X += r.W / 4
		r.W /= 2
	}
}
