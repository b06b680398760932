// Package history remembers pointer positions.
//
// There are two independent stores:
//
// # Ring
//
// Ring is the in-session jump list that hist_back and hist_forward walk.
// It holds a fixed number of positions with a cursor, like a browser's
// back/forward stack: recording a new position while the cursor is behind
// the newest entry discards everything ahead of it.
//
//	r := history.NewRing()
//	r.Record(history.Position{X: 10, Y: 20})
//	r.Record(history.Position{X: 30, Y: 40})
//	p, _ := r.Prev() // {10 20}
//
// # File
//
// File persists clicked positions across sessions for history hint mode.
// The on-disk format is a little-endian int32 count followed by that many
// int32 x/y pairs. The file is rewritten on every update and holds at most
// MaxFileEntries positions. Positions close to an existing entry replace
// it rather than adding a near duplicate.
package history
