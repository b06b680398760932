package history

import (
	"fmt"
	"sync"

	"github.com/dshills/keywarp/internal/platform"
)

// RingSize is the capacity of a Ring.
const RingSize = 16

// Position is a pointer location on a screen.
type Position struct {
	Screen platform.Screen
	X, Y   int
}

// String returns "x y".
func (p Position) String() string {
	return fmt.Sprintf("%d %d", p.X, p.Y)
}

// Ring is a fixed capacity position history with a movable cursor.
//
// head is the next write slot and tail the oldest entry; the ring is
// empty when head == tail and full is false.
type Ring struct {
	mu sync.Mutex

	buf  [RingSize]Position
	head int
	tail int
	cur  int
	full bool
}

// NewRing creates an empty ring.
func NewRing() *Ring {
	return &Ring{}
}

func (r *Ring) emptyLocked() bool {
	return r.head == r.tail && !r.full
}

// Len returns the number of stored positions.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.full {
		return RingSize
	}
	return (r.head - r.tail + RingSize) % RingSize
}

// Current returns the position under the cursor.
func (r *Ring) Current() (Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emptyLocked() {
		return Position{}, false
	}
	return r.buf[r.cur], true
}

// Record adds p after the cursor. Entries ahead of the cursor are
// discarded first. Recording the position already under the cursor does
// nothing.
func (r *Ring) Record(p Position) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.emptyLocked() && r.buf[r.cur] == p {
		return
	}
	r.truncateLocked()
	r.addLocked(p)
}

func (r *Ring) addLocked(p Position) {
	if r.full {
		r.tail = (r.tail + 1) % RingSize
	}
	r.buf[r.head] = p
	r.cur = r.head
	r.head = (r.head + 1) % RingSize
	r.full = r.head == r.tail
}

func (r *Ring) truncateLocked() {
	if r.emptyLocked() {
		return
	}
	r.head = (r.cur + 1) % RingSize
	r.full = r.head == r.tail
}

// Prev moves the cursor one entry back and returns the entry there. At the
// oldest entry the cursor stays put.
func (r *Ring) Prev() (Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emptyLocked() {
		return Position{}, false
	}
	if r.cur != r.tail {
		r.cur = (r.cur - 1 + RingSize) % RingSize
	}
	return r.buf[r.cur], true
}

// Next moves the cursor one entry forward and returns the entry there. At
// the newest entry the cursor stays put.
func (r *Ring) Next() (Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emptyLocked() {
		return Position{}, false
	}
	if next := (r.cur + 1) % RingSize; next != r.head {
		r.cur = next
	}
	return r.buf[r.cur], true
}
