package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/keywarp/internal/platform"
	"github.com/dshills/keywarp/internal/platform/fake"
)

var defaults = Config{Speed: 300, MaxSpeed: 9000, Acceleration: 1600, Deceleration: -3400}

func newController() (*Controller, *fake.Platform) {
	p := fake.New()
	c := New(p, defaults)
	c.Tick()
	return c, p
}

func TestControllerAccelerate(t *testing.T) {
	c, p := newController()

	c.Accelerate(platform.ScrollDown)
	p.Advance(time.Second)
	c.Tick()

	// d = 6*1 + 0.5*32*1
	assert.Len(t, p.Scrolls, 22)
	assert.Equal(t, platform.ScrollDown, p.Scrolls[0])

	p.Advance(time.Second)
	c.Tick()
	assert.Len(t, p.Scrolls, 76)
	assert.True(t, c.Coasting())
}

func TestControllerDecelerateStops(t *testing.T) {
	c, p := newController()

	c.Accelerate(platform.ScrollUp)
	p.Advance(time.Second)
	c.Tick()
	c.Decelerate()

	p.Advance(time.Second)
	c.Tick()
	assert.False(t, c.Coasting())

	n := len(p.Scrolls)
	p.Advance(time.Second)
	c.Tick()
	assert.Len(t, p.Scrolls, n)
}

func TestControllerTerminalVelocity(t *testing.T) {
	c, p := newController()

	c.Accelerate(platform.ScrollDown)
	p.Advance(10 * time.Second)
	c.Tick()
	assert.InDelta(t, 180, c.v, 1e-9)

	n := len(p.Scrolls)
	p.Advance(time.Second)
	c.Tick()
	assert.Len(t, p.Scrolls, n+180)
}

func TestControllerSmallSteps(t *testing.T) {
	c, p := newController()

	c.Accelerate(platform.ScrollDown)
	for range 100 {
		p.Advance(10 * time.Millisecond)
		c.Tick()
	}
	// Emission never runs ahead of the integrated distance.
	assert.LessOrEqual(t, len(p.Scrolls), 22)
	assert.GreaterOrEqual(t, len(p.Scrolls), 21)
}

func TestControllerEmitsOnBoundaryCrossing(t *testing.T) {
	p := fake.New()
	c := New(p, Config{Speed: 300, MaxSpeed: 9000, Deceleration: -3400})
	c.Tick()

	c.Accelerate(platform.ScrollDown)
	p.Advance(100 * time.Millisecond)
	c.Tick()
	assert.Empty(t, p.Scrolls)

	// 0.6 + 0.6 units crosses 1 exactly once.
	p.Advance(100 * time.Millisecond)
	c.Tick()
	assert.Len(t, p.Scrolls, 1)
}

func TestControllerResetSkipsElapsedTime(t *testing.T) {
	c, p := newController()

	c.Accelerate(platform.ScrollDown)
	p.Advance(time.Minute)
	c.Reset()
	assert.False(t, c.Coasting())

	c.Accelerate(platform.ScrollDown)
	p.Advance(time.Second)
	c.Tick()
	assert.Len(t, p.Scrolls, 22)
}

func TestControllerAccelerateKeepsVelocity(t *testing.T) {
	c, p := newController()

	c.Accelerate(platform.ScrollDown)
	p.Advance(time.Second)
	c.Tick()
	c.Decelerate()

	c.Accelerate(platform.ScrollUp)
	assert.InDelta(t, 38, c.v, 1e-9)
	assert.Equal(t, platform.ScrollUp, c.Direction())
}

func TestControllerImpulse(t *testing.T) {
	c, _ := newController()

	c.Accelerate(platform.ScrollDown)
	c.ImpartImpulse()
	assert.InDelta(t, 46, c.v, 1e-9)
}

func TestControllerStop(t *testing.T) {
	c, p := newController()

	c.Accelerate(platform.ScrollDown)
	c.Stop()
	assert.False(t, c.Coasting())

	p.Advance(time.Second)
	c.Tick()
	assert.Empty(t, p.Scrolls)
}
