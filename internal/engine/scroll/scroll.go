// Package scroll emits discrete scroll units from a kinetic model.
package scroll

import (
	"time"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/platform"
)

// factor scales configured speeds to emitted scroll units.
const factor = 50

// flingVelocity is added by each impulse, in configured units/second.
const flingVelocity = 2000

// Host receives scroll units.
type Host interface {
	Scroll(dir platform.ScrollDirection)
	Now() time.Duration
}

// Config holds the scroll settings in configuration units.
type Config struct {
	Speed        int
	MaxSpeed     int
	Acceleration int
	Deceleration int
}

// ConfigFrom reads the scroll settings from a registry.
func ConfigFrom(r *config.Registry) Config {
	return Config{
		Speed:        r.Int(config.ScrollSpeed),
		MaxSpeed:     r.Int(config.ScrollMaxSpeed),
		Acceleration: r.Int(config.ScrollAcceleration),
		Deceleration: r.Int(config.ScrollDeceleration),
	}
}

// Controller tracks the scroll velocity and how many units have been
// emitted.
type Controller struct {
	host Host

	v0, vt      float64
	a0, decel   float64
	fling       float64
	v, a, d     float64
	traveled    int
	dir         platform.ScrollDirection
	lastTick    time.Duration
	initialized bool
}

// New creates an idle controller.
func New(host Host, cfg Config) *Controller {
	c := &Controller{host: host}
	c.Configure(cfg)
	return c
}

// Configure replaces the settings.
func (c *Controller) Configure(cfg Config) {
	c.vt = float64(cfg.MaxSpeed) / factor
	c.v0 = float64(cfg.Speed) / factor
	c.decel = float64(cfg.Deceleration) / factor
	c.a0 = float64(cfg.Acceleration) / factor
	c.fling = flingVelocity / factor
}

// Direction returns the current scroll direction.
func (c *Controller) Direction() platform.ScrollDirection {
	return c.dir
}

// Coasting reports whether the controller still has velocity.
func (c *Controller) Coasting() bool {
	return c.v > 0
}

// Accelerate starts or continues scrolling in dir. A controller at rest
// starts over from the initial speed.
func (c *Controller) Accelerate(dir platform.ScrollDirection) {
	c.dir = dir
	c.a = c.a0
	if c.v == 0 {
		c.d = 0
		c.traveled = 0
		c.v = c.v0
	}
}

// Decelerate lets the current velocity decay.
func (c *Controller) Decelerate() {
	c.a = c.decel
}

// Stop halts scrolling immediately.
func (c *Controller) Stop() {
	c.v = 0
	c.a = 0
	c.d = 0
	c.traveled = 0
}

// Reset stops scrolling and starts timing from now, so the time spent
// outside normal mode is never integrated.
func (c *Controller) Reset() {
	c.Stop()
	c.lastTick = c.host.Now()
	c.initialized = true
}

// ImpartImpulse adds a fixed velocity boost.
func (c *Controller) ImpartImpulse() {
	c.v += c.fling
}

// Tick integrates the time since the previous tick and emits any whole
// units travelled since.
func (c *Controller) Tick() {
	now := c.host.Now()
	if !c.initialized {
		c.lastTick = now
		c.initialized = true
	}
	t := (now - c.lastTick).Seconds()
	c.lastTick = now
	c.step(t)
}

func (c *Controller) step(t float64) {
	c.d += c.v*t + 0.5*c.a*t*t
	c.v += c.a * t

	if c.v < 0 {
		c.v = 0
		c.d = 0
		c.traveled = 0
	} else if c.v >= c.vt {
		c.v = c.vt
		c.a = 0
	}

	for range max(int(c.d)-c.traveled, 0) {
		c.host.Scroll(c.dir)
	}
	c.traveled = int(c.d)
}
