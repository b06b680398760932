// Package motion integrates kinetic pointer movement.
//
// Velocities are kept in pixels per millisecond and accelerations in
// pixels per square millisecond; the configuration is expressed per second
// and converted once in Configure.
package motion

import (
	"time"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform"
)

// maxOpnum bounds the numeric prefix.
const maxOpnum = 9999

// Host is the part of the platform the controller drives.
type Host interface {
	Position() (platform.Screen, int, int)
	Move(scr platform.Screen, x, y int)
	Size(scr platform.Screen) (w, h int)
	Now() time.Duration
}

// Bindings matches key events against options.
type Bindings interface {
	Match(ev key.Event, opt config.Option) int
}

// Keys names the four direction bindings a loop steers with.
type Keys struct {
	Up, Down, Left, Right config.Option
}

// NormalKeys are the normal mode direction bindings.
var NormalKeys = Keys{Up: config.Up, Down: config.Down, Left: config.Left, Right: config.Right}

// GridKeys are the grid mode direction bindings.
var GridKeys = Keys{Up: config.GridUp, Down: config.GridDown, Left: config.GridLeft, Right: config.GridRight}

// Config holds the motion settings in configuration units.
type Config struct {
	Speed                   int // px/s
	MaxSpeed                int // px/s
	DeceleratorSpeed        int // px/s
	Acceleration            int // px/s^2
	AcceleratorAcceleration int // px/s^2
	CursorSize              int // px at 1080 screen lines
	JumpIncrement           int // px per prefix unit
}

// ConfigFrom reads the motion settings from a registry.
func ConfigFrom(r *config.Registry) Config {
	return Config{
		Speed:                   r.Int(config.Speed),
		MaxSpeed:                r.Int(config.MaxSpeed),
		DeceleratorSpeed:        r.Int(config.DeceleratorSpeed),
		Acceleration:            r.Int(config.Acceleration),
		AcceleratorAcceleration: r.Int(config.AcceleratorAcceleration),
		CursorSize:              r.Int(config.CursorSize),
		JumpIncrement:           r.Int(config.JumpIncrement),
	}
}

// Controller moves the pointer while direction keys are held.
type Controller struct {
	host Host
	km   key.Keymap
	cfg  Config

	v0, vf, vd float64
	a0, a1     float64

	v, a   float64
	cx, cy float64

	scr    platform.Screen
	sw, sh int

	left, right, up, down bool

	resting  bool
	slow     bool
	opnum    int
	lastTick time.Duration
}

// New creates a controller. km is used to recognize digit keys.
func New(host Host, km key.Keymap, cfg Config) *Controller {
	c := &Controller{host: host, km: km, resting: true}
	c.Configure(cfg)
	c.a = c.a0
	c.v = c.v0
	c.lastTick = host.Now()
	return c
}

// Configure replaces the settings.
func (c *Controller) Configure(cfg Config) {
	c.cfg = cfg
	c.v0 = float64(cfg.Speed) / 1000
	c.vf = float64(cfg.MaxSpeed) / 1000
	c.vd = float64(cfg.DeceleratorSpeed) / 1000
	c.a0 = float64(cfg.Acceleration) / 1e6
	c.a1 = float64(cfg.AcceleratorAcceleration) / 1e6
}

// Fast switches to the accelerated gear.
func (c *Controller) Fast() {
	c.a = c.a1
}

// Slow drops to the decelerated speed with no acceleration.
func (c *Controller) Slow() {
	c.v = c.vd
	c.a = 0
	c.slow = true
}

// Normal restores the base gear.
func (c *Controller) Normal() {
	c.v = c.v0
	c.a = c.a0
	c.slow = false
}

// Reset clears held directions and the numeric prefix, restores the base
// gear, and picks up the current pointer position.
func (c *Controller) Reset() {
	c.opnum = 0
	c.left, c.right, c.up, c.down = false, false, false, false
	c.a = c.a0
	c.v = c.v0
	c.slow = false
	c.resting = true
	c.sync()
	c.lastTick = c.host.Now()
	c.Tick()
}

// Opnum returns the pending numeric prefix.
func (c *Controller) Opnum() int {
	return c.opnum
}

// Moving reports whether any direction is held.
func (c *Controller) Moving() bool {
	return c.left || c.right || c.up || c.down
}

// Velocity returns the current speed in px/ms.
func (c *Controller) Velocity() float64 {
	return c.v
}

func (c *Controller) sync() {
	var x, y int
	c.scr, x, y = c.host.Position()
	c.sw, c.sh = c.host.Size(c.scr)
	c.cx, c.cy = float64(x), float64(y)
}

func (c *Controller) direction() (dx, dy int) {
	return b2i(c.right) - b2i(c.left), b2i(c.down) - b2i(c.up)
}

// Tick advances the integration by the time since the previous tick.
func (c *Controller) Tick() {
	now := c.host.Now()
	elapsed := float64(now-c.lastTick) / float64(time.Millisecond)
	c.lastTick = now
	c.step(elapsed)
}

func (c *Controller) step(t float64) {
	dx, dy := c.direction()
	if (dx == 0 && dy == 0) || c.opnum != 0 {
		c.resting = true
		return
	}
	if c.resting {
		c.sync()
		if !c.slow {
			c.v = c.v0
		}
		c.resting = false
	}

	c.cx += c.v * t * float64(dx)
	c.cy += c.v * t * float64(dy)

	c.v += c.a * t
	if c.v > c.vf {
		c.v = c.vf
	}

	c.cx, c.cy = c.clamp(c.cx, c.cy)
	c.host.Move(c.scr, int(c.cx), int(c.cy))
}

func (c *Controller) clamp(x, y float64) (float64, float64) {
	cursor := float64(c.cfg.CursorSize * c.sh / 1080)
	minX, maxX := 1.0, float64(c.sw)-cursor
	minY, maxY := cursor/2, float64(c.sh)-cursor/2

	x = min(max(x, minX), maxX)
	y = min(max(y, minY), maxY)
	return x, y
}

// ProcessKey feeds one loop iteration to the controller. ok is false when
// the poll timed out, which still advances the integration. It reports
// whether ev was consumed.
//
// Unmodified digits build the numeric prefix. While a prefix is pending,
// direction keys do not move continuously; releasing one jumps
// JumpIncrement*prefix pixels in the held direction instead. A lone 0 is
// left for other bindings.
func (c *Controller) ProcessKey(ev key.Event, ok bool, b Bindings, keys Keys) bool {
	if !ok {
		c.Tick()
		return false
	}

	if n := c.digit(ev); n >= 0 {
		if ev.Pressed {
			c.opnum = min(c.opnum*10+n, maxOpnum)
			if c.opnum == 0 {
				return false
			}
		}
		return true
	}

	var flag *bool
	switch {
	case b.Match(ev, keys.Left) > 0:
		flag = &c.left
	case b.Match(ev, keys.Right) > 0:
		flag = &c.right
	case b.Match(ev, keys.Up) > 0:
		flag = &c.up
	case b.Match(ev, keys.Down) > 0:
		flag = &c.down
	default:
		return false
	}

	if !ev.Pressed && c.opnum > 0 {
		c.jump()
		return true
	}

	*flag = ev.Pressed
	c.Tick()
	return true
}

func (c *Controller) jump() {
	dx, dy := c.direction()
	dist := c.cfg.JumpIncrement * c.opnum

	c.sync()
	x, y := c.clamp(c.cx+float64(dx*dist), c.cy+float64(dy*dist))
	c.cx, c.cy = x, y
	c.host.Move(c.scr, int(x), int(y))

	c.opnum = 0
	c.left, c.right, c.up, c.down = false, false, false, false
	c.resting = true
}

func (c *Controller) digit(ev key.Event) int {
	if !ev.Mods.IsEmpty() {
		return -1
	}
	name, ok := c.km.LookupName(ev.Code, false)
	if !ok || len(name) != 1 || name[0] < '0' || name[0] > '9' {
		return -1
	}
	return int(name[0] - '0')
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
