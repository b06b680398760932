package motion

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/platform/fake"
)

type harness struct {
	t   *testing.T
	p   *fake.Platform
	reg *config.Registry
	c   *Controller
}

func newHarness(t *testing.T, opts ...fake.Option) *harness {
	t.Helper()
	p := fake.New(opts...)
	reg, err := config.New(p, zerolog.Nop())
	require.NoError(t, err)
	c := New(p, p, ConfigFrom(reg))
	c.Reset()
	return &harness{t: t, p: p, reg: reg, c: c}
}

func (h *harness) event(spec string, pressed bool) key.Event {
	h.t.Helper()
	b, err := key.ParseBinding(h.p, spec)
	require.NoError(h.t, err)
	if pressed {
		return key.Press(b.Code, b.Mods)
	}
	return key.Release(b.Code, key.ModNone)
}

func (h *harness) press(spec string) bool {
	return h.c.ProcessKey(h.event(spec, true), true, h.reg, NormalKeys)
}

func (h *harness) release(spec string) bool {
	return h.c.ProcessKey(h.event(spec, false), true, h.reg, NormalKeys)
}

func (h *harness) position() (int, int) {
	_, x, y := h.p.Position()
	return x, y
}

func TestControllerHeldDirection(t *testing.T) {
	h := newHarness(t, fake.WithPointer(500, 500))

	require.True(t, h.press("l"))
	assert.True(t, h.c.Moving())

	h.p.Advance(100 * time.Millisecond)
	h.c.Tick()

	// 0.22 px/ms for 100ms, then v grows by 0.0007*100.
	x, y := h.position()
	assert.Equal(t, 522, x)
	assert.Equal(t, 500, y)
	assert.InDelta(t, 0.29, h.c.Velocity(), 1e-9)

	require.True(t, h.release("l"))
	assert.False(t, h.c.Moving())

	h.p.Advance(100 * time.Millisecond)
	h.c.Tick()
	x, _ = h.position()
	assert.Equal(t, 522, x)
}

func TestControllerDiagonal(t *testing.T) {
	h := newHarness(t, fake.WithPointer(500, 500))

	h.press("h")
	h.press("k")
	h.p.Advance(100 * time.Millisecond)
	h.c.Tick()

	x, y := h.position()
	assert.Equal(t, 478, x)
	assert.Equal(t, 478, y)
}

func TestControllerVelocityCapped(t *testing.T) {
	h := newHarness(t, fake.WithPointer(10, 500))

	h.press("l")
	for range 100 {
		h.p.Advance(100 * time.Millisecond)
		h.c.Tick()
	}
	assert.InDelta(t, 1.6, h.c.Velocity(), 1e-9)
}

func TestControllerClamp(t *testing.T) {
	h := newHarness(t, fake.WithPointer(1900, 1070))

	h.press("l")
	h.press("j")
	h.p.Advance(time.Second)
	h.c.Tick()

	// cursor_size 7 at 1080 lines.
	x, y := h.position()
	assert.Equal(t, 1913, x)
	assert.Equal(t, 1076, y)

	h.c.Reset()
	h.press("h")
	h.press("k")
	h.p.Advance(10 * time.Second)
	h.c.Tick()

	x, y = h.position()
	assert.Equal(t, 1, x)
	assert.Equal(t, 3, y)
}

func TestControllerSlowAndFast(t *testing.T) {
	h := newHarness(t, fake.WithPointer(500, 500))

	h.c.Slow()
	h.press("l")
	h.p.Advance(100 * time.Millisecond)
	h.c.Tick()

	x, _ := h.position()
	assert.Equal(t, 505, x)
	assert.InDelta(t, 0.05, h.c.Velocity(), 1e-9)

	h.c.Normal()
	assert.InDelta(t, 0.22, h.c.Velocity(), 1e-9)

	h.c.Fast()
	h.p.Advance(100 * time.Millisecond)
	h.c.Tick()
	assert.InDelta(t, 0.22+0.29, h.c.Velocity(), 1e-9)
}

func TestControllerResyncsAfterExternalMove(t *testing.T) {
	h := newHarness(t, fake.WithPointer(500, 500))

	h.p.SetPosition(100, 200)
	h.press("j")
	h.p.Advance(100 * time.Millisecond)
	h.c.Tick()

	x, y := h.position()
	assert.Equal(t, 100, x)
	assert.Equal(t, 222, y)
}

func TestControllerNumericJump(t *testing.T) {
	h := newHarness(t, fake.WithPointer(500, 500))

	assert.True(t, h.press("1"))
	assert.True(t, h.release("1"))
	assert.True(t, h.press("2"))
	assert.True(t, h.release("2"))
	assert.Equal(t, 12, h.c.Opnum())

	moves := len(h.p.Moves)
	require.True(t, h.press("h"))
	h.p.Advance(500 * time.Millisecond)
	h.c.Tick()
	assert.Len(t, h.p.Moves, moves, "prefix suppresses continuous motion")

	require.True(t, h.release("h"))
	x, y := h.position()
	assert.Equal(t, 500-12*15, x)
	assert.Equal(t, 500, y)
	assert.Zero(t, h.c.Opnum())
	assert.False(t, h.c.Moving())
}

func TestControllerNumericJumpClamped(t *testing.T) {
	h := newHarness(t, fake.WithPointer(500, 500))

	h.press("9")
	h.press("9")
	h.press("k")
	h.release("k")

	_, y := h.position()
	assert.Equal(t, 3, y)
}

func TestControllerLeadingZeroFallsThrough(t *testing.T) {
	h := newHarness(t)

	assert.False(t, h.press("0"))
	assert.True(t, h.release("0"))
	assert.Zero(t, h.c.Opnum())

	h.press("3")
	assert.True(t, h.press("0"))
	assert.Equal(t, 30, h.c.Opnum())
}

func TestControllerModifiedDigitIsNotPrefix(t *testing.T) {
	h := newHarness(t)

	assert.False(t, h.press("$"))
	assert.Zero(t, h.c.Opnum())
}

func TestControllerIgnoresOtherKeys(t *testing.T) {
	h := newHarness(t)

	assert.False(t, h.press("x"))
	assert.False(t, h.c.ProcessKey(key.Event{}, false, h.reg, NormalKeys))
}

func TestControllerGridKeys(t *testing.T) {
	h := newHarness(t, fake.WithPointer(500, 500))

	ev := h.event("w", true)
	require.True(t, h.c.ProcessKey(ev, true, h.reg, GridKeys))
	h.p.Advance(100 * time.Millisecond)
	h.c.Tick()

	_, y := h.position()
	assert.Equal(t, 478, y)
}

func TestControllerReset(t *testing.T) {
	h := newHarness(t, fake.WithPointer(500, 500))

	h.press("4")
	h.press("l")
	h.c.Slow()
	h.c.Reset()

	assert.Zero(t, h.c.Opnum())
	assert.False(t, h.c.Moving())
	assert.InDelta(t, 0.22, h.c.Velocity(), 1e-9)
}

func TestControllerStepFromRest(t *testing.T) {
	h := newHarness(t, fake.WithPointer(500, 500))
	c := h.c

	c.right = true
	c.resting = false
	c.sync()
	c.v = 0
	c.a = c.a0

	for _, step := range []float64{10, 1000, 5000} {
		c.v = 0
		before := c.cx
		c.step(step)
		assert.InDelta(t, min(c.vf, c.a0*step), c.v, 1e-9)
		assert.InDelta(t, before, c.cx, 1e-9, "velocity applies after the move")
	}
}
