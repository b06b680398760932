package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keywarp/internal/config/loader"
	"github.com/dshills/keywarp/internal/input/key"
)

func newTestRegistry(t *testing.T) (*Registry, *key.TableKeymap) {
	t.Helper()
	km := key.USKeymap()
	r, err := New(km, zerolog.Nop())
	require.NoError(t, err)
	return r, km
}

func press(t *testing.T, km key.Keymap, spec string) key.Event {
	t.Helper()
	b, err := key.ParseBinding(km, spec)
	require.NoError(t, err)
	return key.Press(b.Code, b.Mods)
}

func TestDefaultsAreValid(t *testing.T) {
	r, _ := newTestRegistry(t)
	require.NoError(t, r.Validate())

	assert.Equal(t, 2, r.Int(GridNR))
	assert.Equal(t, 15, r.Int(JumpIncrement))
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", r.String(HintChars))
	assert.Len(t, r.Bindings(Buttons), 3)
	assert.Equal(t, "A-M-X", r.Describe(Hint2ActivationKey))
}

func TestDefinitionsAreUnique(t *testing.T) {
	seen := map[Option]bool{}
	for _, d := range Definitions() {
		assert.False(t, seen[d.Name], "duplicate option %s", d.Name)
		seen[d.Name] = true
		assert.NotEmpty(t, d.Description, d.Name)
	}
}

func TestAdd(t *testing.T) {
	r, _ := newTestRegistry(t)

	ok, err := r.Add("speed", "300")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 300, r.Int(Speed))

	ok, err = r.Add("no_such_option", "1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.Add("speed", "fast")
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Equal(t, 300, r.Int(Speed), "failed add must not change the value")

	_, err = r.Add("exit", "Q-x")
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.True(t, errors.Is(err, key.ErrInvalidModifier))

	_, err = r.Add("buttons", "m nosuchkey")
	assert.True(t, errors.Is(err, key.ErrUnknownKey))
}

func TestMatchKeyRequiresExactModifiers(t *testing.T) {
	r, km := newTestRegistry(t)

	assert.Equal(t, 1, r.Match(press(t, km, "esc"), Exit))
	assert.Equal(t, 0, r.Match(press(t, km, "C-esc"), Exit))
	assert.Equal(t, 1, r.Match(press(t, km, "X"), Hint2))
	assert.Equal(t, 0, r.Match(press(t, km, "x"), Hint2))
}

func TestMatchButtonAcceptsModifierMismatch(t *testing.T) {
	r, km := newTestRegistry(t)

	assert.Equal(t, 2, r.Match(press(t, km, ","), Buttons))
	assert.Equal(t, 2, r.Match(press(t, km, "C-,"), Buttons))
	assert.Equal(t, 3, r.Match(press(t, km, "/"), OneshotButtons))
}

func TestMatchNonBindingOption(t *testing.T) {
	r, km := newTestRegistry(t)
	assert.Equal(t, 0, r.Match(press(t, km, "a"), HintChars))
}

func TestMatchUnbind(t *testing.T) {
	r, km := newTestRegistry(t)

	_, err := r.Add("print", "unbind")
	require.NoError(t, err)
	assert.Equal(t, 0, r.Match(press(t, km, "p"), Print))
	assert.Equal(t, "unbind", r.Describe(Print))

	r.Whitelist(Print)
	assert.Equal(t, 0, r.Match(press(t, km, "p"), Print))
}

func TestWhitelist(t *testing.T) {
	r, km := newTestRegistry(t)

	r.Whitelist(HintExit, HintUndo)
	assert.Equal(t, 1, r.Match(press(t, km, "esc"), HintExit))
	assert.Equal(t, 0, r.Match(press(t, km, "esc"), Exit))

	r.ClearWhitelist()
	assert.Equal(t, 1, r.Match(press(t, km, "esc"), Exit))

	r.Whitelist(Exit)
	r.Whitelist()
	assert.Equal(t, 1, r.Match(press(t, km, "x"), Hint))
}

func TestMatchAny(t *testing.T) {
	r, km := newTestRegistry(t)

	opt, idx := r.MatchAny(press(t, km, "g"), Exit, Grid, Hint)
	assert.Equal(t, Grid, opt)
	assert.Equal(t, 1, idx)

	opt, idx = r.MatchAny(press(t, km, "z"), Exit, Grid)
	assert.Equal(t, Option(""), opt)
	assert.Zero(t, idx)
}

func TestMatchIndexedList(t *testing.T) {
	r, km := newTestRegistry(t)

	for i, spec := range []string{"u", "i", "j", "k"} {
		assert.Equal(t, i+1, r.Match(press(t, km, spec), GridKeys), spec)
	}
}

func TestLoad(t *testing.T) {
	r, _ := newTestRegistry(t)

	err := r.Load([]loader.Pair{
		{Key: "grid_nr", Value: "3"},
		{Key: "bogus", Value: "1"},
		{Key: "hint_chars", Value: "asdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Int(GridNR))
	assert.Equal(t, "asdf", r.String(HintChars))

	// A later load starts again from the defaults.
	require.NoError(t, r.Load(nil))
	assert.Equal(t, 2, r.Int(GridNR))
}

func TestLoadFailureKeepsPreviousValues(t *testing.T) {
	r, _ := newTestRegistry(t)
	require.NoError(t, r.Load([]loader.Pair{{Key: "speed", Value: "400"}}))

	err := r.Load([]loader.Pair{
		{Key: "speed", Value: "500"},
		{Key: "max_speed", Value: "lots", Line: 7},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Contains(t, err.Error(), "line 7")
	assert.Equal(t, 400, r.Int(Speed))
}

func TestLoadRejectsDegenerateConfig(t *testing.T) {
	tests := []struct {
		name  string
		pairs []loader.Pair
	}{
		{"zero rows", []loader.Pair{{Key: "grid_nr", Value: "0"}}},
		{"zero columns", []loader.Pair{{Key: "grid_nc", Value: "-1"}}},
		{"empty hint chars", []loader.Pair{{Key: "hint_chars", Value: ""}}},
		{"duplicate hint chars", []loader.Pair{{Key: "hint_chars", Value: "abca"}}},
		{"empty screen chars", []loader.Pair{{Key: "screen_chars", Value: ""}}},
		{"hint size too large", []loader.Pair{{Key: "hint_size", Value: "1001"}}},
		{"sift grid too large", []loader.Pair{{Key: "hint2_grid_size", Value: "6"}}},
		{"sift grid zero", []loader.Pair{{Key: "hint2_grid_size", Value: "0"}}},
		{"bad indicator", []loader.Pair{{Key: "indicator", Value: "middle"}}},
		{"bad blink", []loader.Pair{{Key: "normal_blink_interval", Value: "100 x"}}},
		{"scroll never slows", []loader.Pair{{Key: "scroll_deceleration", Value: "0"}}},
		{"scroll speeds up on release", []loader.Pair{{Key: "scroll_deceleration", Value: "100"}}},
		{"too many blink values", []loader.Pair{{Key: "normal_blink_interval", Value: "1 2 3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegistry(t)
			err := r.Load(tt.pairs)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	lines := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(lines, []byte("# mine\nspeed: 333\nexit: C-c\n"), 0o600))
	tomlPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[grid]\nnr = 4\nnc = 4\n"), 0o600))

	r, km := newTestRegistry(t)
	require.NoError(t, r.LoadFile(lines))
	assert.Equal(t, 333, r.Int(Speed))
	assert.Equal(t, 1, r.Match(press(t, km, "C-c"), Exit))

	require.NoError(t, r.LoadFile(tomlPath))
	assert.Equal(t, 4, r.Int(GridNR))
	assert.Equal(t, 220, r.Int(Speed))

	require.NoError(t, r.LoadFile(filepath.Join(dir, "missing")))
	assert.Equal(t, 2, r.Int(GridNR))
}

func TestBlinkInterval(t *testing.T) {
	r, _ := newTestRegistry(t)

	on, off := r.BlinkInterval()
	assert.Zero(t, on)
	assert.Zero(t, off)

	_, err := r.Add("normal_blink_interval", "500")
	require.NoError(t, err)
	on, off = r.BlinkInterval()
	assert.Equal(t, 500*time.Millisecond, on)
	assert.Equal(t, 500*time.Millisecond, off)

	_, err = r.Add("normal_blink_interval", "300 100")
	require.NoError(t, err)
	on, off = r.BlinkInterval()
	assert.Equal(t, 300*time.Millisecond, on)
	assert.Equal(t, 100*time.Millisecond, off)
}
