package loader

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	data := []byte(`
# comment
speed: 300
hint_chars:   abc  
not a pair
buttons: m , .
cursor_color: #FF4500
url: a:b
`)
	pairs, err := Parse(FormatLines, "test", data)
	require.NoError(t, err)

	want := []Pair{
		{Key: "speed", Value: "300", Line: 3},
		{Key: "hint_chars", Value: "abc", Line: 4},
		{Key: "buttons", Value: "m , .", Line: 6},
		{Key: "cursor_color", Value: "#FF4500", Line: 7},
		{Key: "url", Value: "a:b", Line: 8},
	}
	assert.Equal(t, want, pairs)
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
speed = 300
hint_chars = "abc"
normal_system_cursor = true

[grid]
nr = 3
keys = ["u", "i", "j", "k"]
`)
	pairs, err := Parse(FormatTOML, "config.toml", data)
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{Key: "grid_keys", Value: "u i j k"},
		{Key: "grid_nr", Value: "3"},
		{Key: "hint_chars", Value: "abc"},
		{Key: "normal_system_cursor", Value: "1"},
		{Key: "speed", Value: "300"},
	}, pairs)
}

func TestParseTOMLError(t *testing.T) {
	_, err := Parse(FormatTOML, "bad.toml", []byte("speed = = 3"))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bad.toml", perr.Path)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
speed: 300
scroll:
  speed: 250
  deceleration: -3400
oneshot_buttons: [n, "-", /]
`)
	pairs, err := Parse(FormatYAML, "config.yaml", data)
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{Key: "oneshot_buttons", Value: "n - /"},
		{Key: "scroll_deceleration", Value: "-3400"},
		{Key: "scroll_speed", Value: "250"},
		{Key: "speed", Value: "300"},
	}, pairs)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatLines, FormatFor("/home/u/.config/keywarp/config"))
	assert.Equal(t, FormatTOML, FormatFor("config.TOML"))
	assert.Equal(t, FormatYAML, FormatFor("config.yml"))
	assert.Equal(t, FormatYAML, FormatFor("config.yaml"))
}

func TestLoadFS(t *testing.T) {
	fsys := FSAdapter{FS: fstest.MapFS{
		"config":      {Data: []byte("speed: 10\n")},
		"config.toml": {Data: []byte("speed = 20\n")},
	}}

	pairs, err := LoadFS(fsys, "config")
	require.NoError(t, err)
	assert.Equal(t, "10", pairs[0].Value)

	pairs, err = LoadFS(fsys, "config.toml")
	require.NoError(t, err)
	assert.Equal(t, "20", pairs[0].Value)

	_, err = LoadFS(fsys, "missing")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
