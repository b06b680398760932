package xdg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFile(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		home string
		want string
	}{
		{"xdg set", "/x/cfg", "/home/u", "/x/cfg/keywarp/config"},
		{"home fallback", "", "/home/u", "/home/u/.config/keywarp/config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdg)
			t.Setenv("HOME", tt.home)
			got, err := ConfigFile()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHistoryFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/u")
	got, err := HistoryFile()
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.local/share/keywarp/history", got)

	t.Setenv("XDG_DATA_HOME", "/data")
	got, err = HistoryFile()
	require.NoError(t, err)
	assert.Equal(t, "/data/keywarp/history", got)
}

func TestNoHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	_, err := ConfigDir()
	assert.ErrorIs(t, err, ErrNoHome)
}

func TestRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/run/user/1000", RuntimeDir())

	t.Setenv("XDG_RUNTIME_DIR", "")
	assert.Equal(t, os.TempDir(), RuntimeDir())
}

func TestEnsure(t *testing.T) {
	d := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, Ensure(d))
	info, err := os.Stat(d)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}
