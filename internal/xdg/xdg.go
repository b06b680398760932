// Package xdg resolves keywarp's per-user file locations.
package xdg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const appName = "keywarp"

// ErrNoHome is returned when neither the XDG variable nor HOME is set.
var ErrNoHome = errors.New("xdg: HOME is not set")

// ConfigDir returns $XDG_CONFIG_HOME/keywarp, falling back to
// ~/.config/keywarp.
func ConfigDir() (string, error) {
	return dir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns $XDG_DATA_HOME/keywarp, falling back to
// ~/.local/share/keywarp.
func DataDir() (string, error) {
	return dir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// RuntimeDir returns $XDG_RUNTIME_DIR, falling back to the system temp
// directory. Lock files live here.
func RuntimeDir() string {
	if d := os.Getenv("XDG_RUNTIME_DIR"); d != "" {
		return d
	}
	return os.TempDir()
}

// ConfigFile returns the default config file path.
func ConfigFile() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// HistoryFile returns the default history file path.
func HistoryFile() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "history"), nil
}

// Ensure creates dir with owner-only permissions.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

func dir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home := os.Getenv("HOME")
	if home == "" {
		return "", ErrNoHome
	}
	return filepath.Join(home, fallback, appName), nil
}
