// Package config loads streamcheck settings and resolves its file locations.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "streamcheck"

// ExpandPath resolves a leading ~ to the home directory, then $VAR references.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		path = homeDir()
	case strings.HasPrefix(path, "~/"):
		path = filepath.Join(homeDir(), path[2:])
	}
	return os.ExpandEnv(path)
}

// ConfigDir is where config.yaml is looked up: $XDG_CONFIG_HOME/streamcheck
// or ~/.config/streamcheck.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultHistoryPath is the SQLite report history under $XDG_DATA_HOME
// or ~/.local/share.
func DefaultHistoryPath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "history.db")
}

// DefaultLogPath is the TUI log file under $XDG_STATE_HOME or ~/.local/state.
func DefaultLogPath() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), appName+".log")
}

// xdgDir returns $env/streamcheck when env holds an absolute path, else
// ~/fallback/streamcheck. Relative XDG values are ignored.
func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); filepath.IsAbs(dir) {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(homeDir(), fallback, appName)
}

// homeDir falls back to the working directory when $HOME is unset.
func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
