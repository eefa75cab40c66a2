// Package paths resolves where tabdeck keeps its config, state and runtime files.
//
// Layout (XDG-style):
//
//	Config:  ~/.config/tabdeck/config.yaml   (override: TABDECK_CONFIG_DIR)
//	State:   ~/.local/state/tabdeck/         (override: TABDECK_STATE_DIR)
//	Runtime: /tmp/tabdeck-<session>.{sock,pid} (override: TABDECK_RUNTIME_DIR)
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type cachedDir struct {
	once  sync.Once
	value string
}

var (
	configDir  cachedDir
	stateDir   cachedDir
	runtimeDir cachedDir
)

// resolve returns env when set, otherwise home joined with rel.
func (c *cachedDir) resolve(env string, rel ...string) string {
	c.once.Do(func() {
		if v := os.Getenv(env); v != "" {
			c.value = v
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			c.value = "."
			return
		}
		c.value = filepath.Join(append([]string{home}, rel...)...)
	})
	return c.value
}

// ConfigDir resolves the config directory.
func ConfigDir() string {
	return configDir.resolve("TABDECK_CONFIG_DIR", ".config", "tabdeck")
}

// StateDir resolves the state directory (logs).
func StateDir() string {
	return stateDir.resolve("TABDECK_STATE_DIR", ".local", "state", "tabdeck")
}

// RuntimeDir holds daemon sockets and pidfiles.
func RuntimeDir() string {
	runtimeDir.once.Do(func() {
		if v := os.Getenv("TABDECK_RUNTIME_DIR"); v != "" {
			runtimeDir.value = v
			return
		}
		runtimeDir.value = os.TempDir()
	})
	return runtimeDir.value
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SocketPath returns the daemon socket for a session.
func SocketPath(session string) string {
	return filepath.Join(RuntimeDir(), fmt.Sprintf("tabdeck-%s.sock", sessionName(session)))
}

// PidPath returns the daemon pidfile for a session.
func PidPath(session string) string {
	return filepath.Join(RuntimeDir(), fmt.Sprintf("tabdeck-%s.pid", sessionName(session)))
}

func sessionName(session string) string {
	if session == "" {
		return "default"
	}
	return session
}

// EnsureStateDir creates the state directory if it doesn't exist and returns its path.
func EnsureStateDir() (string, error) {
	dir := StateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create state dir %s: %w", dir, err)
	}
	return dir, nil
}

// EnsureConfigDir creates the config directory if it doesn't exist and returns its path.
func EnsureConfigDir() (string, error) {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir %s: %w", dir, err)
	}
	return dir, nil
}

// ResetForTest clears cached values so tests can re-run resolution logic.
// Only use in tests.
func ResetForTest() {
	configDir = cachedDir{}
	stateDir = cachedDir{}
	runtimeDir = cachedDir{}
}
