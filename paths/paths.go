// Package paths provides centralized path resolution for potenad's files.
//
// Two kinds of files are written:
//
//   - Config (XDG_CONFIG_HOME or the platform config dir): config.toml, the
//     persisted session state
//   - State (XDG_STATE_HOME or ~/.local/state): logs/, transient log files
//
// Config dir resolution order:
//  1. An explicit override (SetConfigDirOverride, fed by --config-dir or
//     POTENAD_CONFIG_DIR)
//  2. $XDG_CONFIG_HOME
//  3. os.UserConfigDir()
//
// Failure to resolve a directory is reported as an error wrapping
// ErrNoConfigDir; callers are expected to degrade rather than abort.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// AppName is the directory name used under the config and state dirs.
const AppName = "potenad"

// StateFileName is the name of the persisted session state file.
const StateFileName = "config.toml"

// ErrNoConfigDir is returned when no user configuration directory is available.
var ErrNoConfigDir = errors.New("no user configuration directory")

var (
	mu       sync.Mutex
	resolved *resolvedPaths
	override string
)

type resolvedPaths struct {
	configDir string
	stateDir  string
}

// SetConfigDirOverride forces the config base directory. The app directory is
// not appended: the state file lands at <dir>/config.toml. An empty dir
// clears the override.
func SetConfigDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	override = dir
	resolved = nil
}

// resolve computes the path layout once and caches it.
func resolve() (*resolvedPaths, error) {
	mu.Lock()
	defer mu.Unlock()

	if resolved != nil {
		return resolved, nil
	}

	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}

	resolved = &resolvedPaths{
		configDir: configDir,
		stateDir:  resolveStateDir(configDir),
	}
	return resolved, nil
}

// resolveConfigDir must be called with mu held.
func resolveConfigDir() (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigDir, err)
	}
	if base == "" {
		return "", ErrNoConfigDir
	}
	return filepath.Join(base, AppName), nil
}

// resolveStateDir picks the log/state location. Without a home directory the
// logs go next to the config file.
func resolveStateDir(configDir string) string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return configDir
	}
	return filepath.Join(home, ".local", "state", AppName)
}

// ConfigDir returns the directory holding config.toml.
func ConfigDir() (string, error) {
	r, err := resolve()
	if err != nil {
		return "", err
	}
	return r.configDir, nil
}

// StateDir returns the directory for runtime state and logs.
func StateDir() (string, error) {
	r, err := resolve()
	if err != nil {
		return "", err
	}
	return r.stateDir, nil
}

// StateFilePath returns the full path to config.toml.
func StateFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StateFileName), nil
}

// LogsDir returns the directory for log files.
func LogsDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// Reset clears the cached path resolution and any override. This is intended
// for testing only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resolved = nil
	override = ""
}
