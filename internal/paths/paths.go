// Package paths resolves the configuration directory and the view state file
// location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-user directory name under the platform roots.
const appDirName = "tabview"

// StateFileName is the view state file inside the state directory.
const StateFileName = "view.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TABVIEW_CONFIG_DIR"
	EnvStateDir  = "TABVIEW_STATE_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/tabview (fallback ~/.config/tabview)
// macOS:   ~/Library/Application Support/tabview
// Windows: %APPDATA%/tabview
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// DefaultStateDir returns the platform-specific default state directory.
//
// Linux:   $XDG_STATE_HOME/tabview (fallback ~/.local/state/tabview)
// macOS:   ~/Library/Application Support/tabview
// Windows: %APPDATA%/tabview
func DefaultStateDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "state", appDirName), nil
	default:
		// macOS and Windows: same as config dir.
		return DefaultConfigDir()
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > TABVIEW_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveStateFile returns the view state file following the precedence
// chain: flag > config.yaml state_file > TABVIEW_STATE_DIR env >
// DefaultStateDir(). Directory sources get StateFileName appended.
func ResolveStateFile(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvStateDir); env != "" {
		dir, err := filepath.Abs(env)
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, StateFileName), nil
	}
	dir, err := DefaultStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StateFileName), nil
}
