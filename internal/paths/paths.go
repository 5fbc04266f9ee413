// Package paths resolves where entityschema keeps its configuration file and
// its revision data.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user platform directories.
const AppName = "entityschema"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else selects one.
const DefaultDataDirName = ".entityschema-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ENTITYSCHEMA_CONFIG_DIR"
	EnvDataDir   = "ENTITYSCHEMA_DATA_DIR"
)

// platformDir holds platform lookups so tests can replace them.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $env/entityschema, or ~/fallback.../entityschema when env
// is unset.
func xdgDir(env string, fallback ...string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// userDir is the macOS and Windows location for both config and data:
// ~/Library/Application Support/entityschema or %APPDATA%/entityschema.
func userDir() (string, error) {
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/entityschema (fallback ~/.config/entityschema)
// macOS:   ~/Library/Application Support/entityschema
// Windows: %APPDATA%/entityschema
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userDir()
}

// DefaultDataDir returns the platform data directory.
//
// Linux:   $XDG_DATA_HOME/entityschema (fallback ~/.local/share/entityschema)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", ".local", "share")
	}
	return userDir()
}

// ResolveConfigDir applies the precedence flag > ENTITYSCHEMA_CONFIG_DIR >
// DefaultConfigDir. Overrides are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies the precedence flag > config file data_dir >
// ENTITYSCHEMA_DATA_DIR > $(CWD)/.entityschema-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
