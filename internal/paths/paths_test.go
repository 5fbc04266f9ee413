package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHome points the platform home and config lookups at fixed paths.
func withHome(t *testing.T, home string) {
	t.Helper()
	saved := platformDir
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return filepath.Join(home, "AppData"), nil }
	t.Cleanup(func() { platformDir = saved })
}

func TestDefaultDirs_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	withHome(t, "/home/ada")

	tests := []struct {
		name   string
		env    string
		envVal string
		fn     func() (string, error)
		want   string
	}{
		{"config from XDG_CONFIG_HOME", "XDG_CONFIG_HOME", "/tmp/xdg-config", DefaultConfigDir, "/tmp/xdg-config/entityschema"},
		{"config falls back to ~/.config", "XDG_CONFIG_HOME", "", DefaultConfigDir, "/home/ada/.config/entityschema"},
		{"data from XDG_DATA_HOME", "XDG_DATA_HOME", "/tmp/xdg-data", DefaultDataDir, "/tmp/xdg-data/entityschema"},
		{"data falls back to ~/.local/share", "XDG_DATA_HOME", "", DefaultDataDir, "/home/ada/.local/share/entityschema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.envVal)
			got, err := tt.fn()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultDirs_HomeError(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	saved := platformDir
	platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
	t.Cleanup(func() { platformDir = saved })
	t.Setenv("XDG_CONFIG_HOME", "")

	_, err := DefaultConfigDir()
	assert.Error(t, err)
}

func TestDefaultDirs_NonLinux(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Skip("macOS and Windows only")
	}
	withHome(t, "/home/ada")

	config, err := DefaultConfigDir()
	require.NoError(t, err)
	data, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/ada", "AppData", AppName), config)
	assert.Equal(t, config, data)
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		envVal  string
		wantSub string // substring the result must contain
	}{
		{"flag wins over env", "/explicit/config", "/env/config", "/explicit/config"},
		{"env wins when flag empty", "", "/env/config", "/env/config"},
		{"platform default when both empty", "", "", AppName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{"flag wins over all", "/flag/data", "/config/data", "/env/data", "/flag/data"},
		{"config file wins over env", "", "/config/data", "/env/data", "/config/data"},
		{"env wins when flag and config empty", "", "", "/env/data", "/env/data"},
		{"CWD default when all empty", "", "", "", filepath.Join(cwd, DefaultDataDirName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_RelativeBecomesAbsolute(t *testing.T) {
	t.Run("config flag", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		got, err := ResolveConfigDir("relative/path")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("config env", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "relative/env")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("data config value", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		got, err := ResolveDataDir("", "relative/config")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}
