// ABOUTME: Tests for configuration loading and precedence
// ABOUTME: Uses a temp XDG home so no real config is touched
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	useTempConfigHome(t)
	t.Setenv("TRIPDESK_API_URL", "")
	t.Setenv("TRIPDESK_API_TOKEN", "")
	t.Setenv("TRIPDESK_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := useTempConfigHome(t)
	t.Setenv("TRIPDESK_API_URL", "")
	t.Setenv("TRIPDESK_API_TOKEN", "")
	t.Setenv("TRIPDESK_TIMEOUT", "")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SetBaseURL("https://travel.example.com/api"))
	require.NoError(t, cfg.SetToken("secret"))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://travel.example.com/api", loaded.BaseURL)
	assert.Equal(t, "secret", loaded.Token)

	// The token lives in this file; it must not be world-readable.
	info, err := os.Stat(filepath.Join(dir, AppName, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	useTempConfigHome(t)

	cfg := DefaultConfig()
	require.NoError(t, cfg.SetBaseURL("https://file.example.com"))

	t.Setenv("TRIPDESK_API_URL", "https://env.example.com")
	t.Setenv("TRIPDESK_TIMEOUT", "5")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", loaded.BaseURL)
	assert.Equal(t, 5, loaded.TimeoutSeconds)
}

func TestTimeout(t *testing.T) {
	cfg := &Config{TimeoutSeconds: 10}
	assert.Equal(t, "10s", cfg.Timeout().String())
}
