package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerDefaults(t *testing.T) {
	var cfg Server
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.SeedData)
}

func TestServerOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_DATA", "false")
	var cfg Server
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.SeedData)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "soon")
	var cfg Client
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadClientRejectsNonPositiveInterval(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REFRESH_INTERVAL", "0s")
	_, err := LoadClient()
	require.Error(t, err)
}

func TestLoadDotenvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DASHBOARD_TEST_A=file\nDASHBOARD_TEST_B=file\n"), 0o600))
	t.Setenv("DASHBOARD_TEST_A", "process")
	t.Setenv("DASHBOARD_TEST_B", "")
	os.Unsetenv("DASHBOARD_TEST_B")

	require.NoError(t, LoadDotenv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "process", os.Getenv("DASHBOARD_TEST_A"))
	assert.Equal(t, "file", os.Getenv("DASHBOARD_TEST_B"))
	os.Unsetenv("DASHBOARD_TEST_B")
}
