package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
  base_path: /gateway
  read_header_timeout: 5s
stream:
  window_size: 4096
client:
  poll_interval: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "/gateway", config.Server.BasePath)
	assert.Equal(t, 5*time.Second, config.Server.ReadHeaderTimeout)
	assert.Equal(t, 4096, config.Stream.WindowSize)
	assert.Equal(t, 3*time.Second, config.Client.PollInterval)
	// untouched keys keep their defaults
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 500*time.Millisecond, config.Client.SearchDebounce)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0644))

	t.Setenv("YTGW_SERVER_PORT", "9191")
	t.Setenv("YTGW_CORS_ALLOW_ORIGIN", "https://example.com")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, config.Server.Port)
	assert.Equal(t, "https://example.com", config.CORS.AllowOrigin)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stream:\n  window_size: 0\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "settings.db"), ExpandPath("~/settings.db"))
	assert.Equal(t, home+"/x/settings.db", ExpandPath("$HOME/x/settings.db"))
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}
