package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "/api", config.Server.BasePath)
	assert.Equal(t, 10*time.Second, config.Server.ReadHeaderTimeout)
	assert.Equal(t, "*", config.CORS.AllowOrigin)
	assert.Equal(t, "Content-Type", config.CORS.AllowHeaders)
	assert.Equal(t, "GET, POST, OPTIONS", config.CORS.AllowMethods)
	assert.Equal(t, DefaultBrowserUserAgent, config.Extractor.UserAgent)
	assert.Equal(t, 32*1024, config.Stream.WindowSize)
	assert.Equal(t, 2*time.Second, config.Client.PollInterval)
	assert.Equal(t, 5*time.Second, config.Client.StatusInterval)
	assert.Equal(t, time.Second, config.Client.PreviewDebounce)
	assert.Equal(t, 500*time.Millisecond, config.Client.SearchDebounce)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Empty(t, config.Logging.LogsDir)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "~/Downloads", s.DownloadPath)
	assert.Equal(t, "best", s.DefaultQuality)
	assert.Equal(t, 3, s.ConcurrentDownloads)
	assert.Equal(t, ThemeLight, s.ThemeMode)
	assert.True(t, s.EnableAnimations)
	assert.Equal(t, 3, s.RetryCount)
	assert.Equal(t, 90, s.HistoryRetention)
}
