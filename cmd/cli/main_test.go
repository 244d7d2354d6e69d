package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

func withServerURL(t *testing.T, serverURL string) {
	t.Helper()
	prev := cfg
	cfg = domain.DefaultConfig()
	cfg.Client.ServerURL = serverURL
	t.Cleanup(func() { cfg = prev })
}

func TestHealthURL(t *testing.T) {
	withServerURL(t, "http://localhost:3000/api?x=1")

	got, err := healthURL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/health", got)
}

func TestIsLocalServer(t *testing.T) {
	tests := []struct {
		url   string
		local bool
	}{
		{"http://localhost:3000/api", true},
		{"http://127.0.0.1:3000/api", true},
		{"http://[::1]:3000/api", true},
		{"https://yt.example.com/api", false},
		{"http://192.168.1.20:3000/api", false},
	}
	for _, tt := range tests {
		withServerURL(t, tt.url)
		assert.Equal(t, tt.local, isLocalServer(), tt.url)
	}
}

func TestValidFilter(t *testing.T) {
	assert.True(t, validFilter("all"))
	assert.True(t, validFilter("week"))
	assert.False(t, validFilter("year"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "日本語日本語日...", truncate("日本語日本語日本語日本語", 10))
}
