package app

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "Hello World"},
		{`a/b\c:d*e?f"g<h>i|j`, "abcdefghij"},
		{"tab\there", "tabhere"},
		{"  spaced   out  ", "spaced out"},
		{"..", ""},
		{"CON", ""},
		{"con.txt", ""},
		{"trailing dots...", "trailing dots"},
		{"日本語のタイトル", "日本語のタイトル"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	assert.Equal(t, "My Video.mp4", BuildFilename("My Video", "mp4"))
	assert.Equal(t, "ACDC - Live.webm", BuildFilename("AC/DC - Live", "webm"))
	assert.Equal(t, "video.mp4", BuildFilename("", "mp4"))
	assert.Equal(t, "video.mp4", BuildFilename("???", ""))
	assert.Equal(t, "song.m4a", BuildFilename("song", "m4a"))
}

func TestBuildFilename_Truncates(t *testing.T) {
	name := BuildFilename(strings.Repeat("a", 400), "mp4")
	assert.Len(t, name, maxFilenameBytes)
	assert.True(t, strings.HasSuffix(name, ".mp4"))

	name = BuildFilename(strings.Repeat("é", 300), "webm")
	assert.LessOrEqual(t, len(name), maxFilenameBytes)
	assert.True(t, strings.HasSuffix(name, ".webm"))
	assert.True(t, utf8.ValidString(name))
}
