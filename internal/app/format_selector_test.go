package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/ytdl-gateway/internal/domain"
)

func testFormats() []domain.Format {
	return []domain.Format{
		{Itag: 18, Quality: "medium", QualityLabel: "360p", Container: "mp4", HasVideo: true, HasAudio: true, Height: 360, FPS: 30, AudioQuality: "AUDIO_QUALITY_LOW"},
		{Itag: 22, Quality: "hd720", QualityLabel: "720p", Container: "mp4", HasVideo: true, HasAudio: true, Height: 720, FPS: 30, AudioQuality: "AUDIO_QUALITY_MEDIUM"},
		{Itag: 137, Quality: "hd1080", QualityLabel: "1080p", Container: "mp4", HasVideo: true, Height: 1080, FPS: 30},
		{Itag: 140, Quality: "tiny", Container: "mp4", HasAudio: true, AudioQuality: "AUDIO_QUALITY_MEDIUM", AudioSampleRate: 44100, Bitrate: 130000},
		{Itag: 251, Quality: "tiny", Container: "webm", HasAudio: true, AudioQuality: "AUDIO_QUALITY_MEDIUM", AudioSampleRate: 48000, Bitrate: 160000},
		{Itag: 249, Quality: "tiny", Container: "webm", HasAudio: true, AudioQuality: "AUDIO_QUALITY_LOW", AudioSampleRate: 48000, Bitrate: 50000},
	}
}

func TestSelectFormat_Highest(t *testing.T) {
	tests := []struct {
		name      string
		quality   string
		container string
		wantItag  int
	}{
		{"best mp4", "best", "mp4", 22},
		{"highest mp4", "highest", "mp4", 22},
		{"empty quality", "", "mp4", 22},
		{"unknown container implies combined", "best", "webm", 22},
		{"best mp3 picks audio only", "best", "mp3", 251},
		{"case insensitive tokens", "BEST", "MP3", 251},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := SelectFormat(testFormats(), tt.quality, tt.container)
			require.NoError(t, err)
			assert.Equal(t, tt.wantItag, f.Itag)
		})
	}
}

func TestSelectFormat_ExplicitQuality(t *testing.T) {
	f, err := SelectFormat(testFormats(), "360p", "mp4")
	require.NoError(t, err)
	assert.Equal(t, 18, f.Itag)

	f, err = SelectFormat(testFormats(), "hd720", "mp4")
	require.NoError(t, err)
	assert.Equal(t, 22, f.Itag)

	f, err = SelectFormat(testFormats(), "18", "mp4")
	require.NoError(t, err)
	assert.Equal(t, 18, f.Itag)

	f, err = SelectFormat(testFormats(), "AUDIO_QUALITY_LOW", "mp3")
	require.NoError(t, err)
	assert.Equal(t, 249, f.Itag)
}

func TestSelectFormat_NoFallback(t *testing.T) {
	// 1080p exists only as a video-only format
	_, err := SelectFormat(testFormats(), "1080p", "mp4")
	assert.ErrorIs(t, err, domain.ErrFormatNotFound)

	_, err = SelectFormat(testFormats(), "480p", "mp4")
	assert.ErrorIs(t, err, domain.ErrFormatNotFound)

	// combined itag is not reachable through the audio family
	_, err = SelectFormat(testFormats(), "22", "mp3")
	assert.ErrorIs(t, err, domain.ErrFormatNotFound)
}

func TestSelectFormat_EmptyFamily(t *testing.T) {
	videoOnly := []domain.Format{
		{Itag: 137, QualityLabel: "1080p", HasVideo: true, Height: 1080},
	}

	_, err := SelectFormat(videoOnly, "best", "mp4")
	assert.ErrorIs(t, err, domain.ErrFormatNotFound)

	_, err = SelectFormat(nil, "best", "mp3")
	assert.ErrorIs(t, err, domain.ErrFormatNotFound)
}

func TestSortByQuality(t *testing.T) {
	formats := []domain.Format{
		{Itag: 1, QualityLabel: "720p", HasVideo: true, HasAudio: true},
		{Itag: 2, QualityLabel: "720p60", HasVideo: true, HasAudio: true, FPS: 60},
		{Itag: 3, QualityLabel: "1080p", HasVideo: true, HasAudio: true},
		{Itag: 4, QualityLabel: "144p", HasVideo: true, HasAudio: true},
	}

	SortByQuality(formats)

	var order []int
	for _, f := range formats {
		order = append(order, f.Itag)
	}
	assert.Equal(t, []int{3, 2, 1, 4}, order)
}

func TestFamilyFor(t *testing.T) {
	assert.Equal(t, domain.KindAudioOnly, FamilyFor("mp3"))
	assert.Equal(t, domain.KindCombined, FamilyFor("mp4"))
	assert.Equal(t, domain.KindCombined, FamilyFor(""))
}
