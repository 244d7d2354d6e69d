package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytdl-gateway/internal/app"
	"github.com/yourusername/ytdl-gateway/internal/domain"
)

func newTestExtractor(t *testing.T) *YouTubeExtractor {
	t.Helper()
	cfg := domain.DefaultConfig().Extractor
	ext, err := NewYouTubeExtractor(&cfg, nil)
	require.NoError(t, err)
	return ext
}

func TestYouTubeExtractor_Validate(t *testing.T) {
	ext := newTestExtractor(t)

	valid := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":     "dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42":    "dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ":       "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                    "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":      "dQw4w9WgXcQ",
		"http://www.youtube.com/embed/dQw4w9WgXcQ":        "dQw4w9WgXcQ",
		"https://www.youtube.com/live/dQw4w9WgXcQ?si=abc": "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"  https://www.youtube.com/watch?v=dQw4w9WgXcQ  ": "dQw4w9WgXcQ",
	}
	for raw, id := range valid {
		ref, err := ext.Validate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, id, ref.VideoID, raw)
	}

	invalid := []string{
		"",
		"not-a-url",
		"dQw4w9WgXcQ",
		"ftp://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://vimeo.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/",
		"https://www.youtube.com/feed/trending",
		"https://www.youtube.com/@SomeChannel",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQextra",
		"https://youtu.be/",
		"https://youtu.be/dQw4w9WgXcQ/more",
		"https://www.youtube.com/shorts/",
	}
	for _, raw := range invalid {
		_, err := ext.Validate(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidReference, raw)
	}
}

func TestNewYouTubeExtractor_InvalidProxy(t *testing.T) {
	cfg := domain.ExtractorConfig{ProxyURL: "://bad"}
	_, err := NewYouTubeExtractor(&cfg, nil)
	assert.Error(t, err)
}

func TestConvertVideo(t *testing.T) {
	src := &youtube.Video{
		ID:          "dQw4w9WgXcQ",
		Title:       "Song",
		Author:      "Artist",
		Views:       1000,
		Duration:    3 * time.Minute,
		PublishDate: time.Date(2009, 10, 25, 0, 0, 0, 0, time.UTC),
		Thumbnails: youtube.Thumbnails{
			{URL: "https://i.ytimg.com/default.jpg", Width: 120, Height: 90},
			{URL: "https://i.ytimg.com/maxres.jpg", Width: 1280, Height: 720},
		},
		Formats: youtube.FormatList{
			{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Quality: "medium", QualityLabel: "360p", Width: 640, Height: 360, AudioQuality: "AUDIO_QUALITY_LOW", AudioChannels: 2, AudioSampleRate: "44100"},
			{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, Quality: "hd1080", QualityLabel: "1080p", Width: 1920, Height: 1080},
			{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, Quality: "tiny", AudioQuality: "AUDIO_QUALITY_MEDIUM", AudioChannels: 2, AudioSampleRate: "48000", ContentLength: 3456},
		},
	}

	video := convertVideo(src)

	assert.Equal(t, "dQw4w9WgXcQ", video.ID)
	assert.Equal(t, int64(1000), video.Views)
	assert.Same(t, src, video.Source)
	require.Len(t, video.Thumbnails, 2)
	assert.Equal(t, "https://i.ytimg.com/maxres.jpg", video.Thumbnails[1].URL)

	require.Len(t, video.Formats, 3)
	assert.Equal(t, domain.KindCombined, video.Formats[0].Kind())
	assert.Equal(t, "mp4", video.Formats[0].Container)
	assert.Equal(t, 44100, video.Formats[0].AudioSampleRate)
	assert.Equal(t, domain.KindVideoOnly, video.Formats[1].Kind())
	assert.Equal(t, domain.KindAudioOnly, video.Formats[2].Kind())
	assert.Equal(t, "webm", video.Formats[2].Container)
	assert.Equal(t, int64(3456), video.Formats[2].ContentLength)

	v, f, err := sourceOf(video, &video.Formats[2])
	require.NoError(t, err)
	assert.Same(t, src, v)
	assert.Equal(t, 251, f.ItagNo)
}

func TestSourceOf_ForeignValues(t *testing.T) {
	_, _, err := sourceOf(&domain.Video{ID: "x"}, &domain.Format{Itag: 18})
	assert.Error(t, err)

	ext := newTestExtractor(t)
	_, _, err = ext.OpenStream(context.Background(), &domain.Video{ID: "x"}, &domain.Format{Itag: 18})
	assert.Error(t, err)
}

// recordingTransport records request headers and fails every request
type recordingTransport struct {
	mu         sync.Mutex
	userAgents []string
	languages  []string
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.userAgents = append(t.userAgents, req.Header.Get("User-Agent"))
	t.languages = append(t.languages, req.Header.Get("Accept-Language"))
	t.mu.Unlock()
	return nil, errors.New("upstream unavailable")
}

func (t *recordingTransport) seen() ([]string, []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.userAgents...), append([]string(nil), t.languages...)
}

func TestYouTubeExtractor_FetchVideoHeaders(t *testing.T) {
	rt := &recordingTransport{}
	ext := newYouTubeExtractor(rt, &domain.ExtractorConfig{UserAgent: "TestBrowser/1.0"}, nil)
	ref := domain.VideoReference{URL: "https://youtu.be/dQw4w9WgXcQ", VideoID: "dQw4w9WgXcQ"}

	_, err := ext.FetchVideo(context.Background(), ref, domain.FetchOptions{BrowserHeaders: true})
	require.Error(t, err)
	_, err = ext.FetchVideo(context.Background(), ref, domain.FetchOptions{})
	require.Error(t, err)

	agents, languages := rt.seen()
	require.Len(t, agents, 2)
	assert.Equal(t, "TestBrowser/1.0", agents[0])
	assert.Equal(t, "en-US,en;q=0.9", languages[0])
	assert.NotEmpty(t, agents[1])
	assert.NotEqual(t, "TestBrowser/1.0", agents[1])
	assert.Empty(t, languages[1])
}

func TestYouTubeExtractor_DefaultBrowserUserAgent(t *testing.T) {
	rt := &recordingTransport{}
	ext := newYouTubeExtractor(rt, &domain.ExtractorConfig{}, nil)

	_, err := ext.FetchVideo(context.Background(), domain.VideoReference{VideoID: "dQw4w9WgXcQ"}, domain.FetchOptions{BrowserHeaders: true})
	require.Error(t, err)

	agents, _ := rt.seen()
	require.Len(t, agents, 1)
	assert.Equal(t, domain.DefaultBrowserUserAgent, agents[0])
}

func TestYouTubeExtractor_ConcurrentFetches(t *testing.T) {
	rt := &recordingTransport{}
	ext := newYouTubeExtractor(rt, &domain.ExtractorConfig{UserAgent: "TestBrowser/1.0"}, nil)
	ref := domain.VideoReference{VideoID: "dQw4w9WgXcQ"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(browser bool) {
			defer wg.Done()
			_, err := ext.FetchVideo(context.Background(), ref, domain.FetchOptions{BrowserHeaders: browser})
			assert.Error(t, err)
		}(i%2 == 0)
	}
	wg.Wait()

	agents, _ := rt.seen()
	assert.Len(t, agents, 8)
}

func TestYouTubeExtractor_GatewayMetadataRetry(t *testing.T) {
	rt := &recordingTransport{}
	ext := newYouTubeExtractor(rt, &domain.ExtractorConfig{UserAgent: "TestBrowser/1.0"}, nil)
	service := app.NewGatewayService(ext, nil)

	_, err := service.GetMetadata(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.Error(t, err)

	agents, _ := rt.seen()
	require.Len(t, agents, 2)
	assert.Equal(t, "TestBrowser/1.0", agents[0])
	assert.NotEqual(t, "TestBrowser/1.0", agents[1])

	rt2 := &recordingTransport{}
	service = app.NewGatewayService(newYouTubeExtractor(rt2, &domain.ExtractorConfig{}, nil), nil)
	_, err = service.GetMetadata(context.Background(), "https://www.youtube.com/feed/trending")
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	agents, _ = rt2.seen()
	assert.Empty(t, agents)
}

func TestBrowserHeaderTransport(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
	}))
	defer server.Close()

	client := &http.Client{Transport: &browserHeaderTransport{base: http.DefaultTransport, userAgent: "TestBrowser/1.0"}}

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "library/2.0")
	req.Header.Set("Accept-Language", "de-DE")
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "TestBrowser/1.0", gotUA)
	assert.Equal(t, "de-DE", gotLang)
	assert.Equal(t, "library/2.0", req.Header.Get("User-Agent"))
}
