package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

var youtubeHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"music.youtube.com":        true,
	"youtu.be":                 true,
	"www.youtube-nocookie.com": true,
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// YouTubeExtractor implements Extractor on top of github.com/kkdai/youtube.
// The library client keeps per-call state, so a fresh one is built for every
// request over the shared HTTP clients.
type YouTubeExtractor struct {
	browserHTTP *http.Client
	plainHTTP   *http.Client
	logger      *zap.Logger
}

// NewYouTubeExtractor creates a new extractor. Metadata requests with
// browser headers replace the library's User-Agent with the configured one.
func NewYouTubeExtractor(config *domain.ExtractorConfig, logger *zap.Logger) (*YouTubeExtractor, error) {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if config.ProxyURL != "" {
		proxyURL, err := url.Parse(config.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		base.Proxy = http.ProxyURL(proxyURL)
	}
	return newYouTubeExtractor(base, config, logger), nil
}

func newYouTubeExtractor(base http.RoundTripper, config *domain.ExtractorConfig, logger *zap.Logger) *YouTubeExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = domain.DefaultBrowserUserAgent
	}

	// The timeout bounds metadata requests only; streams are bounded by the request context.
	return &YouTubeExtractor{
		browserHTTP: &http.Client{
			Transport: &browserHeaderTransport{base: base, userAgent: userAgent},
			Timeout:   config.RequestTimeout,
		},
		plainHTTP: &http.Client{Transport: base},
		logger:    logger,
	}
}

func (e *YouTubeExtractor) client(browser bool) *youtube.Client {
	if browser {
		return &youtube.Client{HTTPClient: e.browserHTTP}
	}
	return &youtube.Client{HTTPClient: e.plainHTTP}
}

// Validate checks that rawURL is a YouTube video URL
func (e *YouTubeExtractor) Validate(rawURL string) (domain.VideoReference, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return domain.VideoReference{}, fmt.Errorf("%w: %v", domain.ErrInvalidReference, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return domain.VideoReference{}, fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidReference, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if !youtubeHosts[host] {
		return domain.VideoReference{}, fmt.Errorf("%w: unsupported host %q", domain.ErrInvalidReference, u.Hostname())
	}

	id := videoIDFromURL(host, u)
	if !videoIDPattern.MatchString(id) {
		return domain.VideoReference{}, fmt.Errorf("%w: invalid YouTube video URL", domain.ErrInvalidReference)
	}

	return domain.VideoReference{URL: rawURL, VideoID: id}, nil
}

// videoIDFromURL reads the id from the v parameter, a youtu.be path or a
// /shorts, /embed, /v or /live path
func videoIDFromURL(host string, u *url.URL) string {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	if host == "youtu.be" {
		if len(segments) == 1 {
			return segments[0]
		}
		return ""
	}

	if segments[0] == "watch" && len(segments) == 1 {
		return u.Query().Get("v")
	}
	if len(segments) == 2 {
		switch segments[0] {
		case "shorts", "embed", "v", "live":
			return segments[1]
		}
	}
	return ""
}

// FetchVideo retrieves video metadata and formats
func (e *YouTubeExtractor) FetchVideo(ctx context.Context, ref domain.VideoReference, opts domain.FetchOptions) (*domain.Video, error) {
	start := time.Now()
	video, err := e.client(opts.BrowserHeaders).GetVideoContext(ctx, ref.VideoID)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Fetched video from YouTube",
		zap.String("video_id", video.ID),
		zap.Bool("browser_headers", opts.BrowserHeaders),
		zap.Duration("duration", time.Since(start)))

	return convertVideo(video), nil
}

// ResolveURL returns the direct, deciphered URL of format
func (e *YouTubeExtractor) ResolveURL(ctx context.Context, video *domain.Video, format *domain.Format) (string, error) {
	v, f, err := sourceOf(video, format)
	if err != nil {
		return "", err
	}
	return e.client(false).GetStreamURLContext(ctx, v, f)
}

// OpenStream opens the byte stream of format
func (e *YouTubeExtractor) OpenStream(ctx context.Context, video *domain.Video, format *domain.Format) (io.ReadCloser, int64, error) {
	v, f, err := sourceOf(video, format)
	if err != nil {
		return nil, 0, err
	}

	body, size, err := e.client(false).GetStreamContext(ctx, v, f)
	if err != nil {
		return nil, 0, err
	}
	if size <= 0 {
		size = -1
	}
	return body, size, nil
}

func sourceOf(video *domain.Video, format *domain.Format) (*youtube.Video, *youtube.Format, error) {
	v, ok := video.Source.(*youtube.Video)
	if !ok {
		return nil, nil, fmt.Errorf("video %s was not fetched by this extractor", video.ID)
	}
	f, ok := format.Source.(youtube.Format)
	if !ok {
		return nil, nil, fmt.Errorf("format %d was not fetched by this extractor", format.Itag)
	}
	return v, &f, nil
}

func convertVideo(v *youtube.Video) *domain.Video {
	video := &domain.Video{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Author:      v.Author,
		Views:       int64(v.Views),
		Duration:    v.Duration,
		PublishDate: v.PublishDate,
		Source:      v,
	}

	for _, t := range v.Thumbnails {
		video.Thumbnails = append(video.Thumbnails, domain.Thumbnail{URL: t.URL, Width: t.Width, Height: t.Height})
	}
	for _, f := range v.Formats {
		video.Formats = append(video.Formats, convertFormat(f))
	}

	return video
}

func convertFormat(f youtube.Format) domain.Format {
	sampleRate, _ := strconv.Atoi(f.AudioSampleRate)
	mime := strings.ToLower(f.MimeType)

	return domain.Format{
		Itag:            f.ItagNo,
		URL:             f.URL,
		MimeType:        f.MimeType,
		Quality:         f.Quality,
		QualityLabel:    f.QualityLabel,
		Container:       domain.ContainerFromMime(f.MimeType),
		HasVideo:        f.Width > 0 || f.QualityLabel != "" || strings.HasPrefix(mime, "video/"),
		HasAudio:        f.AudioChannels > 0 || f.AudioQuality != "" || strings.HasPrefix(mime, "audio/"),
		Bitrate:         f.Bitrate,
		Width:           f.Width,
		Height:          f.Height,
		FPS:             f.FPS,
		AudioQuality:    f.AudioQuality,
		AudioSampleRate: sampleRate,
		ContentLength:   f.ContentLength,
		Source:          f,
	}
}

// browserHeaderTransport overrides the library's client User-Agent with a browser one
type browserHeaderTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *browserHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	}
	return t.base.RoundTrip(req)
}
