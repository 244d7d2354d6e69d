package app

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// MaxListedFormats caps the format list exposed by metadata retrieval
const MaxListedFormats = 5

// ResolveMessage accompanies every resolved link
const ResolveMessage = "Click the link below to start the download"

// MediaStream is an opened upstream byte stream ready to be relayed
type MediaStream struct {
	Body     io.ReadCloser
	Filename string
	Size     int64 // -1 when unknown
	Format   domain.Format
}

// GatewayService implements the stateless gateway operations on top of the extraction library
type GatewayService struct {
	extractor domain.Extractor
	logger    *zap.Logger
	newTaskID func() string
}

// NewGatewayService creates a new gateway service
func NewGatewayService(extractor domain.Extractor, logger *zap.Logger) *GatewayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GatewayService{
		extractor: extractor,
		logger:    logger,
		newTaskID: NewTaskID,
	}
}

// GetMetadata validates the reference and returns shaped metadata. The first
// request carries browser-like headers; on failure one plain request is tried.
func (s *GatewayService) GetMetadata(ctx context.Context, rawURL string) (*domain.VideoMetadata, error) {
	ref, err := s.validate(rawURL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Fetching video info", zap.String("url", ref.URL), zap.String("video_id", ref.VideoID))

	video, err := s.extractor.FetchVideo(ctx, ref, domain.FetchOptions{BrowserHeaders: true})
	if err != nil {
		s.logger.Warn("Video info request failed, retrying with plain request",
			zap.String("video_id", ref.VideoID),
			zap.Error(err))

		video, err = s.extractor.FetchVideo(ctx, ref, domain.FetchOptions{})
		if err != nil {
			s.logger.Error("Failed to fetch video info",
				zap.String("video_id", ref.VideoID),
				zap.Error(err))
			return nil, domain.NewUpstreamError(err)
		}
	}

	s.logger.Info("Video info fetched",
		zap.String("video_id", video.ID),
		zap.String("title", video.Title),
		zap.Int("formats", len(video.Formats)))

	return ShapeMetadata(video), nil
}

// ResolveLink selects a format and returns its direct URL without transferring bytes
func (s *GatewayService) ResolveLink(ctx context.Context, rawURL, quality, container string) (*domain.ResolvedLink, error) {
	video, format, err := s.selectFormat(ctx, rawURL, quality, container)
	if err != nil {
		return nil, err
	}

	directURL, err := s.extractor.ResolveURL(ctx, video, format)
	if err != nil {
		s.logger.Error("Failed to resolve format URL",
			zap.String("video_id", video.ID),
			zap.Int("itag", format.Itag),
			zap.Error(err))
		return nil, domain.NewUpstreamError(err)
	}

	link := &domain.ResolvedLink{
		TaskID:         s.newTaskID(),
		Filename:       BuildFilename(video.Title, format.Container),
		Title:          video.Title,
		DownloadURL:    directURL,
		DirectDownload: true,
		Message:        ResolveMessage,
	}

	s.logger.Info("Download link resolved",
		zap.String("task_id", link.TaskID),
		zap.String("video_id", video.ID),
		zap.Int("itag", format.Itag),
		zap.String("filename", link.Filename))

	return link, nil
}

// OpenStream selects a format and opens its byte stream. Every failure happens
// before any byte is available, so callers can still answer with an error status.
func (s *GatewayService) OpenStream(ctx context.Context, rawURL, quality, container string) (*MediaStream, error) {
	video, format, err := s.selectFormat(ctx, rawURL, quality, container)
	if err != nil {
		return nil, err
	}

	body, size, err := s.extractor.OpenStream(ctx, video, format)
	if err != nil {
		s.logger.Error("Failed to open media stream",
			zap.String("video_id", video.ID),
			zap.Int("itag", format.Itag),
			zap.Error(err))
		return nil, domain.NewUpstreamError(err)
	}

	s.logger.Info("Media stream opened",
		zap.String("video_id", video.ID),
		zap.Int("itag", format.Itag),
		zap.Int64("size", size))

	return &MediaStream{
		Body:     body,
		Filename: BuildFilename(video.Title, format.Container),
		Size:     size,
		Format:   *format,
	}, nil
}

func (s *GatewayService) validate(rawURL string) (domain.VideoReference, error) {
	ref, err := s.extractor.Validate(rawURL)
	if err != nil {
		s.logger.Info("Rejected video reference", zap.String("url", rawURL), zap.Error(err))
		return domain.VideoReference{}, domain.ErrInvalidReference
	}
	return ref, nil
}

func (s *GatewayService) selectFormat(ctx context.Context, rawURL, quality, container string) (*domain.Video, *domain.Format, error) {
	ref, err := s.validate(rawURL)
	if err != nil {
		return nil, nil, err
	}

	video, err := s.extractor.FetchVideo(ctx, ref, domain.FetchOptions{})
	if err != nil {
		s.logger.Error("Failed to fetch video info", zap.String("video_id", ref.VideoID), zap.Error(err))
		return nil, nil, domain.NewUpstreamError(err)
	}

	format, err := SelectFormat(video.Formats, quality, container)
	if err != nil {
		s.logger.Info("No format matches request",
			zap.String("video_id", video.ID),
			zap.String("quality", quality),
			zap.String("format", container))
		return nil, nil, err
	}

	return video, format, nil
}

// ShapeMetadata projects a video into the public metadata shape
func ShapeMetadata(video *domain.Video) *domain.VideoMetadata {
	meta := &domain.VideoMetadata{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		Author:      video.Author,
		Views:       video.Views,
		Formats:     []domain.FormatDescriptor{},
	}

	if n := len(video.Thumbnails); n > 0 {
		meta.Thumbnail = video.Thumbnails[n-1].URL
	}
	if video.Duration > 0 {
		secs := int64(video.Duration.Seconds())
		meta.Duration = &secs
	}
	if !video.PublishDate.IsZero() {
		meta.UploadDate = video.PublishDate.Format("2006-01-02")
	}

	for _, f := range video.FormatsOfKind(domain.KindCombined) {
		if len(meta.Formats) == MaxListedFormats {
			break
		}
		meta.Formats = append(meta.Formats, f.Descriptor())
	}

	return meta
}
