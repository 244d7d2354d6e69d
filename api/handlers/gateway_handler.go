package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/internal/app"
	"github.com/yourusername/ytdl-gateway/internal/domain"
	"github.com/yourusername/ytdl-gateway/internal/stream"
)

// Plain-text bodies of the streaming endpoint
const (
	msgInvalidURL       = "Invalid YouTube URL"
	msgNoFormat         = "No suitable format found"
	msgDownloadFailed   = "Download failed"
	msgMethodNotAllowed = "Method not allowed"
)

// GatewayHandler handles the metadata, resolve and stream endpoints
type GatewayHandler struct {
	service    *app.GatewayService
	windowSize int
	logger     *zap.Logger
}

// NewGatewayHandler creates a new gateway handler
func NewGatewayHandler(service *app.GatewayService, windowSize int, logger *zap.Logger) *GatewayHandler {
	return &GatewayHandler{
		service:    service,
		windowSize: windowSize,
		logger:     logger,
	}
}

// Envelope is the JSON body of the metadata and resolve endpoints
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// VideoInfoRequest represents a metadata request
type VideoInfoRequest struct {
	URL string `json:"url"`
}

// DownloadRequest represents a direct-link resolution request
type DownloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	Format  string `json:"format"`
}

// VideoInfo handles POST /video-info
func (h *GatewayHandler) VideoInfo(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.jsonError(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	var req VideoInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		h.jsonError(c, http.StatusBadRequest, domain.ErrInvalidReference.Error())
		return
	}

	meta, err := h.service.GetMetadata(c.Request.Context(), req.URL)
	if err != nil {
		h.jsonError(c, statusFor(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, Envelope{Success: true, Data: meta})
}

// Download handles POST /download
func (h *GatewayHandler) Download(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.jsonError(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		h.jsonError(c, http.StatusBadRequest, domain.ErrInvalidReference.Error())
		return
	}

	link, err := h.service.ResolveLink(c.Request.Context(), req.URL, req.Quality, req.Format)
	if err != nil {
		h.jsonError(c, statusFor(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, Envelope{Success: true, Data: link})
}

// StreamDownload handles GET /stream-download. Errors before the first byte
// are answered in plain text; a failure after that aborts the connection.
func (h *GatewayHandler) StreamDownload(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.String(http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	rawURL := c.Query("url")
	quality := c.DefaultQuery("quality", app.QualityHighest)
	container := c.DefaultQuery("format", app.ContainerMP4)

	if rawURL == "" {
		c.String(http.StatusBadRequest, msgInvalidURL)
		return
	}

	media, err := h.service.OpenStream(c.Request.Context(), rawURL, quality, container)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReference):
			c.String(http.StatusBadRequest, msgInvalidURL)
		case errors.Is(err, domain.ErrFormatNotFound):
			c.String(http.StatusBadRequest, msgNoFormat)
		default:
			c.String(http.StatusInternalServerError, msgDownloadFailed)
		}
		return
	}
	defer media.Body.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, media.Filename))
	c.Header("Transfer-Encoding", "chunked")
	c.Status(http.StatusOK)

	sink := stream.NewWriterSink(c.Writer, c.Writer.Flush)
	written, err := stream.Relay(c.Request.Context(), media.Body, sink, h.windowSize)
	if err != nil {
		h.logger.Warn("Stream aborted",
			zap.String("filename", media.Filename),
			zap.Int("itag", media.Format.Itag),
			zap.Int64("bytes", written),
			zap.Error(err))
		panic(http.ErrAbortHandler)
	}

	h.logger.Info("Stream completed",
		zap.String("filename", media.Filename),
		zap.Int("itag", media.Format.Itag),
		zap.Int64("bytes", written))
}

func (h *GatewayHandler) jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Success: false, Error: msg})
}

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidReference), errors.Is(err, domain.ErrFormatNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
