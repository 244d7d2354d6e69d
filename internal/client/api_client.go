// Package client implements the download client: an HTTP client for the
// gateway and its task backend, and a controller that owns the UI state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// Backend is the set of remote operations the controller depends on
type Backend interface {
	VideoInfo(ctx context.Context, videoURL string) (*domain.VideoMetadata, error)
	Download(ctx context.Context, videoURL, quality, format string) (*domain.ResolvedLink, error)
	Tasks(ctx context.Context) ([]domain.DownloadTask, error)
	CancelTask(ctx context.Context, id string) error
	History(ctx context.Context, search string) ([]domain.HistoryEntry, error)
	DeleteHistory(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.Stats, error)
	Ping(ctx context.Context) bool
	OpenFile(ctx context.Context, name string) (io.ReadCloser, int64, error)
}

// APIError is a failed request, carrying the server's error message when present
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// APIClient talks to the gateway and the task backend behind the same base URL
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	// streaming requests must not be cut off by the request timeout
	streamClient *http.Client
}

// NewAPIClient creates a client for baseURL (e.g. http://localhost:3000/api)
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		streamClient: &http.Client{},
	}
}

// BaseURL returns the configured base URL
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// call sends a JSON request and decodes the envelope's data into out
func (c *APIClient) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// VideoInfo fetches metadata for videoURL
func (c *APIClient) VideoInfo(ctx context.Context, videoURL string) (*domain.VideoMetadata, error) {
	var meta domain.VideoMetadata
	if err := c.call(ctx, http.MethodPost, "/video-info", map[string]string{"url": videoURL}, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Download resolves a direct download link
func (c *APIClient) Download(ctx context.Context, videoURL, quality, format string) (*domain.ResolvedLink, error) {
	req := map[string]string{"url": videoURL, "quality": quality, "format": format}
	var link domain.ResolvedLink
	if err := c.call(ctx, http.MethodPost, "/download", req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Tasks lists the backend's download tasks
func (c *APIClient) Tasks(ctx context.Context) ([]domain.DownloadTask, error) {
	tasks := []domain.DownloadTask{}
	if err := c.call(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CancelTask asks the backend to cancel a task
func (c *APIClient) CancelTask(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/cancel", nil, nil)
}

// History lists history entries, optionally filtered by search
func (c *APIClient) History(ctx context.Context, search string) ([]domain.HistoryEntry, error) {
	path := "/history"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	entries := []domain.HistoryEntry{}
	if err := c.call(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteHistory removes a history entry
func (c *APIClient) DeleteHistory(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/history/"+url.PathEscape(id), nil, nil)
}

// Stats fetches aggregate statistics
func (c *APIClient) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := c.call(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Ping reports whether the backend answers at all; any HTTP response counts
func (c *APIClient) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// FileURL returns the delivery URL of a finished file
func (c *APIClient) FileURL(name string) string {
	return c.baseURL + "/download-file/" + url.PathEscape(name)
}

// OpenFile opens a finished file for download
func (c *APIClient) OpenFile(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	body, size, _, err := c.openBinary(ctx, c.FileURL(name))
	return body, size, err
}

// OpenStream opens the gateway's streaming proxy and returns the body, its
// size (-1 when unknown) and the file name announced by the server
func (c *APIClient) OpenStream(ctx context.Context, videoURL, quality, format string) (io.ReadCloser, int64, string, error) {
	q := url.Values{}
	q.Set("url", videoURL)
	if quality != "" {
		q.Set("quality", quality)
	}
	if format != "" {
		q.Set("format", format)
	}
	return c.openBinary(ctx, c.baseURL+"/stream-download?"+q.Encode())
}

func (c *APIClient) openBinary(ctx context.Context, target string) (io.ReadCloser, int64, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, "", err
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, 0, "", err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(data))
		var env envelope
		if json.Unmarshal(data, &env) == nil && env.Error != "" {
			msg = env.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return nil, 0, "", &APIError{Status: resp.StatusCode, Message: msg}
	}

	var filename string
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}

	return resp.Body, resp.ContentLength, filename, nil
}
