package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yourusername/ytdl-gateway/internal/app"
	"github.com/yourusername/ytdl-gateway/internal/stream"
)

// SaveTo relays body into path through a temporary ".part" file that is
// renamed only after a clean end of stream
func SaveTo(ctx context.Context, body io.Reader, path string, onProgress func(written int64)) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	partPath := path + ".part"
	file, err := os.Create(partPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	sink := stream.NewWriterSink(file, nil)
	if onProgress != nil {
		sink.OnProgress(onProgress)
	}

	written, err := stream.Relay(ctx, body, sink, stream.DefaultWindowSize)
	if err != nil {
		file.Close()
		os.Remove(partPath)
		return written, err
	}

	if err := os.Rename(partPath, path); err != nil {
		os.Remove(partPath)
		return written, fmt.Errorf("failed to finalize file: %w", err)
	}
	return written, nil
}

// FetchFile downloads a finished file from the backend into dir and returns
// the local path
func FetchFile(ctx context.Context, backend Backend, name, dir string, onProgress func(written int64)) (string, error) {
	local := app.SanitizeFilename(name)
	if local == "" {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	body, _, err := backend.OpenFile(ctx, name)
	if err != nil {
		return "", err
	}
	defer body.Close()

	path := filepath.Join(app.ExpandPath(dir), local)
	if _, err := SaveTo(ctx, body, path, onProgress); err != nil {
		return "", err
	}
	return path, nil
}
