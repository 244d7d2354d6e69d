package domain

import (
	"context"
	"io"
)

// FetchOptions tunes a single metadata request to the extraction library
type FetchOptions struct {
	// BrowserHeaders sends a browser-like User-Agent to reduce upstream bot blocking
	BrowserHeaders bool
}

// Extractor defines the interface to the third-party video-extraction library
type Extractor interface {
	// Validate checks the URL shape and returns the reference on success
	Validate(rawURL string) (VideoReference, error)

	// FetchVideo retrieves metadata and the format list for a reference
	FetchVideo(ctx context.Context, ref VideoReference, opts FetchOptions) (*Video, error)

	// ResolveURL returns the direct, time-limited URL of a format
	ResolveURL(ctx context.Context, video *Video, format *Format) (string, error)

	// OpenStream opens the byte stream of a format. The size is -1 when unknown.
	OpenStream(ctx context.Context, video *Video, format *Format) (io.ReadCloser, int64, error)
}
