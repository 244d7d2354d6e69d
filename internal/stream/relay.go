// Package stream relays an upstream byte stream to a consumer through a
// bounded window, preserving order and surfacing mid-stream failures.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultWindowSize is the relay buffer size when none is configured
const DefaultWindowSize = 32 * 1024

// Sink consumes relayed chunks. Exactly one of Close or Fail is called, once,
// after the last Produce.
type Sink interface {
	// Produce delivers the next chunk. The slice is reused after Produce returns.
	Produce(chunk []byte) error
	// Close signals a clean end of stream
	Close() error
	// Fail signals that the stream ended abnormally
	Fail(err error)
}

// Relay copies src into sink chunk by chunk, never holding more than window
// bytes. It returns the number of bytes delivered and the error that ended the
// relay, if any.
func Relay(ctx context.Context, src io.Reader, sink Sink, window int) (int64, error) {
	if window <= 0 {
		window = DefaultWindowSize
	}
	buf := make([]byte, window)

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			sink.Fail(err)
			return total, err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if err := sink.Produce(buf[:n]); err != nil {
				err = fmt.Errorf("deliver chunk: %w", err)
				sink.Fail(err)
				return total, err
			}
			total += int64(n)
		}

		if readErr == nil {
			continue
		}
		if errors.Is(readErr, io.EOF) {
			if err := sink.Close(); err != nil {
				return total, fmt.Errorf("close sink: %w", err)
			}
			return total, nil
		}

		err := fmt.Errorf("read upstream: %w", readErr)
		sink.Fail(err)
		return total, err
	}
}
