package stream

import (
	"io"
	"sync"
)

// WriterSink relays chunks to an io.Writer, optionally flushing after each one
type WriterSink struct {
	w          io.Writer
	flush      func()
	onProgress func(written int64)

	mu      sync.Mutex
	written int64
	closed  bool
	err     error
}

// NewWriterSink creates a sink writing to w. flush may be nil.
func NewWriterSink(w io.Writer, flush func()) *WriterSink {
	return &WriterSink{w: w, flush: flush}
}

// OnProgress registers a callback invoked with the running byte count
func (s *WriterSink) OnProgress(fn func(written int64)) {
	s.onProgress = fn
}

// Produce implements Sink
func (s *WriterSink) Produce(chunk []byte) error {
	if _, err := s.w.Write(chunk); err != nil {
		return err
	}
	if s.flush != nil {
		s.flush()
	}

	s.mu.Lock()
	s.written += int64(len(chunk))
	written := s.written
	s.mu.Unlock()

	if s.onProgress != nil {
		s.onProgress(written)
	}
	return nil
}

// Close implements Sink
func (s *WriterSink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Fail implements Sink
func (s *WriterSink) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Written returns the number of bytes delivered so far
func (s *WriterSink) Written() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

// Closed reports whether the stream ended cleanly
func (s *WriterSink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Err returns the failure recorded by Fail
func (s *WriterSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
