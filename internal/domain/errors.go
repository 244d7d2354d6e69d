package domain

import "errors"

var (
	// ErrInvalidReference is returned for malformed or unsupported video URLs
	ErrInvalidReference = errors.New("invalid YouTube video URL")

	// ErrFormatNotFound is returned when no format matches the selection policy
	ErrFormatNotFound = errors.New("no suitable video format found")

	// ErrUpstreamUnavailable marks failures of the extraction library
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// UpstreamError carries an extraction library failure. Its message is the
// library's own so it can be passed through to callers unchanged.
type UpstreamError struct {
	Err error
}

// NewUpstreamError wraps err as an upstream failure
func NewUpstreamError(err error) *UpstreamError {
	return &UpstreamError{Err: err}
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return ErrUpstreamUnavailable.Error()
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstreamUnavailable, e.Err}
}
