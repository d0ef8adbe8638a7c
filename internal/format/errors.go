package format

import "errors"

var (
	// ErrSignatureMismatch indicates a header had an unexpected signature.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a header or its payload.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrNoHeader indicates the HasHeader flag was clear where a header was expected.
	ErrNoHeader = errors.New("format: header flag missing")
)
