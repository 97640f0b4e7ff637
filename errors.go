package requestmock

import "errors"

var (
	// ErrEncodeBody indicates that a value could not be encoded as a response body.
	ErrEncodeBody = errors.New("failed to encode response body")

	// ErrDecodeBody signals that a response body could not be decoded into the target value.
	ErrDecodeBody = errors.New("failed to decode response body")
)
