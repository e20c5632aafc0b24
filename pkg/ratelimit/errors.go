package ratelimit

import "errors"

var (
	// ErrLimitExceeded signals that the caller ran out of attempts for
	// the current window.
	ErrLimitExceeded = errors.New("ratelimit: limit exceeded")

	ErrClientRequired = errors.New("ratelimit: redis client is required")
	ErrInvalidLimit   = errors.New("ratelimit: limit must be positive")
	ErrInvalidWindow  = errors.New("ratelimit: window must be positive")
	ErrKeyRequired    = errors.New("ratelimit: key is required")
)
