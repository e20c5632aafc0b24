package config

import "errors"

var (
	// ErrNilPointer is returned when Load is called with a nil target.
	ErrNilPointer = errors.New("config: nil pointer passed to Load")

	// ErrParsingConfig wraps env parsing failures, including missing
	// required variables and malformed values.
	ErrParsingConfig = errors.New("config: failed to parse environment")
)
