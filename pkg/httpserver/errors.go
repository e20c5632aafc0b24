package httpserver

import "errors"

var (
	// ErrServe indicates the server failed to start or stopped unexpectedly.
	ErrServe = errors.New("httpserver: serve failed")
	// ErrShutdown indicates graceful shutdown did not complete in time.
	ErrShutdown = errors.New("httpserver: shutdown failed")
)
