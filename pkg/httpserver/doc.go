// Package httpserver runs an http.Server with sane timeout defaults
// and graceful shutdown tied to context cancellation and OS signals.
//
// Usage:
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		// the listener failed or shutdown timed out
//	}
//
// Run blocks until the context is cancelled or the process receives
// SIGINT or SIGTERM, then drains in-flight requests within the
// configured shutdown timeout.
package httpserver
