// Package logger builds the application's slog.Logger from environment
// configuration and provides typed attribute helpers so log keys stay
// consistent across packages.
package logger
