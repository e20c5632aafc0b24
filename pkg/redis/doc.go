// Package redis connects to a Redis server with retry and exposes a
// readiness probe helper. The login rate limiter is its only consumer,
// so the package stays a thin wrapper around go-redis.
package redis
