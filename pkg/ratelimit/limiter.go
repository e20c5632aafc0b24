package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config carries login throttling settings loaded from the environment.
type Config struct {
	Enabled  bool          `env:"LOGIN_RATE_LIMIT_ENABLED" envDefault:"false"`
	Attempts int           `env:"LOGIN_RATE_LIMIT_ATTEMPTS" envDefault:"5"`
	Window   time.Duration `env:"LOGIN_RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long to wait before the next attempt is
// allowed, or 0 if the check passed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter is a fixed-window counter backed by Redis. Each key gets an
// INCR with an expiry set on the first hit of the window, so counts
// from concurrent instances share the same state.
type Limiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewLimiter creates a Limiter allowing limit attempts per window.
func NewLimiter(client *redis.Client, limit int, window time.Duration) (*Limiter, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	return &Limiter{
		client: client,
		prefix: "ratelimit:",
		limit:  limit,
		window: window,
	}, nil
}

// Allow records one attempt for key and reports whether it is within
// the limit. The attempt is counted even when rejected, so persistent
// offenders keep their window alive.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	if key == "" {
		return Result{}, ErrKeyRequired
	}

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, l.prefix+key)
	pipe.ExpireNX(ctx, l.prefix+key, l.window)
	ttl := pipe.PTTL(ctx, l.prefix+key)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	count := incr.Val()
	resetAt := time.Now().Add(l.window)
	if d := ttl.Val(); d > 0 {
		resetAt = time.Now().Add(d)
	}

	return Result{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: int(max(int64(l.limit)-count, 0)),
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the counter for key, reopening the window immediately.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return l.client.Del(ctx, l.prefix+key).Err()
}
