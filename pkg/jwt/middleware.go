package jwt

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const (
	authorizationHeader = "Authorization"

	// bearerScheme is matched case-sensitively including the single
	// trailing space; anything else counts as "no credential supplied".
	bearerScheme = "Bearer "
)

// MiddlewareOption configures the authentication middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for per-request authentication
// diagnostics.
func WithLogger(logger *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Middleware returns the request authentication filter. It runs once per
// request, before route dispatch: it extracts a candidate bearer token
// from the Authorization header, validates it, and on success attaches
// the resulting identity to the request context.
//
// The filter never rejects a request. A missing, malformed, or invalid
// credential leaves the context unauthenticated and the request proceeds;
// deciding whether an unauthenticated request may reach a route is the
// authorization layer's responsibility. Its only side effects are the
// context value and a diagnostic log line, which names the failure class
// and the requested path but never the token itself.
func Middleware(svc *Service, opts ...MiddlewareOption) func(next http.Handler) http.Handler {
	cfg := middlewareConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, presented := bearerToken(r)
			if !presented {
				cfg.logger.DebugContext(r.Context(), "no credential supplied",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			identity, err := svc.Validate(token)
			if err != nil {
				cfg.logger.DebugContext(r.Context(), "no valid credential",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("reason", err),
				)
				next.ServeHTTP(w, r)
				return
			}

			cfg.logger.DebugContext(r.Context(), "identity attached",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("subject", identity.Subject),
			)
			next.ServeHTTP(w, r.WithContext(SetIdentity(r.Context(), identity)))
		})
	}
}

// bearerToken extracts the candidate token from the Authorization header.
// The second return value is false when no bearer credential was
// presented at all.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(authorizationHeader)
	if !strings.HasPrefix(header, bearerScheme) {
		return "", false
	}

	token := header[len(bearerScheme):]
	if token == "" {
		return "", false
	}

	return token, true
}
