package authz

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/jwt"
)

// Policy is an ordered route-rule list evaluated first-match-wins. The
// rule list is fixed at construction and safe for unsynchronized
// concurrent reads. A request whose path matches no rule is treated as
// requiring authentication.
type Policy struct {
	rules          []Rule
	logger         *slog.Logger
	onUnauthorized http.HandlerFunc
	onForbidden    http.HandlerFunc
}

// Option configures a Policy.
type Option func(*Policy)

// WithLogger sets the logger used for denial diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Policy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithUnauthorizedHandler replaces the default 401 response.
func WithUnauthorizedHandler(h http.HandlerFunc) Option {
	return func(p *Policy) {
		if h != nil {
			p.onUnauthorized = h
		}
	}
}

// WithForbiddenHandler replaces the default 403 response.
func WithForbiddenHandler(h http.HandlerFunc) Option {
	return func(p *Policy) {
		if h != nil {
			p.onForbidden = h
		}
	}
}

// NewPolicy creates a policy from an ordered rule list. Order matters:
// the first matching rule governs, so explicit public rules must precede
// any catch-all, and an authenticate-by-default catch-all belongs last.
func NewPolicy(rules []Rule, opts ...Option) (*Policy, error) {
	for _, rule := range rules {
		if rule.Pattern == "" {
			return nil, ErrEmptyPattern
		}
		if rule.Access == AccessAuthorities && len(rule.Authorities) == 0 {
			return nil, ErrNoAuthorities
		}
	}

	p := &Policy{
		rules:          rules,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		onUnauthorized: denyJSON(http.StatusUnauthorized, "unauthorized"),
		onForbidden:    denyJSON(http.StatusForbidden, "forbidden"),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Middleware enforces the policy. It runs after the authentication filter
// has had its chance to populate the request context: a public rule
// allows the request through without touching the identity, a missing
// identity on a protected route yields 401, and an identity lacking every
// required authority yields 403.
func (p *Policy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule, matched := p.matchRule(r.URL.Path)
		if matched && rule.Access == AccessPublic {
			next.ServeHTTP(w, r)
			return
		}

		identity, authenticated := jwt.CurrentIdentity(r.Context())
		if !authenticated {
			p.logger.DebugContext(r.Context(), "request denied: unauthenticated",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			p.onUnauthorized(w, r)
			return
		}

		if matched && rule.Access == AccessAuthorities && !identity.HasAnyAuthority(rule.Authorities...) {
			p.logger.DebugContext(r.Context(), "request denied: insufficient authority",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("subject", identity.Subject),
			)
			p.onForbidden(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// matchRule returns the first rule covering path. The second return value
// is false when no rule matches, which callers must treat as
// authenticate-by-default.
func (p *Policy) matchRule(path string) (Rule, bool) {
	for _, rule := range p.rules {
		if rule.match(path) {
			return rule, true
		}
	}
	return Rule{}, false
}

// denyJSON writes a minimal JSON rejection carrying no internal detail.
func denyJSON(status int, code string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": code})
	}
}
