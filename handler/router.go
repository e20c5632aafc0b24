package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authgate/pkg/auth"
	"github.com/dmitrymomot/authgate/pkg/authz"
	"github.com/dmitrymomot/authgate/pkg/jwt"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Auth   *auth.Service
	Tokens *jwt.Service
	Logger *slog.Logger

	// CORSOrigins lists allowed origins for browser clients. Empty
	// disables CORS headers entirely.
	CORSOrigins []string

	// Readiness checks run by GET /healthz. All must pass for a 200.
	Readiness []func(context.Context) error
}

// accessRules is the route protection table. First match wins, so the
// exact /api/user rule must precede the /api/user/* wildcard.
func accessRules() []authz.Rule {
	return []authz.Rule{
		authz.Public("/api/authenticate"),
		authz.Public("/api/signup"),
		authz.Public("/healthz"),
		authz.RequireAnyAuthority("/api/user", auth.AuthorityUser, auth.AuthorityAdmin),
		authz.RequireAnyAuthority("/api/user/*", auth.AuthorityAdmin),
		authz.Authenticated("/*"),
	}
}

// NewRouter assembles the full middleware chain and routes.
func NewRouter(deps Deps) (http.Handler, error) {
	policy, err := authz.NewPolicy(accessRules(), authz.WithLogger(deps.Logger))
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(deps.CORSOrigins) > 0 {
		r.Use(corsMiddleware(deps.CORSOrigins))
	}
	r.Use(jwt.Middleware(deps.Tokens, jwt.WithLogger(deps.Logger)))
	r.Use(policy.Middleware)

	r.Get("/healthz", healthHandler(deps.Logger, deps.Readiness))

	r.Post("/api/authenticate", authenticateHandler(deps.Auth, deps.Logger))
	r.Post("/api/signup", signupHandler(deps.Auth, deps.Logger))
	r.Get("/api/user", currentUserHandler(deps.Auth, deps.Logger))
	r.Get("/api/user/{username}", userByUsernameHandler(deps.Auth, deps.Logger))

	return r, nil
}

func healthHandler(log *slog.Logger, checks []func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", slog.Any("error", err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
