package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/auth"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/ratelimit"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// authenticateHandler exchanges credentials for a signed token. The
// token travels both in the response body and in the Authorization
// header so header-driven clients can pick it up directly.
func authenticateHandler(svc *auth.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.RespondError(w, core.ErrBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			core.RespondError(w, core.ErrBadRequest)
			return
		}

		token, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ratelimit.ErrLimitExceeded):
				core.RespondError(w, core.ErrTooManyRequests)
			case errors.Is(err, auth.ErrInvalidCredentials):
				core.RespondError(w, core.ErrUnauthorized)
			default:
				log.ErrorContext(r.Context(), "login failed", logger.Error(err), logger.Username(req.Username))
				core.RespondError(w, err)
			}
			return
		}

		w.Header().Set("Authorization", "Bearer "+token)
		core.RespondJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}
