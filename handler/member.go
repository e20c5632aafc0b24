package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/auth"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type memberResponse struct {
	Username    string   `json:"username"`
	Nickname    string   `json:"nickname"`
	Authorities []string `json:"authorities"`
}

func toMemberResponse(u *auth.User) memberResponse {
	authorities := u.Authorities
	if authorities == nil {
		authorities = []string{}
	}
	return memberResponse{
		Username:    u.Username,
		Nickname:    u.Nickname,
		Authorities: authorities,
	}
}

func (r signupRequest) validate() error {
	valErr := core.NewValidationError()
	checkLength(valErr, "username", r.Username, 3, 50)
	checkLength(valErr, "password", r.Password, 3, 100)
	checkLength(valErr, "nickname", r.Nickname, 3, 50)
	if valErr.IsEmpty() {
		return nil
	}
	return valErr
}

func checkLength(valErr core.ValidationError, field, value string, min, max int) {
	if n := utf8.RuneCountInString(value); n < min || n > max {
		valErr.Add(field, fmt.Sprintf("must be between %d and %d characters", min, max))
	}
}

// signupHandler registers a new account with the default user
// authority.
func signupHandler(svc *auth.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.RespondError(w, core.ErrBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			core.RespondError(w, err)
			return
		}

		user, err := svc.Register(r.Context(), req.Username, req.Password, req.Nickname)
		if err != nil {
			if errors.Is(err, auth.ErrUsernameAlreadyExists) {
				core.RespondError(w, core.ErrConflict)
				return
			}
			log.ErrorContext(r.Context(), "signup failed", logger.Error(err), logger.Username(req.Username))
			core.RespondError(w, err)
			return
		}

		core.RespondJSON(w, http.StatusCreated, toMemberResponse(user))
	}
}

// currentUserHandler returns the account of the authenticated caller.
func currentUserHandler(svc *auth.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.CurrentUser(r.Context())
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUnauthorized):
				core.RespondError(w, core.ErrUnauthorized)
			case errors.Is(err, auth.ErrUserNotFound):
				core.RespondError(w, core.ErrNotFound)
			default:
				log.ErrorContext(r.Context(), "current user lookup failed", logger.Error(err))
				core.RespondError(w, err)
			}
			return
		}
		core.RespondJSON(w, http.StatusOK, toMemberResponse(user))
	}
}

// userByUsernameHandler returns any account by username. Route access
// is restricted to admins by the authorization policy.
func userByUsernameHandler(svc *auth.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := svc.UserByUsername(r.Context(), username)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				core.RespondError(w, core.ErrNotFound)
				return
			}
			log.ErrorContext(r.Context(), "user lookup failed", logger.Error(err), logger.Username(username))
			core.RespondError(w, err)
			return
		}
		core.RespondJSON(w, http.StatusOK, toMemberResponse(user))
	}
}
