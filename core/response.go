package core

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorResponse is the JSON body rendered for any failed request.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError renders err as a JSON error response. HTTPError values
// map to their own status and key, ValidationError renders 422 with
// per-field details, and anything else becomes an opaque 500 so
// internal failure detail never reaches the client.
func RespondError(w http.ResponseWriter, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		RespondJSON(w, httpErr.Code, ErrorResponse{
			Code:    httpErr.Key,
			Message: http.StatusText(httpErr.Code),
		})
		return
	}

	var valErr ValidationError
	if errors.As(err, &valErr) {
		RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "validation_error",
			Message: "Validation failed",
			Details: valErr,
		})
		return
	}

	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{
		Code:    ErrInternalServerError.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	})
}
