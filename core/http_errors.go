package core

// HTTPError is an HTTP failure with a status code and a stable machine
// readable key. The key is what clients branch on; the status text is
// derived from the code when rendering.
type HTTPError struct {
	Code int
	Key  string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest          = HTTPError{Code: 400, Key: "bad_request"}
	ErrUnauthorized        = HTTPError{Code: 401, Key: "unauthorized"}
	ErrForbidden           = HTTPError{Code: 403, Key: "forbidden"}
	ErrNotFound            = HTTPError{Code: 404, Key: "not_found"}
	ErrConflict            = HTTPError{Code: 409, Key: "conflict"}
	ErrTooManyRequests     = HTTPError{Code: 429, Key: "too_many_requests"}
	ErrInternalServerError = HTTPError{Code: 500, Key: "internal_server_error"}
)

// NewHTTPError creates an HTTPError with a custom key.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}
