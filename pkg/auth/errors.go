package auth

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrUnauthorized          = errors.New("unauthorized")

	// ErrInvalidCredentials is the uniform login failure. Unknown
	// username, non-activated account, wrong password, and store failure
	// all collapse into it so the response never reveals which one
	// happened; the distinction lives only in internal logs.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
