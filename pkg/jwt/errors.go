package jwt

import "errors"

var (
	ErrMissingSigningKey  = errors.New("jwt: missing signing key")
	ErrInvalidSigningKey  = errors.New("jwt: signing key is not valid base64")
	ErrSigningKeyTooShort = errors.New("jwt: signing key shorter than 64 bytes")
	ErrEmptySubject       = errors.New("jwt: empty subject")
	ErrNonPositiveTTL     = errors.New("jwt: ttl must be positive")
	ErrSigningFailed      = errors.New("jwt: failed to sign token")

	ErrInvalidToken     = errors.New("jwt: invalid token")
	ErrMalformedToken   = errors.New("jwt: malformed token")
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	ErrExpiredToken     = errors.New("jwt: token is expired")
	ErrUnsupportedToken = errors.New("jwt: unsupported token")
)
