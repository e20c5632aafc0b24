package jwt

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Authorities are serialized into a single custom claim as a comma-joined
// list, which keeps issued tokens compatible with existing consumers.
const (
	authoritiesClaim     = "auth"
	authoritiesDelimiter = ","
)

// minKeySize is the minimum signing key length in bytes. HS512 uses
// SHA-512, so anything shorter than the hash output weakens the MAC.
const minKeySize = 64

// signingMethod is fixed for the lifetime of the service. There is exactly
// one token variant; tokens carrying any other algorithm are rejected
// before their claims are inspected.
var signingMethod = jwtlib.SigningMethodHS512

// Identity is the verified result of decoding a token: the subject plus
// the set of authorities granted to it. It is constructed fresh for each
// validated token and is never persisted.
type Identity struct {
	Subject     string
	Authorities []string
}

// HasAnyAuthority reports whether the identity holds at least one of the
// required authorities.
func (i Identity) HasAnyAuthority(required ...string) bool {
	for _, want := range required {
		for _, have := range i.Authorities {
			if have == want {
				return true
			}
		}
	}
	return false
}

// claims is the wire shape of an issued token.
type claims struct {
	Authorities string `json:"auth,omitempty"`
	jwtlib.RegisteredClaims
}

// Service signs and verifies bearer tokens using HMAC-SHA512. The signing
// key is loaded once and kept in memory only; a Service is immutable and
// safe for concurrent use.
type Service struct {
	signingKey []byte
}

// New creates a token service from raw key material. The key must be at
// least 64 bytes.
func New(signingKey []byte) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	if len(signingKey) < minKeySize {
		return nil, ErrSigningKeyTooShort
	}

	return &Service{signingKey: signingKey}, nil
}

// NewFromBase64 decodes a base64-encoded signing secret and creates a token
// service from it. Configuration is expected to carry the secret base64
// encoded; a secret that does not decode must prevent startup.
func NewFromBase64(secret string) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSigningKey
	}

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, errors.Join(ErrInvalidSigningKey, err)
	}

	return New(key)
}

// Issue creates a signed token for the given subject carrying the given
// authorities, expiring ttl from now. Two calls with identical inputs at
// different instants produce different tokens because the expiration and
// issued-at claims differ.
func (s *Service) Issue(subject string, authorities []string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	if ttl <= 0 {
		return "", ErrNonPositiveTTL
	}

	now := time.Now()
	token := jwtlib.NewWithClaims(signingMethod, claims{
		Authorities: strings.Join(authorities, authoritiesDelimiter),
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", errors.Join(ErrSigningFailed, err)
	}

	return signed, nil
}

// Validate verifies a token string and returns the identity it carries.
// The signature is verified before any claim is acted on, and expiration
// is checked against the local clock with zero leeway: a token is invalid
// at exactly its expiry instant. A missing or empty authorities claim
// yields an identity with an empty authority set, not an error.
//
// Failures are classified into the package sentinel errors so callers can
// log the cause; all of them mean the token must be treated as absent.
func (s *Service) Validate(tokenString string) (Identity, error) {
	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{signingMethod.Alg()}),
		jwtlib.WithExpirationRequired(),
	)

	var c claims
	_, err := parser.ParseWithClaims(tokenString, &c, func(t *jwtlib.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil {
		return Identity{}, classifyParseError(err)
	}

	return Identity{
		Subject:     c.Subject,
		Authorities: splitAuthorities(c.Authorities),
	}, nil
}

// classifyParseError collapses golang-jwt error chains into this package's
// sentinel taxonomy. Signature problems take precedence over claim
// problems so a tampered token is never reported as merely expired.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return errors.Join(ErrInvalidSignature, err)
	case errors.Is(err, jwtlib.ErrTokenMalformed):
		return errors.Join(ErrMalformedToken, err)
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	case errors.Is(err, jwtlib.ErrTokenUnverifiable), errors.Is(err, jwtlib.ErrTokenRequiredClaimMissing):
		return errors.Join(ErrUnsupportedToken, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}

func splitAuthorities(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, authoritiesDelimiter)
}
