// Package jwt implements the stateless bearer-token core: issuing signed,
// time-bounded tokens, validating presented tokens back into identities,
// and carrying the verified identity through the request context.
//
// Tokens are HMAC-SHA512 signed JWTs. A token is self-contained: no
// server-side session backs it, and validity is fully determined by the
// signature and the expiration claim. The subject and a comma-joined
// authorities claim are the only application payload.
//
// # Architecture
//
//   - Service – issues and validates tokens; immutable after creation.
//   - context.go – request-scoped identity slot, written only by the
//     middleware and read by downstream handlers.
//   - middleware.go – HTTP filter that authenticates every request but
//     never rejects one; rejection belongs to the authorization layer.
//   - errors.go – sentinel errors, comparable with errors.Is.
//
// # Usage
//
//	svc, err := jwt.NewFromBase64(cfg.Secret)
//	if err != nil {
//	    // refuse to start: the signing key is not usable
//	}
//
//	token, err := svc.Issue("alice", []string{"ROLE_USER"}, time.Hour)
//
//	identity, err := svc.Validate(token)
//	if err != nil {
//	    // errors.Is against jwt.ErrExpiredToken, jwt.ErrInvalidSignature, ...
//	}
//
//	router.Use(jwt.Middleware(svc, jwt.WithLogger(log)))
//
// Validation classifies failures (malformed, bad signature, expired,
// unsupported) so operators can tell them apart in logs, but callers must
// treat every failure the same way: the request is unauthenticated.
package jwt
