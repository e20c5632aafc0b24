package jwt

import "context"

// identityContextKey is a private type so no other package can write the
// authentication slot. The identity travels with the request context and
// is therefore scoped to a single request; concurrent requests never
// observe each other's identity.
type identityContextKey struct{}

// SetIdentity returns a context carrying the verified identity of the
// current request. It is written once per request, by the authentication
// middleware.
func SetIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// CurrentIdentity returns the verified identity of the current request.
// The second return value is false when the request is unauthenticated.
func CurrentIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}

// CurrentSubject returns the subject of the current request's identity,
// or false when the request is unauthenticated.
func CurrentSubject(ctx context.Context) (string, bool) {
	identity, ok := CurrentIdentity(ctx)
	if !ok || identity.Subject == "" {
		return "", false
	}
	return identity.Subject, true
}
