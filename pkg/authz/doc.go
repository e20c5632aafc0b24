// Package authz enforces role-based access control over an ordered list
// of route rules.
//
// A Rule pairs a path pattern (exact, or a trailing "/*" prefix wildcard)
// with one of three requirements: public, any authenticated identity, or
// at least one of a set of authorities. Rules are evaluated
// first-match-wins, so explicit public routes are listed before a
// catch-all and the authenticate-by-default catch-all goes last. Paths
// matching no rule require authentication.
//
// The policy middleware runs after the authentication filter and is the
// only place requests are rejected: 401 for a protected route without an
// identity, 403 for an identity lacking every required authority. Both
// rejection bodies are uniform and carry no internal detail.
//
//	policy, err := authz.NewPolicy([]authz.Rule{
//	    authz.Public("/api/authenticate"),
//	    authz.Public("/api/signup"),
//	    authz.RequireAnyAuthority("/api/user/*", "ROLE_ADMIN"),
//	    authz.Authenticated("/*"),
//	})
//	router.Use(policy.Middleware)
package authz
