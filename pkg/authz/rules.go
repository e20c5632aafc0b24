package authz

import "strings"

// Access is the requirement a route rule places on matching requests.
type Access int

const (
	// AccessPublic allows the request unconditionally; no identity check
	// is performed at all.
	AccessPublic Access = iota
	// AccessAuthenticated requires any verified identity.
	AccessAuthenticated
	// AccessAuthorities requires an identity holding at least one of the
	// rule's authorities.
	AccessAuthorities
)

// Rule maps a path pattern to an access requirement. A pattern is either
// an exact path or a prefix wildcard ending in "/*", which matches every
// path strictly below the prefix but not the prefix itself.
type Rule struct {
	Pattern     string
	Access      Access
	Authorities []string
}

// Public allows any request to paths matching pattern.
func Public(pattern string) Rule {
	return Rule{Pattern: pattern, Access: AccessPublic}
}

// Authenticated requires a verified identity for paths matching pattern.
func Authenticated(pattern string) Rule {
	return Rule{Pattern: pattern, Access: AccessAuthenticated}
}

// RequireAnyAuthority requires an identity holding at least one of the
// given authorities for paths matching pattern.
func RequireAnyAuthority(pattern string, authorities ...string) Rule {
	return Rule{Pattern: pattern, Access: AccessAuthorities, Authorities: authorities}
}

// match reports whether the rule's pattern covers the request path.
func (r Rule) match(path string) bool {
	if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}
