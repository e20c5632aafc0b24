package authz

import "errors"

var (
	ErrEmptyPattern  = errors.New("authz: rule with empty pattern")
	ErrNoAuthorities = errors.New("authz: authority rule without authorities")
)
