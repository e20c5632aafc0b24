// Package handler wires the HTTP surface: the chi router, the bearer
// token filter, the route authorization policy, CORS, and the JSON
// endpoints for login, signup, and account lookup.
//
// The middleware order matters. The token filter runs before the
// authorization policy so the policy can distinguish an anonymous
// request (401) from an authenticated one lacking authority (403); the
// filter itself never rejects a request.
package handler
