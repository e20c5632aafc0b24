// Package ratelimit throttles repeated attempts per key using a
// Redis-backed fixed-window counter. It guards the login endpoint
// against credential stuffing without keeping any in-process state.
package ratelimit
