// Package config loads application configuration from environment
// variables into typed structs using `env` tags, with optional .env
// file support for local development.
//
// Configuration is read once at startup and cached per type, so every
// caller observes the same immutable values for the lifetime of the
// process.
//
// Usage:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
