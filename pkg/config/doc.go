// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is read once on first use; values
// already present in the environment take precedence. Struct fields are
// parsed with caarlos0/env, so `env`, `envDefault` and `,required` tags
// apply, and nested structs are parsed recursively.
//
//	type Config struct {
//		Addr  string `env:"HTTP_ADDR" envDefault:":8080"`
//		Token token.Config
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Load caches the result per type, so every caller of Load[Config] sees
// the same values. Parse skips the cache.
package config
