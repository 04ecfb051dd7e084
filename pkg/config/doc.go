// Package config loads typed configuration from environment variables.
//
// Load parses `env`/`envDefault` struct tags with github.com/caarlos0/env and,
// unless an explicit environment map is given, first reads .env files with
// github.com/joho/godotenv. Fields may use any type env supports, including
// encoding.TextUnmarshaler implementations such as validation.CascadeMode.
//
// # Usage
//
//	var cfg engine.Config
//	config.MustLoad(&cfg, config.WithPrefix("SIGNUP_"))
//	v := engine.New[Signup](engine.WithConfig(cfg))
package config
