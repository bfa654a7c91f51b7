// Package config loads typed configuration from environment variables.
//
// Each package that needs settings declares a struct with `env` tags
// (github.com/caarlos0/env/v11) and loads it once:
//
//	type Config struct {
//		DatabaseURL string        `env:"DATABASE_URL"`
//		Timeout     time.Duration `env:"USAGE_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Before the first Load the package reads `.env` from the working directory
// (github.com/joho/godotenv); variables already present in the environment
// win. UseEnvFiles changes which files are read. Parsed values are cached per
// type; Reset clears the cache in tests.
package config
