// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. Load
// reads the optional default .env file once, parses the environment into a
// tagged struct and caches the result per type, so every component can call
// Load for its own Config without re-parsing:
//
//	var cfg authproxy.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// MustLoad panics instead of returning an error. LoadEnv loads explicit
// .env files. Reset clears the cache between tests.
//
// Errors are sentinels that can be compared with errors.Is:
// ErrParsingConfig, ErrNilPointer, ErrConfigNotLoaded and ErrLoadEnvFile.
package config
