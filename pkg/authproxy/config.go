package authproxy

import "time"

// Config configures the upstream auth service client.
type Config struct {
	BaseURL          string        `env:"AUTH_UPSTREAM_URL" envDefault:"http://localhost:3000"`
	BasePath         string        `env:"AUTH_UPSTREAM_BASE_PATH" envDefault:"/api/auth"`
	Timeout          time.Duration `env:"AUTH_UPSTREAM_TIMEOUT" envDefault:"10s"`
	MaxBodySize      int64         `env:"AUTH_MAX_BODY_SIZE" envDefault:"1048576"`
	MaxErrorBodySize int64         `env:"AUTH_MAX_ERROR_BODY_SIZE" envDefault:"65536"`
	BreakerFailures  int           `env:"AUTH_BREAKER_FAILURES" envDefault:"5"`
	BreakerRecovery  time.Duration `env:"AUTH_BREAKER_RECOVERY" envDefault:"30s"`
}
