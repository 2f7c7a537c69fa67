package redis

import "time"

// Config configures the Redis client. An empty ConnectionURL disables Redis;
// the event dispatcher then falls back to a no-op.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"` // e.g. "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}
