package ratelimiter

import (
	"errors"
	"fmt"
	"time"
)

// Config is the token bucket configuration. A bucket holds up to Capacity
// tokens and regains RefillRate tokens every RefillInterval.
type Config struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"10"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"6s"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("capacity must be positive, got %d", c.Capacity))
	case c.RefillRate <= 0:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("refill rate must be positive, got %d", c.RefillRate))
	case c.RefillInterval <= 0:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("refill interval must be positive, got %v", c.RefillInterval))
	}
	return nil
}
