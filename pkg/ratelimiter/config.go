package ratelimiter

import (
	"fmt"
	"time"
)

// Config defines the token bucket kept for every key. Rate is in tokens per
// second and Burst is the bucket capacity. Buckets unused for IdleTTL are
// forgotten.
type Config struct {
	Rate    float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	Burst   int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	MaxKeys int           `env:"RATE_LIMIT_MAX_KEYS" envDefault:"10000"`
	IdleTTL time.Duration `env:"RATE_LIMIT_IDLE_TTL" envDefault:"10m"`
}

func (c Config) validate() error {
	if c.Rate <= 0 {
		return fmt.Errorf("%w: rate must be positive, got %v", ErrInvalidConfig, c.Rate)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("%w: burst must be positive, got %d", ErrInvalidConfig, c.Burst)
	}
	if c.MaxKeys <= 0 {
		return fmt.Errorf("%w: max keys must be positive, got %d", ErrInvalidConfig, c.MaxKeys)
	}
	if c.IdleTTL <= 0 {
		return fmt.Errorf("%w: idle ttl must be positive, got %v", ErrInvalidConfig, c.IdleTTL)
	}
	return nil
}
