package redis

import "time"

// Config configures the Redis connection used for currency preferences and
// the usage stream. An empty URL disables Redis.
type Config struct {
	URL            string        `env:"REDIS_URL"` // redis://:password@localhost:6379/0
	RetryAttempts  uint64        `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Enabled reports whether a Redis URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
