package opensearch

// Config configures the OpenSearch usage index. No addresses disables it.
type Config struct {
	Addresses    []string `env:"OPENSEARCH_ADDRESSES"`
	Username     string   `env:"OPENSEARCH_USERNAME"`
	Password     string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries   int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry bool     `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`
	UsageIndex   string   `env:"OPENSEARCH_USAGE_INDEX" envDefault:"usage-events"`
}

// Enabled reports whether at least one node address is configured.
func (c Config) Enabled() bool {
	return len(c.Addresses) > 0
}
