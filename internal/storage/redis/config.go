package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// MaxTxRetries bounds optimistic transaction retries when a watched
	// key changes between read and commit
	MaxTxRetries int

	// LeaseTTL is the lifetime of the single-writer lease New acquires.
	// The lease is renewed at a third of this interval.
	LeaseTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		MaxTxRetries: 5,
		LeaseTTL:     15 * time.Second,
	}
}
