package cache

import "time"

// Config holds configuration for a TTL cache.
type Config struct {
	// TTLSeconds is how long entries stay fresh. 0 disables caching.
	TTLSeconds int `mapstructure:"cache_ttl" default:"300"`
}

// TTL returns the configured lifetime as a duration.
func (c Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TTLSeconds) * time.Second
}
