package config

import "time"

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is
// disabled.  Methods lists the HTTP methods to cache.  KeyStrategy
// determines which parts of the request contribute to the cache key.
// When InvalidateOnWrite is set, every successful request with a
// non-cached method (a create, update or delete) drops all entries under
// Prefix, so listings never outlive the rows they show by more than one
// write.
type CacheConfig struct {
	Enabled           bool
	Methods           map[string]bool
	TTL               time.Duration
	KeyStrategy       string
	Prefix            string
	MaxBodyBytes      int
	InvalidateOnWrite bool
}

// LoadCacheConfig reads CACHE_* variables.  Defaults are used when
// variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:           envBool("CACHE_ENABLED", true),
		Methods:           parseMethods(getenv("CACHE_METHODS", "GET")),
		TTL:               envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:       getenv("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:            getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes:      envInt("CACHE_MAX_BODY_BYTES", 1<<20),
		InvalidateOnWrite: envBool("CACHE_INVALIDATE_ON_WRITE", true),
	}
}
