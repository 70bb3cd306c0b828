package config

import (
	"strings"
	"time"
)

// CacheConfig drives the Redis response cache.  Only the methods listed in
// Methods are served from cache.  Every successful request with any other
// method bumps the generation counter under Prefix, which orphans all
// entries written before it.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string // route, method_route, method_route_query or route_query
	Prefix       string
	MaxBodyBytes int // larger responses are passed through uncached
}

// LoadCacheConfig reads the CACHE_* variables.  Caching is off by default.
func LoadCacheConfig() CacheConfig {
	methods := map[string]bool{}
	for _, m := range splitList(envStr("CACHE_METHODS", "GET")) {
		methods[strings.ToUpper(m)] = true
	}
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", false),
		Methods:      methods,
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

// GenerationKey is the Redis key of the counter that invalidates the cache.
func (c CacheConfig) GenerationKey() string {
	return c.Prefix + ":gen"
}
