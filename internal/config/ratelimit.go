package config

import "time"

// RateLimitConfig drives the Redis token bucket.  Requests are anonymous, so
// buckets are keyed by client IP, by route, or by both (ip_route).
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int           // bucket size
	RefillTokens   int           // tokens added every RefillInterval
	RefillInterval time.Duration
	TTL            time.Duration // idle buckets expire after this
	KeyStrategy    string
	Prefix         string
	Debug          bool // log Redis failures and expose the bucket key
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables and clamps them to
// usable values.  RATE_LIMIT_BURST and RATE_LIMIT_REFILL_EVERY are
// shorthands for capacity and a one-token refill.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", false),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
	if burst := envInt("RATE_LIMIT_BURST", 0); burst > 0 {
		cfg.Capacity = burst
	}
	if every := envDur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
		cfg.RefillTokens = 1
		cfg.RefillInterval = every
	}

	cfg.Capacity = max(cfg.Capacity, 1)
	cfg.RefillTokens = max(cfg.RefillTokens, 1)
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	// a bucket must outlive a few refills or it resets to full too early
	cfg.TTL = max(cfg.TTL, 5*cfg.RefillInterval)
	return cfg
}
