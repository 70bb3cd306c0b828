package config

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisConfig locates the Redis server shared by the cache and the rate
// limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// LoadRedisConfig reads REDIS_HOST + REDIS_PORT, or REDIS_ADDR when either
// is missing, plus REDIS_PASSWORD, REDIS_DB and REDIS_TLS.
func LoadRedisConfig() RedisConfig {
	addr := envStr("REDIS_ADDR", "localhost:6379")
	if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
		addr = host + ":" + port
	}
	return RedisConfig{
		Addr:     addr,
		Password: envStr("REDIS_PASSWORD", ""),
		DB:       envInt("REDIS_DB", 0),
		TLS:      envBool("REDIS_TLS", false),
	}
}

// RedisNeeded reports whether any Redis-backed middleware is enabled.
func RedisNeeded(cache CacheConfig, rl RateLimitConfig) bool {
	return cache.Enabled || rl.Enabled
}

// NewRedisClient connects and pings.  It returns nil when the server cannot
// be reached so callers run without cache and rate limit.
func NewRedisClient(cfg RedisConfig, log *logrus.Entry) *redis.Client {
	opts := &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", cfg.Addr).Warn("redis unavailable; cache and rate limit disabled")
		_ = client.Close()
		return nil
	}
	return client
}
