package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/tuiter/internal/config"
)

// tokenBucket refills and takes one token atomically.  The bucket is a hash
// {tokens, last_refill_ms} that expires when idle.
//
//	KEYS[1]  bucket key
//	ARGV     now_ms, capacity, refill_tokens, interval_ms, ttl_seconds
//	returns  {allowed 0|1, tokens left, retry_after_ms}
var tokenBucket = redis.NewScript(`
local now, cap, step, every, ttl = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4]), tonumber(ARGV[5])
local h = redis.call('HMGET', KEYS[1], 'tokens', 'last_refill_ms')
local left, since = tonumber(h[1]) or cap, tonumber(h[2]) or now
local n = math.floor(math.max(0, now - since) / every)
if n > 0 then
	left = math.min(cap, left + n * step)
	since = since + n * every
end
local ok, wait = 0, math.max(0, every - (now - since))
if left > 0 then
	ok, wait, left = 1, 0, left - 1
end
redis.call('HSET', KEYS[1], 'tokens', left, 'last_refill_ms', since)
redis.call('EXPIRE', KEYS[1], ttl)
return {ok, left, wait}
`)

// bucketState is the decoded script reply.
type bucketState struct {
	allowed   bool
	remaining int64
	retry     time.Duration
}

func parseBucketState(v any) (bucketState, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 {
		return bucketState{}, false
	}
	return bucketState{
		allowed:   asInt64(arr[0]) == 1,
		remaining: asInt64(arr[1]),
		retry:     time.Duration(asInt64(arr[2])) * time.Millisecond,
	}, true
}

// NewTokenBucket limits requests with a token bucket kept in Redis.  An
// exhausted bucket answers 429 through the error handler with a Retry-After
// header.  Redis failures let the request through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	limit := strconv.Itoa(cfg.Capacity)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			reply, err := tokenBucket.Run(c.Request().Context(), rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Result()
			if err != nil {
				if cfg.Debug {
					c.Logger().Warnf("[ratelimit] redis error for key=%s: %v", key, err)
				}
				return next(c)
			}
			st, ok := parseBucketState(reply)
			if !ok {
				if cfg.Debug {
					c.Logger().Warnf("[ratelimit] unexpected script reply for key=%s: %#v", key, reply)
				}
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(st.remaining, 10))
			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}
			if !st.allowed {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(st.retry.Seconds()))))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	}
	n, _ := strconv.ParseInt(fmt.Sprint(v), 10, 64)
	return n
}

// buildRateKey derives the bucket key.  Requests carry no identity, so
// buckets are per client IP, per route, or both (the default).
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	route := c.Request().Method + " " + c.Path()

	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "route":
		parts = append(parts, "route", route)
	default:
		parts = append(parts, "ip", ip, "route", route)
	}
	return strings.Join(parts, ":")
}
