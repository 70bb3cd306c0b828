package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/iliyamo/tuiter/internal/config"
)

// captureWriter tees the response into buf, keeping at most limit bytes.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	switch remain := cw.limit - cw.size; {
	case cw.limit <= 0, remain >= int64(len(b)):
		cw.buf.Write(b)
	case remain > 0:
		cw.buf.Write(b[:remain])
	}
	// size counts everything written so an oversized body is never stored
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// cacheStore is the part of *redis.Client the response cache uses.
type cacheStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// storedHeaders describe the body.  Everything else (request id, CORS,
// rate-limit counters) belongs to the request being answered and is set by
// the middleware that owns it.
var storedHeaders = []string{
	echo.HeaderContentType,
	echo.HeaderContentEncoding,
	"Content-Language",
	"Cache-Control",
	"ETag",
	echo.HeaderLastModified,
}

func contentHeaders(h http.Header) http.Header {
	out := http.Header{}
	for _, k := range storedHeaders {
		if v := h.Values(k); len(v) > 0 {
			out[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
		}
	}
	return out
}

// cachedResponse is what a cache entry holds.
type cachedResponse struct {
	Status int         `bson:"s"`
	Header http.Header `bson:"h"`
	Body   []byte      `bson:"b"`
}

func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	return bson.Marshal(cachedResponse{Status: status, Header: header, Body: body})
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	var r cachedResponse
	if err := bson.Unmarshal(bs, &r); err != nil || r.Status == 0 {
		return 0, nil, nil, false
	}
	if r.Header == nil {
		r.Header = http.Header{}
	}
	return r.Status, r.Header, r.Body, true
}

// cacheKeyFrom hashes the parts of the request selected by the key strategy
// together with the generation.  The concrete path is used, not the route
// pattern, so /users/1 and /users/2 are different entries.
func cacheKeyFrom(cfg config.CacheConfig, gen string, c echo.Context) string {
	r := c.Request()
	parts := []string{"gen", gen}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = append(parts, "route", r.URL.Path)
	case "method_route":
		parts = append(parts, "method", r.Method, "route", r.URL.Path)
	case "method_route_query":
		parts = append(parts, "method", r.Method, "route", r.URL.Path, "q", r.URL.RawQuery)
	default: // route_query
		parts = append(parts, "route", r.URL.Path, "q", r.URL.RawQuery)
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum)
}

// currentGeneration reads the generation counter.  A missing counter is
// generation 0.
func currentGeneration(ctx context.Context, cfg config.CacheConfig, rdb cacheStore) (string, error) {
	gen, err := rdb.Get(ctx, cfg.GenerationKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// NewRedisCache serves repeated reads from Redis.  Entries keep status,
// content headers and body; a hit carries the body of the miss that stored
// it and the per-request headers of its own request.
// Requests with a non-cached method bump the generation once they succeed,
// so a read that follows a write always reaches the database.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return responseCache(cfg, rdb)
}

func responseCache(cfg config.CacheConfig, rdb cacheStore) echo.MiddlewareFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				if err := next(c); err != nil {
					return err
				}
				if c.Response().Status < http.StatusBadRequest {
					if err := rdb.Incr(context.Background(), cfg.GenerationKey()).Err(); err != nil {
						c.Logger().Warnf("[cache] bump generation: %v", err)
					}
				}
				return nil
			}

			ctx := c.Request().Context()
			gen, err := currentGeneration(ctx, cfg, rdb)
			if err != nil {
				// without a generation fresh and stale cannot be told apart
				return next(c)
			}
			key := cacheKeyFrom(cfg, gen, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					h := c.Response().Header()
					for k, vals := range contentHeaders(hdr) {
						h[k] = vals
					}
					h.Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					_, _ = c.Response().Write(body)
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || (maxBody > 0 && cw.size > maxBody) {
				return nil
			}
			payload, err := encodePayload(cw.status, contentHeaders(c.Response().Header()), cw.buf.Bytes())
			if err == nil {
				err = rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
			if err != nil {
				c.Logger().Warnf("[cache] store %s: %v", key, err)
			}
			return nil
		}
	}
}
