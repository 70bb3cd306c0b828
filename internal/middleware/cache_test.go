package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tuiter/internal/config"
)

// memStore keeps cache entries in a map.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memStore) SetEx(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *memStore) Incr(_ context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestResponseCache_HitKeepsPerRequestHeaders(t *testing.T) {
	cfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		Prefix:       "cache",
		TTL:          time.Minute,
		MaxBodyBytes: 1 << 20,
	}
	store := newMemStore()

	e := echo.New()
	e.Use(RequestID(), echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: []string{"*"}}), responseCache(cfg, store))
	e.GET("/users", func(c echo.Context) error {
		c.Response().Header().Set("ETag", `"v1"`)
		return c.JSON(http.StatusOK, []string{"alice"})
	})
	e.POST("/users", okJSON)

	do := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/users", nil)
		req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	miss := do(http.MethodGet)
	hit := do(http.MethodGet)

	require.Equal(t, "MISS", miss.Header().Get("X-Cache"))
	require.Equal(t, "HIT", hit.Header().Get("X-Cache"))
	assert.Equal(t, http.StatusOK, hit.Code)
	assert.Equal(t, miss.Body.String(), hit.Body.String())
	assert.Equal(t, miss.Header().Get(echo.HeaderContentType), hit.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []string{`"v1"`}, hit.Header().Values("ETag"))

	for _, rec := range []*httptest.ResponseRecorder{miss, hit} {
		assert.Equal(t, []string{"*"}, rec.Header().Values(echo.HeaderAccessControlAllowOrigin))
		assert.Len(t, rec.Header().Values(echo.HeaderXRequestID), 1)
	}
	assert.NotEqual(t, miss.Header().Get(echo.HeaderXRequestID), hit.Header().Get(echo.HeaderXRequestID))

	// entries hold content headers only
	for key, raw := range store.data {
		if key == cfg.GenerationKey() {
			continue
		}
		_, hdr, _, ok := decodePayload([]byte(raw))
		require.True(t, ok)
		assert.Empty(t, hdr.Get(echo.HeaderXRequestID))
		assert.Empty(t, hdr.Get(echo.HeaderAccessControlAllowOrigin))
		assert.Empty(t, hdr.Get(echo.HeaderVary))
		assert.Empty(t, hdr.Get("X-Cache"))
	}

	require.Equal(t, http.StatusOK, do(http.MethodPost).Code)
	assert.Equal(t, "1", store.data[cfg.GenerationKey()])
	assert.Equal(t, "MISS", do(http.MethodGet).Header().Get("X-Cache"))
}
