package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/config"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          30 * time.Second,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func newCacheContext(method, target, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	return c, rec
}

func TestCacheKeyFrom(t *testing.T) {
	cfg := testCacheConfig()

	a, _ := newCacheContext(http.MethodGet, "/v1/listings?location=kigali", "/v1/listings")
	b, _ := newCacheContext(http.MethodGet, "/v1/listings?location=kigali", "/v1/listings")
	assert.Equal(t, cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, b))

	c, _ := newCacheContext(http.MethodGet, "/v1/listings?location=nairobi", "/v1/listings")
	assert.NotEqual(t, cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, c))

	// The "route" strategy ignores the query string.
	cfg.KeyStrategy = "route"
	assert.Equal(t, cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, c))
}

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"data":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)

	_, _, _, ok = decodePayload([]byte("short"))
	assert.False(t, ok)
}

func TestCacheHitServesStoredResponse(t *testing.T) {
	cfg := testCacheConfig()
	rdb, mock := redismock.NewClientMock()

	c, rec := newCacheContext(http.MethodGet, "/v1/listings?page=1", "/v1/listings")
	key := cacheKeyFrom(cfg, c)

	stored := []byte(`{"data":[{"id":1}]}`)
	payload, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, stored)
	require.NoError(t, err)
	mock.ExpectGet(key).SetVal(string(payload))

	handlerCalled := false
	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		handlerCalled = true
		return c.String(http.StatusOK, "fresh")
	})
	require.NoError(t, h(c))

	assert.False(t, handlerCalled, "hit must not reach the handler")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(stored), rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheMissStoresResponse(t *testing.T) {
	cfg := testCacheConfig()
	rdb, mock := redismock.NewClientMock()

	c, rec := newCacheContext(http.MethodGet, "/v1/listings?page=1", "/v1/listings")
	key := cacheKeyFrom(cfg, c)

	mock.ExpectGet(key).RedisNil()
	// The stored payload embeds captured headers, so match on key and
	// TTL only.
	mock.CustomMatch(func(expected, actual []interface{}) error {
		return nil
	}).ExpectSetEx(key, "", cfg.TTL).SetVal("OK")

	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{"data":[]}`))
	})
	require.NoError(t, h(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, `{"data":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheSkipsUnlistedMethods(t *testing.T) {
	cfg := testCacheConfig()
	rdb, mock := redismock.NewClientMock()

	c, rec := newCacheContext(http.MethodPost, "/v1/bookings", "/v1/bookings")
	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		return c.String(http.StatusCreated, "created")
	})
	require.NoError(t, h(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheErrorResponsesNotStored(t *testing.T) {
	cfg := testCacheConfig()
	rdb, mock := redismock.NewClientMock()

	c, rec := newCacheContext(http.MethodGet, "/v1/listings/999", "/v1/listings/:id")
	mock.ExpectGet(cacheKeyFrom(cfg, c)).RedisNil()

	h := NewRedisCache(cfg, rdb)(func(c echo.Context) error {
		return c.JSONBlob(http.StatusNotFound, []byte(`{"error":"listing not found"}`))
	})
	require.NoError(t, h(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	// Only 200 responses are stored, so no SetEx expectation exists.
	assert.NoError(t, mock.ExpectationsWereMet())
}
