package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sacmovies/campus-booking/internal/config"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"items":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayload_TooShort(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestDecodePayload_CorruptHeaderLength(t *testing.T) {
	bs, err := encodePayload(http.StatusOK, http.Header{}, nil)
	require.NoError(t, err)
	bs[7] = 0xFF // header length now exceeds payload

	_, _, _, ok := decodePayload(bs)
	assert.False(t, ok)
}

func cacheCtx(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(strings.SplitN(target, "?", 2)[0])
	return c
}

// cacheCtxOnRoute mimics a request resolved onto a parameterized route:
// c.Path() holds the pattern while the request URL holds the real id.
func cacheCtxOnRoute(target, pattern string) echo.Context {
	c := cacheCtx(target)
	c.SetPath(pattern)
	return c
}

func TestCacheKeyFrom_StableAndPrefixed(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	k1 := cacheKeyFrom(cfg, cacheCtx("/v1/movies?x=1"))
	k2 := cacheKeyFrom(cfg, cacheCtx("/v1/movies?x=1"))
	assert.Equal(t, k1, k2, "key must be stable across requests")
	assert.True(t, strings.HasPrefix(k1, "cache:"))

	k3 := cacheKeyFrom(cfg, cacheCtx("/v1/movies?x=2"))
	assert.NotEqual(t, k1, k3, "query participates in the key")
}

func TestCacheKeyFrom_DistinctIDsOnOneRoute(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	k7 := cacheKeyFrom(cfg, cacheCtxOnRoute("/v1/shows/7", "/v1/shows/:id"))
	k9 := cacheKeyFrom(cfg, cacheCtxOnRoute("/v1/shows/9", "/v1/shows/:id"))
	assert.NotEqual(t, k7, k9, "each id gets its own cache entry")
}

func TestStoreEligible(t *testing.T) {
	assert.True(t, storeEligible(http.StatusOK, 100, 0), "no limit stores any size")
	assert.True(t, storeEligible(http.StatusOK, 100, 100))
	assert.False(t, storeEligible(http.StatusOK, 101, 100), "oversized body is never cached")
	assert.False(t, storeEligible(http.StatusNotFound, 10, 100))
}
