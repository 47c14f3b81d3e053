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
	"github.com/sacmovies/campus-booking/internal/utils"
)

func limiterCtx(authorization string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/bookings")
	return c
}

func TestCurrentUserID_FromContext(t *testing.T) {
	c := limiterCtx("")
	c.Set("user_id", float64(7))
	assert.Equal(t, "7", currentUserID(c))
}

func TestCurrentUserID_FromBearerToken(t *testing.T) {
	at, err := utils.NewAccessToken("limiter-secret", 42, "student", 5)
	require.NoError(t, err)

	c := limiterCtx("Bearer " + at.Token)
	assert.Equal(t, "42", currentUserID(c))
}

func TestCurrentUserID_AnonFallback(t *testing.T) {
	assert.Equal(t, "anon", currentUserID(limiterCtx("")))
	assert.Equal(t, "anon", currentUserID(limiterCtx("Bearer not-a-jwt")))
	assert.Equal(t, "anon", currentUserID(limiterCtx("Basic abc")))
}

func TestBuildRateKey_UserStrategySeesBearerSubject(t *testing.T) {
	at, err := utils.NewAccessToken("limiter-secret", 42, "student", 5)
	require.NoError(t, err)
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user_route"}

	key := buildRateKey(cfg, limiterCtx("Bearer "+at.Token))
	assert.True(t, strings.Contains(key, "user:42"), "key %q must carry the token subject", key)

	anon := buildRateKey(cfg, limiterCtx(""))
	assert.True(t, strings.Contains(anon, "user:anon"))
	assert.NotEqual(t, key, anon)
}
