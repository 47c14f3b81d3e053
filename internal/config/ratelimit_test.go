package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfig_Floors(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()

	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL, "ttl floored to five refill intervals")
}

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, Post ,HEAD")
	assert.True(t, m["GET"])
	assert.True(t, m["POST"])
	assert.True(t, m["HEAD"])
	assert.False(t, m["PUT"])
}

func TestEnvBool(t *testing.T) {
	t.Setenv("X_FLAG", "yes")
	assert.True(t, envBool("X_FLAG", false))

	t.Setenv("X_FLAG", "off")
	assert.False(t, envBool("X_FLAG", true))

	t.Setenv("X_FLAG", "garbage")
	assert.True(t, envBool("X_FLAG", true))
}
