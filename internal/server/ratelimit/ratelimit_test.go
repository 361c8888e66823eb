package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		CheckLimit:    3,
		CheckWindow:   time.Minute,
		CheckBurst:    3,
		DefaultLimit:  5,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
	}
}

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/check_grammar", "POST")
		require.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 3, info.Limit)
	}

	allowed, info := l.Allow("10.0.0.1", "/check_grammar", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/check_grammar", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.1", "/check_grammar", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/check_grammar", "POST")
	assert.True(t, allowed, "a different client should not be affected")
}

func TestLimiter_TiersAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/check_grammar", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.1", "/check_grammar", "POST")
	require.False(t, allowed)

	// Reads keep working after the check budget is spent.
	allowed, info := l.Allow("10.0.0.1", "/checks/abc", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 5, info.Limit)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("10.0.0.1", "/health", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/check_grammar", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.1"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/check_grammar", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Blacklist["10.0.0.9"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.9", "/check_grammar", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Refills(t *testing.T) {
	cfg := testConfig()
	cfg.CheckLimit = 10
	cfg.CheckWindow = 100 * time.Millisecond
	cfg.CheckBurst = 1
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/check_grammar", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/check_grammar", "POST")
	require.False(t, allowed)

	// 100 requests per second refill rate, so one token is back within
	// a few tens of milliseconds.
	time.Sleep(50 * time.Millisecond)
	allowed, _ = l.Allow("10.0.0.1", "/check_grammar", "POST")
	assert.True(t, allowed)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 30, cfg.CheckLimit)
	assert.Equal(t, time.Minute, cfg.CheckWindow)
	assert.Equal(t, 10, cfg.CheckBurst)
	assert.Equal(t, 300, cfg.DefaultLimit)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("RATE_LIMIT_CHECK_LIMIT", "5")
	t.Setenv("RATE_LIMIT_CHECK_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()

	assert.Equal(t, 5, cfg.CheckLimit)
	assert.Equal(t, 30*time.Second, cfg.CheckWindow)
	assert.True(t, cfg.Whitelist["10.0.0.1"])
	assert.True(t, cfg.Whitelist["10.0.0.2"])
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}
