package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// limit is one throttling tier.
type limit struct {
	name     string
	requests int
	window   time.Duration
	burst    int
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool

	// CheckLimit bounds POST /check_grammar, which fans out to hosted
	// model calls and is by far the most expensive route.
	CheckLimit  int
	CheckWindow time.Duration
	CheckBurst  int

	// DefaultLimit applies to every other route except /health.
	DefaultLimit  int
	DefaultWindow time.Duration

	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         enabled,
		CheckLimit:      getEnvInt("RATE_LIMIT_CHECK_LIMIT", 30),
		CheckWindow:     getEnvDuration("RATE_LIMIT_CHECK_WINDOW", time.Minute),
		CheckBurst:      getEnvInt("RATE_LIMIT_CHECK_BURST", 10),
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
	}
}

// limitFor picks the tier for a request. Health checks are unlimited.
func (c *Config) limitFor(path, method string) limit {
	if path == "/health" && method == "GET" {
		return limit{}
	}
	if path == "/check_grammar" && method == "POST" {
		return limit{name: "check", requests: c.CheckLimit, window: c.CheckWindow, burst: c.CheckBurst}
	}
	return limit{name: "default", requests: c.DefaultLimit, window: c.DefaultWindow}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
