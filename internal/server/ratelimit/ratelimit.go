// Package ratelimit throttles clients using per-client token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket refilled continuously at a fixed rate.
type bucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// take consumes one token if available. Returns false when the bucket
// is empty.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// status reports the remaining tokens and when the bucket will be full,
// without consuming anything.
func (b *bucket) status() (remaining int, resetTime time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	remaining = int(b.tokens)
	now := b.lastRefill
	if b.tokens < float64(b.capacity) {
		needed := float64(b.capacity) - b.tokens
		resetTime = now.Add(time.Duration(needed / b.refillRate * float64(time.Second)))
	} else {
		resetTime = now
	}
	return remaining, resetTime
}

// refill adds tokens for the elapsed time. Caller must hold b.mu.
func (b *bucket) refill() {
	now := time.Now()
	elapsed := now.Sub(b.lastRefill)
	b.tokens = min(float64(b.capacity), b.tokens+elapsed.Seconds()*b.refillRate)
	b.lastRefill = now
}

// Info describes the rate limit decision for one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages token buckets for all clients. Buckets are keyed by
// client plus limit tier, so a client burning its check budget can still
// read back earlier results.
type Limiter struct {
	buckets map[string]*bucket
	mu      sync.RWMutex
	config  *Config

	lastAccess map[string]time.Time
	accessMu   sync.Mutex

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a limiter with the given configuration. A nil
// config gets the defaults from LoadConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = LoadConfig()
	}

	l := &Limiter{
		buckets:    make(map[string]*bucket),
		config:     config,
		lastAccess: make(map[string]time.Time),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow decides whether a request from clientID may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}
	if l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	lim := l.config.limitFor(path, method)
	if lim.requests <= 0 {
		// Unlimited tier (health checks).
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + lim.name
	b := l.getBucket(key, lim)

	l.accessMu.Lock()
	l.lastAccess[key] = time.Now()
	l.accessMu.Unlock()

	allowed := b.take()
	remaining, resetTime := b.status()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(resetTime), 0)
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      lim.requests,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) getBucket(key string, lim limit) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := lim.burst
	if capacity <= 0 {
		capacity = lim.requests
	}
	b = newBucket(capacity, float64(lim.requests)/lim.window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.removeStaleBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// removeStaleBuckets drops buckets idle for over an hour so the map
// does not grow without bound.
func (l *Limiter) removeStaleBuckets() {
	cutoff := time.Now().Add(-1 * time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accessMu.Lock()
	defer l.accessMu.Unlock()

	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
