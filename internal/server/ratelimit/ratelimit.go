// Package ratelimit provides per-client token-bucket rate limiting for the
// API endpoints. Oracle-backed routes get hourly budgets with a small burst,
// CRUD routes a per-minute budget, and the health check is unlimited.
package ratelimit

import (
	"sync"
	"time"
)

// staleAfter is how long a client bucket may sit idle before the sweeper
// drops it.
const staleAfter = time.Hour

// bucket tracks one client's budget on one endpoint. Tokens refill
// continuously at limit/window; capacity is the endpoint's burst.
type bucket struct {
	tokens       float64
	capacity     float64
	refillPerSec float64
	lastTick     time.Time
	lastSeen     time.Time
}

// refill credits tokens for the time elapsed since the last tick.
func (b *bucket) refill(now time.Time) {
	b.tokens += now.Sub(b.lastTick).Seconds() * b.refillPerSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastTick = now
}

// resetAt returns when the bucket will be back at full capacity.
func (b *bucket) resetAt(now time.Time) time.Time {
	missing := b.capacity - b.tokens
	if missing <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / b.refillPerSec * float64(time.Second)))
}

// Info describes the outcome of a rate limit check, for response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter enforces per-client, per-endpoint budgets. One bucket exists per
// client+endpoint+method triple; idle buckets are swept periodically.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config

	sweepTicker *time.Ticker
	sweepStop   chan struct{}
}

// NewLimiter creates a limiter for the given configuration. A nil config
// enables limiting with the endpoint defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			EndpointConfigs: DefaultEndpointConfigs(),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.sweepTicker = time.NewTicker(config.CleanupInterval)
		l.sweepStop = make(chan struct{})
		go l.sweepLoop()
	}

	return l
}

// Allow reports whether a request from clientID to the given path and method
// fits the client's remaining budget, consuming one token when it does.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if endpoint.Limit <= 0 {
		// Unlimited endpoint, e.g. the health check.
		return true, Info{Allowed: true}
	}

	now := time.Now()
	key := clientID + ":" + path + ":" + method

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		burst := endpoint.Burst
		if burst <= 0 {
			burst = endpoint.Limit
		}
		b = &bucket{
			tokens:       float64(burst),
			capacity:     float64(burst),
			refillPerSec: float64(endpoint.Limit) / endpoint.Window.Seconds(),
			lastTick:     now,
		}
		l.buckets[key] = b
	}
	b.lastSeen = now
	b.refill(now)

	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}
	remaining := int(b.tokens)
	reset := b.resetAt(now)
	l.mu.Unlock()

	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		info.RetryAfter = time.Until(reset)
		if info.RetryAfter < 0 {
			info.RetryAfter = 0
		}
	}
	return allowed, info
}

func (l *Limiter) sweepLoop() {
	for {
		select {
		case <-l.sweepTicker.C:
			l.sweep(time.Now())
		case <-l.sweepStop:
			return
		}
	}
}

// sweep drops buckets that have been idle long enough that a returning
// client would start fresh anyway.
func (l *Limiter) sweep(now time.Time) {
	cutoff := now.Add(-staleAfter)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the sweep goroutine.
func (l *Limiter) Stop() {
	if l.sweepTicker != nil {
		l.sweepTicker.Stop()
	}
	if l.sweepStop != nil {
		close(l.sweepStop)
	}
}
