// Package security holds the authentication and abuse-prevention
// primitives for CodeDrill: the fixed-window rate limiter, the CSRF token
// manager, password hashing, and the break-glass operator credential
// check. All state is held in explicitly-constructed instances injected
// into handlers, never in package-level globals, so tests can build
// isolated instances and control the clock.
package security

import (
	"sync"
	"time"
)

// rateLimitRecord tracks accepted requests for one key within the current
// fixed window. count never exceeds the limit passed to Allow; once the
// window has elapsed the record is reset lazily on next access.
type rateLimitRecord struct {
	count     int
	resetTime time.Time
}

// RateLimiter is a fixed-window request counter keyed by arbitrary strings
// (typically "action:clientIP"). Safe for concurrent use.
//
// Within one window a key receives at most maxAttempts accepted calls;
// at the window boundary the counter fully resets, so back-to-back bursts
// across a boundary are accepted behavior.
type RateLimiter struct {
	mu      sync.Mutex
	records map[string]*rateLimitRecord

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewRateLimiter creates an empty rate limiter using the wall clock.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		records: make(map[string]*rateLimitRecord),
		now:     time.Now,
	}
}

// Allow reports whether a request for key is within the fixed-window limit
// of maxAttempts per window. The record is first normalized for the
// current window (reset if expired), then the limit is checked BEFORE
// incrementing: a rejected call does not consume quota or extend the
// window. A request arriving exactly at the reset time still counts
// toward the old window.
func (r *RateLimiter) Allow(key string, maxAttempts int, window time.Duration) bool {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[key]
	if !ok || now.After(rec.resetTime) {
		rec = &rateLimitRecord{count: 0, resetTime: now.Add(window)}
		r.records[key] = rec
	}

	if rec.count >= maxAttempts {
		return false
	}

	rec.count++
	return true
}

// PruneExpired removes records whose window ended before the cutoff.
// Called periodically so the map does not grow without bound as distinct
// client IPs come and go.
func (r *RateLimiter) PruneExpired() {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, rec := range r.records {
		if now.After(rec.resetTime) {
			delete(r.records, key)
		}
	}
}

// StartSweeper launches a background goroutine that prunes expired
// records at the given interval until stop is closed.
func (r *RateLimiter) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.PruneExpired()
			case <-stop:
				return
			}
		}
	}()
}

// size returns the number of tracked keys. Test helper.
func (r *RateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
