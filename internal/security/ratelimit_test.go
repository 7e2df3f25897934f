package security

import (
	"testing"
	"time"
)

// fakeClock is a controllable time source for limiter and token tests.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestLimiter(clock *fakeClock) *RateLimiter {
	r := NewRateLimiter()
	r.now = clock.Now
	return r
}

func TestAllow_WindowProperty(t *testing.T) {
	clock := newFakeClock()
	r := newTestLimiter(clock)

	const n = 5
	window := 5 * time.Minute

	// Exactly n calls within the window are all accepted.
	for i := 0; i < n; i++ {
		clock.Advance(time.Second)
		if !r.Allow("login:10.0.0.1", n, window) {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}

	// The (n+1)th call within the same window is rejected.
	if r.Allow("login:10.0.0.1", n, window) {
		t.Fatal("call n+1 should be rejected within the window")
	}

	// After the window elapses the key is fresh again, regardless of how
	// many rejected calls piled up.
	for i := 0; i < 10; i++ {
		r.Allow("login:10.0.0.1", n, window)
	}
	clock.Advance(window + time.Second)
	if !r.Allow("login:10.0.0.1", n, window) {
		t.Fatal("call after window elapsed should be allowed")
	}
}

func TestAllow_RejectionDoesNotConsumeQuota(t *testing.T) {
	clock := newFakeClock()
	r := newTestLimiter(clock)

	for i := 0; i < 3; i++ {
		r.Allow("k", 3, time.Minute)
	}

	// Rejected calls must not increment the counter or extend the window.
	if r.Allow("k", 3, time.Minute) {
		t.Fatal("4th call should be rejected")
	}

	clock.Advance(61 * time.Second)
	if !r.Allow("k", 3, time.Minute) {
		t.Fatal("window should have reset on schedule despite rejected calls")
	}
}

func TestAllow_ExactResetTimeCountsTowardOldWindow(t *testing.T) {
	clock := newFakeClock()
	r := newTestLimiter(clock)

	if !r.Allow("k", 1, time.Minute) {
		t.Fatal("first call should be allowed")
	}

	// Exactly at the reset instant the old window still applies.
	clock.Advance(time.Minute)
	if r.Allow("k", 1, time.Minute) {
		t.Fatal("call exactly at reset time belongs to the old window")
	}

	// One tick past the reset instant starts a new window.
	clock.Advance(time.Nanosecond)
	if !r.Allow("k", 1, time.Minute) {
		t.Fatal("call after reset time should start a fresh window")
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	r := newTestLimiter(clock)

	for i := 0; i < 2; i++ {
		if !r.Allow("register:10.0.0.1", 2, time.Minute) {
			t.Fatalf("call %d for first key should be allowed", i+1)
		}
	}
	if r.Allow("register:10.0.0.1", 2, time.Minute) {
		t.Fatal("first key should be exhausted")
	}

	if !r.Allow("register:10.0.0.2", 2, time.Minute) {
		t.Fatal("a different client must not be affected by the first key's limit")
	}
	if !r.Allow("login:10.0.0.1", 2, time.Minute) {
		t.Fatal("a different action must not be affected by the first key's limit")
	}
}

func TestPruneExpired(t *testing.T) {
	clock := newFakeClock()
	r := newTestLimiter(clock)

	r.Allow("a", 5, time.Minute)
	r.Allow("b", 5, time.Hour)

	clock.Advance(2 * time.Minute)
	r.PruneExpired()

	if got := r.size(); got != 1 {
		t.Errorf("expected 1 record after prune, got %d", got)
	}

	// The surviving key keeps its quota accounting.
	if !r.Allow("b", 5, time.Hour) {
		t.Error("unexpired key should still be allowed")
	}
}
