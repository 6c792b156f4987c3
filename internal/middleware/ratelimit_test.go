package middleware

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, rate, burst int, clock *fakeClock) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(RateLimitConfig{Rate: rate, Burst: burst, Window: time.Minute, Now: clock.Now})
	t.Cleanup(rl.Stop)
	return rl
}

// ============================================================================
// NewRateLimiter Tests
// ============================================================================

func TestNewRateLimiter_DefaultConfig(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{})
	defer rl.Stop()

	if rl.rate != 20 || rl.burst != 5 || rl.window != time.Minute {
		t.Errorf("unexpected defaults rate=%d burst=%d window=%v", rl.rate, rl.burst, rl.window)
	}
}

func TestNewRateLimiter_NegativeBurstDisablesBurst(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Burst: -1})
	defer rl.Stop()

	if rl.burst != 0 {
		t.Errorf("expected no burst, got %d", rl.burst)
	}
}

func TestStop_IsIdempotent(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{})
	rl.Stop()
	rl.Stop()
}

// ============================================================================
// Allow Tests
// ============================================================================

func TestAllow_ExhaustsRatePlusBurst(t *testing.T) {
	t.Parallel()
	rl := newTestLimiter(t, 3, 2, newFakeClock())

	for i := 0; i < 5; i++ {
		allowed, remaining, _ := rl.Allow("u1")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if remaining != 4-i {
			t.Errorf("request %d: expected remaining %d, got %d", i+1, 4-i, remaining)
		}
	}
	if allowed, _, _ := rl.Allow("u1"); allowed {
		t.Error("sixth request should be denied")
	}
	if allowed, _, _ := rl.Allow("u2"); !allowed {
		t.Error("other users keep their own bucket")
	}
}

func TestAllow_RefillsOverTime(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	rl := newTestLimiter(t, 2, -1, clock)

	rl.Allow("u1")
	rl.Allow("u1")
	if allowed, _, _ := rl.Allow("u1"); allowed {
		t.Fatal("expected bucket to be empty")
	}

	clock.Advance(30 * time.Second)
	if allowed, _, _ := rl.Allow("u1"); !allowed {
		t.Error("expected one token after half a window")
	}

	clock.Advance(time.Minute)
	_, remaining, _ := rl.Allow("u1")
	if remaining != 1 {
		t.Errorf("expected full refill, remaining %d", remaining)
	}
}

func TestRetryAfter_MinimumOne(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	rl := newTestLimiter(t, 1, -1, clock)

	_, _, reset := rl.Allow("u1")
	if got := rl.RetryAfter(reset); got != 60 {
		t.Errorf("expected 60 seconds, got %d", got)
	}
	if got := rl.RetryAfter(clock.Now()); got != 1 {
		t.Errorf("expected minimum of 1, got %d", got)
	}
}

func TestCleanup_RemovesStaleBuckets(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	rl := newTestLimiter(t, 5, 0, clock)

	rl.Allow("stale")
	clock.Advance(3 * time.Minute)
	rl.Allow("fresh")
	rl.cleanupExpired()

	if rl.Len() != 1 {
		t.Errorf("expected only the fresh bucket, got %d", rl.Len())
	}
}

func TestAllow_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	rl := newTestLimiter(t, 50, -1, newFakeClock())

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _, _ := rl.Allow("u1"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 50 {
		t.Errorf("expected exactly 50 allowed, got %d", allowedCount)
	}
}
