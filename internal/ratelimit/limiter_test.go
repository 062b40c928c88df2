package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCheckSubmit_Cooldown(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		SubmitCooldown:     10 * time.Second,
		SubmitMaxIPPerHour: 20,
		Clock:              clock,
	})

	ip := "192.168.1.1"

	// First request should be allowed
	result := limiter.CheckSubmit(ip)
	if !result.Allowed {
		t.Errorf("First request should be allowed, got blocked: %s", result.Reason)
	}
	limiter.RecordSubmit(ip)

	// Immediate retry should hit the cooldown
	result = limiter.CheckSubmit(ip)
	if result.Allowed {
		t.Errorf("Second request within cooldown should be blocked")
	}
	if result.Reason != "cooldown" {
		t.Errorf("Expected cooldown reason, got %s", result.Reason)
	}
	if result.RetryAfter <= 0 || result.RetryAfter > 10*time.Second {
		t.Errorf("Unexpected RetryAfter %s", result.RetryAfter)
	}

	// After the cooldown elapses the next attempt is allowed
	clock.Advance(11 * time.Second)
	result = limiter.CheckSubmit(ip)
	if !result.Allowed {
		t.Errorf("Request after cooldown should be allowed, got %s", result.Reason)
	}
}

func TestCheckSubmit_HourlyLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		SubmitCooldown:     time.Second,
		SubmitMaxIPPerHour: 3,
		Clock:              clock,
	})

	ip := "10.0.0.1"
	for i := 0; i < 3; i++ {
		result := limiter.CheckSubmit(ip)
		if !result.Allowed {
			t.Fatalf("Request %d should be allowed, got %s", i+1, result.Reason)
		}
		limiter.RecordSubmit(ip)
		clock.Advance(2 * time.Second)
	}

	result := limiter.CheckSubmit(ip)
	if result.Allowed {
		t.Errorf("Fourth request within the hour should be blocked")
	}
	if result.Reason != "ip_hourly_limit" {
		t.Errorf("Expected ip_hourly_limit reason, got %s", result.Reason)
	}

	// The window resets an hour after the first request
	clock.Advance(time.Hour)
	result = limiter.CheckSubmit(ip)
	if !result.Allowed {
		t.Errorf("Request after window reset should be allowed, got %s", result.Reason)
	}
}

func TestCheckSubmit_IPsAreIndependent(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		SubmitCooldown:     time.Minute,
		SubmitMaxIPPerHour: 20,
		Clock:              clock,
	})

	limiter.RecordSubmit("10.0.0.1")
	if result := limiter.CheckSubmit("10.0.0.2"); !result.Allowed {
		t.Errorf("Different IP should not share a cooldown, got %s", result.Reason)
	}
}

func TestPrune(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		SubmitCooldown:     time.Second,
		SubmitMaxIPPerHour: 20,
		Clock:              clock,
	})

	limiter.RecordSubmit("10.0.0.1")
	clock.Advance(2 * time.Hour)
	limiter.Prune()

	limiter.mu.RLock()
	remaining := len(limiter.submitByIP)
	limiter.mu.RUnlock()
	if remaining != 0 {
		t.Errorf("Expected pruned map, %d entries remain", remaining)
	}
}

func TestClientIP(t *testing.T) {
	r, _ := http.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if ip := ClientIP(r); ip != "10.0.0.1" {
		t.Errorf("Expected RemoteAddr host, got %q", ip)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if ip := ClientIP(r); ip != "203.0.113.9" {
		t.Errorf("Expected first forwarded hop, got %q", ip)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	if ip := ClientIP(r); ip != "203.0.113.9" {
		t.Errorf("Expected single forwarded hop, got %q", ip)
	}
}
