// Package ratelimit provides rate limiting for season submission.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	SubmitCooldown     time.Duration // Minimum time between submissions per IP (default: 10s)
	SubmitMaxIPPerHour int           // Max submissions per IP per hour (default: 20)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		SubmitCooldown:     10 * time.Second,
		SubmitMaxIPPerHour: 20,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

// entry tracks request counts and timestamps.
type entry struct {
	count   int
	firstAt time.Time // First request in window
	lastAt  time.Time // Most recent request (for cooldown)
}

// Limiter throttles season submissions per client IP.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.RWMutex
	// Keyed by hash of IP
	submitByIP map[string]*entry
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		config:     cfg,
		clock:      clock,
		submitByIP: make(map[string]*entry),
	}
}

// CheckSubmit checks if a season submission is allowed for the client IP.
// Does NOT record the attempt - call RecordSubmit once the request is
// actually forwarded to the backend.
func (l *Limiter) CheckSubmit(ip string) LimitResult {
	now := l.clock.Now()
	key := l.hashKey("submit:ip:", ip)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if e := l.submitByIP[key]; e != nil {
		elapsed := now.Sub(e.lastAt)
		if elapsed < l.config.SubmitCooldown {
			return LimitResult{
				Allowed:    false,
				RetryAfter: l.config.SubmitCooldown - elapsed,
				Reason:     "cooldown",
			}
		}
		if now.Sub(e.firstAt) < time.Hour && e.count >= l.config.SubmitMaxIPPerHour {
			return LimitResult{
				Allowed:    false,
				RetryAfter: time.Hour - now.Sub(e.firstAt),
				Reason:     "ip_hourly_limit",
			}
		}
	}

	return LimitResult{Allowed: true}
}

// RecordSubmit records a submission attempt for the client IP.
func (l *Limiter) RecordSubmit(ip string) {
	now := l.clock.Now()
	key := l.hashKey("submit:ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.submitByIP[key]
	if e == nil || now.Sub(e.firstAt) >= time.Hour {
		l.submitByIP[key] = &entry{count: 1, firstAt: now, lastAt: now}
	} else {
		e.count++
		e.lastAt = now
	}
}

// Prune drops entries idle for more than an hour. Callers schedule it; the
// limiter does not run its own goroutine.
func (l *Limiter) Prune() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, e := range l.submitByIP {
		if now.Sub(e.lastAt) > time.Hour {
			delete(l.submitByIP, k)
		}
	}
}

func (l *Limiter) hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(hash[:8])
}

// ClientIP extracts the client IP from a request, trusting the first
// X-Forwarded-For hop when present.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
