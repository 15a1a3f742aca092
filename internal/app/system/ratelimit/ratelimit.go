// internal/app/system/ratelimit/ratelimit.go

// Package ratelimit throttles the unauthenticated surface: login
// attempts and the endpoints that send tokenized mail links.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key over a fixed window. Safe for
// concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	count     int
	expiresAt time.Time
}

// New returns a limiter allowing limit requests per period per key.
func New(limit int, period time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
	go l.sweep()
	return l
}

// Allow records a request for key and reports whether it is within the
// limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.period)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Reset clears the window for key, e.g. after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// sweep drops expired windows so the map does not grow without bound.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.period * 2)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.windows {
			if now.After(w.expiresAt) {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the originating client IP, honoring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LoginLimiter tracks login attempts both per IP and per account, so a
// single IP cannot spray accounts and a single account cannot be
// hammered from many IPs.
type LoginLimiter struct {
	byIP    *Limiter
	byEmail *Limiter
}

// NewLoginLimiter returns a limiter with login-appropriate defaults:
// 10 attempts per IP per minute, 5 per email per 5 minutes.
func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		byIP:    New(10, time.Minute),
		byEmail: New(5, 5*time.Minute),
	}
}

// Check records an attempt and reports whether it is allowed, with a
// caller-facing message when it is not.
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	if !ll.byIP.Allow(ClientIP(r)) {
		return false, "Too many attempts. Please wait a minute before trying again."
	}
	if email != "" && !ll.byEmail.Allow(strings.ToLower(strings.TrimSpace(email))) {
		return false, "Too many attempts for this account. Please wait a few minutes."
	}
	return true, ""
}

// ResetEmail clears the per-account window after a successful login.
func (ll *LoginLimiter) ResetEmail(email string) {
	if email != "" {
		ll.byEmail.Reset(strings.ToLower(strings.TrimSpace(email)))
	}
}

// NewMailLimiter returns a per-recipient limiter for the endpoints that
// send registration and password-reset links: 3 mails per address per
// 15 minutes.
func NewMailLimiter() *Limiter {
	return New(3, 15*time.Minute)
}
