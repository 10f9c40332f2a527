// internal/app/system/ratelimit/ratelimit.go

// Package ratelimit throttles abusable endpoints with a sliding window
// per key. It is in-process only; a multi-instance deployment needs a
// shared store in front of it.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
)

// Limiter counts requests per key in fixed windows. Safe for concurrent
// use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit requests per duration per key.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
	}
	go l.cleanupLoop(2 * duration)
	return l
}

// Allow records a request for key and reports whether it is within the
// limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.windows[key]
	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Reset clears the window for key. Called after a successful attempt so
// legitimate users are not penalized for earlier failures.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// cleanupLoop drops expired windows so the map does not grow without
// bound.
func (l *Limiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
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

// ClientIP extracts the client IP, preferring the proxy headers set by
// the load balancer over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// CredentialLimiter guards the credential endpoints (login, password
// reset requests). It tracks per-IP and per-account windows so neither a
// single IP hammering many accounts nor many IPs hammering one account
// gets through.
type CredentialLimiter struct {
	ip    *Limiter
	email *Limiter
}

// NewCredentialLimiter returns a limiter with the default windows:
// 10 attempts per IP per minute, 5 attempts per email per 5 minutes.
func NewCredentialLimiter() *CredentialLimiter {
	return &CredentialLimiter{
		ip:    New(10, time.Minute),
		email: New(5, 5*time.Minute),
	}
}

// Check records an attempt and returns a 429 application error when the
// request exceeds either window.
func (cl *CredentialLimiter) Check(r *http.Request, email string) error {
	if !cl.ip.Allow(ClientIP(r)) {
		return apperr.New(http.StatusTooManyRequests, "Too many attempts. Please try again in a minute.")
	}
	if email != "" {
		if !cl.email.Allow(emailKey(email)) {
			return apperr.New(http.StatusTooManyRequests, "Too many attempts for this account. Please try again later.")
		}
	}
	return nil
}

// ResetEmail clears the per-account window after a successful attempt.
func (cl *CredentialLimiter) ResetEmail(email string) {
	if email != "" {
		cl.email.Reset(emailKey(email))
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
