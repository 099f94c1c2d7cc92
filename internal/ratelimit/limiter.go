// Package ratelimit provides in-memory rate limiting for the auth
// endpoints: verification-code sends and credential attempts.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	// Verification-code send limits
	SendCooldown     time.Duration // Minimum time between code sends per email
	SendMaxPerHour   int           // Max code sends per email per hour
	SendMaxIPPerHour int           // Max code sends per IP per hour

	// Credential attempt limits (sign-in and code verification)
	AttemptMax         int           // Max failed attempts before lockout
	AttemptLockout     time.Duration // Lockout duration after max attempts
	AttemptMaxIPPerHour int          // Max attempts per IP per hour

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		SendCooldown:        60 * time.Second,
		SendMaxPerHour:      5,
		SendMaxIPPerHour:    20,
		AttemptMax:          5,
		AttemptLockout:      5 * time.Minute,
		AttemptMaxIPPerHour: 30,
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
	count    int
	firstAt  time.Time // First request in window
	lastAt   time.Time // Most recent request (for cooldown)
	lockedAt time.Time // When lockout started (zero if not locked)
}

// Limiter implements multi-layer rate limiting for auth operations.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.RWMutex
	// Keyed by hash of email or IP
	sendByEmail    map[string]*entry
	sendByIP       map[string]*entry
	attemptByEmail map[string]*entry
	attemptByIP    map[string]*entry

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
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
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:         cfg,
		clock:          clock,
		sendByEmail:    make(map[string]*entry),
		sendByIP:       make(map[string]*entry),
		attemptByEmail: make(map[string]*entry),
		attemptByIP:    make(map[string]*entry),
		cleanupCtx:     ctx,
		cleanupCancel:  cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// CheckCodeSend checks if a verification-code send is allowed.
// Does NOT record the send - call RecordCodeSend after the code is issued.
func (l *Limiter) CheckCodeSend(email, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	emailKey := l.hashKey("send:email:", normalizeEmail(email))
	ipKey := l.hashKey("send:ip:", ip)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if e := l.sendByEmail[emailKey]; e != nil {
		elapsed := now.Sub(e.lastAt)
		if elapsed < l.config.SendCooldown {
			return LimitResult{
				Allowed:    false,
				RetryAfter: l.config.SendCooldown - elapsed,
				Reason:     "cooldown",
			}
		}

		if now.Sub(e.firstAt) < time.Hour && e.count >= l.config.SendMaxPerHour {
			return LimitResult{
				Allowed:    false,
				RetryAfter: time.Hour - now.Sub(e.firstAt),
				Reason:     "hourly_limit",
			}
		}
	}

	if e := l.sendByIP[ipKey]; e != nil {
		if now.Sub(e.firstAt) < time.Hour && e.count >= l.config.SendMaxIPPerHour {
			return LimitResult{
				Allowed:    false,
				RetryAfter: time.Hour - now.Sub(e.firstAt),
				Reason:     "ip_hourly_limit",
			}
		}
	}

	return LimitResult{Allowed: true}
}

// RecordCodeSend records a verification-code send.
func (l *Limiter) RecordCodeSend(email, ip string) {
	now := l.clock.Now()
	emailKey := l.hashKey("send:email:", normalizeEmail(email))
	ipKey := l.hashKey("send:ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.sendByEmail[emailKey]
	if e == nil || now.Sub(e.firstAt) >= time.Hour {
		l.sendByEmail[emailKey] = &entry{count: 1, firstAt: now, lastAt: now}
	} else {
		e.count++
		e.lastAt = now
	}

	e = l.sendByIP[ipKey]
	if e == nil || now.Sub(e.firstAt) >= time.Hour {
		l.sendByIP[ipKey] = &entry{count: 1, firstAt: now, lastAt: now}
	} else {
		e.count++
		e.lastAt = now
	}
}

// CheckAttempt checks if a credential attempt is allowed.
// Does NOT record the attempt - call RecordAttempt after checking the
// password or code.
func (l *Limiter) CheckAttempt(email, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	emailKey := l.hashKey("attempt:email:", normalizeEmail(email))
	ipKey := l.hashKey("attempt:ip:", ip)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if e := l.attemptByEmail[emailKey]; e != nil {
		if !e.lockedAt.IsZero() {
			elapsed := now.Sub(e.lockedAt)
			if elapsed < l.config.AttemptLockout {
				return LimitResult{
					Allowed:    false,
					RetryAfter: l.config.AttemptLockout - elapsed,
					Reason:     "lockout",
				}
			}
			// Lockout expired - will be cleaned up, allow this request
		} else if e.count >= l.config.AttemptMax {
			return LimitResult{
				Allowed:    false,
				RetryAfter: l.config.AttemptLockout,
				Reason:     "max_attempts",
			}
		}
	}

	if e := l.attemptByIP[ipKey]; e != nil {
		if now.Sub(e.firstAt) < time.Hour && e.count >= l.config.AttemptMaxIPPerHour {
			return LimitResult{
				Allowed:    false,
				RetryAfter: time.Hour - now.Sub(e.firstAt),
				Reason:     "ip_hourly_limit",
			}
		}
	}

	return LimitResult{Allowed: true}
}

// RecordAttempt records a failed credential attempt. Returns true if
// max attempts was reached and a lockout started.
func (l *Limiter) RecordAttempt(email, ip string) (lockedOut bool) {
	now := l.clock.Now()
	emailKey := l.hashKey("attempt:email:", normalizeEmail(email))
	ipKey := l.hashKey("attempt:ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.attemptByEmail[emailKey]
	if e == nil {
		l.attemptByEmail[emailKey] = &entry{count: 1, firstAt: now, lastAt: now}
	} else if !e.lockedAt.IsZero() && now.Sub(e.lockedAt) >= l.config.AttemptLockout {
		// Lockout expired, reset
		l.attemptByEmail[emailKey] = &entry{count: 1, firstAt: now, lastAt: now}
	} else {
		e.count++
		e.lastAt = now
		if e.count >= l.config.AttemptMax && e.lockedAt.IsZero() {
			e.lockedAt = now
			lockedOut = true
		}
	}

	e = l.attemptByIP[ipKey]
	if e == nil || now.Sub(e.firstAt) >= time.Hour {
		l.attemptByIP[ipKey] = &entry{count: 1, firstAt: now, lastAt: now}
	} else {
		e.count++
		e.lastAt = now
	}

	return lockedOut
}

// ResetAttempts clears the attempt counter after a successful sign-in
// or verification.
func (l *Limiter) ResetAttempts(email string) {
	emailKey := l.hashKey("attempt:email:", normalizeEmail(email))
	l.mu.Lock()
	delete(l.attemptByEmail, emailKey)
	l.mu.Unlock()
}

func (l *Limiter) hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(hash[:8])
}

// normalizeEmail lowercases the email to prevent case-based bypass.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, e := range l.sendByEmail {
		if now.Sub(e.lastAt) > time.Hour {
			delete(l.sendByEmail, k)
		}
	}
	for k, e := range l.sendByIP {
		if now.Sub(e.lastAt) > time.Hour {
			delete(l.sendByIP, k)
		}
	}

	maxAge := l.config.AttemptLockout + time.Hour
	for k, e := range l.attemptByEmail {
		if now.Sub(e.lastAt) > maxAge {
			delete(l.attemptByEmail, k)
		}
	}
	for k, e := range l.attemptByIP {
		if now.Sub(e.lastAt) > time.Hour {
			delete(l.attemptByIP, k)
		}
	}
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost IP from X-Forwarded-For.
// When trustProxy is false, ignores X-Forwarded-For entirely.
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			return strings.TrimSpace(parts[len(parts)-1])
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
			return r.RemoteAddr
		}
		if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
			candidate := r.RemoteAddr[:idx]
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
		return r.RemoteAddr
	}
	return ip
}

// privateNetworks holds parsed CIDR ranges for private/reserved IPs.
var privateNetworks []*net.IPNet

func init() {
	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	}
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

// isPrivateIP checks if an IP is in a private/reserved range, handling
// IPv4-mapped IPv6 addresses.
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// SanitizeEmail masks an email for logging.
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if strings.Contains(email, "@") {
		parts := strings.Split(email, "@")
		if len(parts[0]) > 2 {
			return parts[0][:2] + "***@" + parts[1]
		}
		return "***@" + parts[1]
	}
	return "***"
}

// LogRateLimitExceeded logs a rate limit event with sanitized email.
func LogRateLimitExceeded(limitType, email, ip, reason string) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("type", limitType).
		Str("email", SanitizeEmail(email)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Auth rate limit exceeded")
}
