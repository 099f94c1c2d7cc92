package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

// fakeClock lets tests advance time manually.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(t *testing.T) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	cfg := DefaultConfig()
	cfg.Clock = clock
	l := New(cfg)
	t.Cleanup(l.Close)
	return l, clock
}

func TestCodeSendCooldown(t *testing.T) {
	l, clock := newTestLimiter(t)

	if res := l.CheckCodeSend("scout@example.com", "1.2.3.4"); !res.Allowed {
		t.Fatalf("first send should be allowed: %+v", res)
	}
	l.RecordCodeSend("scout@example.com", "1.2.3.4")

	res := l.CheckCodeSend("scout@example.com", "1.2.3.4")
	if res.Allowed {
		t.Fatal("send within cooldown should be blocked")
	}
	if res.Reason != "cooldown" {
		t.Fatalf("reason = %s, want cooldown", res.Reason)
	}

	clock.advance(61 * time.Second)
	if res := l.CheckCodeSend("scout@example.com", "1.2.3.4"); !res.Allowed {
		t.Fatalf("send after cooldown should be allowed: %+v", res)
	}
}

func TestCodeSendCaseInsensitiveEmail(t *testing.T) {
	l, _ := newTestLimiter(t)

	l.RecordCodeSend("Scout@Example.com", "1.2.3.4")
	if res := l.CheckCodeSend("scout@example.com", "5.6.7.8"); res.Allowed {
		t.Fatal("case variation should not bypass the cooldown")
	}
}

func TestAttemptLockout(t *testing.T) {
	l, clock := newTestLimiter(t)

	var locked bool
	for i := 0; i < 5; i++ {
		if res := l.CheckAttempt("scout@example.com", "1.2.3.4"); !res.Allowed && i < 4 {
			t.Fatalf("attempt %d should be allowed: %+v", i, res)
		}
		locked = l.RecordAttempt("scout@example.com", "1.2.3.4")
	}
	if !locked {
		t.Fatal("fifth failed attempt should trigger lockout")
	}

	res := l.CheckAttempt("scout@example.com", "1.2.3.4")
	if res.Allowed {
		t.Fatal("locked identifier should be blocked")
	}
	if res.Reason != "lockout" {
		t.Fatalf("reason = %s, want lockout", res.Reason)
	}

	clock.advance(6 * time.Minute)
	if res := l.CheckAttempt("scout@example.com", "1.2.3.4"); !res.Allowed {
		t.Fatalf("attempt after lockout expiry should be allowed: %+v", res)
	}
}

func TestResetAttempts(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 0; i < 4; i++ {
		l.RecordAttempt("scout@example.com", "1.2.3.4")
	}
	l.ResetAttempts("scout@example.com")

	for i := 0; i < 4; i++ {
		if res := l.CheckAttempt("scout@example.com", "1.2.3.4"); !res.Allowed {
			t.Fatalf("attempt %d after reset should be allowed: %+v", i, res)
		}
		l.RecordAttempt("scout@example.com", "1.2.3.4")
	}
}

func TestIPHourlyLimit(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 0; i < 20; i++ {
		l.RecordCodeSend("unique@example.com", "9.9.9.9")
	}
	if res := l.CheckCodeSend("someone-else@example.com", "9.9.9.9"); res.Allowed {
		t.Fatal("IP over hourly send limit should be blocked")
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:4321"
	r.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.1")

	if got := GetClientIP(r, false); got != "203.0.113.7" {
		t.Fatalf("untrusted proxy IP = %s, want 203.0.113.7", got)
	}
	if got := GetClientIP(r, true); got != "198.51.100.9" {
		t.Fatalf("trusted proxy IP = %s, want 198.51.100.9", got)
	}
}

func TestSanitizeEmail(t *testing.T) {
	if got := SanitizeEmail("scout@example.com"); got != "sc***@example.com" {
		t.Fatalf("SanitizeEmail = %s", got)
	}
	if got := SanitizeEmail("a@example.com"); got != "***@example.com" {
		t.Fatalf("SanitizeEmail short local = %s", got)
	}
}
