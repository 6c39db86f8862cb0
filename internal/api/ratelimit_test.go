package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenBucket(t *testing.T) {
	start := time.Date(2024, 4, 6, 12, 0, 0, 0, time.UTC)
	b := &tokenBucket{tokens: 2, capacity: 2, rate: 1, last: start}

	for i := 0; i < 2; i++ {
		if ok, _, _ := b.take(start); !ok {
			t.Fatalf("token %d should be available", i)
		}
	}
	ok, remaining, full := b.take(start)
	if ok || remaining != 0 {
		t.Errorf("empty bucket: ok=%v remaining=%d", ok, remaining)
	}
	if want := start.Add(2 * time.Second); !full.Equal(want) {
		t.Errorf("full = %v, want %v", full, want)
	}

	later := start.Add(1500 * time.Millisecond)
	if got := b.peek(later); got != 1 {
		t.Errorf("peek after 1.5s = %d, want 1", got)
	}
	if got := b.peek(start.Add(time.Hour)); got != 2 {
		t.Errorf("refill should stop at capacity, got %d", got)
	}
	if got := b.idleSince(start.Add(time.Hour + time.Minute)); got != time.Minute {
		t.Errorf("idleSince = %v", got)
	}
}

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 60, BurstSize: 3})
	defer rl.Close()
	now := time.Now()
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("fourth request should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other clients have their own bucket")
	}
	if rl.Remaining("10.0.0.2") != 2 {
		t.Errorf("Remaining() = %d", rl.Remaining("10.0.0.2"))
	}

	now = now.Add(time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Error("one request per second should refill")
	}
}

func TestRateLimiterEvictIdle(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 60, BurstSize: 1})
	defer rl.Close()

	rl.Allow("10.0.0.1")
	rl.evictIdle(time.Now())
	if rl.Len() != 1 {
		t.Fatalf("fresh bucket evicted")
	}
	rl.evictIdle(time.Now().Add(rl.cleanupTTL + time.Second))
	if rl.Len() != 0 {
		t.Errorf("Len() = %d after eviction", rl.Len())
	}
	rl.Close()
	rl.Close()
}

func TestRateLimitMiddleware(t *testing.T) {
	_, ts := newTestServer(t, func(c *Config) {
		c.RateLimitRequests = 1
		c.RateLimitBurst = 2
	})

	var last *http.Response
	var env envelope
	for i := 0; i < 3; i++ {
		last, env = doJSON(t, http.MethodGet, ts.URL+"/health", nil, nil)
	}
	if last.StatusCode != http.StatusTooManyRequests || env.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("status = %d, env = %+v", last.StatusCode, env)
	}
	if last.Header.Get("Retry-After") != "60" || last.Header.Get("X-RateLimit-Limit") != "1" {
		t.Errorf("headers = %v", last.Header)
	}
	if last.Header.Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("remaining = %q", last.Header.Get("X-RateLimit-Remaining"))
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.1:1234", "203.0.113.5"},
		{"bad forwarded", map[string]string{"X-Forwarded-For": "garbage"}, "10.0.0.1:1234", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.1:1234", "198.51.100.7"},
		{"ipv6 remote", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"remote addr", nil, "192.0.2.1:5555", "192.0.2.1"},
		{"unparseable", nil, "nowhere", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
