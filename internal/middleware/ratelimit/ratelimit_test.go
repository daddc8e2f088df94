package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLimiter_Allow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	rl := newLimiter(Config{RequestsPerMinute: 3}, clock.now)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.1.1.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.1.1.1") {
		t.Fatal("fourth request within a minute should be refused")
	}
	if !rl.Allow("2.2.2.2") {
		t.Fatal("other clients have their own budget")
	}
	if rl.Rejected() != 1 {
		t.Errorf("Rejected() = %d, want 1", rl.Rejected())
	}

	clock.advance(time.Minute)
	if !rl.Allow("1.1.1.1") {
		t.Fatal("budget should reset after the window")
	}
}

func TestLimiter_WindowDoesNotSlideOnRejectedRequests(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	rl := newLimiter(Config{RequestsPerMinute: 1}, clock.now)

	rl.Allow("a")
	for i := 0; i < 5; i++ {
		clock.advance(15 * time.Second)
		rl.Allow("a")
	}
	// 75s after the first request a new window has started.
	if !rl.Allow("a") {
		t.Fatal("a steady trickle must not extend the window forever")
	}
}

func TestLimiter_CleanupStaleEntries(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	rl := newLimiter(Config{}, clock.now)

	rl.Allow("old")
	clock.advance(11 * time.Minute)
	rl.Allow("fresh")
	rl.cleanupStaleEntries()

	if rl.ActiveClients() != 1 {
		t.Errorf("ActiveClients() = %d, want 1", rl.ActiveClients())
	}
}

func TestLimiter_Middleware(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 1, CleanupInterval: time.Hour})
	defer rl.Stop()
	defer rl.Stop()

	handler := rl.Middleware(
		func(r *http.Request) string { return "client" },
		nil,
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
}
