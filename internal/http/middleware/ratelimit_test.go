package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAllowNWeightedCosts(t *testing.T) {
	rl := NewRateLimiter(0.0001, 5)

	if !rl.AllowN("1.2.3.4", costPhoneCall) {
		t.Fatal("full bucket should cover one phone call")
	}
	if rl.AllowN("1.2.3.4", costDefault) {
		t.Fatal("phone call should drain the whole bucket")
	}
	if !rl.AllowN("5.6.7.8", costCompletion) || !rl.AllowN("5.6.7.8", costCompletion) {
		t.Fatal("two completions should fit in a fresh bucket")
	}
	if rl.AllowN("5.6.7.8", costCompletion) {
		t.Fatal("third completion should be limited")
	}
}

func TestRateLimitChargesByEndpoint(t *testing.T) {
	handler := RateLimit(0.0001, 4)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("X-Real-Ip", "9.9.9.9")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Two completions at cost 2 use the whole burst of 4.
	if do("/api/chat") != http.StatusOK || do("/api/adcopy") != http.StatusOK {
		t.Fatal("burst should cover two completion requests")
	}
	if do("/api/chat") != http.StatusTooManyRequests {
		t.Fatal("third completion should be rejected")
	}
	// A unit-cost path would have fit four times for a different visitor.
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/leads", nil)
		req.Header.Set("X-Real-Ip", "8.8.8.8")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("lead capture %d should be within limits, got %d", i+1, rec.Code)
		}
	}
}
