package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenBucketLimiter(t *testing.T) {
	limiter := NewTokenBucketLimiter(60, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ctx, "1.2.3.4") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Error("request over burst should be denied")
	}
	if !limiter.Allow(ctx, "5.6.7.8") {
		t.Error("a different client should have its own bucket")
	}
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	limiter := NewTokenBucketLimiter(60, 1)
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "1.2.3.4:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "9.9.9.9, 10.0.0.1"}, remote: "1.1.1.1:80", want: "9.9.9.9"},
		{name: "single forwarded", headers: map[string]string{"X-Forwarded-For": "9.9.9.9"}, remote: "1.1.1.1:80", want: "9.9.9.9"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "8.8.8.8"}, remote: "1.1.1.1:80", want: "8.8.8.8"},
		{name: "remote addr fallback", remote: "1.1.1.1:80", want: "1.1.1.1:80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
