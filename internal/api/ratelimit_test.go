package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded for single",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			remoteAddr: "10.0.0.1:1234",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded for chain",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7,10.0.0.1"},
			remoteAddr: "10.0.0.1:1234",
			want:       "203.0.113.7",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			remoteAddr: "10.0.0.1:1234",
			want:       "203.0.113.9",
		},
		{
			name:       "remote addr fallback",
			remoteAddr: "10.0.0.1:1234",
			want:       "10.0.0.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "10.0.0.1",
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, getClientIP(r))
		})
	}
}

func TestRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	limiter := NewRateLimiter(60, time.Minute, 5)
	defer limiter.Stop()

	handler := RateLimitMiddleware(limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for range 5 {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		r.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, 1)
	defer limiter.Stop()

	handler := RateLimitMiddleware(limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	r.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(first, r)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, r)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimitMiddleware_IndependentClients(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, 1)
	defer limiter.Stop()

	handler := RateLimitMiddleware(limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234", "10.0.0.3:1234"} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		r.RemoteAddr = addr
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
