package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketAllowsBurstThenBlocks(t *testing.T) {
	l := NewTokenBucketLimiter(1, 3, 0)

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("k")
		assert.True(t, allowed, "request %d within burst", i)
	}
	allowed, info := l.Allow("k")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 3, info.Limit)
}

func TestTokenBucketRefills(t *testing.T) {
	l := NewTokenBucketLimiter(100, 1, 0)

	allowed, _ := l.Allow("k")
	require.True(t, allowed)
	allowed, _ = l.Allow("k")
	require.False(t, allowed)

	time.Sleep(20 * time.Millisecond)
	allowed, _ = l.Allow("k")
	assert.True(t, allowed)
}

func TestTokenBucketKeysAreIndependent(t *testing.T) {
	l := NewTokenBucketLimiter(1, 1, 0)

	allowed, _ := l.Allow("a")
	require.True(t, allowed)
	allowed, _ = l.Allow("b")
	assert.True(t, allowed)
	assert.Equal(t, 2, l.BucketCount())
}

func TestRateLimitMiddleware(t *testing.T) {
	l := NewTokenBucketLimiter(1, 1, 0)
	handler := RateLimit(l, RateLimitConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/query", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "COMMON_005")
}

func TestRateLimitSkipsConfiguredPaths(t *testing.T) {
	l := NewTokenBucketLimiter(1, 1, 0)
	cfg := DefaultRateLimitConfig()
	handler := RateLimit(l, cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestCleanupReclaimsIdleBuckets(t *testing.T) {
	l := NewTokenBucketLimiter(1000, 1, time.Millisecond)
	defer l.Stop()

	l.Allow("idle")
	require.Equal(t, 1, l.BucketCount())

	assert.Eventually(t, func() bool {
		return l.BucketCount() == 0
	}, time.Second, 10*time.Millisecond)
}
