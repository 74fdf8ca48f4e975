package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	return l.counts[key] <= limit, nil
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	t.Parallel()
	limiter := &countingLimiter{counts: make(map[string]int)}
	app := newTestApp(t, func(cfg *RouteConfig) {
		cfg.RegisterLimiter = RateLimit(limiter, "register", 2, time.Hour)
	})

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register/", "", map[string]string{
			"username": fmt.Sprintf("user%d", i), "email": fmt.Sprintf("u%d@x.com", i), "password": "Secur3Pass!",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register/", "", map[string]string{
		"username": "user3", "email": "u3@x.com", "password": "Secur3Pass!",
	})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	require.Equal(t, "RATE_LIMITED", errBody["code"])
}

func TestRateLimitFailsOpenOnLimiterError(t *testing.T) {
	t.Parallel()
	limiter := &countingLimiter{counts: make(map[string]int), err: fmt.Errorf("redis down")}
	app := newTestApp(t, func(cfg *RouteConfig) {
		cfg.RegisterLimiter = RateLimit(limiter, "register", 1, time.Hour)
	})

	// limiter outage must not block registration
	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register/", "", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "Secur3Pass!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}
