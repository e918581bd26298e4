package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedHandler(rl *RateLimiter) echo.HandlerFunc {
	return rl.Middleware()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func hit(e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec.Code
}

func TestRateLimiter_AllowsBurstThenRejects(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(NewRateLimiter(1, 5))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(e, handler, "192.168.1.100:12345"), "request %d within burst", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(e, handler, "192.168.1.100:12345"))
}

func TestRateLimiter_SeparateBucketsPerIP(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(NewRateLimiter(1, 1))

	assert.Equal(t, http.StatusOK, hit(e, handler, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, hit(e, handler, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, hit(e, handler, "10.0.0.2:1000"))
}

func TestRateLimiter_ForwardedForHeader(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(NewRateLimiter(1, 1))

	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		_ = handler(e.NewContext(req, rec))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.7, 10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7"))
	assert.Equal(t, http.StatusOK, send("203.0.113.8"))
}

func TestRateLimiter_DefaultsForNonPositiveSettings(t *testing.T) {
	rl := NewRateLimiter(0, -1)
	assert.EqualValues(t, defaultRequestsPerSecond, rl.rps)
	assert.Equal(t, defaultBurstSize, rl.burst)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	rl.limiterFor("10.0.0.1")
	rl.limiterFor("10.0.0.2")

	assert.Equal(t, 0, rl.evictIdle(time.Now()))
	assert.Equal(t, 2, rl.evictIdle(time.Now().Add(visitorIdleTimeout+time.Second)))
	assert.Empty(t, rl.visitors)
}

func TestRateLimiter_RunStopsOnCancel(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rl.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(NewRateLimiter(100, 100))

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if hit(e, handler, "172.16.0.1:5555") == http.StatusOK {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 50, ok)
}
