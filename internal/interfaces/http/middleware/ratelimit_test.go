package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/connector/internal/interfaces/http/dto"
)

func TestRateLimit(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(store string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "rl-req")
		if store != "" {
			req.Header.Set(StoreIDHeader, store)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("").Code)
	assert.Equal(t, http.StatusOK, send("").Code)

	w := send("")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1000", w.Header().Get("Retry-After"))

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeRateLimited, resp.Error.Code)
	assert.Equal(t, "rl-req", resp.Error.RequestID)

	// Switching store views does not open a new bucket
	for _, store := range []string{"2", "3", "default", "x-1"} {
		assert.Equal(t, http.StatusTooManyRequests, send(store).Code, "store %s", store)
	}
}

func TestRateLimit_StoreHeaderRotation(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 3})
	router := gin.New()
	router.Use(RateLimitWith(rl))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	var allowed, limited int
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(StoreIDHeader, strconv.Itoa(i))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		switch w.Code {
		case http.StatusOK:
			allowed++
		case http.StatusTooManyRequests:
			limited++
		}
	}

	assert.Equal(t, 3, allowed)
	assert.Equal(t, 17, limited)
	assert.Equal(t, 1, rl.Len())

	// A different client address has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimit_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(RateLimitConfig{}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, IdleTTL: time.Minute})
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
	assert.Equal(t, 2, rl.Len())

	now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow("b"))

	now = now.Add(45 * time.Second)
	assert.True(t, rl.Allow("c"))
	assert.Equal(t, 2, rl.Len(), "a is idle past the TTL and is dropped")
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 1, retryAfter(10))
	assert.Equal(t, 2, retryAfter(0.5))
	assert.Equal(t, 1, retryAfter(0))
}
