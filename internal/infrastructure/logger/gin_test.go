package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter(level zapcore.Level) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(level)
	l := zap.New(core)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Next()
	})
	router.Use(GinMiddleware(l))
	router.Use(Recovery(l))
	return router, recorded
}

func findEntry(t *testing.T, logs *observer.ObservedLogs, msg string) observer.LoggedEntry {
	t.Helper()
	entries := logs.FilterMessage(msg).All()
	require.NotEmpty(t, entries, msg)
	return entries[0]
}

func TestGinMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected zapcore.Level
	}{
		{name: "success", status: http.StatusOK, expected: zapcore.InfoLevel},
		{name: "client error", status: http.StatusBadRequest, expected: zapcore.WarnLevel},
		{name: "server error", status: http.StatusInternalServerError, expected: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, logs := newObservedRouter(zapcore.InfoLevel)
			router.POST("/api/v1/filters/translate", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/filters/translate?dry=1", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			entry := findEntry(t, logs, "HTTP Request")
			assert.Equal(t, tt.expected, entry.Level)

			fields := entry.ContextMap()
			assert.Equal(t, "req-123", fields["request_id"])
			assert.Equal(t, "POST", fields["method"])
			assert.Equal(t, "/api/v1/filters/translate", fields["path"])
			assert.Equal(t, "dry=1", fields["query"])
			assert.EqualValues(t, tt.status, fields["status"])
		})
	}
}

func TestGinMiddleware_HandlerLogger(t *testing.T) {
	router, logs := newObservedRouter(zapcore.DebugLevel)
	router.GET("/health", func(c *gin.Context) {
		GetGinLogger(c).Debug("inside handler")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	entry := findEntry(t, logs, "inside handler")
	assert.Equal(t, "req-123", entry.ContextMap()["request_id"])
	assert.Equal(t, "/health", entry.ContextMap()["path"])
}

func TestRecovery(t *testing.T) {
	router, logs := newObservedRouter(zapcore.InfoLevel)
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entry := findEntry(t, logs, "Panic recovered")
	assert.Equal(t, "boom", entry.ContextMap()["error"])
}
