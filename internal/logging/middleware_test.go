package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerFromContext_ReturnsContextLogger(t *testing.T) {
	logger := NewLogger(true)
	ctx := context.WithValue(context.Background(), LoggerContextKey, logger)

	got := GetLoggerFromContext(ctx)

	assert.Same(t, logger, got)
}

func TestGetLoggerFromContext_SharedFallback(t *testing.T) {
	first := GetLoggerFromContext(context.Background())
	second := GetLoggerFromContext(context.Background())

	require.NotNil(t, first)
	assert.Same(t, first, second, "bare-context calls must reuse the fallback logger")
	assert.Same(t, fallbackLogger, first)
}

func TestRequestLogger_InjectsLoggerIntoContext(t *testing.T) {
	logger := NewLogger(true)

	var seen *Logger
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetLoggerFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.NotSame(t, fallbackLogger, seen, "handlers must get the request-scoped logger, not the fallback")
}
