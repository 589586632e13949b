// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comicshelf/internal/platform/constants"
	"github.com/taibuivan/comicshelf/internal/platform/ctxutil"
	"github.com/taibuivan/comicshelf/internal/platform/middleware"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

/*
TestRequestID verifies that client IDs are reused and missing ones are generated.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	t.Run("Reuses header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRequestID, "req-123")
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", recorder.Header().Get(constants.HeaderXRequestID))
	})

	t.Run("Generates when absent", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
	})
}

/*
TestPanicRecovery verifies that a panicking handler yields a generic 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(slog.New(slog.NewTextHandler(io.Discard, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	recorder := httptest.NewRecorder()

	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.NotContains(t, recorder.Body.String(), "boom")
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

/*
TestCORS covers origin matching and pre-flight handling.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name      string
		config    corsConfig
		origin    string
		wantAllow bool
	}{
		{"Development allows anything", corsConfig{development: true}, "http://localhost:3000", true},
		{"Configured suffix", corsConfig{origins: []string{"comicshelf.app"}}, "https://www.comicshelf.app", true},
		{"Unknown origin", corsConfig{origins: []string{"comicshelf.app"}}, "https://evil.example", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodOptions, "/api/comics/getComics", nil)
			request.Header.Set(constants.HeaderOrigin, tc.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tc.config)(okHandler).ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tc.wantAllow {
				assert.Equal(t, tc.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestRealIP verifies proxy header precedence.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))
}

type stubLimiter struct {
	allowed    bool
	retryAfter time.Duration
	err        error
}

func (s stubLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return s.allowed, s.retryAfter, s.err
}

/*
TestRateLimit covers allow, reject and fail-open behaviour.
*/
func TestRateLimit(t *testing.T) {
	tests := []struct {
		name           string
		limiter        stubLimiter
		wantStatus     int
		wantRetryAfter string
	}{
		{"Allowed", stubLimiter{allowed: true}, http.StatusOK, ""},
		{"Rejected", stubLimiter{allowed: false, retryAfter: 1500 * time.Millisecond}, http.StatusTooManyRequests, "2"},
		{"Sub-second wait rounds up", stubLimiter{allowed: false, retryAfter: 10 * time.Millisecond}, http.StatusTooManyRequests, "1"},
		{"Limiter failure fails open", stubLimiter{err: errors.New("redis down")}, http.StatusOK, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			middleware.RateLimit(tc.limiter)(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.Equal(t, tc.wantRetryAfter, recorder.Header().Get(constants.HeaderRetryAfter))
		})
	}
}

/*
TestLocalLimiter verifies the per-key token bucket.
*/
func TestLocalLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewLocalLimiter(ctx, 1, 2)

	for i := 0; i < 2; i++ {
		allowed, _, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d within burst", i)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Positive(t, retryAfter)

	allowed, _, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed, "buckets are per key")
}
