// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/taibuivan/storytime/internal/platform/constants"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
	"github.com/taibuivan/storytime/internal/platform/middleware"
)

var ok = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "from-proxy")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "from-proxy", seen)
}

func TestStructuredLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctxutil.GetLogger(request.Context()).Info("inside_handler")
		writer.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stories", nil))

	output := buffer.String()
	assert.Contains(t, output, `"msg":"inside_handler"`)
	assert.Contains(t, output, `"path":"/stories"`)
	assert.Contains(t, output, `"msg":"http_request_finished"`)
	assert.Contains(t, output, `"status":418`)
	assert.Contains(t, output, `"level":"WARN"`)
}

func TestPanicRecovery(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.Contains(t, buffer.String(), `"msg":"panic_recovered"`)
}

func TestRateLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx)(ok)
	var retryAfter string
	send := func(ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		if recorder.Code == http.StatusTooManyRequests {
			retryAfter = recorder.Header().Get("Retry-After")
		}
		return recorder.Code
	}

	for range constants.DefaultRateLimitBurst {
		assert.Equal(t, http.StatusOK, send("203.0.113.7"))
	}

	limited := 0
	for range 20 {
		if send("203.0.113.7") == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Positive(t, limited, "requests beyond the burst are rejected")
	assert.Equal(t, "1", retryAfter)
	assert.Equal(t, http.StatusOK, send("203.0.113.8"), "limits are per client")
}

func TestCacheControl(t *testing.T) {
	handler := middleware.CacheControl(constants.ContentMaxAge)(ok)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "public, max-age=60", recorder.Header().Get("Cache-Control"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Empty(t, recorder.Header().Get("Cache-Control"))
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{"listed origin", corsConfig{origins: []string{"https://stories.example.com"}}, "https://stories.example.com", true},
		{"unlisted origin", corsConfig{origins: []string{"https://stories.example.com"}}, "https://evil.example.com", false},
		{"development", corsConfig{development: true}, "http://localhost:5173", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodOptions, "/api/v1/stories", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()
			middleware.CORS(tt.cfg)(ok).ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"remote address", nil, "192.0.2.1"},
		{"real ip", map[string]string{constants.HeaderXRealIP: "198.51.100.4"}, "198.51.100.4"},
		{"forwarded chain", map[string]string{constants.HeaderXForwardedFor: "198.51.100.9, 10.0.0.1"}, "198.51.100.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}
			assert.Equal(t, tt.want, middleware.RealIP(request))
		})
	}
}
