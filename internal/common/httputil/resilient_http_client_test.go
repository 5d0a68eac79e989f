package httputil_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-homework-bot/internal/common/httputil"
	"github.com/central-university-dev/go-homework-bot/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ExternalRequestTimeout:     5 * time.Second,
		CBSlidingWindowSize:        100,
		CBMinimumRequiredCalls:     10,
		CBFailureRateThreshold:     90,
		CBPermittedCallsInHalfOpen: 1,
		CBWaitDurationInOpenState:  10 * time.Second,
	}
}

func TestServerErrorIsReturnedAsResponse(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "maintenance"}`))
	}))
	defer server.Close()

	client := httputil.CreateResilientHTTPClient(testConfig(), logger, "test_service")

	resp, err := client.R().Get(server.URL + "/test")

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "maintenance")
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount), "Повторных запросов быть не должно")
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.CBMinimumRequiredCalls = 2
	cfg.CBFailureRateThreshold = 100

	client := httputil.CreateResilientHTTPClient(cfg, logger, "test_service")

	for i := 0; i < 2; i++ {
		resp, err := client.R().Get(server.URL + "/test")
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	}

	start := time.Now()
	_, err := client.R().Get(server.URL + "/test")
	duration := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, duration, 200*time.Millisecond, "Circuit breaker должен отвечать быстро")
	assert.Equal(t, int32(2), atomic.LoadInt32(&requestCount))
}

func TestClientErrorDoesNotTripBreaker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.CBMinimumRequiredCalls = 1
	cfg.CBFailureRateThreshold = 100

	client := httputil.CreateResilientHTTPClient(cfg, logger, "test_service")

	for i := 0; i < 3; i++ {
		resp, err := client.R().Get(server.URL + "/test")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	}

	assert.Equal(t, int32(3), atomic.LoadInt32(&requestCount))
}

func TestRequestTimeout(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.ExternalRequestTimeout = 50 * time.Millisecond

	client := httputil.CreateResilientHTTPClient(cfg, logger, "test_service")

	_, err := client.R().Get(server.URL + "/slow")

	require.Error(t, err)
}
