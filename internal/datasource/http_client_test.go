package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClientConfig() HTTPClientConfig {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.Burst = 10
	cfg.FailureThreshold = 2
	cfg.Cooldown = time.Minute
	return cfg
}

func TestRateLimitedHTTPClientCircuitBreaker(t *testing.T) {
	var calls atomic.Int32
	status := atomic.Int32{}
	status.Store(http.StatusInternalServerError)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	now := time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC)
	client := NewRateLimitedHTTPClient(testClientConfig(), nil)
	client.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := client.Get(ctx, server.URL, nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	}
	assert.True(t, client.CircuitOpen())

	_, err := client.Get(ctx, server.URL, nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())

	// one trial request is let through once the cooldown has elapsed
	now = now.Add(time.Minute)
	status.Store(http.StatusOK)
	resp, err := client.Get(ctx, server.URL, map[string]string{apiKeyHeader: "k"})
	require.NoError(t, err)
	resp.Body.Close()
	assert.False(t, client.CircuitOpen())
	assert.Equal(t, int32(3), calls.Load())
}

func TestRateLimitedHTTPClientResetCircuit(t *testing.T) {
	client := NewRateLimitedHTTPClient(testClientConfig(), nil)
	client.recordFailure(assert.AnError)
	client.recordFailure(assert.AnError)
	require.True(t, client.CircuitOpen())

	client.ResetCircuit()
	assert.False(t, client.CircuitOpen())
}

func TestRetryPolicy(t *testing.T) {
	policy := retryPolicy()
	ctx := context.Background()

	tests := []struct {
		status int
		retry  bool
	}{
		{http.StatusOK, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
	}
	for _, tt := range tests {
		retry, err := policy(ctx, &http.Response{StatusCode: tt.status}, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.retry, retry, "status %d", tt.status)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	retry, err := policy(cancelled, nil, assert.AnError)
	assert.False(t, retry)
	assert.ErrorIs(t, err, context.Canceled)
}
