package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrCircuitOpen is returned while the breaker rejects upstream calls
var ErrCircuitOpen = errors.New("circuit breaker open")

// HTTPClientConfig holds configuration for the SportsDataIO transport
type HTTPClientConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
	Burst        int
	// FailureThreshold consecutive failures open the breaker; 0 disables it
	FailureThreshold int
	// Cooldown is how long an open breaker waits before letting a trial request through
	Cooldown time.Duration
}

// DefaultHTTPClientConfig suits the SportsDataIO trial tier
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:          10 * time.Second,
		MaxRetries:       3,
		RetryWaitMin:     250 * time.Millisecond,
		RetryWaitMax:     4 * time.Second,
		RateLimit:        2.0,
		Burst:            4,
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
	}
}

// RateLimitedHTTPClient throttles, retries and trips a breaker on repeated upstream failure
type RateLimitedHTTPClient struct {
	client    *retryablehttp.Client
	limiter   *rate.Limiter
	threshold int
	cooldown  time.Duration
	logger    *logrus.Entry
	now       func() time.Time

	mu       sync.Mutex
	failures int
	openedAt time.Time
	lastErr  error
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *logrus.Logger) *RateLimitedHTTPClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	entry := logger.WithField("component", "http_client")

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = retryPolicy()
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = leveledLogger{entry}

	return &RateLimitedHTTPClient{
		client:    retryClient,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.Cooldown,
		logger:    entry,
		now:       time.Now,
	}
}

// Do sends req once the limiter admits it. Transport errors and 5xx responses count
// towards the breaker; any other response closes it.
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.allow(); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to wrap request: %w", err)
	}

	resp, err := c.client.Do(retryReq)
	switch {
	case err != nil:
		c.recordFailure(err)
		return nil, err
	case resp.StatusCode >= http.StatusInternalServerError:
		c.recordFailure(fmt.Errorf("upstream returned %d", resp.StatusCode))
	default:
		c.ResetCircuit()
	}
	return resp, nil
}

// CircuitOpen reports whether the breaker currently rejects calls
func (c *RateLimitedHTTPClient) CircuitOpen() bool {
	return c.allow() != nil
}

func (c *RateLimitedHTTPClient) allow() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.openedAt.IsZero() {
		return nil
	}
	if c.cooldown > 0 && c.now().Sub(c.openedAt) >= c.cooldown {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrCircuitOpen, c.lastErr)
}

func (c *RateLimitedHTTPClient) recordFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures++
	c.lastErr = err
	if c.threshold > 0 && c.failures >= c.threshold {
		if c.openedAt.IsZero() {
			c.logger.WithError(err).WithField("failures", c.failures).Warn("Circuit breaker opened")
		}
		c.openedAt = c.now()
	}
}

// Get executes a GET request with the given headers
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.Do(ctx, req)
}

// ResetCircuit closes the breaker and clears the failure count
func (c *RateLimitedHTTPClient) ResetCircuit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = 0
	c.openedAt = time.Time{}
	c.lastErr = nil
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// retryPolicy retries transport errors, throttling and gateway failures
func retryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, err
		}

		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		}

		return false, nil
	}
}

// leveledLogger adapts logrus to retryablehttp.LeveledLogger, demoting per-attempt chatter to debug
type leveledLogger struct {
	entry *logrus.Entry
}

func (l leveledLogger) fields(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
