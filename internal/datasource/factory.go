package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/config"
)

// HTTPClientConfigFrom derives HTTP client settings from the SportsDataIO section
func HTTPClientConfigFrom(cfg config.SportsDataConfig) HTTPClientConfig {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.RetryAttempts
	httpCfg.RateLimit = cfg.RequestsPerSecond
	httpCfg.Burst = cfg.Burst
	return httpCfg
}

// NewFromConfig builds the SportsDataIO client described by configuration
func NewFromConfig(cfg *config.Config, logger *logrus.Logger) (*SportsDataClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if cfg.SportsData.BaseURL == "" {
		return nil, fmt.Errorf("sportsdata base_url is required")
	}
	if cfg.SportsData.APIKey == "" && logger != nil {
		logger.WithField("component", "sportsdata").Warn("SportsDataIO API key is empty; requests will be rejected upstream")
	}

	httpClient := NewRateLimitedHTTPClient(HTTPClientConfigFrom(cfg.SportsData), logger)
	return NewSportsDataClient(httpClient, cfg.SportsData.BaseURL, cfg.SportsData.APIKey, logger), nil
}
