package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/diamond-odds/internal/models"
)

// GameSource defines the interface for fetching MLB data from external providers
type GameSource interface {
	// GetGame retrieves a single game, returning models.ErrGameNotFound on a miss
	GetGame(ctx context.Context, id string) (*models.Game, error)

	// GetGamesByDate retrieves the slate for a calendar date
	GetGamesByDate(ctx context.Context, date time.Time) ([]*models.Game, error)

	// GetProjections retrieves player projections for a calendar date
	GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error)

	// GetOddsByDate retrieves sportsbook lines for a calendar date
	GetOddsByDate(ctx context.Context, date time.Time) ([]*models.MarketOdds, error)

	// Name returns the name of the data source
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string
	Err     error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
