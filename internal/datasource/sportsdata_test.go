package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-odds/internal/config"
	"github.com/yourusername/diamond-odds/internal/models"
)

const boxScoreBody = `{
	"Game": {
		"GameID": 61234,
		"Status": "Scheduled",
		"DateTime": "2024-06-01T19:10:00",
		"StadiumName": "Coors Field",
		"HomeTeam": "COL",
		"AwayTeam": "LAD",
		"Weather": "Sunny",
		"Temperature": 88,
		"WindSpeed": 12,
		"WindDirection": "Out to CF"
	}
}`

func testClient(t *testing.T, handler http.HandlerFunc) *SportsDataClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpCfg := DefaultHTTPClientConfig()
	httpCfg.MaxRetries = 1
	httpCfg.RetryWaitMin = time.Millisecond
	httpCfg.RetryWaitMax = 2 * time.Millisecond
	httpCfg.RateLimit = 1000
	httpCfg.Burst = 10

	return NewSportsDataClient(NewRateLimitedHTTPClient(httpCfg, nil), server.URL+"/", "secret", nil)
}

func TestSportsDataGetGame(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats/json/BoxScore/61234", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get(apiKeyHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(boxScoreBody))
	})

	game, err := client.GetGame(context.Background(), "61234")
	require.NoError(t, err)

	assert.Equal(t, "61234", game.ID)
	assert.Equal(t, "scheduled", game.Status)
	assert.Equal(t, "Coors Field", game.Stadium)
	assert.Equal(t, "COL", game.HomeTeam.ID)
	assert.Equal(t, "LAD", game.AwayTeam.Abbreviation)
	require.NotNil(t, game.StartTime)
	date, ok := game.GameDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), date)
	require.NotNil(t, game.Weather)
	assert.Equal(t, 88.0, *game.Weather.Temperature)
	assert.Equal(t, "Out to CF", game.Weather.WindDirection)
}

func TestSportsDataGetGameNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetGame(context.Background(), "999")
	assert.True(t, errors.Is(err, models.ErrGameNotFound))

	_, err = client.GetGame(context.Background(), " ")
	assert.True(t, errors.Is(err, models.ErrGameNotFound))
}

func TestSportsDataNumericWindDirection(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"GameID": 1, "Status": "Final", "HomeTeam": "NYY", "AwayTeam": "BOS",
			"Weather": "Cloudy", "WindDirection": 270}]`))
	})

	games, err := client.GetGamesByDate(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "final", games[0].Status)
	assert.Equal(t, "270", games[0].Weather.WindDirection)
	assert.Nil(t, games[0].StartTime)
}

func TestSportsDataGetGamesByDate(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scores/json/GamesByDate/2024-06-01", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"GameID": 1, "Status": "Scheduled", "HomeTeam": "NYY", "AwayTeam": "BOS", "DateTime": "2024-06-01T13:05:00"},
			{"GameID": 2, "Status": "Weird", "HomeTeam": "CHC", "AwayTeam": "STL", "Weather": ""}
		]`))
	})

	games, err := client.GetGamesByDate(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "scheduled", games[0].Status)
	assert.Equal(t, "unknown", games[1].Status)
	assert.Nil(t, games[1].Weather)
}

func TestSportsDataGetProjections(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projections/json/PlayerGameProjectionStatsByDate/2024-06-01", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"PlayerID": 10, "Name": "A", "Team": "NYY", "Position": "SS", "GameID": 1, "HomeOrAway": "HOME", "BattingOrder": 1, "BattingOrderConfirmed": true},
			{"PlayerID": 11, "Name": "B", "Team": "BOS", "Position": "P", "GameID": 1, "HomeOrAway": "AWAY", "BattingOrder": null}
		]`))
	})

	projections, err := client.GetProjections(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, projections, 2)
	assert.Equal(t, models.PlayerProjection{
		PlayerID: "10", Name: "A", TeamID: "NYY", Position: "SS", GameID: "1",
		IsHome: true, BattingOrder: 1, BattingOrderConfirmed: true,
	}, projections[0])
	assert.False(t, projections[1].IsHome)
	assert.Zero(t, projections[1].BattingOrder)
}

func TestSportsDataGetOddsByDate(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/odds/json/GameOddsByDate/2024-06-01", r.URL.Path)
		_, _ = w.Write([]byte(`[{"GameID": 7, "PregameOdds": [
			{"Sportsbook": "DraftKings", "HomeMoneyLine": -130, "AwayMoneyLine": 110, "OverUnder": 8.5,
			 "OverPayout": -110, "UnderPayout": -110, "Updated": "2024-06-01T10:00:00"},
			{"Sportsbook": "FanDuel", "HomeMoneyLine": null}
		]}]`))
	})

	lines, err := client.GetOddsByDate(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "7", lines[0].GameID)
	assert.Equal(t, -130, *lines[0].HomeMoneyline)
	assert.Equal(t, 8.5, *lines[0].TotalRuns)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), lines[0].LastUpdated)
	assert.Nil(t, lines[1].HomeMoneyline)
}

func TestSportsDataErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuthenticationFailed},
		{"server error", http.StatusServiceUnavailable, ErrServerError},
		{"bad request", http.StatusBadRequest, ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.GetGamesByDate(context.Background(), time.Now())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestSportsDataMalformedBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.GetGamesByDate(context.Background(), time.Now())
	assert.True(t, errors.Is(err, ErrInvalidData))
}

func TestRateLimitedHTTPClientRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 2
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 2 * time.Millisecond
	cfg.RateLimit = 1000
	client := NewRateLimitedHTTPClient(cfg, nil)

	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRateLimitedHTTPClientCancelled(t *testing.T) {
	client := NewRateLimitedHTTPClient(DefaultHTTPClientConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "http://127.0.0.1:1", nil)
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	_, err := NewFromConfig(nil, nil)
	assert.Error(t, err)

	cfg := &config.Config{SportsData: config.SportsDataConfig{
		BaseURL:           "https://api.sportsdata.io/v3/mlb",
		APIKey:            "key",
		TimeoutSeconds:    10,
		RetryAttempts:     2,
		RequestsPerSecond: 3,
		Burst:             2,
	}}
	client, err := NewFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "sportsdataio", client.Name())

	httpCfg := HTTPClientConfigFrom(cfg.SportsData)
	assert.Equal(t, 10*time.Second, httpCfg.Timeout)
	assert.Equal(t, 2, httpCfg.MaxRetries)
	assert.Equal(t, 3.0, httpCfg.RateLimit)
	assert.Equal(t, 2, httpCfg.Burst)
}

var _ GameSource = (*SportsDataClient)(nil)
