package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/metrics"
	"github.com/yourusername/diamond-odds/internal/models"
)

const (
	sportsDataName   = "sportsdataio"
	apiKeyHeader     = "Ocp-Apim-Subscription-Key"
	sportsDataLayout = "2006-01-02T15:04:05"
	dateLayout       = "2006-01-02"
)

var gameStatuses = map[string]string{
	"Scheduled":  "scheduled",
	"InProgress": "inProgress",
	"Final":      "final",
	"F/OT":       "final",
	"Suspended":  "suspended",
	"Postponed":  "postponed",
	"Delayed":    "delayed",
	"Canceled":   "canceled",
	"Forfeit":    "forfeit",
}

// SportsDataClient fetches MLB games, projections and odds from the SportsDataIO v3 API
type SportsDataClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Entry
}

// NewSportsDataClient creates a SportsDataIO client. baseURL is the MLB root, e.g.
// https://api.sportsdata.io/v3/mlb.
func NewSportsDataClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *SportsDataClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &SportsDataClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger.WithField("component", "sportsdata"),
	}
}

// Name returns the name of the data source
func (c *SportsDataClient) Name() string {
	return sportsDataName
}

// Close releases idle upstream connections
func (c *SportsDataClient) Close() error {
	return c.httpClient.Close()
}

type sdGame struct {
	GameID        int        `json:"GameID"`
	Status        string     `json:"Status"`
	DateTime      string     `json:"DateTime"`
	StadiumName   string     `json:"StadiumName"`
	HomeTeam      string     `json:"HomeTeam"`
	AwayTeam      string     `json:"AwayTeam"`
	Weather       *string    `json:"Weather"`
	Temperature   *float64   `json:"Temperature"`
	WindSpeed     *float64   `json:"WindSpeed"`
	WindDirection flexString `json:"WindDirection"`
}

// flexString accepts either a JSON string or a number, as wind direction is reported both ways
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type sdBoxScore struct {
	Game *sdGame `json:"Game"`
}

type sdProjection struct {
	PlayerID              int    `json:"PlayerID"`
	Name                  string `json:"Name"`
	Team                  string `json:"Team"`
	Position              string `json:"Position"`
	GameID                int    `json:"GameID"`
	HomeOrAway            string `json:"HomeOrAway"`
	BattingOrder          *int   `json:"BattingOrder"`
	BattingOrderConfirmed bool   `json:"BattingOrderConfirmed"`
}

type sdGameOdds struct {
	GameID      int          `json:"GameID"`
	PregameOdds []sdBookLine `json:"PregameOdds"`
}

type sdBookLine struct {
	Sportsbook    string   `json:"Sportsbook"`
	HomeMoneyLine *int     `json:"HomeMoneyLine"`
	AwayMoneyLine *int     `json:"AwayMoneyLine"`
	OverUnder     *float64 `json:"OverUnder"`
	OverPayout    *int     `json:"OverPayout"`
	UnderPayout   *int     `json:"UnderPayout"`
	Updated       string   `json:"Updated"`
}

// GetGame retrieves a single game via its box score
func (c *SportsDataClient) GetGame(ctx context.Context, id string) (*models.Game, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty game id", models.ErrGameNotFound)
	}

	var box sdBoxScore
	if err := c.get(ctx, "stats", "BoxScore", "BoxScore/"+id, &box); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrGameNotFound, id)
		}
		return nil, err
	}
	if box.Game == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrGameNotFound, id)
	}

	return box.Game.toModel(), nil
}

// GetGamesByDate retrieves the slate for a calendar date
func (c *SportsDataClient) GetGamesByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	var raw []sdGame
	if err := c.get(ctx, "scores", "GamesByDate", "GamesByDate/"+date.Format(dateLayout), &raw); err != nil {
		return nil, err
	}

	games := make([]*models.Game, 0, len(raw))
	for i := range raw {
		games = append(games, raw[i].toModel())
	}
	return games, nil
}

// GetProjections retrieves projected player stats, which carry the projected lineups
func (c *SportsDataClient) GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error) {
	var raw []sdProjection
	path := "PlayerGameProjectionStatsByDate/" + date.Format(dateLayout)
	if err := c.get(ctx, "projections", "PlayerGameProjectionStatsByDate", path, &raw); err != nil {
		return nil, err
	}

	projections := make([]models.PlayerProjection, 0, len(raw))
	for _, p := range raw {
		projection := models.PlayerProjection{
			PlayerID:              strconv.Itoa(p.PlayerID),
			Name:                  p.Name,
			TeamID:                p.Team,
			Position:              p.Position,
			GameID:                strconv.Itoa(p.GameID),
			IsHome:                p.HomeOrAway == "HOME",
			BattingOrderConfirmed: p.BattingOrderConfirmed,
		}
		if p.BattingOrder != nil {
			projection.BattingOrder = *p.BattingOrder
		}
		projections = append(projections, projection)
	}
	return projections, nil
}

// GetOddsByDate retrieves pregame sportsbook lines for a calendar date
func (c *SportsDataClient) GetOddsByDate(ctx context.Context, date time.Time) ([]*models.MarketOdds, error) {
	var raw []sdGameOdds
	if err := c.get(ctx, "odds", "GameOddsByDate", "GameOddsByDate/"+date.Format(dateLayout), &raw); err != nil {
		return nil, err
	}

	var lines []*models.MarketOdds
	for _, game := range raw {
		gameID := strconv.Itoa(game.GameID)
		for _, book := range game.PregameOdds {
			line := &models.MarketOdds{
				GameID:        gameID,
				Sportsbook:    book.Sportsbook,
				HomeMoneyline: book.HomeMoneyLine,
				AwayMoneyline: book.AwayMoneyLine,
				TotalRuns:     book.OverUnder,
				OverOdds:      book.OverPayout,
				UnderOdds:     book.UnderPayout,
			}
			if t, err := time.Parse(sportsDataLayout, book.Updated); err == nil {
				line.LastUpdated = t.UTC()
			}
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// get performs a GET against {base}/{category}/json/{path} and decodes the JSON body
func (c *SportsDataClient) get(ctx context.Context, category, endpoint, path string, out interface{}) error {
	url := fmt.Sprintf("%s/%s/json/%s", c.baseURL, category, path)
	start := time.Now()

	resp, err := c.httpClient.Get(ctx, url, map[string]string{apiKeyHeader: c.apiKey})
	if err != nil {
		metrics.RecordUpstreamRequest(endpoint, "error", time.Since(start).Seconds())
		return NewDataSourceError(sportsDataName, ErrCodeNetworkError, "request failed", fmt.Errorf("%w: %v", ErrNetworkError, err))
	}
	defer resp.Body.Close()
	metrics.RecordUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NewDataSourceError(sportsDataName, ErrCodeNotFound, endpoint, models.ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewDataSourceError(sportsDataName, ErrCodeAuthenticationFailed, endpoint, ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(sportsDataName, ErrCodeRateLimitExceeded, endpoint, ErrRateLimitExceeded)
	case resp.StatusCode >= 500:
		return NewDataSourceError(sportsDataName, ErrCodeServerError, fmt.Sprintf("%s returned %d", endpoint, resp.StatusCode), ErrServerError)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
			"body":     string(body),
		}).Warn("Unexpected SportsDataIO response")
		return NewDataSourceError(sportsDataName, ErrCodeInvalidData, fmt.Sprintf("%s returned %d", endpoint, resp.StatusCode), ErrInvalidData)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(sportsDataName, ErrCodeInvalidData, "decode "+endpoint, fmt.Errorf("%w: %v", ErrInvalidData, err))
	}
	return nil
}

func (g *sdGame) toModel() *models.Game {
	game := &models.Game{
		ID:      strconv.Itoa(g.GameID),
		Status:  mapGameStatus(g.Status),
		Stadium: g.StadiumName,
		// SportsDataIO games carry team keys only, which projections use as well
		HomeTeam: models.TeamRef{ID: g.HomeTeam, Name: g.HomeTeam, Abbreviation: g.HomeTeam},
		AwayTeam: models.TeamRef{ID: g.AwayTeam, Name: g.AwayTeam, Abbreviation: g.AwayTeam},
	}

	// DateTime is local to the slate; parsing it as UTC keeps the slate date intact
	if t, err := time.Parse(sportsDataLayout, g.DateTime); err == nil {
		game.StartTime = &t
	}

	if g.Weather != nil && *g.Weather != "" {
		game.Weather = &models.Weather{
			Temperature:   g.Temperature,
			Condition:     *g.Weather,
			WindSpeed:     g.WindSpeed,
			WindDirection: string(g.WindDirection),
		}
	}
	return game
}

func mapGameStatus(status string) string {
	if mapped, ok := gameStatuses[status]; ok {
		return mapped
	}
	return "unknown"
}
