package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/models"
)

const routeDateLayout = "2006-01-02"

// GameReader is the read surface behind the game and odds routes
type GameReader interface {
	Today() time.Time
	GamesByDate(ctx context.Context, date time.Time) ([]*models.Game, error)
	Game(ctx context.Context, id string) (*models.Game, error)
	Weather(ctx context.Context, id string) (*models.Weather, error)
	Projections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error)
	OddsByDate(ctx context.Context, date time.Time) ([]*models.MarketOdds, error)
	GameOdds(ctx context.Context, id string) ([]*models.MarketOdds, error)
}

// GamesResponse lists the games for a date
type GamesResponse struct {
	Date  string         `json:"date"`
	Games []*models.Game `json:"games"`
}

// ProjectionsResponse lists player projections for a date
type ProjectionsResponse struct {
	Date        string                    `json:"date"`
	Projections []models.PlayerProjection `json:"projections"`
}

// OddsResponse lists sportsbook lines for a date or a single game
type OddsResponse struct {
	Date   string               `json:"date,omitempty"`
	GameID string               `json:"game_id,omitempty"`
	Lines  []*models.MarketOdds `json:"lines"`
}

// WeatherResponse carries the reported conditions for a game
type WeatherResponse struct {
	GameID  string          `json:"game_id"`
	Weather *models.Weather `json:"weather"`
}

// GamesHandler serves game, projection, weather and odds reads
type GamesHandler struct {
	reader GameReader
	errors *Handler
}

// NewGamesHandler creates the read handlers
func NewGamesHandler(reader GameReader, logger *logrus.Logger) *GamesHandler {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &GamesHandler{
		reader: reader,
		errors: &Handler{logger: logger.WithField("component", "api")},
	}
}

// Routes mounts the read routes under /games/baseball and /odds/mlb
func (g *GamesHandler) Routes(r chi.Router) {
	r.Route("/games/baseball", func(r chi.Router) {
		r.Get("/today", g.GamesToday)
		r.Get("/date/{date}", g.GamesByDate)
		r.Get("/projections/date/{date}", g.ProjectionsByDate)
		r.Get("/weather/{gameID}", g.GameWeather)
		r.Get("/odds/{gameID}", g.OddsForGame)
		r.Get("/{gameID}", g.GetGame)
	})
	r.Route("/odds/mlb", func(r chi.Router) {
		r.Get("/today", g.OddsToday)
		r.Get("/date/{date}", g.OddsByDate)
		r.Get("/games/{gameID}", g.OddsForGame)
	})
}

// GamesToday lists today's slate
func (g *GamesHandler) GamesToday(w http.ResponseWriter, r *http.Request) {
	g.listGames(w, r, g.reader.Today())
}

// GamesByDate lists the slate for a YYYY-MM-DD date
func (g *GamesHandler) GamesByDate(w http.ResponseWriter, r *http.Request) {
	date, err := parseRouteDate(chi.URLParam(r, "date"))
	if err != nil {
		g.errors.respondError(w, err)
		return
	}
	g.listGames(w, r, date)
}

func (g *GamesHandler) listGames(w http.ResponseWriter, r *http.Request, date time.Time) {
	games, err := g.reader.GamesByDate(r.Context(), date)
	if err != nil {
		g.errors.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, GamesResponse{Date: date.Format(routeDateLayout), Games: games})
}

// GetGame returns one game with its venue and weather
func (g *GamesHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := g.reader.Game(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.errors.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, game)
}

// GameWeather returns the reported conditions for a game
func (g *GamesHandler) GameWeather(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	weather, err := g.reader.Weather(r.Context(), gameID)
	if err != nil {
		g.errors.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, WeatherResponse{GameID: gameID, Weather: weather})
}

// ProjectionsByDate lists player projections for a date
func (g *GamesHandler) ProjectionsByDate(w http.ResponseWriter, r *http.Request) {
	date, err := parseRouteDate(chi.URLParam(r, "date"))
	if err != nil {
		g.errors.respondError(w, err)
		return
	}
	projections, err := g.reader.Projections(r.Context(), date)
	if err != nil {
		g.errors.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProjectionsResponse{Date: date.Format(routeDateLayout), Projections: projections})
}

// OddsToday lists today's sportsbook lines
func (g *GamesHandler) OddsToday(w http.ResponseWriter, r *http.Request) {
	g.listOdds(w, r, g.reader.Today())
}

// OddsByDate lists sportsbook lines for a YYYY-MM-DD date
func (g *GamesHandler) OddsByDate(w http.ResponseWriter, r *http.Request) {
	date, err := parseRouteDate(chi.URLParam(r, "date"))
	if err != nil {
		g.errors.respondError(w, err)
		return
	}
	g.listOdds(w, r, date)
}

func (g *GamesHandler) listOdds(w http.ResponseWriter, r *http.Request, date time.Time) {
	lines, err := g.reader.OddsByDate(r.Context(), date)
	if err != nil {
		g.errors.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, OddsResponse{Date: date.Format(routeDateLayout), Lines: lines})
}

// OddsForGame lists the lines for one game
func (g *GamesHandler) OddsForGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	lines, err := g.reader.GameOdds(r.Context(), gameID)
	if err != nil {
		g.errors.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, OddsResponse{GameID: gameID, Lines: lines})
}

func parseRouteDate(raw string) (time.Time, error) {
	date, err := time.Parse(routeDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", models.ErrInvalidArgument, raw)
	}
	return date, nil
}
