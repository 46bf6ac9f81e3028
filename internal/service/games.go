package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/models"
	"github.com/yourusername/diamond-odds/internal/repository"
)

// ProjectionSource lists player projections for a date
type ProjectionSource interface {
	GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error)
}

// GameService serves game, projection, weather and odds reads
type GameService struct {
	games       GameProvider
	projections ProjectionSource
	slate       SlateSource
	odds        OddsSource
	lines       repository.OddsRepository
	logger      *logrus.Entry
	now         func() time.Time
}

// NewGameService creates a game read service. lines may be nil when persistence is
// disabled; odds are then always fetched upstream.
func NewGameService(
	games GameProvider,
	projections ProjectionSource,
	slate SlateSource,
	odds OddsSource,
	lines repository.OddsRepository,
	logger *logrus.Logger,
) *GameService {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &GameService{
		games:       games,
		projections: projections,
		slate:       slate,
		odds:        odds,
		lines:       lines,
		logger:      logger.WithField("component", "games"),
		now:         time.Now,
	}
}

// Today returns the current UTC calendar date
func (s *GameService) Today() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GamesByDate lists the slate for date. A date without games is an empty list.
func (s *GameService) GamesByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	games, err := s.slate.GetGamesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []*models.Game{}
	}
	return games, nil
}

// Game returns one game, models.ErrGameNotFound on a miss
func (s *GameService) Game(ctx context.Context, id string) (*models.Game, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: game id is required", models.ErrInvalidArgument)
	}
	return s.games.GetGame(ctx, id)
}

// Weather returns the reported conditions for a game
func (s *GameService) Weather(ctx context.Context, id string) (*models.Weather, error) {
	game, err := s.Game(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Weather == nil {
		return nil, fmt.Errorf("%w: no weather reported for game %s", models.ErrNotFound, id)
	}
	return game.Weather, nil
}

// Projections lists player projections for date
func (s *GameService) Projections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error) {
	projections, err := s.projections.GetProjections(ctx, date)
	if err != nil {
		return nil, err
	}
	if projections == nil {
		projections = []models.PlayerProjection{}
	}
	return projections, nil
}

// OddsByDate lists sportsbook lines for every game on date
func (s *GameService) OddsByDate(ctx context.Context, date time.Time) ([]*models.MarketOdds, error) {
	lines, err := s.odds.GetOddsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []*models.MarketOdds{}
	}
	return lines, nil
}

// GameOdds returns the lines for one game. Stored lines are served first; otherwise the
// game's date is fetched upstream and the matching lines are stored.
func (s *GameService) GameOdds(ctx context.Context, id string) ([]*models.MarketOdds, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: game id is required", models.ErrInvalidArgument)
	}

	if s.lines != nil {
		stored, err := s.lines.GetByGame(ctx, id)
		if err != nil {
			s.logger.WithError(err).WithField("game_id", id).Warn("Failed to read stored odds")
		} else if len(stored) > 0 {
			return stored, nil
		}
	}

	game, err := s.games.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	date, ok := game.GameDate()
	if !ok {
		return nil, fmt.Errorf("%w: game %s has no start time", models.ErrNotFound, id)
	}

	all, err := s.odds.GetOddsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	var lines []*models.MarketOdds
	for _, line := range all {
		if line.GameID != id {
			continue
		}
		lines = append(lines, line)
		if s.lines != nil {
			if err := s.lines.Upsert(ctx, line); err != nil {
				s.logger.WithError(err).WithField("game_id", id).Warn("Failed to store odds")
			}
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no odds for game %s", models.ErrNotFound, id)
	}
	return lines, nil
}
