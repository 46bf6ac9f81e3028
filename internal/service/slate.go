package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/logger"
	"github.com/yourusername/diamond-odds/internal/models"
	"github.com/yourusername/diamond-odds/internal/repository"
)

const dateLayout = "2006-01-02"

// SlateSource lists the games scheduled on a date
type SlateSource interface {
	GetGamesByDate(ctx context.Context, date time.Time) ([]*models.Game, error)
}

// OddsSource lists sportsbook lines for a date
type OddsSource interface {
	GetOddsByDate(ctx context.Context, date time.Time) ([]*models.MarketOdds, error)
}

// GameOutcome is the slate result for one game
type GameOutcome struct {
	GameID string                   `json:"gameId"`
	Result *models.SimulationResult `json:"result,omitempty"`
	Edges  []models.MarketEdge      `json:"edges,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// SlateReport summarises a slate run
type SlateReport struct {
	Date      string        `json:"date"`
	Games     int           `json:"games"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Outcomes  []GameOutcome `json:"outcomes"`
}

// SlateService simulates every game on a date and compares the results to the market
type SlateService struct {
	source    SlateSource
	odds      OddsSource
	simulator *SimulationService
	comparer  *MarketComparer
	games     repository.GameRepository
	lines     repository.OddsRepository
	logger    *logger.SimulationLogger
}

// NewSlateService creates a slate service. odds, comparer, games and lines may be nil.
func NewSlateService(
	source SlateSource,
	odds OddsSource,
	simulator *SimulationService,
	comparer *MarketComparer,
	games repository.GameRepository,
	lines repository.OddsRepository,
	log *logger.SimulationLogger,
) *SlateService {
	if log == nil {
		log = logger.NewSimulationLogger(logger.Discard())
	}
	return &SlateService{
		source:    source,
		odds:      odds,
		simulator: simulator,
		comparer:  comparer,
		games:     games,
		lines:     lines,
		logger:    log,
	}
}

// RunSlate simulates each game on date with count trials. A failing game is recorded in
// the report and does not stop the slate; only a slate lookup failure or cancellation
// returns an error.
func (s *SlateService) RunSlate(ctx context.Context, date time.Time, count int) (*SlateReport, error) {
	day := date.UTC().Format(dateLayout)

	games, err := s.source.GetGamesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	lines := s.loadLines(ctx, date)

	report := &SlateReport{Date: day, Games: len(games), Outcomes: make([]GameOutcome, 0, len(games))}
	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if s.games != nil {
			if err := s.games.Upsert(ctx, game); err != nil {
				s.logger.WithError(err).WithField("game_id", game.ID).Warn("Failed to store game")
			}
		}

		outcome := GameOutcome{GameID: game.ID}
		result, err := s.simulator.RunGame(ctx, game, count)
		if err != nil {
			outcome.Error = err.Error()
			report.Failed++
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		outcome.Result = result
		if s.comparer != nil {
			for _, line := range lines[game.ID] {
				outcome.Edges = append(outcome.Edges, s.comparer.CompareToMarket(result, line)...)
			}
		}
		report.Succeeded++
		report.Outcomes = append(report.Outcomes, outcome)
	}

	s.logger.LogSlateCompleted(day, report.Games, report.Succeeded, report.Failed)
	return report, nil
}

// loadLines fetches and stores the day's lines keyed by game. Odds are optional, so
// failures are logged and an empty map returned.
func (s *SlateService) loadLines(ctx context.Context, date time.Time) map[string][]*models.MarketOdds {
	byGame := map[string][]*models.MarketOdds{}
	if s.odds == nil {
		return byGame
	}

	lines, err := s.odds.GetOddsByDate(ctx, date)
	if err != nil {
		s.logger.WithError(err).WithField("date", date.Format(dateLayout)).Warn("Failed to load market odds")
		return byGame
	}

	for _, line := range lines {
		byGame[line.GameID] = append(byGame[line.GameID], line)
		if s.lines != nil {
			if err := s.lines.Upsert(ctx, line); err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"game_id":    line.GameID,
					"sportsbook": line.Sportsbook,
				}).Warn("Failed to store market odds")
			}
		}
	}
	return byGame
}
