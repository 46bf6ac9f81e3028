// Package service orchestrates game lookup, factor analysis, simulation and persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yourusername/diamond-odds/internal/cache"
	"github.com/yourusername/diamond-odds/internal/factors"
	"github.com/yourusername/diamond-odds/internal/logger"
	"github.com/yourusername/diamond-odds/internal/metrics"
	"github.com/yourusername/diamond-odds/internal/models"
	"github.com/yourusername/diamond-odds/internal/repository"
	"github.com/yourusername/diamond-odds/internal/simulation"
	"github.com/yourusername/diamond-odds/internal/tracing"
)

const (
	defaultSimulationCount = 1000
	defaultHistoryLimit    = 5
	maxHistoryLimit        = 100
)

// GameProvider resolves a game by ID, returning models.ErrGameNotFound on a miss
type GameProvider interface {
	GetGame(ctx context.Context, id string) (*models.Game, error)
}

// SimulationRequest is a request to simulate one game
type SimulationRequest struct {
	GameID string `json:"gameId" validate:"required"`
	// Count 0 selects the configured default
	Count int `json:"count" validate:"gte=0"`
	// Seed 0 falls back to the engine seed
	Seed    int64             `json:"seed,omitempty"`
	Factors *models.FactorSet `json:"factors,omitempty"`
	Matchup *models.Matchup   `json:"matchup,omitempty"`
}

// FactorAnalysis is the analyzer output for one game
type FactorAnalysis struct {
	GameID       string           `json:"gameId"`
	Factors      models.FactorSet `json:"factors"`
	Descriptions []string         `json:"impactingFactors"`
}

// HistoryEntry is one stored simulation run
type HistoryEntry struct {
	ID        uuid.UUID                `json:"id"`
	CreatedAt time.Time                `json:"createdAt"`
	Result    *models.SimulationResult `json:"result"`
}

// SimulationServiceConfig holds service-level knobs
type SimulationServiceConfig struct {
	DefaultCount int
	HistoryLimit int
}

// SimulationService runs simulations for games
type SimulationService struct {
	games    GameProvider
	analyzer *factors.Analyzer
	engine   *simulation.Engine
	ratings  RatingSource
	runs     repository.SimulationRepository
	results  *cache.Cache

	cfg          SimulationServiceConfig
	validate     *validator.Validate
	factorLogger *logger.FactorLogger
	auditLogger  *logger.AuditLogger
	now          func() time.Time
}

// NewSimulationService creates a simulation service. runs and results may be nil to
// disable persistence and result caching.
func NewSimulationService(
	games GameProvider,
	analyzer *factors.Analyzer,
	engine *simulation.Engine,
	ratings RatingSource,
	runs repository.SimulationRepository,
	results *cache.Cache,
	cfg SimulationServiceConfig,
	factorLogger *logger.FactorLogger,
	auditLogger *logger.AuditLogger,
) *SimulationService {
	if ratings == nil {
		ratings = DefaultRatingSource()
	}
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = defaultSimulationCount
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	if factorLogger == nil {
		factorLogger = logger.NewFactorLogger(logger.Discard())
	}
	if auditLogger == nil {
		auditLogger = logger.NewAuditLogger(logger.Discard())
	}

	return &SimulationService{
		games:        games,
		analyzer:     analyzer,
		engine:       engine,
		ratings:      ratings,
		runs:         runs,
		results:      results,
		cfg:          cfg,
		validate:     validator.New(),
		factorLogger: factorLogger,
		auditLogger:  auditLogger,
		now:          time.Now,
	}
}

// Run simulates the requested game. Factors are analyzed unless the request supplies
// them; ratings come from the rating source unless the request overrides them.
func (s *SimulationService) Run(ctx context.Context, req SimulationRequest) (*models.SimulationResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	count := req.Count
	if count == 0 {
		count = s.cfg.DefaultCount
	}

	// Only requests fully determined by game, count and seed are cacheable
	cacheable := s.results != nil && req.Factors == nil && req.Matchup == nil
	key := cache.SimulationKey(req.GameID, count, req.Seed)
	if cacheable {
		if v, ok := s.results.Get(key); ok {
			if result, ok := v.(*models.SimulationResult); ok {
				return result, nil
			}
		}
	}

	game, err := s.games.GetGame(ctx, req.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve game %s: %w", req.GameID, err)
	}

	result, err := s.simulate(ctx, game, req, count)
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.results.Set(key, result)
	}

	return result, nil
}

// RunGame simulates an already resolved game with analyzed factors and source ratings
func (s *SimulationService) RunGame(ctx context.Context, game *models.Game, count int) (*models.SimulationResult, error) {
	if !game.HasID() {
		return nil, models.ErrGameNotFound
	}
	if count == 0 {
		count = s.cfg.DefaultCount
	}
	return s.simulate(ctx, game, SimulationRequest{GameID: game.ID}, count)
}

func (s *SimulationService) simulate(ctx context.Context, game *models.Game, req SimulationRequest, count int) (*models.SimulationResult, error) {
	var (
		fs  models.FactorSet
		err error
	)
	if req.Factors != nil {
		fs = *req.Factors
	} else {
		fs, err = s.analyzeGame(ctx, game)
		if err != nil {
			return nil, err
		}
	}

	matchup, err := s.matchupFor(ctx, game, req.Matchup)
	if err != nil {
		return nil, err
	}

	var result *models.SimulationResult
	err = tracing.Trace(ctx, "simulate_game", func(ctx context.Context) error {
		tracing.AddAnnotation(ctx, "game_id", game.ID)
		tracing.AddAnnotation(ctx, "count", count)

		var runErr error
		result, runErr = s.engine.Run(ctx, simulation.Input{
			GameID:       game.ID,
			HomeTeamName: game.HomeTeam.Name,
			AwayTeamName: game.AwayTeam.Name,
			Count:        count,
			Matchup:      matchup,
			Factors:      fs,
			Descriptions: factors.Describe(fs),
			Seed:         req.Seed,
		})
		return runErr
	})
	if err != nil {
		return nil, err
	}

	s.persist(ctx, result)
	return result, nil
}

// AnalyzeFactors runs the factor analyzer alone
func (s *SimulationService) AnalyzeFactors(ctx context.Context, gameID string) (*FactorAnalysis, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, fmt.Errorf("%w: game id is required", models.ErrInvalidArgument)
	}

	game, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve game %s: %w", gameID, err)
	}

	fs, err := s.analyzeGame(ctx, game)
	if err != nil {
		return nil, err
	}

	return &FactorAnalysis{
		GameID:       game.ID,
		Factors:      fs,
		Descriptions: factors.Describe(fs),
	}, nil
}

// History returns the most recent stored runs for a game, newest first. A limit of 0
// selects the configured default.
func (s *SimulationService) History(ctx context.Context, gameID string, limit int) ([]HistoryEntry, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, fmt.Errorf("%w: game id is required", models.ErrInvalidArgument)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", models.ErrInvalidArgument)
	}
	if limit == 0 {
		limit = s.cfg.HistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries := []HistoryEntry{}
	if s.runs == nil {
		return entries, nil
	}

	runs, err := s.runs.ListByGame(ctx, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation history: %w", err)
	}

	for _, run := range runs {
		result, err := run.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode simulation run %s: %w", run.ID, err)
		}
		entries = append(entries, HistoryEntry{ID: run.ID, CreatedAt: run.CreatedAt, Result: result})
	}
	return entries, nil
}

func (s *SimulationService) validateRequest(req SimulationRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidArgument, err)
	}
	if req.Matchup != nil {
		if err := req.Matchup.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *SimulationService) analyzeGame(ctx context.Context, game *models.Game) (models.FactorSet, error) {
	fs, err := s.analyzer.Analyze(ctx, game)
	if err != nil {
		return models.FactorSet{}, err
	}

	s.factorLogger.LogFactorsAnalyzed(game.ID, fs)
	metrics.RecordFactorTags(fs.Tags())
	return fs, nil
}

func (s *SimulationService) matchupFor(ctx context.Context, game *models.Game, override *models.Matchup) (models.Matchup, error) {
	if override != nil {
		return *override, nil
	}
	matchup, err := s.ratings.GetMatchup(ctx, game)
	if err != nil {
		return models.Matchup{}, fmt.Errorf("failed to load ratings for game %s: %w", game.ID, err)
	}
	return matchup, nil
}

// persist stores the run. History is best effort: a storage failure is logged and the
// result is still returned.
func (s *SimulationService) persist(ctx context.Context, result *models.SimulationResult) {
	if s.runs == nil {
		return
	}

	run, err := models.NewSimulationRun(result, s.now())
	if err == nil {
		err = s.runs.Save(ctx, run)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.auditLogger.WithError(err).WithField("game_id", result.GameID).Error("Failed to persist simulation run")
		}
		return
	}

	s.auditLogger.LogSimulationPersisted(run.ID.String(), run.GameID, run.Count)
}
