package simulation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/diamond-odds/internal/logger"
	"github.com/yourusername/diamond-odds/internal/metrics"
	"github.com/yourusername/diamond-odds/internal/models"
	"github.com/yourusername/diamond-odds/internal/odds"
	"github.com/yourusername/diamond-odds/internal/ratings"
)

// EngineConfig configures the Monte Carlo engine
type EngineConfig struct {
	Workers   int
	BatchSize int
	// Seed 0 seeds from the clock
	Seed      int64
	MaxCount  int
	TotalLine float64
	RunLine   float64
	Sampler   SamplerConfig
}

// DefaultEngineConfig returns the engine defaults
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Workers:   runtime.NumCPU(),
		BatchSize: 1000,
		MaxCount:  100000,
		TotalLine: 8.5,
		RunLine:   1.5,
		Sampler:   DefaultSamplerConfig(),
	}
}

// Input is one simulation request with ratings already resolved
type Input struct {
	GameID       string
	HomeTeamName string
	AwayTeamName string
	Count        int
	Matchup      models.Matchup
	Factors      models.FactorSet
	// Descriptions are copied to the result's impacting factors
	Descriptions []string
	// Seed overrides the engine seed when non-zero
	Seed int64
}

// Engine runs Monte Carlo simulations
type Engine struct {
	cfg    EngineConfig
	logger *logger.SimulationLogger
}

// NewEngine creates a new engine
func NewEngine(cfg EngineConfig, log *logger.SimulationLogger) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	if cfg.Sampler == (SamplerConfig{}) {
		cfg.Sampler = DefaultSamplerConfig()
	}
	if cfg.TotalLine == 0 {
		cfg.TotalLine = 8.5
	}
	if cfg.RunLine == 0 {
		cfg.RunLine = 1.5
	}
	if log == nil {
		log = logger.NewSimulationLogger(logger.Discard())
	}
	return &Engine{cfg: cfg, logger: log}
}

// Run simulates in.Count games and reduces them to a result. Either the full result or
// an error is returned, never both.
func (e *Engine) Run(ctx context.Context, in Input) (*models.SimulationResult, error) {
	start := time.Now()

	result, err := e.run(ctx, in)
	if err != nil {
		metrics.RecordSimulationFailure(failureReason(err))
		e.logger.LogSimulationFailed(in.GameID, err)
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.RecordSimulation(result.SimulationCount, result.HomeWinProbability, elapsed.Seconds())
	e.logger.LogSimulationCompleted(in.GameID, result.SimulationCount, result.HomeWinProbability,
		result.AverageTotalRuns, float64(elapsed.Microseconds())/1000)

	return result, nil
}

func (e *Engine) run(ctx context.Context, in Input) (*models.SimulationResult, error) {
	if in.Count <= 0 {
		return nil, fmt.Errorf("%w: simulation count must be positive, got %d", models.ErrInvalidArgument, in.Count)
	}
	if e.cfg.MaxCount > 0 && in.Count > e.cfg.MaxCount {
		return nil, fmt.Errorf("%w: simulation count %d exceeds maximum %d", models.ErrInvalidArgument, in.Count, e.cfg.MaxCount)
	}
	if err := in.Matchup.Validate(); err != nil {
		return nil, err
	}

	seed := in.Seed
	if seed == 0 {
		seed = e.cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	adjusted := ratings.Adjust(in.Matchup, in.Factors)

	workers := e.cfg.Workers
	if workers > in.Count {
		workers = in.Count
	}
	e.logger.LogSimulationStarted(in.GameID, in.Count, workers, seed)

	home, away, err := e.draw(ctx, adjusted, in.Count, workers, seed)
	if err != nil {
		return nil, err
	}

	summary := Summarize(home, away, e.cfg.TotalLine, e.cfg.RunLine)
	return e.buildResult(in, seed, summary)
}

// draw splits count trials into contiguous ranges, one per worker. Worker i owns a PCG
// source seeded seed+i and writes only to its own range.
func (e *Engine) draw(ctx context.Context, m models.Matchup, count, workers int, seed int64) ([]float64, []float64, error) {
	home := make([]float64, count)
	away := make([]float64, count)

	g, gctx := errgroup.WithContext(ctx)
	per := count / workers
	extra := count % workers
	lo := 0

	for w := 0; w < workers; w++ {
		hi := lo + per
		if w < extra {
			hi++
		}
		workerLo, workerHi := lo, hi
		src := rand.NewSource(uint64(seed + int64(w)))

		g.Go(func() error {
			sampler := NewSampler(m, e.cfg.Sampler, src)
			for batch := workerLo; batch < workerHi; batch += e.cfg.BatchSize {
				if err := gctx.Err(); err != nil {
					return err
				}
				end := batch + e.cfg.BatchSize
				if end > workerHi {
					end = workerHi
				}
				for i := batch; i < end; i++ {
					outcome := sampler.Sample()
					home[i] = float64(outcome.HomeScore)
					away[i] = float64(outcome.AwayScore)
				}
			}
			return nil
		})
		lo = hi
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	// A cancellation after the last batch still voids the run
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return home, away, nil
}

func (e *Engine) buildResult(in Input, seed int64, s Summary) (*models.SimulationResult, error) {
	homeML, err := price("home moneyline", s.HomeWinProbability)
	if err != nil {
		return nil, err
	}
	awayML, err := price("away moneyline", s.AwayWinProbability)
	if err != nil {
		return nil, err
	}
	overOdds, err := price("over odds", s.OverProbability)
	if err != nil {
		return nil, err
	}
	underOdds, err := price("under odds", s.UnderProbability)
	if err != nil {
		return nil, err
	}

	descriptions := in.Descriptions
	if descriptions == nil {
		descriptions = []string{}
	}

	return &models.SimulationResult{
		GameID:             in.GameID,
		SimulationCount:    s.Count,
		HomeTeamName:       in.HomeTeamName,
		AwayTeamName:       in.AwayTeamName,
		HomeWinProbability: s.HomeWinProbability,
		AwayWinProbability: s.AwayWinProbability,
		AverageHomeScore:   s.AverageHomeScore,
		AverageAwayScore:   s.AverageAwayScore,
		AverageTotalRuns:   s.AverageTotalRuns,
		TotalLine:          e.cfg.TotalLine,
		OverProbability:    s.OverProbability,
		UnderProbability:   s.UnderProbability,
		TieCount:           s.Ties,
		HomeScoreStdDev:    s.HomeScoreStdDev,
		AwayScoreStdDev:    s.AwayScoreStdDev,
		BettingInsights: models.BettingInsights{
			HomeMoneyline: homeML,
			AwayMoneyline: awayML,
			OverOdds:      overOdds,
			UnderOdds:     underOdds,
		},
		RunLine: models.RunLineInsight{
			Line:                 e.cfg.RunLine,
			HomeCoverProbability: s.HomeCoverProbability,
			AwayCoverProbability: s.AwayCoverProbability,
			HomeOdds:             optionalOdds(s.HomeCoverProbability),
			AwayOdds:             optionalOdds(s.AwayCoverProbability),
		},
		PropBetInsights:  []models.PropBetInsight{},
		ImpactingFactors: descriptions,
		Seed:             seed,
	}, nil
}

// price converts a core market probability. A 0 or 1 outcome of the sample cannot be
// priced and fails the run as a simulation failure, not a caller error.
func price(market string, p float64) (int, error) {
	v, err := odds.ProbabilityToAmericanOdds(p)
	if err != nil {
		return 0, fmt.Errorf("%w: %s unpriceable: %v", models.ErrSimulationFailed, market, err)
	}
	return v, nil
}

// optionalOdds prices a probability, or returns nil when it is 0 or 1
func optionalOdds(p float64) *int {
	v, err := odds.ProbabilityToAmericanOdds(p)
	if err != nil {
		return nil
	}
	return &v
}

func failureReason(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "cancelled"
	}
	return models.ErrorKind(err)
}
