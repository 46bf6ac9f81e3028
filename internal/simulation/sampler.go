// Package simulation draws Monte Carlo game outcomes and reduces them to fair odds.
package simulation

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/diamond-odds/internal/models"
)

// SamplerConfig holds the run-scoring constants of the outcome model
type SamplerConfig struct {
	BaseRuns           float64
	HomeFieldAdvantage float64
	DefenseSuppression float64
}

// DefaultSamplerConfig returns league-average constants
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		BaseRuns:           4.5,
		HomeFieldAdvantage: 1.05,
		DefenseSuppression: 0.2,
	}
}

// ExpectedRuns returns the Poisson rate for each side given adjusted ratings
func ExpectedRuns(m models.Matchup, cfg SamplerConfig) (home, away float64) {
	home = cfg.BaseRuns * (0.6*m.HomeTeam.BattingRating + 0.4*(1-m.AwayPitcher.Rating))
	away = cfg.BaseRuns * (0.6*m.AwayTeam.BattingRating + 0.4*(1-m.HomePitcher.Rating))

	home *= cfg.HomeFieldAdvantage

	home *= 1 - cfg.DefenseSuppression*m.AwayTeam.DefenseRating
	away *= 1 - cfg.DefenseSuppression*m.HomeTeam.DefenseRating

	return home, away
}

// Sampler draws independent final scores for a fixed matchup.
// A Sampler owns its random source and must not be shared between goroutines.
type Sampler struct {
	home distuv.Poisson
	away distuv.Poisson
}

// NewSampler builds a sampler over adjusted ratings using src for randomness
func NewSampler(m models.Matchup, cfg SamplerConfig, src rand.Source) *Sampler {
	homeRate, awayRate := ExpectedRuns(m, cfg)
	return &Sampler{
		home: distuv.Poisson{Lambda: homeRate, Src: src},
		away: distuv.Poisson{Lambda: awayRate, Src: src},
	}
}

// Sample draws one simulated game
func (s *Sampler) Sample() models.SimulatedGameOutcome {
	return models.SimulatedGameOutcome{
		HomeScore: draw(s.home),
		AwayScore: draw(s.away),
	}
}

// draw returns zero for a non-positive rate, which the Poisson support excludes
func draw(p distuv.Poisson) int {
	if !(p.Lambda > 0) {
		return 0
	}
	return int(p.Rand())
}
