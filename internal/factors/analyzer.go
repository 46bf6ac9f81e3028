// Package factors derives situational rating adjustments for a game.
package factors

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/diamond-odds/internal/models"
)

// ProjectionSource supplies per-player batting order projections for a date
type ProjectionSource interface {
	GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error)
}

// rule contributes additive adjustments to a factor set
type rule func(ctx context.Context, game *models.Game, fs *models.FactorSet) error

// Analyzer runs every factor rule against a game
type Analyzer struct {
	projections ProjectionSource
}

// NewAnalyzer creates an analyzer. A nil projection source disables lineup analysis.
func NewAnalyzer(projections ProjectionSource) *Analyzer {
	return &Analyzer{projections: projections}
}

// Analyze produces the factor set for a game. Rules add into the same deltas in the
// order weather, lineup, fatigue, ballpark.
func (a *Analyzer) Analyze(ctx context.Context, game *models.Game) (models.FactorSet, error) {
	var fs models.FactorSet
	if !game.HasID() {
		return fs, models.ErrGameNotFound
	}

	rules := []rule{
		func(_ context.Context, g *models.Game, fs *models.FactorSet) error {
			analyzeWeather(g.Weather, fs)
			return nil
		},
		a.analyzeLineups,
		analyzeFatigue,
		func(_ context.Context, g *models.Game, fs *models.FactorSet) error {
			analyzeBallpark(g.Stadium, fs)
			return nil
		},
	}

	for _, r := range rules {
		if err := r(ctx, game, &fs); err != nil {
			return models.FactorSet{}, fmt.Errorf("analyze factors for game %s: %w", game.ID, err)
		}
	}

	return fs, nil
}

// analyzeFatigue is reserved for rest and travel signals and adds nothing yet
func analyzeFatigue(_ context.Context, _ *models.Game, _ *models.FactorSet) error {
	return nil
}
