package service

import (
	"context"

	"github.com/yourusername/diamond-odds/internal/models"
)

// RatingSource supplies the baseline matchup for a game
type RatingSource interface {
	GetMatchup(ctx context.Context, game *models.Game) (models.Matchup, error)
}

// StaticRatingSource returns the same matchup for every game
type StaticRatingSource struct {
	Matchup models.Matchup
}

// DefaultRatingSource returns placeholder ratings used until real team ratings are wired in
func DefaultRatingSource() *StaticRatingSource {
	return &StaticRatingSource{Matchup: models.Matchup{
		HomeTeam:    models.TeamRating{BattingRating: 0.65, PitchingRating: 0.70, DefenseRating: 0.60},
		AwayTeam:    models.TeamRating{BattingRating: 0.60, PitchingRating: 0.75, DefenseRating: 0.65},
		HomePitcher: models.PitcherRating{Rating: 0.70},
		AwayPitcher: models.PitcherRating{Rating: 0.65},
	}}
}

// GetMatchup implements RatingSource
func (s *StaticRatingSource) GetMatchup(_ context.Context, _ *models.Game) (models.Matchup, error) {
	return s.Matchup, nil
}
