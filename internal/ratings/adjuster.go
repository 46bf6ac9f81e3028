// Package ratings applies factor deltas to baseline team and pitcher ratings.
package ratings

import (
	"math"

	"github.com/yourusername/diamond-odds/internal/models"
)

// Adjust returns a copy of the matchup with every delta in fs applied and each rating
// clamped to [0,1]. Pitchers move with their team's pitching delta.
func Adjust(base models.Matchup, fs models.FactorSet) models.Matchup {
	adjusted := base

	adjusted.HomeTeam = adjustTeam(base.HomeTeam, fs.HomeBattingAdjustment, fs.HomePitchingAdjustment, fs.HomeDefenseAdjustment)
	adjusted.AwayTeam = adjustTeam(base.AwayTeam, fs.AwayBattingAdjustment, fs.AwayPitchingAdjustment, fs.AwayDefenseAdjustment)
	adjusted.HomePitcher.Rating = apply(base.HomePitcher.Rating, fs.HomePitchingAdjustment)
	adjusted.AwayPitcher.Rating = apply(base.AwayPitcher.Rating, fs.AwayPitchingAdjustment)

	return adjusted
}

func adjustTeam(t models.TeamRating, batting, pitching, defense float64) models.TeamRating {
	return models.TeamRating{
		BattingRating:  apply(t.BattingRating, batting),
		PitchingRating: apply(t.PitchingRating, pitching),
		DefenseRating:  apply(t.DefenseRating, defense),
	}
}

// apply leaves the base untouched when there is no delta
func apply(base, delta float64) float64 {
	if delta == 0 {
		return base
	}
	return Clamp(base+delta, 0, 1)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
