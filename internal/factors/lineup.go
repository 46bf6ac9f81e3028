package factors

import (
	"context"
	"fmt"

	"github.com/yourusername/diamond-odds/internal/models"
)

const (
	fullLineup        = 9
	neutralStrength   = 0.5
	fullStrength      = 0.9
	weakThreshold     = 0.7
	strongThreshold   = 0.9
	weakLineupDelta   = -0.05
	strongLineupDelta = 0.03
)

func (a *Analyzer) analyzeLineups(ctx context.Context, game *models.Game, fs *models.FactorSet) error {
	if a.projections == nil {
		return nil
	}
	date, ok := game.GameDate()
	if !ok {
		return nil
	}

	all, err := a.projections.GetProjections(ctx, date)
	if err != nil {
		return fmt.Errorf("load projections for %s: %w", date.Format("2006-01-02"), err)
	}

	var gameProjections []models.PlayerProjection
	for _, p := range all {
		if p.GameID == game.ID {
			gameProjections = append(gameProjections, p)
		}
	}
	if len(gameProjections) == 0 {
		return nil
	}

	home := LineupStrength(teamPlayers(gameProjections, game.HomeTeam.ID))
	if delta, tag := lineupAdjustment(home); tag != "" {
		fs.HomeBattingAdjustment += delta
		fs.HomeLineupFactor = tag
	}

	away := LineupStrength(teamPlayers(gameProjections, game.AwayTeam.ID))
	if delta, tag := lineupAdjustment(away); tag != "" {
		fs.AwayBattingAdjustment += delta
		fs.AwayLineupFactor = tag
	}

	return nil
}

// LineupStrength scores a side's projected lineup from the number of players holding a
// batting order slot. An empty side scores neutral.
func LineupStrength(players []models.PlayerProjection) float64 {
	if len(players) == 0 {
		return neutralStrength
	}

	ordered := 0
	for _, p := range players {
		if p.BattingOrder > 0 {
			ordered++
		}
	}
	if ordered < fullLineup {
		return neutralStrength + float64(ordered)/18
	}
	return fullStrength
}

// lineupAdjustment maps a strength score to a batting delta and tag.
// Scores never exceed fullStrength, so the strong branch cannot fire today.
func lineupAdjustment(strength float64) (float64, string) {
	switch {
	case strength < weakThreshold:
		return weakLineupDelta, models.TagWeak
	case strength > strongThreshold:
		return strongLineupDelta, models.TagStrong
	}
	return 0, ""
}

func teamPlayers(projections []models.PlayerProjection, teamID string) []models.PlayerProjection {
	var players []models.PlayerProjection
	for _, p := range projections {
		if p.TeamID == teamID {
			players = append(players, p)
		}
	}
	return players
}
