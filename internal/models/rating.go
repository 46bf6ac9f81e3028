package models

import "fmt"

// TeamRating holds the baseline strength of a team, each component in [0,1]
type TeamRating struct {
	BattingRating  float64 `json:"battingRating" validate:"gte=0,lte=1"`
	PitchingRating float64 `json:"pitchingRating" validate:"gte=0,lte=1"`
	DefenseRating  float64 `json:"defenseRating" validate:"gte=0,lte=1"`
}

// PitcherRating holds the baseline strength of a starting pitcher in [0,1]
type PitcherRating struct {
	Rating float64 `json:"rating" validate:"gte=0,lte=1"`
}

// Matchup bundles the four rating objects a simulated game is drawn from
type Matchup struct {
	HomeTeam    TeamRating    `json:"homeTeam"`
	AwayTeam    TeamRating    `json:"awayTeam"`
	HomePitcher PitcherRating `json:"homePitcher"`
	AwayPitcher PitcherRating `json:"awayPitcher"`
}

// Validate checks every rating lies in [0,1]
func (m Matchup) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"home batting", m.HomeTeam.BattingRating},
		{"home pitching", m.HomeTeam.PitchingRating},
		{"home defense", m.HomeTeam.DefenseRating},
		{"away batting", m.AwayTeam.BattingRating},
		{"away pitching", m.AwayTeam.PitchingRating},
		{"away defense", m.AwayTeam.DefenseRating},
		{"home pitcher", m.HomePitcher.Rating},
		{"away pitcher", m.AwayPitcher.Rating},
	}
	for _, c := range checks {
		if !(c.value >= 0 && c.value <= 1) {
			return fmt.Errorf("%w: %s rating %v outside [0,1]", ErrInvalidArgument, c.name, c.value)
		}
	}
	return nil
}
