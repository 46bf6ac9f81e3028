package models

// Factor tag values
const (
	TagHot             = "hot"
	TagCold            = "cold"
	TagWindOut         = "out"
	TagWindIn          = "in"
	TagWeak            = "weak"
	TagStrong          = "strong"
	TagHitterFriendly  = "hitter_friendly"
	TagPitcherFriendly = "pitcher_friendly"
)

// FactorSet holds additive rating deltas for both sides plus the categorical tags
// that explain them. A zero delta leaves the base rating unchanged.
type FactorSet struct {
	HomeBattingAdjustment  float64 `json:"home_batting_adjustment,omitempty"`
	AwayBattingAdjustment  float64 `json:"away_batting_adjustment,omitempty"`
	HomePitchingAdjustment float64 `json:"home_pitching_adjustment,omitempty"`
	AwayPitchingAdjustment float64 `json:"away_pitching_adjustment,omitempty"`
	HomeDefenseAdjustment  float64 `json:"home_defense_adjustment,omitempty"`
	AwayDefenseAdjustment  float64 `json:"away_defense_adjustment,omitempty"`

	WeatherTempFactor string `json:"weather_temp_factor,omitempty" validate:"omitempty,oneof=hot cold"`
	WeatherWindFactor string `json:"weather_wind_factor,omitempty" validate:"omitempty,oneof=out in"`
	HomeLineupFactor  string `json:"home_lineup_factor,omitempty" validate:"omitempty,oneof=weak strong"`
	AwayLineupFactor  string `json:"away_lineup_factor,omitempty" validate:"omitempty,oneof=weak strong"`
	BallparkFactor    string `json:"ballpark_factor,omitempty" validate:"omitempty,oneof=hitter_friendly pitcher_friendly"`
}

// Tags returns the non-empty categorical tags keyed by category
func (f FactorSet) Tags() map[string]string {
	tags := make(map[string]string)
	for category, tag := range map[string]string{
		"weather_temp": f.WeatherTempFactor,
		"weather_wind": f.WeatherWindFactor,
		"home_lineup":  f.HomeLineupFactor,
		"away_lineup":  f.AwayLineupFactor,
		"ballpark":     f.BallparkFactor,
	} {
		if tag != "" {
			tags[category] = tag
		}
	}
	return tags
}

// IsNeutral reports whether the set carries no deltas and no tags
func (f FactorSet) IsNeutral() bool {
	return f == FactorSet{}
}
