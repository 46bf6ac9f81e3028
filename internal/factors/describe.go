package factors

import "github.com/yourusername/diamond-odds/internal/models"

// Describe renders one human-readable line per tag in the order temperature, wind,
// home lineup, away lineup, ballpark. Unknown tags are skipped.
func Describe(fs models.FactorSet) []string {
	descriptions := make([]string, 0, 5)

	switch fs.WeatherTempFactor {
	case models.TagHot:
		descriptions = append(descriptions, "Hot temperatures favor hitters (higher scoring game likely)")
	case models.TagCold:
		descriptions = append(descriptions, "Cold temperatures favor pitchers (lower scoring game likely)")
	}

	switch fs.WeatherWindFactor {
	case models.TagWindOut:
		descriptions = append(descriptions, "Strong winds blowing out will likely increase home runs and scoring")
	case models.TagWindIn:
		descriptions = append(descriptions, "Strong winds blowing in will likely suppress home runs and scoring")
	}

	descriptions = appendLineup(descriptions, "Home team", fs.HomeLineupFactor)
	descriptions = appendLineup(descriptions, "Away team", fs.AwayLineupFactor)

	switch fs.BallparkFactor {
	case models.TagHitterFriendly:
		descriptions = append(descriptions, "Ballpark favors hitters (higher run-scoring environment)")
	case models.TagPitcherFriendly:
		descriptions = append(descriptions, "Ballpark favors pitchers (lower run-scoring environment)")
	}

	return descriptions
}

func appendLineup(descriptions []string, side, tag string) []string {
	switch tag {
	case models.TagWeak:
		return append(descriptions, side+" lineup missing key players (weakened offense)")
	case models.TagStrong:
		return append(descriptions, side+" has full-strength lineup (strong offense)")
	}
	return descriptions
}
