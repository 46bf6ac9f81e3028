package factors

import (
	"strings"

	"github.com/yourusername/diamond-odds/internal/models"
)

const ballparkDelta = 0.04

var (
	hitterFriendlyParks = []string{
		"Coors Field",
		"Great American",
		"Fenway Park",
		"Yankee Stadium",
	}
	pitcherFriendlyParks = []string{
		"Oracle Park",
		"T-Mobile Park",
		"Busch Stadium",
		"Citi Field",
	}
)

// analyzeBallpark matches the stadium name case-sensitively; hitter-friendly wins.
func analyzeBallpark(stadium string, fs *models.FactorSet) {
	if stadium == "" {
		return
	}

	if parkMatches(stadium, hitterFriendlyParks) {
		addBatting(fs, ballparkDelta)
		fs.BallparkFactor = models.TagHitterFriendly
	} else if parkMatches(stadium, pitcherFriendlyParks) {
		addPitching(fs, ballparkDelta)
		fs.BallparkFactor = models.TagPitcherFriendly
	}
}

func parkMatches(stadium string, parks []string) bool {
	for _, park := range parks {
		if strings.Contains(stadium, park) {
			return true
		}
	}
	return false
}
