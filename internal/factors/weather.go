package factors

import (
	"strings"

	"github.com/yourusername/diamond-odds/internal/models"
)

const (
	hotThreshold  = 85.0
	coldThreshold = 55.0
	windThreshold = 10.0
)

var (
	windOutIndicators = []string{"out", "outfield", "center", "south", "southeast", "southwest"}
	windInIndicators  = []string{"in", "infield", "home", "north", "northeast", "northwest"}
)

func analyzeWeather(w *models.Weather, fs *models.FactorSet) {
	if w == nil {
		return
	}

	if w.Temperature != nil {
		switch temp := *w.Temperature; {
		case temp > hotThreshold:
			addBatting(fs, 0.03)
			addPitching(fs, -0.02)
			fs.WeatherTempFactor = models.TagHot
		case temp < coldThreshold:
			addBatting(fs, -0.02)
			addPitching(fs, 0.03)
			fs.WeatherTempFactor = models.TagCold
		}
	}

	if w.WindSpeed == nil || *w.WindSpeed <= windThreshold {
		return
	}

	// Out is checked first so an ambiguous direction counts as blowing out.
	direction := strings.ToLower(w.WindDirection)
	switch {
	case containsAny(direction, windOutIndicators):
		addBatting(fs, 0.05)
		fs.WeatherWindFactor = models.TagWindOut
	case containsAny(direction, windInIndicators):
		addPitching(fs, 0.04)
		fs.WeatherWindFactor = models.TagWindIn
	}
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func addBatting(fs *models.FactorSet, delta float64) {
	fs.HomeBattingAdjustment += delta
	fs.AwayBattingAdjustment += delta
}

func addPitching(fs *models.FactorSet, delta float64) {
	fs.HomePitchingAdjustment += delta
	fs.AwayPitchingAdjustment += delta
}
