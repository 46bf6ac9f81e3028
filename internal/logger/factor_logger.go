package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/models"
)

// FactorLogger logs factor analysis output.
type FactorLogger struct {
	*logrus.Entry
}

// NewFactorLogger creates a new factor logger.
func NewFactorLogger(baseLogger *logrus.Logger) *FactorLogger {
	return &FactorLogger{
		Entry: baseLogger.WithField("component", "factors"),
	}
}

// LogFactorsAnalyzed logs every delta and non-empty tag of a factor set.
func (fl *FactorLogger) LogFactorsAnalyzed(gameID string, fs models.FactorSet) {
	fields := logrus.Fields{
		"game_id":                  gameID,
		"home_batting_adjustment":  fs.HomeBattingAdjustment,
		"away_batting_adjustment":  fs.AwayBattingAdjustment,
		"home_pitching_adjustment": fs.HomePitchingAdjustment,
		"away_pitching_adjustment": fs.AwayPitchingAdjustment,
		"home_defense_adjustment":  fs.HomeDefenseAdjustment,
		"away_defense_adjustment":  fs.AwayDefenseAdjustment,
	}
	for category, tag := range fs.Tags() {
		fields[category+"_factor"] = tag
	}
	fl.WithFields(fields).Debug("Game factors analyzed")
}
