// Package logger provides simulation-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for Monte Carlo runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogSimulationStarted logs the start of a simulation run.
func (sl *SimulationLogger) LogSimulationStarted(gameID string, count, workers int, seed int64) {
	sl.WithFields(logrus.Fields{
		"game_id":          gameID,
		"simulation_count": count,
		"workers":          workers,
		"seed":             seed,
	}).Debug("Simulation started")
}

// LogSimulationCompleted logs a finished simulation with its headline numbers.
func (sl *SimulationLogger) LogSimulationCompleted(gameID string, count int, homeWinProb, avgTotalRuns, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"game_id":              gameID,
		"simulation_count":     count,
		"home_win_probability": homeWinProb,
		"average_total_runs":   avgTotalRuns,
		"duration_ms":          durationMs,
	}).Info("Simulation completed")
}

// LogSimulationFailed logs a failed simulation.
func (sl *SimulationLogger) LogSimulationFailed(gameID string, err error) {
	sl.WithFields(logrus.Fields{
		"game_id": gameID,
		"error":   err.Error(),
	}).Error("Simulation failed")
}

// LogSlateCompleted logs the outcome of a scheduled slate run.
func (sl *SimulationLogger) LogSlateCompleted(date string, games, succeeded, failed int) {
	sl.WithFields(logrus.Fields{
		"date":      date,
		"games":     games,
		"succeeded": succeeded,
		"failed":    failed,
	}).Info("Slate simulation completed")
}
