// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogSimulationPersisted logs that a simulation run was stored.
func (al *AuditLogger) LogSimulationPersisted(runID, gameID string, count int) {
	al.WithFields(logrus.Fields{
		"run_id":           runID,
		"game_id":          gameID,
		"simulation_count": count,
	}).Info("Simulation run persisted")
}

// LogEdgeDetected logs a market price that disagrees with the model beyond the threshold.
func (al *AuditLogger) LogEdgeDetected(gameID, market, side string, marketOdds, fairOdds int, edge float64) {
	al.WithFields(logrus.Fields{
		"game_id":     gameID,
		"market":      market,
		"side":        side,
		"market_odds": marketOdds,
		"fair_odds":   fairOdds,
		"edge":        edge,
	}).Warn("Market edge detected")
}
