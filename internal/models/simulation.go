package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BettingInsights holds fair market odds derived from a simulation, American format
type BettingInsights struct {
	HomeMoneyline int `json:"homeMoneyline"`
	AwayMoneyline int `json:"awayMoneyline"`
	OverOdds      int `json:"overOdds"`
	UnderOdds     int `json:"underOdds"`
}

// RunLineInsight holds the home -1.5 / away +1.5 cover probabilities.
// Odds are nil when the probability is degenerate (0 or 1).
type RunLineInsight struct {
	Line                 float64 `json:"line"`
	HomeCoverProbability float64 `json:"homeCoverProbability"`
	AwayCoverProbability float64 `json:"awayCoverProbability"`
	HomeOdds             *int    `json:"homeOdds,omitempty"`
	AwayOdds             *int    `json:"awayOdds,omitempty"`
}

// PropBetInsight describes a player prop recommendation
type PropBetInsight struct {
	PlayerName     string  `json:"playerName"`
	BetType        string  `json:"betType"`
	Line           float64 `json:"line"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning,omitempty"`
}

// SimulationResult is the immutable output of one Monte Carlo invocation
type SimulationResult struct {
	GameID             string           `json:"gameId"`
	SimulationCount    int              `json:"simulationCount"`
	HomeTeamName       string           `json:"homeTeamName"`
	AwayTeamName       string           `json:"awayTeamName"`
	HomeWinProbability float64          `json:"homeWinProbability"`
	AwayWinProbability float64          `json:"awayWinProbability"`
	AverageHomeScore   float64          `json:"averageHomeScore"`
	AverageAwayScore   float64          `json:"averageAwayScore"`
	AverageTotalRuns   float64          `json:"averageTotalRuns"`
	TotalLine          float64          `json:"totalLine"`
	OverProbability    float64          `json:"overProbability"`
	UnderProbability   float64          `json:"underProbability"`
	TieCount           int              `json:"tieCount"`
	HomeScoreStdDev    float64          `json:"homeScoreStdDev"`
	AwayScoreStdDev    float64          `json:"awayScoreStdDev"`
	BettingInsights    BettingInsights  `json:"bettingInsights"`
	RunLine            RunLineInsight   `json:"runLine"`
	PropBetInsights    []PropBetInsight `json:"propBetInsights"`
	ImpactingFactors   []string         `json:"impactingFactors"`
	Seed               int64            `json:"seed,omitempty"`
}

// SimulationRun is a persisted simulation result
type SimulationRun struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	GameID    string          `db:"game_id" json:"gameId"`
	Count     int             `db:"simulation_count" json:"simulationCount"`
	Result    json.RawMessage `db:"result" json:"result"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// NewSimulationRun wraps a result for persistence
func NewSimulationRun(result *SimulationResult, now time.Time) (*SimulationRun, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &SimulationRun{
		ID:        uuid.New(),
		GameID:    result.GameID,
		Count:     result.SimulationCount,
		Result:    payload,
		CreatedAt: now.UTC(),
	}, nil
}

// Decode unmarshals the stored result payload
func (r *SimulationRun) Decode() (*SimulationResult, error) {
	var result SimulationResult
	if err := json.Unmarshal(r.Result, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
