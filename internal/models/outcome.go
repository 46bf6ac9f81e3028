package models

// SimulatedGameOutcome is the final score of one Monte Carlo trial
type SimulatedGameOutcome struct {
	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
}

// Total returns the combined runs scored
func (o SimulatedGameOutcome) Total() int {
	return o.HomeScore + o.AwayScore
}

// Margin returns home runs minus away runs
func (o SimulatedGameOutcome) Margin() int {
	return o.HomeScore - o.AwayScore
}
