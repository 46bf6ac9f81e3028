package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	home := []float64{3, 2, 5, 1}
	away := []float64{1, 2, 2, 4}

	s := Summarize(home, away, 8.5, 1.5)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2, s.HomeWins)
	assert.Equal(t, 1, s.AwayWins)
	assert.Equal(t, 1, s.Ties)
	assert.Equal(t, 0.5, s.HomeWinProbability)
	assert.Equal(t, 0.5, s.AwayWinProbability)
	assert.InDelta(t, 2.75, s.AverageHomeScore, 1e-9)
	assert.InDelta(t, 2.25, s.AverageAwayScore, 1e-9)
	assert.InDelta(t, 5.0, s.AverageTotalRuns, 1e-9)
	assert.Equal(t, 0.0, s.OverProbability)
	assert.Equal(t, 1.0, s.UnderProbability)
	assert.Equal(t, 0.5, s.HomeCoverProbability)
	assert.Greater(t, s.HomeScoreStdDev, 0.0)
}

func TestSummarizeTiesFoldIntoAwayComplement(t *testing.T) {
	s := Summarize([]float64{2, 3, 4}, []float64{2, 3, 1}, 8.5, 1.5)

	assert.Equal(t, 1, s.HomeWins)
	assert.Equal(t, 0, s.AwayWins)
	assert.Equal(t, 2, s.Ties)
	assert.InDelta(t, 1.0/3, s.HomeWinProbability, 1e-12)
	assert.Equal(t, 1.0, s.HomeWinProbability+s.AwayWinProbability)
}

func TestSummarizeOverLine(t *testing.T) {
	s := Summarize([]float64{5, 4, 9}, []float64{4, 4, 0}, 8.5, 1.5)

	// 9 and 9 go over, 8 stays under
	assert.InDelta(t, 2.0/3, s.OverProbability, 1e-12)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, 8.5, 1.5)
	assert.Equal(t, Summary{}, s)
}

func TestSummarizeSingleTrial(t *testing.T) {
	s := Summarize([]float64{4}, []float64{2}, 8.5, 1.5)
	assert.Equal(t, 4.0, s.AverageHomeScore)
	assert.Equal(t, 0.0, s.HomeScoreStdDev)
	assert.Equal(t, 1.0, s.HomeWinProbability)
}
