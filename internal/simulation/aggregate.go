package simulation

import (
	"gonum.org/v1/gonum/stat"
)

// Summary is the reduction of a batch of simulated outcomes
type Summary struct {
	Count                int
	HomeWins             int
	AwayWins             int
	Ties                 int
	HomeWinProbability   float64
	AwayWinProbability   float64
	AverageHomeScore     float64
	AverageAwayScore     float64
	AverageTotalRuns     float64
	HomeScoreStdDev      float64
	AwayScoreStdDev      float64
	OverProbability      float64
	UnderProbability     float64
	HomeCoverProbability float64
	AwayCoverProbability float64
}

// Summarize reduces paired home and away scores. Ties do not count as home wins, so
// they fall into the away complement. The run line is read from the home side laying
// runLine runs.
func Summarize(home, away []float64, totalLine, runLine float64) Summary {
	n := len(home)
	s := Summary{Count: n}
	if n == 0 {
		return s
	}

	over, covers := 0, 0
	for i := range home {
		switch {
		case home[i] > away[i]:
			s.HomeWins++
		case home[i] < away[i]:
			s.AwayWins++
		default:
			s.Ties++
		}
		if home[i]+away[i] > totalLine {
			over++
		}
		if home[i]-away[i] > runLine {
			covers++
		}
	}

	total := float64(n)
	s.HomeWinProbability = float64(s.HomeWins) / total
	s.AwayWinProbability = 1 - s.HomeWinProbability
	s.OverProbability = float64(over) / total
	s.UnderProbability = 1 - s.OverProbability
	s.HomeCoverProbability = float64(covers) / total
	s.AwayCoverProbability = 1 - s.HomeCoverProbability

	if n > 1 {
		s.AverageHomeScore, s.HomeScoreStdDev = stat.MeanStdDev(home, nil)
		s.AverageAwayScore, s.AwayScoreStdDev = stat.MeanStdDev(away, nil)
	} else {
		s.AverageHomeScore = home[0]
		s.AverageAwayScore = away[0]
	}
	s.AverageTotalRuns = s.AverageHomeScore + s.AverageAwayScore

	return s
}
