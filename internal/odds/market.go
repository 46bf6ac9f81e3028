package odds

import (
	"fmt"

	"github.com/yourusername/diamond-odds/internal/models"
)

// RemoveVig normalises a two-way market's implied probabilities so they sum to 1.
//
// Multiplicative method:
// trueA = impliedA / (impliedA + impliedB)
// trueB = impliedB / (impliedA + impliedB)
func RemoveVig(impliedA, impliedB float64) (float64, float64, error) {
	if impliedA <= 0 || impliedB <= 0 {
		return 0, 0, fmt.Errorf("%w: implied probabilities must be positive", models.ErrInvalidArgument)
	}
	total := impliedA + impliedB
	return impliedA / total, impliedB / total, nil
}

// RemoveVigFromAmerican returns vig-free probabilities for both sides of a two-way market
func RemoveVigFromAmerican(oddsA, oddsB int) (float64, float64, error) {
	impliedA, err := AmericanToImplied(oddsA)
	if err != nil {
		return 0, 0, err
	}
	impliedB, err := AmericanToImplied(oddsB)
	if err != nil {
		return 0, 0, err
	}
	return RemoveVig(impliedA, impliedB)
}

// Edge is the model probability minus the vig-free market probability of the same side
func Edge(modelProb, marketNoVigProb float64) float64 {
	return modelProb - marketNoVigProb
}

// ExpectedValue returns the expected profit per unit staked at the given American odds
func ExpectedValue(prob float64, american int) (float64, error) {
	if prob < 0 || prob > 1 {
		return 0, fmt.Errorf("%w: probability %v outside [0,1]", models.ErrInvalidArgument, prob)
	}
	if american == 0 {
		return 0, fmt.Errorf("%w: American odds cannot be 0", models.ErrInvalidArgument)
	}

	var payout float64
	if american > 0 {
		payout = float64(american) / 100
	} else {
		payout = 100 / float64(-american)
	}
	return prob*payout - (1 - prob), nil
}
