// Package odds converts between win probabilities, American odds and decimal odds.
package odds

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/yourusername/diamond-odds/internal/models"
)

const (
	// pricingStep is the granularity fair prices are quoted at
	pricingStep = 5
	// maxAmericanOdds bounds prices to integers a float64 represents exactly
	maxAmericanOdds = 1 << 53
)

// toAmerican converts a rounded price to int, rejecting values that would overflow
func toAmerican(rounded float64) (int, error) {
	if math.IsNaN(rounded) || math.Abs(rounded) > maxAmericanOdds {
		return 0, fmt.Errorf("%w: American odds %v out of range", models.ErrInvalidArgument, rounded)
	}
	return int(rounded), nil
}

// ProbabilityToAmericanOdds converts a win probability in (0,1) to fair American odds
// rounded to the nearest multiple of five. Halves round to even.
func ProbabilityToAmericanOdds(p float64) (int, error) {
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("%w: probability %v must be strictly between 0 and 1", models.ErrInvalidArgument, p)
	}

	var raw float64
	if p > 0.5 {
		raw = -100 * p / (1 - p)
	} else {
		raw = 100 * (1 - p) / p
	}

	return toAmerican(math.RoundToEven(raw/pricingStep) * pricingStep)
}

// DecimalToAmerican converts decimal odds to American odds
// Decimal 2.50 → American +150
// Decimal 1.50 → American -200
func DecimalToAmerican(decimalOdds float64) (int, error) {
	if math.IsNaN(decimalOdds) || math.IsInf(decimalOdds, 0) || decimalOdds <= 1 {
		return 0, fmt.Errorf("%w: decimal odds %v must be greater than 1", models.ErrInvalidArgument, decimalOdds)
	}

	if decimalOdds >= 2.0 {
		return toAmerican(math.RoundToEven((decimalOdds - 1) * 100))
	}
	return toAmerican(math.RoundToEven(-100 / (decimalOdds - 1)))
}

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("%w: American odds cannot be 0", models.ErrInvalidArgument)
	}
	if american > 0 {
		return 1 + float64(american)/100, nil
	}
	return 1 + 100/float64(-american), nil
}

// AmericanToImplied converts American odds to the implied probability including vig
func AmericanToImplied(american int) (float64, error) {
	d, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1 / d, nil
}

// DecimalToImplied converts decimal odds to implied probability
func DecimalToImplied(decimalOdds float64) (float64, error) {
	if !(decimalOdds > 1) || math.IsInf(decimalOdds, 0) {
		return 0, fmt.Errorf("%w: decimal odds %v must be greater than 1", models.ErrInvalidArgument, decimalOdds)
	}
	return 1 / decimalOdds, nil
}

// DecimalOdds returns the decimal form of American odds as a two-place decimal for display
func DecimalOdds(american int) (decimal.Decimal, error) {
	if american == 0 {
		return decimal.Zero, fmt.Errorf("%w: American odds cannot be 0", models.ErrInvalidArgument)
	}
	hundred := decimal.NewFromInt(100)
	a := decimal.NewFromInt(int64(american))
	if american > 0 {
		return decimal.NewFromInt(1).Add(a.Div(hundred)).Round(2), nil
	}
	return decimal.NewFromInt(1).Add(hundred.Div(a.Neg())).Round(2), nil
}
