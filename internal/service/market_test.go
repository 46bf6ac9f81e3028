package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-odds/internal/models"
)

func intPtr(v int) *int { return &v }

func marketResult() *models.SimulationResult {
	return &models.SimulationResult{
		GameID:             "1001",
		HomeWinProbability: 0.55,
		AwayWinProbability: 0.45,
		TotalLine:          8.5,
		OverProbability:    0.3,
		UnderProbability:   0.7,
		BettingInsights: models.BettingInsights{
			HomeMoneyline: -120,
			AwayMoneyline: 120,
			OverOdds:      235,
			UnderOdds:     -235,
		},
	}
}

func TestCompareToMarket(t *testing.T) {
	comparer := NewMarketComparer(0.01, nil)
	market := &models.MarketOdds{
		GameID:        "1001",
		Sportsbook:    "DraftKings",
		HomeMoneyline: intPtr(-120),
		AwayMoneyline: intPtr(110),
		TotalRuns:     floatPtr(8.5),
		OverOdds:      intPtr(-110),
		UnderOdds:     intPtr(-110),
	}

	edges := comparer.CompareToMarket(marketResult(), market)
	require.Len(t, edges, 4)

	home := edges[0]
	assert.Equal(t, models.MarketMoneyline, home.Market)
	assert.Equal(t, "home", home.Side)
	assert.InDelta(t, 0.5338983, home.MarketNoVig, 1e-6)
	assert.InDelta(t, 0.0161017, home.Edge, 1e-6)
	assert.InDelta(t, 0.0083333, home.ExpectedValue, 1e-6)
	assert.Equal(t, "1.83", home.MarketDecimal.StringFixed(2))
	assert.Equal(t, -120, home.FairOdds)
	assert.True(t, home.Actionable)

	away := edges[1]
	assert.Equal(t, "away", away.Side)
	assert.InDelta(t, -0.0161017, away.Edge, 1e-6)
	assert.False(t, away.Actionable)

	over, under := edges[2], edges[3]
	assert.Equal(t, models.MarketTotal, over.Market)
	assert.Equal(t, "over", over.Side)
	assert.InDelta(t, -0.2, over.Edge, 1e-9)
	assert.False(t, over.Actionable)
	assert.Equal(t, "under", under.Side)
	assert.InDelta(t, 0.2, under.Edge, 1e-9)
	assert.InDelta(t, 0.3363636, under.ExpectedValue, 1e-6)
	assert.True(t, under.Actionable)
}

func TestCompareToMarketSkipsUnpricedSides(t *testing.T) {
	comparer := NewMarketComparer(0.01, nil)

	tests := []struct {
		name   string
		market *models.MarketOdds
		want   int
	}{
		{"nil market", nil, 0},
		{"no prices", &models.MarketOdds{GameID: "1001"}, 0},
		{"one moneyline side", &models.MarketOdds{HomeMoneyline: intPtr(-120)}, 0},
		{
			"different total line",
			&models.MarketOdds{TotalRuns: floatPtr(9), OverOdds: intPtr(-110), UnderOdds: intPtr(-110)},
			0,
		},
		{
			"total without line",
			&models.MarketOdds{OverOdds: intPtr(-110), UnderOdds: intPtr(-110)},
			0,
		},
		{"zero odds", &models.MarketOdds{HomeMoneyline: intPtr(0), AwayMoneyline: intPtr(110)}, 0},
		{"moneyline only", &models.MarketOdds{HomeMoneyline: intPtr(-120), AwayMoneyline: intPtr(110)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := comparer.CompareToMarket(marketResult(), tt.market)
			assert.Len(t, edges, tt.want)
		})
	}

	assert.Empty(t, comparer.CompareToMarket(nil, &models.MarketOdds{}))
}
