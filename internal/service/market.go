package service

import (
	"github.com/yourusername/diamond-odds/internal/logger"
	"github.com/yourusername/diamond-odds/internal/metrics"
	"github.com/yourusername/diamond-odds/internal/models"
	"github.com/yourusername/diamond-odds/internal/odds"
)

// MarketComparer prices sportsbook lines against simulated probabilities
type MarketComparer struct {
	threshold float64
	audit     *logger.AuditLogger
}

// NewMarketComparer creates a comparer flagging edges strictly above threshold
func NewMarketComparer(threshold float64, audit *logger.AuditLogger) *MarketComparer {
	if audit == nil {
		audit = logger.NewAuditLogger(logger.Discard())
	}
	return &MarketComparer{threshold: threshold, audit: audit}
}

type marketSide struct {
	market string
	side   string
	model  float64
	fair   int
}

// CompareToMarket returns one edge per priced side of the moneyline and, when the
// book's total matches the simulated line, the total. Sides missing either price are
// skipped.
func (c *MarketComparer) CompareToMarket(result *models.SimulationResult, market *models.MarketOdds) []models.MarketEdge {
	edges := []models.MarketEdge{}
	if result == nil || market == nil {
		return edges
	}

	insights := result.BettingInsights
	if market.HomeMoneyline != nil && market.AwayMoneyline != nil {
		edges = c.appendPair(edges, result.GameID, *market.HomeMoneyline, *market.AwayMoneyline,
			marketSide{models.MarketMoneyline, "home", result.HomeWinProbability, insights.HomeMoneyline},
			marketSide{models.MarketMoneyline, "away", result.AwayWinProbability, insights.AwayMoneyline},
		)
	}

	if market.OverOdds != nil && market.UnderOdds != nil && market.TotalRuns != nil && *market.TotalRuns == result.TotalLine {
		edges = c.appendPair(edges, result.GameID, *market.OverOdds, *market.UnderOdds,
			marketSide{models.MarketTotal, "over", result.OverProbability, insights.OverOdds},
			marketSide{models.MarketTotal, "under", result.UnderProbability, insights.UnderOdds},
		)
	}

	return edges
}

func (c *MarketComparer) appendPair(edges []models.MarketEdge, gameID string, oddsA, oddsB int, a, b marketSide) []models.MarketEdge {
	noVigA, noVigB, err := odds.RemoveVigFromAmerican(oddsA, oddsB)
	if err != nil {
		return edges
	}
	if edge, ok := c.edge(gameID, oddsA, noVigA, a); ok {
		edges = append(edges, edge)
	}
	if edge, ok := c.edge(gameID, oddsB, noVigB, b); ok {
		edges = append(edges, edge)
	}
	return edges
}

func (c *MarketComparer) edge(gameID string, marketOdds int, noVig float64, s marketSide) (models.MarketEdge, bool) {
	dec, err := odds.DecimalOdds(marketOdds)
	if err != nil {
		return models.MarketEdge{}, false
	}
	ev, err := odds.ExpectedValue(s.model, marketOdds)
	if err != nil {
		return models.MarketEdge{}, false
	}

	edge := models.MarketEdge{
		GameID:           gameID,
		Market:           s.market,
		Side:             s.side,
		MarketOdds:       marketOdds,
		MarketDecimal:    dec,
		FairOdds:         s.fair,
		ModelProbability: s.model,
		MarketNoVig:      noVig,
		Edge:             odds.Edge(s.model, noVig),
		ExpectedValue:    ev,
	}
	edge.Actionable = edge.Edge > c.threshold

	metrics.RecordMarketEdge(edge.Market, edge.Side, edge.Edge, edge.Actionable)
	if edge.Actionable {
		c.audit.LogEdgeDetected(gameID, edge.Market, edge.Side, marketOdds, s.fair, edge.Edge)
	}
	return edge, true
}
