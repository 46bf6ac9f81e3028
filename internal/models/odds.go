package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketOdds is a sportsbook's posted lines for one game, American format
type MarketOdds struct {
	GameID        string    `db:"game_id" json:"gameId"`
	Sportsbook    string    `db:"sportsbook" json:"sportsbook"`
	HomeMoneyline *int      `db:"home_moneyline" json:"homeMoneyline,omitempty"`
	AwayMoneyline *int      `db:"away_moneyline" json:"awayMoneyline,omitempty"`
	TotalRuns     *float64  `db:"total_runs" json:"totalRuns,omitempty"`
	OverOdds      *int      `db:"over_odds" json:"overOdds,omitempty"`
	UnderOdds     *int      `db:"under_odds" json:"underOdds,omitempty"`
	LastUpdated   time.Time `db:"last_updated" json:"lastUpdated"`
}

// MarketEdge compares the model's fair probability with one side of a market
type MarketEdge struct {
	GameID           string          `json:"gameId"`
	Market           string          `json:"market"`
	Side             string          `json:"side"`
	MarketOdds       int             `json:"marketOdds"`
	MarketDecimal    decimal.Decimal `json:"marketDecimal"`
	FairOdds         int             `json:"fairOdds"`
	ModelProbability float64         `json:"modelProbability"`
	MarketNoVig      float64         `json:"marketNoVigProbability"`
	Edge             float64         `json:"edge"`
	ExpectedValue    float64         `json:"expectedValue"`
	Actionable       bool            `json:"actionable"`
}

// Market names
const (
	MarketMoneyline = "moneyline"
	MarketTotal     = "total"
)
