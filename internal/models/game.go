package models

import (
	"time"
)

// Game represents a scheduled MLB game as supplied by the game lookup collaborator
type Game struct {
	ID        string     `db:"id" json:"id" validate:"required"`
	Status    string     `db:"status" json:"status"`
	StartTime *time.Time `db:"start_time" json:"startTime,omitempty"`
	Stadium   string     `db:"stadium" json:"stadium,omitempty"`
	HomeTeam  TeamRef    `json:"homeTeam"`
	AwayTeam  TeamRef    `json:"awayTeam"`
	Weather   *Weather   `json:"weather,omitempty"`
}

// TeamRef identifies one side of a game
type TeamRef struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Abbreviation string `db:"abbreviation" json:"abbreviation"`
}

// Weather holds game-time conditions. Nil pointers mean the value was not reported.
type Weather struct {
	Temperature   *float64 `json:"temperature,omitempty"`
	Condition     string   `json:"condition,omitempty"`
	WindSpeed     *float64 `json:"windSpeed,omitempty"`
	WindDirection string   `json:"windDirection,omitempty"`
}

// PlayerProjection is a single player's projected line for a game date
type PlayerProjection struct {
	PlayerID              string `db:"player_id" json:"playerId"`
	Name                  string `db:"name" json:"name"`
	TeamID                string `db:"team_id" json:"team"`
	Position              string `db:"position" json:"position"`
	GameID                string `db:"game_id" json:"gameId"`
	IsHome                bool   `db:"is_home" json:"isHome"`
	BattingOrder          int    `db:"batting_order" json:"battingOrder"`
	BattingOrderConfirmed bool   `db:"batting_order_confirmed" json:"battingOrderConfirmed"`
}

// GameDate returns the calendar date of the game in UTC and whether it is known
func (g *Game) GameDate() (time.Time, bool) {
	if g.StartTime == nil || g.StartTime.IsZero() {
		return time.Time{}, false
	}
	t := g.StartTime.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// HasID reports whether the game record carries an identifier
func (g *Game) HasID() bool {
	return g != nil && g.ID != ""
}
