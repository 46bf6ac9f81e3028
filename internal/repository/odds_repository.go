package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/diamond-odds/internal/database"
	"github.com/yourusername/diamond-odds/internal/models"
)

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Upsert stores the latest lines for a game and sportsbook
func (r *PostgresOddsRepository) Upsert(ctx context.Context, odds *models.MarketOdds) error {
	query := `
		INSERT INTO market_odds
			(game_id, sportsbook, home_moneyline, away_moneyline, total_runs, over_odds, under_odds, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id, sportsbook) DO UPDATE SET
			home_moneyline = EXCLUDED.home_moneyline,
			away_moneyline = EXCLUDED.away_moneyline,
			total_runs = EXCLUDED.total_runs,
			over_odds = EXCLUDED.over_odds,
			under_odds = EXCLUDED.under_odds,
			last_updated = EXCLUDED.last_updated
	`

	_, err := r.db.Exec(ctx, query,
		odds.GameID, odds.Sportsbook, odds.HomeMoneyline, odds.AwayMoneyline,
		odds.TotalRuns, odds.OverOdds, odds.UnderOdds, odds.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert market odds: %w", err)
	}
	return nil
}

// GetByGame returns every sportsbook's lines for a game
func (r *PostgresOddsRepository) GetByGame(ctx context.Context, gameID string) ([]*models.MarketOdds, error) {
	query := `
		SELECT game_id, sportsbook, home_moneyline, away_moneyline, total_runs, over_odds, under_odds, last_updated
		FROM market_odds
		WHERE game_id = $1
		ORDER BY sportsbook
	`

	rows, err := r.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query market odds: %w", err)
	}
	defer rows.Close()

	var lines []*models.MarketOdds
	for rows.Next() {
		o := &models.MarketOdds{}
		if err := rows.Scan(&o.GameID, &o.Sportsbook, &o.HomeMoneyline, &o.AwayMoneyline,
			&o.TotalRuns, &o.OverOdds, &o.UnderOdds, &o.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan market odds: %w", err)
		}
		lines = append(lines, o)
	}

	return lines, rows.Err()
}
