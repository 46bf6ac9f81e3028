package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/diamond-odds/internal/database"
	"github.com/yourusername/diamond-odds/internal/models"
)

// PostgresProjectionRepository implements ProjectionRepository for PostgreSQL
type PostgresProjectionRepository struct {
	db *database.DB
}

// NewPostgresProjectionRepository creates a new projection repository
func NewPostgresProjectionRepository(db *database.DB) ProjectionRepository {
	return &PostgresProjectionRepository{db: db}
}

// UpsertBatch stores every projection for a date in one round trip
func (r *PostgresProjectionRepository) UpsertBatch(ctx context.Context, date time.Time, projections []models.PlayerProjection) error {
	if len(projections) == 0 {
		return nil
	}

	query := `
		INSERT INTO player_projections
			(player_id, game_id, game_date, name, team_id, position, is_home, batting_order, batting_order_confirmed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (player_id, game_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			position = EXCLUDED.position,
			is_home = EXCLUDED.is_home,
			batting_order = EXCLUDED.batting_order,
			batting_order_confirmed = EXCLUDED.batting_order_confirmed
	`

	day := dateOnly(date)
	batch := &pgx.Batch{}
	for _, p := range projections {
		batch.Queue(query, p.PlayerID, p.GameID, day, p.Name, p.TeamID, p.Position,
			p.IsHome, p.BattingOrder, p.BattingOrderConfirmed)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for i := range projections {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert projection %d: %w", i, err)
		}
	}
	return nil
}

// GetProjections returns all player projections for a date
func (r *PostgresProjectionRepository) GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error) {
	query := `
		SELECT player_id, game_id, name, team_id, position, is_home, batting_order, batting_order_confirmed
		FROM player_projections
		WHERE game_date = $1
		ORDER BY game_id, team_id, batting_order
	`

	rows, err := r.db.Query(ctx, query, dateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query projections: %w", err)
	}
	defer rows.Close()

	var projections []models.PlayerProjection
	for rows.Next() {
		var p models.PlayerProjection
		if err := rows.Scan(&p.PlayerID, &p.GameID, &p.Name, &p.TeamID, &p.Position,
			&p.IsHome, &p.BattingOrder, &p.BattingOrderConfirmed); err != nil {
			return nil, fmt.Errorf("failed to scan projection: %w", err)
		}
		projections = append(projections, p)
	}

	return projections, rows.Err()
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
