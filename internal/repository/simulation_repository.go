package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/diamond-odds/internal/database"
	"github.com/yourusername/diamond-odds/internal/models"
)

// PostgresSimulationRepository implements SimulationRepository for PostgreSQL
type PostgresSimulationRepository struct {
	db *database.DB
}

// NewPostgresSimulationRepository creates a new simulation repository
func NewPostgresSimulationRepository(db *database.DB) SimulationRepository {
	return &PostgresSimulationRepository{db: db}
}

// Save inserts a simulation run
func (r *PostgresSimulationRepository) Save(ctx context.Context, run *models.SimulationRun) error {
	query := `
		INSERT INTO simulation_runs (id, game_id, simulation_count, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, run.ID, run.GameID, run.Count, []byte(run.Result), run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save simulation run: %w", err)
	}
	return nil
}

// GetByID retrieves a simulation run by ID
func (r *PostgresSimulationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SimulationRun, error) {
	query := `
		SELECT id, game_id, simulation_count, result, created_at
		FROM simulation_runs WHERE id = $1
	`

	run := &models.SimulationRun{}
	err := r.db.QueryRow(ctx, query, id).Scan(&run.ID, &run.GameID, &run.Count, &run.Result, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation run: %w", err)
	}
	return run, nil
}

// ListByGame returns the most recent runs for a game, newest first
func (r *PostgresSimulationRepository) ListByGame(ctx context.Context, gameID string, limit int) ([]*models.SimulationRun, error) {
	query := `
		SELECT id, game_id, simulation_count, result, created_at
		FROM simulation_runs
		WHERE game_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulation runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*models.SimulationRun, 0, limit)
	for rows.Next() {
		run := &models.SimulationRun{}
		if err := rows.Scan(&run.ID, &run.GameID, &run.Count, &run.Result, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan simulation run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
