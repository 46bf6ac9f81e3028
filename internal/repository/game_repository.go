package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/diamond-odds/internal/database"
	"github.com/yourusername/diamond-odds/internal/models"
)

const (
	errScanGame = "failed to scan game: %w"

	gameColumns = `id, status, start_time, stadium,
		home_team_id, home_team_name, home_team_abbr,
		away_team_id, away_team_name, away_team_abbr,
		temperature, weather_condition, wind_speed, wind_direction`
)

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Upsert inserts a game or refreshes its mutable fields
func (r *PostgresGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (` + gameColumns + `, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			start_time = EXCLUDED.start_time,
			stadium = EXCLUDED.stadium,
			temperature = EXCLUDED.temperature,
			weather_condition = EXCLUDED.weather_condition,
			wind_speed = EXCLUDED.wind_speed,
			wind_direction = EXCLUDED.wind_direction,
			updated_at = now()
	`

	var (
		temperature, windSpeed *float64
		condition, direction   string
	)
	if w := game.Weather; w != nil {
		temperature, windSpeed = w.Temperature, w.WindSpeed
		condition, direction = w.Condition, w.WindDirection
	}

	_, err := r.db.Exec(ctx, query,
		game.ID, game.Status, game.StartTime, game.Stadium,
		game.HomeTeam.ID, game.HomeTeam.Name, game.HomeTeam.Abbreviation,
		game.AwayTeam.ID, game.AwayTeam.Name, game.AwayTeam.Abbreviation,
		temperature, condition, windSpeed, direction,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}
	return nil
}

// GetGame retrieves a game by ID
func (r *PostgresGameRepository) GetGame(ctx context.Context, id string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// GetByDate retrieves the games starting on the given UTC date
func (r *PostgresGameRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time ASC
	`

	day := dateOnly(date)
	rows, err := r.db.Query(ctx, query, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to query games by date: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

func scanGame(row pgx.Row) (*models.Game, error) {
	game := &models.Game{}
	weather := &models.Weather{}
	err := row.Scan(
		&game.ID, &game.Status, &game.StartTime, &game.Stadium,
		&game.HomeTeam.ID, &game.HomeTeam.Name, &game.HomeTeam.Abbreviation,
		&game.AwayTeam.ID, &game.AwayTeam.Name, &game.AwayTeam.Abbreviation,
		&weather.Temperature, &weather.Condition, &weather.WindSpeed, &weather.WindDirection,
	)
	if err != nil {
		return nil, err
	}
	if weather.Temperature != nil || weather.WindSpeed != nil || weather.Condition != "" || weather.WindDirection != "" {
		game.Weather = weather
	}
	return game, nil
}
