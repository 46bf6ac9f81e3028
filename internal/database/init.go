package database

import (
	"context"
	"fmt"

	"github.com/yourusername/diamond-odds/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id                 TEXT PRIMARY KEY,
	status             TEXT NOT NULL DEFAULT '',
	start_time         TIMESTAMPTZ,
	stadium            TEXT NOT NULL DEFAULT '',
	home_team_id       TEXT NOT NULL,
	home_team_name     TEXT NOT NULL DEFAULT '',
	home_team_abbr     TEXT NOT NULL DEFAULT '',
	away_team_id       TEXT NOT NULL,
	away_team_name     TEXT NOT NULL DEFAULT '',
	away_team_abbr     TEXT NOT NULL DEFAULT '',
	temperature        DOUBLE PRECISION,
	weather_condition  TEXT NOT NULL DEFAULT '',
	wind_speed         DOUBLE PRECISION,
	wind_direction     TEXT NOT NULL DEFAULT '',
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS player_projections (
	player_id               TEXT NOT NULL,
	game_id                 TEXT NOT NULL,
	game_date               DATE NOT NULL,
	name                    TEXT NOT NULL DEFAULT '',
	team_id                 TEXT NOT NULL DEFAULT '',
	position                TEXT NOT NULL DEFAULT '',
	is_home                 BOOLEAN NOT NULL DEFAULT false,
	batting_order           INTEGER NOT NULL DEFAULT 0,
	batting_order_confirmed BOOLEAN NOT NULL DEFAULT false,
	PRIMARY KEY (player_id, game_id)
);
CREATE INDEX IF NOT EXISTS idx_player_projections_date ON player_projections (game_date);

CREATE TABLE IF NOT EXISTS simulation_runs (
	id               UUID PRIMARY KEY,
	game_id          TEXT NOT NULL,
	simulation_count INTEGER NOT NULL,
	result           JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_simulation_runs_game ON simulation_runs (game_id, created_at DESC);

CREATE TABLE IF NOT EXISTS market_odds (
	game_id        TEXT NOT NULL,
	sportsbook     TEXT NOT NULL,
	home_moneyline INTEGER,
	away_moneyline INTEGER,
	total_runs     DOUBLE PRECISION,
	over_odds      INTEGER,
	under_odds     INTEGER,
	last_updated   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (game_id, sportsbook)
);
`

// Initialize creates the connection pool and applies the schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates any missing tables and indexes
func Migrate(ctx context.Context, db *DB) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
