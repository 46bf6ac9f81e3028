package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/diamond-odds/internal/models"
)

// GameRepository defines the interface for game data access
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	GetGame(ctx context.Context, id string) (*models.Game, error)
	GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error)
}

// ProjectionRepository defines the interface for player projection data access
type ProjectionRepository interface {
	UpsertBatch(ctx context.Context, date time.Time, projections []models.PlayerProjection) error
	GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error)
}

// SimulationRepository defines the interface for simulation history
type SimulationRepository interface {
	Save(ctx context.Context, run *models.SimulationRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SimulationRun, error)
	ListByGame(ctx context.Context, gameID string, limit int) ([]*models.SimulationRun, error)
}

// OddsRepository defines the interface for sportsbook line data access
type OddsRepository interface {
	Upsert(ctx context.Context, odds *models.MarketOdds) error
	GetByGame(ctx context.Context, gameID string) ([]*models.MarketOdds, error)
}
