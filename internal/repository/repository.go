// Package repository persists games, projections, market lines and simulation history in PostgreSQL.
package repository

import (
	"fmt"

	"github.com/yourusername/diamond-odds/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Game       GameRepository
	Projection ProjectionRepository
	Simulation SimulationRepository
	Odds       OddsRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Game:       NewPostgresGameRepository(db),
		Projection: NewPostgresProjectionRepository(db),
		Simulation: NewPostgresSimulationRepository(db),
		Odds:       NewPostgresOddsRepository(db),
	}, nil
}
