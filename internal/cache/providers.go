package cache

import (
	"context"
	"time"

	"github.com/yourusername/diamond-odds/internal/models"
)

// GameProvider is the game lookup the cached decorator wraps
type GameProvider interface {
	GetGame(ctx context.Context, id string) (*models.Game, error)
}

// ProjectionProvider is the projection lookup the cached decorator wraps
type ProjectionProvider interface {
	GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error)
}

// CachedGameProvider serves games and projections from a cache before asking upstream
type CachedGameProvider struct {
	games       GameProvider
	projections ProjectionProvider
	cache       *Cache
}

// NewCachedGameProvider decorates the given providers. projections may be nil.
func NewCachedGameProvider(games GameProvider, projections ProjectionProvider, c *Cache) *CachedGameProvider {
	return &CachedGameProvider{
		games:       games,
		projections: projections,
		cache:       c,
	}
}

// GetGame returns a cached game or fetches and caches it. Misses are not cached.
func (p *CachedGameProvider) GetGame(ctx context.Context, id string) (*models.Game, error) {
	key := GameKey(id)
	if v, ok := p.cache.Get(key); ok {
		if game, ok := v.(*models.Game); ok {
			return game, nil
		}
	}

	game, err := p.games.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, game)
	return game, nil
}

// GetProjections returns cached projections for a date or fetches and caches them
func (p *CachedGameProvider) GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error) {
	if p.projections == nil {
		return nil, nil
	}

	key := ProjectionsKey(date)
	if v, ok := p.cache.Get(key); ok {
		if projections, ok := v.([]models.PlayerProjection); ok {
			return projections, nil
		}
	}

	projections, err := p.projections.GetProjections(ctx, date)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, projections)
	return projections, nil
}
