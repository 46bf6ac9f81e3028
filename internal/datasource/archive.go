package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/models"
	"github.com/yourusername/diamond-odds/internal/repository"
)

// ArchivingSource stores every game and projection set fetched upstream and serves the
// stored copy when the provider is unavailable.
type ArchivingSource struct {
	upstream    GameSource
	games       repository.GameRepository
	projections repository.ProjectionRepository
	logger      *logrus.Entry
}

// NewArchivingSource wraps upstream with the given repositories
func NewArchivingSource(upstream GameSource, games repository.GameRepository, projections repository.ProjectionRepository, logger *logrus.Logger) *ArchivingSource {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &ArchivingSource{
		upstream:    upstream,
		games:       games,
		projections: projections,
		logger:      logger.WithField("component", "archive"),
	}
}

// GetGame fetches a game upstream and archives it. An unavailable provider falls back
// to the archived record.
func (a *ArchivingSource) GetGame(ctx context.Context, id string) (*models.Game, error) {
	game, err := a.upstream.GetGame(ctx, id)
	if err != nil {
		if !unavailable(err) {
			return nil, err
		}
		archived, archiveErr := a.games.GetGame(ctx, id)
		if archiveErr != nil {
			return nil, err
		}
		a.logger.WithError(err).WithField("game_id", id).Warn("Serving archived game")
		return archived, nil
	}

	if err := a.games.Upsert(ctx, game); err != nil {
		a.logger.WithError(err).WithField("game_id", id).Warn("Failed to archive game")
	}
	return game, nil
}

// GetGamesByDate passes through to the provider
func (a *ArchivingSource) GetGamesByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	games, err := a.upstream.GetGamesByDate(ctx, date)
	if err != nil {
		if !unavailable(err) {
			return nil, err
		}
		archived, archiveErr := a.games.GetByDate(ctx, date)
		if archiveErr != nil || len(archived) == 0 {
			return nil, err
		}
		a.logger.WithError(err).WithField("date", date.Format(dateLayout)).Warn("Serving archived slate")
		return archived, nil
	}
	return games, nil
}

// GetProjections fetches projections upstream and archives them. An unavailable
// provider falls back to the archived set.
func (a *ArchivingSource) GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error) {
	projections, err := a.upstream.GetProjections(ctx, date)
	if err != nil {
		if !unavailable(err) {
			return nil, err
		}
		archived, archiveErr := a.projections.GetProjections(ctx, date)
		if archiveErr != nil || len(archived) == 0 {
			return nil, err
		}
		a.logger.WithError(err).WithField("date", date.Format(dateLayout)).Warn("Serving archived projections")
		return archived, nil
	}

	if len(projections) > 0 {
		if err := a.projections.UpsertBatch(ctx, date, projections); err != nil {
			a.logger.WithError(err).WithField("date", date.Format(dateLayout)).Warn("Failed to archive projections")
		}
	}
	return projections, nil
}

// GetOddsByDate passes through to the provider
func (a *ArchivingSource) GetOddsByDate(ctx context.Context, date time.Time) ([]*models.MarketOdds, error) {
	return a.upstream.GetOddsByDate(ctx, date)
}

// Name returns the upstream name
func (a *ArchivingSource) Name() string {
	return a.upstream.Name()
}

func unavailable(err error) bool {
	return errors.Is(err, ErrNetworkError) ||
		errors.Is(err, ErrServerError) ||
		errors.Is(err, ErrRateLimitExceeded)
}
