package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-odds/internal/models"
)

type stubUpstream struct {
	game        *models.Game
	games       []*models.Game
	projections []models.PlayerProjection
	err         error
}

func (s *stubUpstream) GetGame(_ context.Context, _ string) (*models.Game, error) {
	return s.game, s.err
}

func (s *stubUpstream) GetGamesByDate(_ context.Context, _ time.Time) ([]*models.Game, error) {
	return s.games, s.err
}

func (s *stubUpstream) GetProjections(_ context.Context, _ time.Time) ([]models.PlayerProjection, error) {
	return s.projections, s.err
}

func (s *stubUpstream) GetOddsByDate(_ context.Context, _ time.Time) ([]*models.MarketOdds, error) {
	return nil, s.err
}

func (s *stubUpstream) Name() string { return "stub" }

type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *MockGameRepository) GetGame(ctx context.Context, id string) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

type MockProjectionRepository struct {
	mock.Mock
}

func (m *MockProjectionRepository) UpsertBatch(ctx context.Context, date time.Time, projections []models.PlayerProjection) error {
	return m.Called(ctx, date, projections).Error(0)
}

func (m *MockProjectionRepository) GetProjections(ctx context.Context, date time.Time) ([]models.PlayerProjection, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerProjection), args.Error(1)
}

func TestArchivingSourceStoresFetchedGame(t *testing.T) {
	game := &models.Game{ID: "g1"}
	games := new(MockGameRepository)
	games.On("Upsert", mock.Anything, game).Return(nil)

	src := NewArchivingSource(&stubUpstream{game: game}, games, new(MockProjectionRepository), nil)
	got, err := src.GetGame(context.Background(), "g1")
	require.NoError(t, err)
	assert.Same(t, game, got)
	games.AssertExpectations(t)
}

func TestArchivingSourceArchiveFailureIsNotFatal(t *testing.T) {
	game := &models.Game{ID: "g1"}
	games := new(MockGameRepository)
	games.On("Upsert", mock.Anything, game).Return(errors.New("db down"))

	src := NewArchivingSource(&stubUpstream{game: game}, games, new(MockProjectionRepository), nil)
	got, err := src.GetGame(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", got.ID)
}

func TestArchivingSourceFallsBackWhenUnavailable(t *testing.T) {
	upstreamErr := NewDataSourceError("stub", ErrCodeServerError, "boom", ErrServerError)
	archived := &models.Game{ID: "g1", Status: "scheduled"}
	games := new(MockGameRepository)
	games.On("GetGame", mock.Anything, "g1").Return(archived, nil)

	src := NewArchivingSource(&stubUpstream{err: upstreamErr}, games, new(MockProjectionRepository), nil)
	got, err := src.GetGame(context.Background(), "g1")
	require.NoError(t, err)
	assert.Same(t, archived, got)
}

func TestArchivingSourceNotFoundIsNotMasked(t *testing.T) {
	games := new(MockGameRepository)

	src := NewArchivingSource(&stubUpstream{err: models.ErrGameNotFound}, games, new(MockProjectionRepository), nil)
	_, err := src.GetGame(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrGameNotFound)
	games.AssertNotCalled(t, "GetGame", mock.Anything, mock.Anything)
}

func TestArchivingSourceProjections(t *testing.T) {
	date := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	projections := []models.PlayerProjection{{PlayerID: "p1", TeamID: "NYY", Position: "P"}}

	t.Run("archives fetched set", func(t *testing.T) {
		repo := new(MockProjectionRepository)
		repo.On("UpsertBatch", mock.Anything, date, projections).Return(nil)

		src := NewArchivingSource(&stubUpstream{projections: projections}, new(MockGameRepository), repo, nil)
		got, err := src.GetProjections(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, projections, got)
		repo.AssertExpectations(t)
	})

	t.Run("falls back on network error", func(t *testing.T) {
		upstreamErr := NewDataSourceError("stub", ErrCodeNetworkError, "dial", ErrNetworkError)
		repo := new(MockProjectionRepository)
		repo.On("GetProjections", mock.Anything, date).Return(projections, nil)

		src := NewArchivingSource(&stubUpstream{err: upstreamErr}, new(MockGameRepository), repo, nil)
		got, err := src.GetProjections(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, projections, got)
	})

	t.Run("empty archive keeps upstream error", func(t *testing.T) {
		upstreamErr := NewDataSourceError("stub", ErrCodeRateLimitExceeded, "slow down", ErrRateLimitExceeded)
		repo := new(MockProjectionRepository)
		repo.On("GetProjections", mock.Anything, date).Return(nil, nil)

		src := NewArchivingSource(&stubUpstream{err: upstreamErr}, new(MockGameRepository), repo, nil)
		_, err := src.GetProjections(context.Background(), date)
		assert.ErrorIs(t, err, ErrRateLimitExceeded)
	})
}
