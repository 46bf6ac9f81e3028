package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-odds/internal/database"
	"github.com/yourusername/diamond-odds/internal/models"
)

func TestNewRepositories(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		repos, err := NewRepositories(nil)
		assert.Error(t, err)
		assert.Nil(t, repos)
	})
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int { return &v }

func testGame(id string, start time.Time) *models.Game {
	return &models.Game{
		ID:        id,
		Status:    "Scheduled",
		StartTime: &start,
		Stadium:   "Coors Field",
		HomeTeam:  models.TeamRef{ID: "COL", Name: "Colorado Rockies", Abbreviation: "COL"},
		AwayTeam:  models.TeamRef{ID: "LAD", Name: "Los Angeles Dodgers", Abbreviation: "LAD"},
		Weather: &models.Weather{
			Temperature:   floatPtr(88),
			Condition:     "Sunny",
			WindSpeed:     floatPtr(12),
			WindDirection: "Out to CF",
		},
	}
}

func TestGameRepository(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := NewPostgresGameRepository(db)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 19, 10, 0, 0, time.UTC)
	game := testGame("1001", start)
	require.NoError(t, repo.Upsert(ctx, game))

	got, err := repo.GetGame(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, "Colorado Rockies", got.HomeTeam.Name)
	require.NotNil(t, got.Weather)
	assert.Equal(t, 88.0, *got.Weather.Temperature)
	assert.Equal(t, "Out to CF", got.Weather.WindDirection)

	game.Status = "Final"
	game.Weather = nil
	require.NoError(t, repo.Upsert(ctx, game))
	got, err = repo.GetGame(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Status)
	assert.Nil(t, got.Weather)

	_, err = repo.GetGame(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrGameNotFound)

	require.NoError(t, repo.Upsert(ctx, testGame("1002", start.AddDate(0, 0, 1))))
	games, err := repo.GetByDate(ctx, start)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "1001", games[0].ID)
}

func TestProjectionRepository(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := NewPostgresProjectionRepository(db)
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertBatch(ctx, date, nil))

	projections := []models.PlayerProjection{
		{PlayerID: "p1", GameID: "1001", Name: "Leadoff", TeamID: "COL", IsHome: true, BattingOrder: 1, BattingOrderConfirmed: true},
		{PlayerID: "p2", GameID: "1001", Name: "Cleanup", TeamID: "COL", IsHome: true, BattingOrder: 4},
		{PlayerID: "p3", GameID: "1001", Name: "Visitor", TeamID: "LAD", BattingOrder: 1},
	}
	require.NoError(t, repo.UpsertBatch(ctx, date, projections))

	got, err := repo.GetProjections(ctx, date)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = repo.GetProjections(ctx, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSimulationRepository(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := NewPostgresSimulationRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run, err := models.NewSimulationRun(&models.SimulationResult{
			GameID:             "1001",
			SimulationCount:    1000 * (i + 1),
			HomeWinProbability: 0.45,
		}, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, run))
	}

	runs, err := repo.ListByGame(ctx, "1001", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3000, runs[0].Count)
	assert.Equal(t, 2000, runs[1].Count)

	decoded, err := runs[0].Decode()
	require.NoError(t, err)
	assert.Equal(t, 0.45, decoded.HomeWinProbability)

	one, err := repo.GetByID(ctx, runs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "1001", one.GameID)

	empty, err := repo.ListByGame(ctx, "other", 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOddsRepository(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := NewPostgresOddsRepository(db)
	ctx := context.Background()

	line := &models.MarketOdds{
		GameID:        "1001",
		Sportsbook:    "DraftKings",
		HomeMoneyline: intPtr(-120),
		AwayMoneyline: intPtr(110),
		TotalRuns:     floatPtr(8.5),
		OverOdds:      intPtr(-110),
		UnderOdds:     intPtr(-110),
		LastUpdated:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Upsert(ctx, line))

	line.HomeMoneyline = intPtr(-130)
	require.NoError(t, repo.Upsert(ctx, line))

	lines, err := repo.GetByGame(ctx, "1001")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, -130, *lines[0].HomeMoneyline)
	assert.Equal(t, 8.5, *lines[0].TotalRuns)
}
