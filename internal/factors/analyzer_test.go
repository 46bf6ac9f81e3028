package factors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/diamond-odds/internal/models"
)

type stubProjections struct {
	projections []models.PlayerProjection
	err         error
	calls       int
}

func (s *stubProjections) GetProjections(_ context.Context, _ time.Time) ([]models.PlayerProjection, error) {
	s.calls++
	return s.projections, s.err
}

func floatPtr(v float64) *float64 { return &v }

func testGame() *models.Game {
	start := time.Date(2024, 6, 1, 23, 5, 0, 0, time.UTC)
	return &models.Game{
		ID:        "G1",
		StartTime: &start,
		HomeTeam:  models.TeamRef{ID: "NYY", Name: "New York Yankees"},
		AwayTeam:  models.TeamRef{ID: "BOS", Name: "Boston Red Sox"},
	}
}

func lineup(gameID, teamID string, ordered, bench int) []models.PlayerProjection {
	var players []models.PlayerProjection
	for i := 1; i <= ordered; i++ {
		players = append(players, models.PlayerProjection{GameID: gameID, TeamID: teamID, BattingOrder: i})
	}
	for i := 0; i < bench; i++ {
		players = append(players, models.PlayerProjection{GameID: gameID, TeamID: teamID})
	}
	return players
}

func TestAnalyzeRequiresGameID(t *testing.T) {
	a := NewAnalyzer(nil)

	_, err := a.Analyze(context.Background(), &models.Game{})
	assert.ErrorIs(t, err, models.ErrGameNotFound)

	_, err = a.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrGameNotFound)
}

func TestAnalyzeMissingDataIsNeutral(t *testing.T) {
	game := testGame()
	game.StartTime = nil

	fs, err := NewAnalyzer(&stubProjections{}).Analyze(context.Background(), game)
	require.NoError(t, err)
	assert.True(t, fs.IsNeutral())
	assert.Empty(t, Describe(fs))
}

func TestAnalyzeWeather(t *testing.T) {
	tests := []struct {
		name     string
		weather  *models.Weather
		batting  float64
		pitching float64
		tempTag  string
		windTag  string
	}{
		{"hot", &models.Weather{Temperature: floatPtr(90)}, 0.03, -0.02, models.TagHot, ""},
		{"cold", &models.Weather{Temperature: floatPtr(50)}, -0.02, 0.03, models.TagCold, ""},
		{"mild boundary high", &models.Weather{Temperature: floatPtr(85)}, 0, 0, "", ""},
		{"mild boundary low", &models.Weather{Temperature: floatPtr(55)}, 0, 0, "", ""},
		{"wind out", &models.Weather{WindSpeed: floatPtr(15), WindDirection: "Out to CF"}, 0.05, 0, "", models.TagWindOut},
		{"wind in", &models.Weather{WindSpeed: floatPtr(12), WindDirection: "In from LF"}, 0, 0.04, "", models.TagWindIn},
		{"ambiguous wind counts as out", &models.Weather{WindSpeed: floatPtr(20), WindDirection: "North-Southwest"}, 0.05, 0, "", models.TagWindOut},
		{"light wind ignored", &models.Weather{WindSpeed: floatPtr(10), WindDirection: "out"}, 0, 0, "", ""},
		{"hot with wind out", &models.Weather{Temperature: floatPtr(95), WindSpeed: floatPtr(18), WindDirection: "OUT"}, 0.08, -0.02, models.TagHot, models.TagWindOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := testGame()
			game.Weather = tt.weather

			fs, err := NewAnalyzer(nil).Analyze(context.Background(), game)
			require.NoError(t, err)

			assert.InDelta(t, tt.batting, fs.HomeBattingAdjustment, 1e-9)
			assert.InDelta(t, tt.batting, fs.AwayBattingAdjustment, 1e-9)
			assert.InDelta(t, tt.pitching, fs.HomePitchingAdjustment, 1e-9)
			assert.InDelta(t, tt.pitching, fs.AwayPitchingAdjustment, 1e-9)
			assert.Equal(t, tt.tempTag, fs.WeatherTempFactor)
			assert.Equal(t, tt.windTag, fs.WeatherWindFactor)
		})
	}
}

func TestAnalyzeBallpark(t *testing.T) {
	tests := []struct {
		stadium  string
		batting  float64
		pitching float64
		tag      string
	}{
		{"Coors Field", 0.04, 0, models.TagHitterFriendly},
		{"Great American Ball Park", 0.04, 0, models.TagHitterFriendly},
		{"Oracle Park", 0, 0.04, models.TagPitcherFriendly},
		{"Citi Field", 0, 0.04, models.TagPitcherFriendly},
		{"coors field", 0, 0, ""},
		{"Wrigley Field", 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.stadium, func(t *testing.T) {
			game := testGame()
			game.Stadium = tt.stadium

			fs, err := NewAnalyzer(nil).Analyze(context.Background(), game)
			require.NoError(t, err)
			assert.InDelta(t, tt.batting, fs.HomeBattingAdjustment, 1e-9)
			assert.InDelta(t, tt.pitching, fs.AwayPitchingAdjustment, 1e-9)
			assert.Equal(t, tt.tag, fs.BallparkFactor)
		})
	}
}

func TestAnalyzeHotWeatherAndHitterParkAreAdditive(t *testing.T) {
	game := testGame()
	game.Weather = &models.Weather{Temperature: floatPtr(90)}
	game.Stadium = "Coors Field"

	fs, err := NewAnalyzer(nil).Analyze(context.Background(), game)
	require.NoError(t, err)

	assert.InDelta(t, 0.07, fs.HomeBattingAdjustment, 1e-9)
	assert.InDelta(t, 0.07, fs.AwayBattingAdjustment, 1e-9)
	assert.InDelta(t, -0.02, fs.HomePitchingAdjustment, 1e-9)
	assert.Equal(t, models.TagHot, fs.WeatherTempFactor)
	assert.Equal(t, models.TagHitterFriendly, fs.BallparkFactor)
	assert.Equal(t, []string{
		"Hot temperatures favor hitters (higher scoring game likely)",
		"Ballpark favors hitters (higher run-scoring environment)",
	}, Describe(fs))
}

func TestAnalyzeLineups(t *testing.T) {
	t.Run("no projections for game is neutral", func(t *testing.T) {
		src := &stubProjections{projections: lineup("OTHER", "NYY", 3, 0)}
		fs, err := NewAnalyzer(src).Analyze(context.Background(), testGame())
		require.NoError(t, err)
		assert.Equal(t, 1, src.calls)
		assert.Empty(t, fs.HomeLineupFactor)
		assert.Empty(t, fs.AwayLineupFactor)
	})

	t.Run("partial home and full away", func(t *testing.T) {
		projections := append(lineup("G1", "NYY", 3, 2), lineup("G1", "BOS", 9, 4)...)
		fs, err := NewAnalyzer(&stubProjections{projections: projections}).Analyze(context.Background(), testGame())
		require.NoError(t, err)

		assert.Equal(t, models.TagWeak, fs.HomeLineupFactor)
		assert.InDelta(t, -0.05, fs.HomeBattingAdjustment, 1e-9)
		assert.Empty(t, fs.AwayLineupFactor)
		assert.InDelta(t, 0, fs.AwayBattingAdjustment, 1e-9)
	})

	t.Run("side missing from projections is weak", func(t *testing.T) {
		src := &stubProjections{projections: lineup("G1", "NYY", 9, 0)}
		fs, err := NewAnalyzer(src).Analyze(context.Background(), testGame())
		require.NoError(t, err)
		assert.Empty(t, fs.HomeLineupFactor)
		assert.Equal(t, models.TagWeak, fs.AwayLineupFactor)
	})

	t.Run("projection errors propagate", func(t *testing.T) {
		src := &stubProjections{err: errors.New("upstream down")}
		_, err := NewAnalyzer(src).Analyze(context.Background(), testGame())
		assert.Error(t, err)
	})
}

func TestLineupStrength(t *testing.T) {
	assert.Equal(t, 0.5, LineupStrength(nil))
	assert.InDelta(t, 0.5, LineupStrength(lineup("G1", "NYY", 0, 5)), 1e-9)
	assert.InDelta(t, 0.5+4.0/18, LineupStrength(lineup("G1", "NYY", 4, 0)), 1e-9)
	assert.InDelta(t, 0.5+8.0/18, LineupStrength(lineup("G1", "NYY", 8, 0)), 1e-9)
	assert.Equal(t, 0.9, LineupStrength(lineup("G1", "NYY", 9, 3)))

	// Strength tops out at 0.9, so the strong tag never fires.
	for k := 0; k <= 12; k++ {
		_, tag := lineupAdjustment(LineupStrength(lineup("G1", "NYY", k, 0)))
		assert.NotEqual(t, models.TagStrong, tag)
	}
}

func TestDescribeOrder(t *testing.T) {
	fs := models.FactorSet{
		WeatherTempFactor: models.TagCold,
		WeatherWindFactor: models.TagWindIn,
		HomeLineupFactor:  models.TagWeak,
		AwayLineupFactor:  models.TagStrong,
		BallparkFactor:    models.TagPitcherFriendly,
	}

	assert.Equal(t, []string{
		"Cold temperatures favor pitchers (lower scoring game likely)",
		"Strong winds blowing in will likely suppress home runs and scoring",
		"Home team lineup missing key players (weakened offense)",
		"Away team has full-strength lineup (strong offense)",
		"Ballpark favors pitchers (lower run-scoring environment)",
	}, Describe(fs))
}
