package odds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/diamond-odds/internal/models"
)

func TestRemoveVigFromAmerican(t *testing.T) {
	home, away, err := RemoveVigFromAmerican(-110, -110)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, home, 1e-9)
	assert.InDelta(t, 0.5, away, 1e-9)

	home, away, err = RemoveVigFromAmerican(-150, 130)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, home+away, 1e-9)
	assert.Greater(t, home, away)

	_, _, err = RemoveVig(0, 0.5)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestEdge(t *testing.T) {
	assert.InDelta(t, 0.05, Edge(0.55, 0.5), 1e-9)
	assert.InDelta(t, -0.1, Edge(0.4, 0.5), 1e-9)
}

func TestExpectedValue(t *testing.T) {
	tests := []struct {
		name     string
		prob     float64
		american int
		expected float64
	}{
		{"fair even money", 0.5, 100, 0},
		{"fair favorite", 0.6, -150, 0},
		{"positive ev underdog", 0.5, 150, 0.25},
		{"negative ev juice", 0.5, -110, -0.04545},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ExpectedValue(tt.prob, tt.american)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, ev, 1e-4)
		})
	}

	_, err := ExpectedValue(0.5, 0)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}
