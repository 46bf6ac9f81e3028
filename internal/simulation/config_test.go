package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/diamond-odds/internal/config"
)

func TestFromConfig(t *testing.T) {
	assert.Equal(t, DefaultEngineConfig().MaxCount, FromConfig(nil).MaxCount)

	cfg := FromConfig(&config.SimulationConfig{
		DefaultCount:       1000,
		MaxCount:           5000,
		Workers:            3,
		BatchSize:          250,
		Seed:               11,
		BaseRuns:           5,
		HomeFieldAdvantage: 1.1,
		DefenseSuppression: 0.3,
		TotalLine:          9.5,
		RunLine:            2.5,
	})

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 250, cfg.BatchSize)
	assert.Equal(t, 5000, cfg.MaxCount)
	assert.Equal(t, int64(11), cfg.Seed)
	assert.Equal(t, 9.5, cfg.TotalLine)
	assert.Equal(t, 2.5, cfg.RunLine)
	assert.Equal(t, SamplerConfig{BaseRuns: 5, HomeFieldAdvantage: 1.1, DefenseSuppression: 0.3}, cfg.Sampler)

	partial := FromConfig(&config.SimulationConfig{DefenseSuppression: 0.3})
	assert.Equal(t, DefaultSamplerConfig(), partial.Sampler)
	assert.Equal(t, DefaultEngineConfig().Workers, partial.Workers)
}
