package simulation

import "github.com/yourusername/diamond-odds/internal/config"

// FromConfig maps the simulation config section onto an engine configuration
func FromConfig(cfg *config.SimulationConfig) EngineConfig {
	engineCfg := DefaultEngineConfig()
	if cfg == nil {
		return engineCfg
	}

	if cfg.Workers > 0 {
		engineCfg.Workers = cfg.Workers
	}
	if cfg.BatchSize > 0 {
		engineCfg.BatchSize = cfg.BatchSize
	}
	if cfg.MaxCount > 0 {
		engineCfg.MaxCount = cfg.MaxCount
	}
	if cfg.TotalLine > 0 {
		engineCfg.TotalLine = cfg.TotalLine
	}
	if cfg.RunLine > 0 {
		engineCfg.RunLine = cfg.RunLine
	}
	engineCfg.Seed = cfg.Seed
	engineCfg.Sampler = SamplerConfig{
		BaseRuns:           cfg.BaseRuns,
		HomeFieldAdvantage: cfg.HomeFieldAdvantage,
		DefenseSuppression: cfg.DefenseSuppression,
	}
	if engineCfg.Sampler.BaseRuns <= 0 || engineCfg.Sampler.HomeFieldAdvantage <= 0 {
		engineCfg.Sampler = DefaultSamplerConfig()
	}
	return engineCfg
}
