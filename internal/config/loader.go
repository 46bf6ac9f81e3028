// Package config provides configuration management for the diamond-odds service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix         = "DIAMOND_ODDS"
	defaultConfigPath = "config/config.yaml"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := readExpanded(v, data); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables still apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := readExpanded(v, data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// readExpanded expands ${VAR} placeholders before parsing
func readExpanded(v *viper.Viper, data []byte) error {
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "diamond-odds")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("simulation.default_count", 1000)
	v.SetDefault("simulation.max_count", 100000)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.batch_size", 1000)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.base_runs", 4.5)
	v.SetDefault("simulation.home_field_advantage", 1.05)
	v.SetDefault("simulation.defense_suppression", 0.2)
	v.SetDefault("simulation.total_line", 8.5)
	v.SetDefault("simulation.run_line", 1.5)
	v.SetDefault("simulation.history_limit", 5)

	v.SetDefault("cache.game_ttl_seconds", 300)
	v.SetDefault("cache.simulation_ttl_seconds", 900)
	v.SetDefault("cache.cleanup_seconds", 600)

	v.SetDefault("sportsdata.base_url", "https://api.sportsdata.io/v3/mlb")
	v.SetDefault("sportsdata.api_key", "")
	v.SetDefault("sportsdata.timeout_seconds", 10)
	v.SetDefault("sportsdata.retry_attempts", 3)
	v.SetDefault("sportsdata.requests_per_second", 2)
	v.SetDefault("sportsdata.burst", 4)

	v.SetDefault("market.edge_threshold", 0.03)

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.request_timeout_seconds", 30)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.daemon_addr", "127.0.0.1:2000")
	v.SetDefault("tracing.sampling_rate", 0.05)

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.slate_cron", "0 0 15 * * *")

	v.SetDefault("secrets.region", "us-east-1")
	v.SetDefault("secrets.secret_name", "diamond-odds/secrets")
}
