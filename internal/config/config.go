// Package config provides configuration management for the diamond-odds service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	SportsData SportsDataConfig `mapstructure:"sportsdata" validate:"required"`
	Market     MarketConfig     `mapstructure:"market"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration.
// Persistence is disabled when Enabled is false.
type DatabaseConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required_if=Enabled true"`
	User               string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"gte=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"gte=0"`
}

// SimulationConfig represents Monte Carlo engine configuration
type SimulationConfig struct {
	DefaultCount       int     `mapstructure:"default_count" validate:"required,gt=0"`
	MaxCount           int     `mapstructure:"max_count" validate:"required,gt=0"`
	Workers            int     `mapstructure:"workers" validate:"gte=0"`
	BatchSize          int     `mapstructure:"batch_size" validate:"required,gt=0"`
	Seed               int64   `mapstructure:"seed"`
	BaseRuns           float64 `mapstructure:"base_runs" validate:"required,gt=0"`
	HomeFieldAdvantage float64 `mapstructure:"home_field_advantage" validate:"required,gt=0"`
	DefenseSuppression float64 `mapstructure:"defense_suppression" validate:"gte=0,lte=1"`
	TotalLine          float64 `mapstructure:"total_line" validate:"required,gt=0"`
	RunLine            float64 `mapstructure:"run_line" validate:"required,gt=0"`
	HistoryLimit       int     `mapstructure:"history_limit" validate:"required,gt=0"`
}

// CacheConfig represents the in-process TTL cache configuration
type CacheConfig struct {
	GameTTLSeconds       int `mapstructure:"game_ttl_seconds" validate:"required,gt=0"`
	SimulationTTLSeconds int `mapstructure:"simulation_ttl_seconds" validate:"required,gt=0"`
	CleanupSeconds       int `mapstructure:"cleanup_seconds" validate:"required,gt=0"`
}

// SportsDataConfig represents the SportsDataIO MLB API configuration
type SportsDataConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	Burst             int     `mapstructure:"burst" validate:"required,gt=0"`
}

// MarketConfig represents market comparison configuration
type MarketConfig struct {
	EdgeThreshold float64 `mapstructure:"edge_threshold" validate:"gte=0,lte=1"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Port                  int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins        []string `mapstructure:"allowed_origins"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// TracingConfig represents AWS X-Ray tracing configuration
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	DaemonAddr   string  `mapstructure:"daemon_addr" validate:"required_if=Enabled true"`
	SamplingRate float64 `mapstructure:"sampling_rate" validate:"gte=0,lte=1"`
}

// SchedulerConfig represents scheduled slate simulation configuration
type SchedulerConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	SlateCron string `mapstructure:"slate_cron" validate:"omitempty,cronspec"`
}

// SecretsConfig locates the AWS Secrets Manager overlay
type SecretsConfig struct {
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SportsDataTimeout returns the upstream request timeout
func (c *Config) SportsDataTimeout() time.Duration {
	return time.Duration(c.SportsData.TimeoutSeconds) * time.Second
}

// RequestTimeout returns the HTTP handler timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}
