// Package config provides configuration management for the value-sniper
// application.
package config

import "fmt"

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Model    ModelConfig    `mapstructure:"model"`
	Signals  SignalsConfig  `mapstructure:"signals"`
	Backtest BacktestConfig `mapstructure:"backtest"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ModelConfig carries the probability-model parameters.
type ModelConfig struct {
	// BaseHomeAdvantage is the home-field offset in rating points.
	BaseHomeAdvantage float64 `mapstructure:"base_home_advantage" validate:"gte=0,lte=200"`
	// DynamicHomeAdvantage enables the league-standing adjustment.
	DynamicHomeAdvantage bool `mapstructure:"dynamic_home_advantage"`
}

// SignalsConfig selects and parameterizes the classification policy.
type SignalsConfig struct {
	// Policy selects the rule set: tiered, golden, or range.
	Policy string      `mapstructure:"policy" validate:"required,oneof=tiered golden range"`
	Range  RangeConfig `mapstructure:"range"`
}

// RangeConfig carries per-side bounds for the range policy.
type RangeConfig struct {
	Home RangeBounds `mapstructure:"home"`
	Away RangeBounds `mapstructure:"away"`
}

// RangeBounds is one side's EV window (percent) and odds window.
type RangeBounds struct {
	EVMin   float64 `mapstructure:"ev_min"`
	EVMax   float64 `mapstructure:"ev_max"`
	OddsMin float64 `mapstructure:"odds_min" validate:"gte=0"`
	OddsMax float64 `mapstructure:"odds_max" validate:"gte=0"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	// Stake is the fixed unit stake per simulated bet.
	Stake          float64 `mapstructure:"stake" validate:"gt=0"`
	OutputPath     string  `mapstructure:"output_path"`
	PersistEnabled bool    `mapstructure:"persist_enabled"`
}

// IngestConfig represents CSV ingestion configuration
type IngestConfig struct {
	Separator       string  `mapstructure:"separator" validate:"required,len=1"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"gt=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration; only
// consulted when backtest persistence is enabled.
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// ScheduleConfig drives the watch mode: a cron expression and the remote
// fixtures source it re-analyzes.
type ScheduleConfig struct {
	Cron   string `mapstructure:"cron"`
	Source string `mapstructure:"source"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
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

// MetricsAddr returns the listen address for the metrics server.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.Metrics.Port)
}
