// Package config provides configuration management for the value-sniper
// application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "VALUE_SNIPER"

// Load reads and parses the configuration from file and environment
// variables. Environment variable placeholders in the YAML file
// (${VAR_NAME}) are expanded before parsing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields; a missing file is not an error and yields the defaults plus
// any environment overrides.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "value-sniper")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("model.base_home_advantage", 90.0)
	v.SetDefault("model.dynamic_home_advantage", true)

	v.SetDefault("signals.policy", "tiered")
	v.SetDefault("signals.range.home.ev_min", 2.0)
	v.SetDefault("signals.range.home.ev_max", 15.0)
	v.SetDefault("signals.range.home.odds_min", 1.50)
	v.SetDefault("signals.range.home.odds_max", 3.50)
	v.SetDefault("signals.range.away.ev_min", 2.0)
	v.SetDefault("signals.range.away.ev_max", 15.0)
	v.SetDefault("signals.range.away.odds_min", 1.50)
	v.SetDefault("signals.range.away.odds_max", 3.50)

	v.SetDefault("backtest.stake", 10.0)
	v.SetDefault("backtest.output_path", "./output/backtest_report.json")

	v.SetDefault("ingest.separator", ";")
	v.SetDefault("ingest.timeout_seconds", 30)
	v.SetDefault("ingest.max_retries", 3)
	v.SetDefault("ingest.rate_limit", 5.0)
	v.SetDefault("ingest.cache_ttl_seconds", 300)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
