// Package config provides configuration management for the value-sniper
// application.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() (*CustomValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("environment", validateEnvironment); err != nil {
		return nil, fmt.Errorf("failed to register environment validator: %w", err)
	}
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return nil, fmt.Errorf("failed to register loglevel validator: %w", err)
	}

	return &CustomValidator{validator: v}, nil
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv, err := NewValidator()
	if err != nil {
		return err
	}
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.Signals.Policy == "range" {
		if err := validateRangeBounds("home", cfg.Signals.Range.Home); err != nil {
			return err
		}
		if err := validateRangeBounds("away", cfg.Signals.Range.Away); err != nil {
			return err
		}
	}

	if cfg.Backtest.PersistEnabled {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database host, name and user are required when backtest persistence is enabled")
		}
	}

	if cfg.Schedule.Cron != "" && cfg.Schedule.Source == "" {
		return fmt.Errorf("schedule.source is required when schedule.cron is set")
	}

	return nil
}

func validateRangeBounds(side string, bounds RangeBounds) error {
	if bounds.EVMin > bounds.EVMax {
		return fmt.Errorf("signals.range.%s: ev_min must not exceed ev_max", side)
	}
	if bounds.OddsMin > bounds.OddsMax {
		return fmt.Errorf("signals.range.%s: odds_min must not exceed odds_max", side)
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return fmt.Errorf("validation failed on field '%s' (rule '%s'), and %d other error(s)",
		first.Namespace(), first.Tag(), len(errs)-1)
}
