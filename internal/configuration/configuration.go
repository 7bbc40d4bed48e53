package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	// Logger — logger component configuration
	Logger LoggerConfig `mapstructure:"logger"`
	// Scoring — ergonomic scoring configuration
	Scoring ScoringConfig `mapstructure:"scoring"`
	// Dataset — evaluation dataset configuration
	Dataset DatasetConfig `mapstructure:"dataset"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level — log level: debug, info, warn, warning, error.
	// Value is case-insensitive but checked in lowercase.
	Level string `mapstructure:"level"`
}

// ScoringConfig defines ergonomic scoring parameters.
type ScoringConfig struct {
	// Preset — hand size preset name: small, medium or large.
	Preset string `mapstructure:"preset"`
	// Custom — path to a YAML file with overrides applied on top of the
	// preset. Can be empty if no overrides are needed.
	Custom string `mapstructure:"custom"`
	// Rules — path to a YAML file with additional transition rules.
	// Can be empty if no extra rules are needed.
	Rules string `mapstructure:"rules"`
}

// DatasetConfig defines evaluation dataset parameters
type DatasetConfig struct {
	// Dataset file path (optional)
	File string `mapstructure:"file"`
	// Maximal dataset file size (default 100M)
	Size int `mapstructure:"size"`
	// Number of dataset files (default 20)
	Amount int `mapstructure:"amount"`
	// Number of recent records kept in memory (default 64)
	Recent int `mapstructure:"recent"`
}

// Validate checks the correctness of the entire application configuration.
// Calls validation for each nested structure and returns the first detected error.
// Returns nil if the configuration is valid.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if err := c.Scoring.Validate(); err != nil {
		return err
	}

	if err := c.Dataset.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate checks the correctness of the logger configuration.
// Verifies that the log level is set and is one of the supported values.
// Supported values: debug, info, warn, warning, error (case-insensitive).
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		return errors.New("logger.level: must be specified")
	}

	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}

	return nil
}

// Validate checks the correctness of the scoring configuration.
// Verifies that the preset is one of the known hand sizes.
func (s *ScoringConfig) Validate() error {
	if s.Preset == "" {
		return errors.New("scoring.preset: must be specified")
	}

	valid := map[string]bool{"small": true, "medium": true, "large": true}
	if !valid[strings.ToLower(s.Preset)] {
		return fmt.Errorf("scoring.preset: unsupported preset '%s'", s.Preset)
	}

	return nil
}

// Validate dataset parameters
func (d *DatasetConfig) Validate() error {
	if d.Amount == 0 {
		d.Amount = 20
	}

	if d.Size == 0 {
		d.Size = 100
	}

	if d.Recent == 0 {
		d.Recent = 64
	}

	return nil
}

// DefaultAppConfig returns the configuration used when no config file is
// given: info logging, medium hands, no dataset recording.
func DefaultAppConfig() *AppConfig {
	config := AppConfig{
		Logger:  LoggerConfig{Level: "info"},
		Scoring: ScoringConfig{Preset: "medium"},
	}
	config.Dataset.Validate()
	return &config
}

// LoadConfig loads configuration from the specified file using Viper.
// Supports YAML format. Also includes environment variable loading (AutomaticEnv),
// which can override values from the file.
//
// Parameter configPath — path to the configuration file.
//
// Returns a pointer to AppConfig or an error if:
// - the file is not found or inaccessible
// - the configuration has invalid format
// - one of the sections fails validation
func LoadConfig(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
