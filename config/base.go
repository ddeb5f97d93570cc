package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/collectionkit/logger"
)

// BaseConfig contains the fields every collectionkit binary needs. Embed it
// with `mapstructure:",squash"` to extend it.
type BaseConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to base configuration.
func (c *BaseConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate validates base configuration.
func (c *BaseConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	if !slices.Contains(validEnvs, c.Environment) {
		return fmt.Errorf("environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
