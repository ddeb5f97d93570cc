package collection

import (
	"github.com/kbukum/collectionkit/validation"
)

// Config holds orchestration defaults loaded from a config file.
type Config struct {
	// Limit caps in-flight operations. 0 means unbounded.
	Limit int `yaml:"limit" mapstructure:"limit" validate:"gte=0"`
	// Priority is the scheduling hint name (see ParsePriority).
	Priority string `yaml:"priority" mapstructure:"priority" validate:"omitempty,oneof=unspecified background low medium high user_initiated"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Priority == "" {
		c.Priority = PriorityUnspecified.String()
	}
}

// Validate reports invalid fields as an INVALID_ARGUMENT error.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// Options converts the config into call options. A zero Limit emits no
// WithLimit so the unbounded executor is used.
func (c *Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := ParsePriority(c.Priority)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithPriority(p)}
	if c.Limit > 0 {
		opts = append(opts, WithLimit(c.Limit))
	}
	return opts, nil
}
