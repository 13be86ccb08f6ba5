package config

import (
	"fmt"
	"slices"
)

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{"auto", "text", "json", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Rules == "" {
		return fmt.Errorf("rules is required")
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q, must be one of %v", c.OutputFormat, OutputFormats)
	}
	return c.Selector().Validate()
}
