package config

import "fmt"

var validLogFormats = map[string]struct{}{"console": {}, "json": {}}

var validLogLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

// Validate checks the configuration for values that would misbehave at runtime.
func (c *Config) Validate() error {
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if len(c.Import.Extensions) == 0 {
		return fmt.Errorf("import.extensions: at least one image extension is required")
	}
	return nil
}
