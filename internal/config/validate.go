package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSelection(); err != nil {
		return err
	}
	if err := c.validateSignal(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSelection() error {
	switch c.Selection.Align {
	case "left", "center", "right":
	default:
		return fmt.Errorf("selection.align must be left, center, or right (got %q)", c.Selection.Align)
	}
	if c.Selection.ClipLength < 0 {
		return errors.New("selection.clip_length must not be negative")
	}
	if c.Selection.ClipCount < 0 {
		return errors.New("selection.clip_count must not be negative")
	}
	return nil
}

func (c *Config) validateSignal() error {
	if c.Signal.CoverageTolerance < 0 {
		return errors.New("signal.coverage_tolerance must not be negative")
	}
	if c.Signal.CacheTTLHours < 0 {
		return errors.New("signal.cache_ttl_hours must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
