package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/lspwire/pkg/log"
)

// DefaultTarget is where frames go when no target is configured.
const DefaultTarget = "stdout"

// Config holds CLI configuration for lspwire.
type Config struct {
	Target       string
	LogLevel     string
	WriteTimeout time.Duration
	BufferSize   int

	SpoolDir   string
	Debounce   time.Duration
	RemoveSent bool
	Once       bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Target:     DefaultTarget,
		LogLevel:   "info",
		BufferSize: 64 << 10, // 64KB
		Debounce:   100 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("target is required")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("write timeout must not be negative")
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer size must not be negative")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	return nil
}

// ValidateWatch checks the configuration for the spool watcher, which
// additionally needs a directory.
func (c *Config) ValidateWatch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.SpoolDir == "" {
		return fmt.Errorf("spool dir is required")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value from a pointer if not nil and flag not changed.
// Zero is a real value, so absence is signalled by nil.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
