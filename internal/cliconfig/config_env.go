package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (LSPWIRE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("target", os.Getenv("LSPWIRE_TARGET"), &cfg.Target)
	s.setString("log-level", os.Getenv("LSPWIRE_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("spool-dir", os.Getenv("LSPWIRE_SPOOL_DIR"), &cfg.SpoolDir)

	if err := s.setDuration("write-timeout", os.Getenv("LSPWIRE_WRITE_TIMEOUT"), &cfg.WriteTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("LSPWIRE_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	if err := s.setIntFromString("buffer-size", os.Getenv("LSPWIRE_BUFFER_SIZE"), &cfg.BufferSize); err != nil {
		return err
	}

	s.setBoolFromString("remove-sent", os.Getenv("LSPWIRE_REMOVE_SENT"), &cfg.RemoveSent)
	s.setBoolFromString("once", os.Getenv("LSPWIRE_ONCE"), &cfg.Once)

	return nil
}
