package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Target       string `toml:"target"`
	LogLevel     string `toml:"log_level"`
	WriteTimeout string `toml:"write_timeout"`
	BufferSize   *int   `toml:"buffer_size"`
	SpoolDir     string `toml:"spool_dir"`
	Debounce     string `toml:"debounce"`
	RemoveSent   *bool  `toml:"remove_sent"`
	Once         *bool  `toml:"once"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.lspwire/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".lspwire", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("target", fc.Target, &cfg.Target)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("spool-dir", fc.SpoolDir, &cfg.SpoolDir)

	if err := s.setDuration("write-timeout", fc.WriteTimeout, &cfg.WriteTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setInt("buffer-size", fc.BufferSize, &cfg.BufferSize)

	s.setBool("remove-sent", fc.RemoveSent, &cfg.RemoveSent)
	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
