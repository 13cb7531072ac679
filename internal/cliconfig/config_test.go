package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Target != DefaultTarget {
		t.Errorf("Target = %v, want %v", cfg.Target, DefaultTarget)
	}
	if cfg.BufferSize != 64<<10 {
		t.Errorf("BufferSize = %v, want 64KB", cfg.BufferSize)
	}
	if cfg.Debounce != 100*time.Millisecond {
		t.Errorf("Debounce = %v, want 100ms", cfg.Debounce)
	}
	if cfg.WriteTimeout != 0 {
		t.Errorf("WriteTimeout = %v, want no timeout", cfg.WriteTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unix target with timeout", mutate: func(c *Config) {
			c.Target = "unix:/tmp/lsp.sock"
			c.WriteTimeout = time.Second
		}},
		{name: "missing target", mutate: func(c *Config) { c.Target = "" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "chatty" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.WriteTimeout = -time.Second }, wantErr: true},
		{name: "negative buffer", mutate: func(c *Config) { c.BufferSize = -1 }, wantErr: true},
		{name: "zero debounce", mutate: func(c *Config) { c.Debounce = 0 }, wantErr: true},
		{name: "buffering disabled", mutate: func(c *Config) { c.BufferSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateWatch(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateWatch(); err == nil {
		t.Error("ValidateWatch() accepted a config without a spool dir")
	}

	cfg.SpoolDir = "/var/spool/lsp"
	if err := cfg.ValidateWatch(); err != nil {
		t.Errorf("ValidateWatch() error = %v", err)
	}

	cfg.Target = ""
	if err := cfg.ValidateWatch(); err == nil {
		t.Error("ValidateWatch() skipped the base checks")
	}
}
