package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"LSPWIRE_TARGET":        "unix:/tmp/a.sock",
				"LSPWIRE_LOG_LEVEL":     "error",
				"LSPWIRE_WRITE_TIMEOUT": "3s",
				"LSPWIRE_BUFFER_SIZE":   "1024",
				"LSPWIRE_SPOOL_DIR":     "/tmp/out",
				"LSPWIRE_DEBOUNCE":      "1s",
				"LSPWIRE_REMOVE_SENT":   "1",
				"LSPWIRE_ONCE":          "true",
			},
			changed: map[string]bool{},
			expected: Config{
				Target:       "unix:/tmp/a.sock",
				LogLevel:     "error",
				WriteTimeout: 3 * time.Second,
				BufferSize:   1024,
				SpoolDir:     "/tmp/out",
				Debounce:     time.Second,
				RemoveSent:   true,
				Once:         true,
			},
		},
		{
			name:     "respects changed flags",
			envVars:  map[string]string{"LSPWIRE_TARGET": "tcp:localhost:1"},
			changed:  map[string]bool{"target": true},
			initial:  Config{Target: "stdout"},
			expected: Config{Target: "stdout"},
		},
		{
			name:     "handles bool 'false' as false",
			envVars:  map[string]string{"LSPWIRE_REMOVE_SENT": "false"},
			changed:  map[string]bool{},
			initial:  Config{RemoveSent: true},
			expected: Config{RemoveSent: false},
		},
		{
			name:     "zero buffer size disables reuse",
			envVars:  map[string]string{"LSPWIRE_BUFFER_SIZE": "0"},
			changed:  map[string]bool{},
			initial:  Config{BufferSize: 10},
			expected: Config{BufferSize: 0},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"LSPWIRE_DEBOUNCE": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"LSPWIRE_BUFFER_SIZE": "lots"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
