package config

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestValidateHost(t *testing.T) {
	tests := []struct {
		name        string
		opts        options.Host
		expectError bool
		keyClear    string
	}{
		{
			name:     "defaults",
			opts:     options.Host{Cycles: 10, TimerHz: 60, KeyClear: "frame"},
			keyClear: options.KeysFrame,
		},
		{
			name:     "policy is case insensitive",
			opts:     options.Host{Cycles: 1, TimerHz: 1, KeyClear: "CYCLE"},
			keyClear: options.KeysCycle,
		},
		{
			name:        "zero cycles",
			opts:        options.Host{Cycles: 0, TimerHz: 60, KeyClear: "none"},
			expectError: true,
		},
		{
			name:        "negative frequency",
			opts:        options.Host{Cycles: 10, TimerHz: -1, KeyClear: "none"},
			expectError: true,
		},
		{
			name:        "unknown policy",
			opts:        options.Host{Cycles: 10, TimerHz: 60, KeyClear: "sometimes"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHost(&tt.opts)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.keyClear, tt.opts.KeyClear)
		})
	}
}
