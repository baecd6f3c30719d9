// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ValidateHost checks the host loop options and normalizes the key clearing
// policy name.
func ValidateHost(opts *options.Host) error {
	if opts.Cycles <= 0 {
		return fmt.Errorf("invalid cycles per frame %d, must be positive", opts.Cycles)
	}
	if opts.TimerHz <= 0 {
		return fmt.Errorf("invalid timer frequency %d, must be positive", opts.TimerHz)
	}

	opts.KeyClear = strings.ToLower(opts.KeyClear)
	validPolicies := []string{options.KeysNone, options.KeysFrame, options.KeysCycle}
	for _, valid := range validPolicies {
		if opts.KeyClear == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported key clearing policy: %s. Valid options: %s",
		opts.KeyClear, strings.Join(validPolicies, ", "))
}
