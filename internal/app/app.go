// Package app provides the main application helper for the emulator.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	archsys "github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Name is the application name shown in the banner.
const Name = "chip8vm"

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info(Name, log.String("version", VersionString(version, commit)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// VersionString returns the version with the abbreviated commit hash appended.
func VersionString(version, commit string) string {
	if commit == "" {
		return version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

// PrintInfo prints the information about the loaded ROM and the host loop.
func PrintInfo(logger *log.Logger, opts options.Program, romSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running ROM",
		log.String("system", string(archsys.CHIP8System)),
		log.String("file", opts.Input),
		log.Int("size", romSize),
		log.Int("cycles", opts.Cycles),
		log.Int("hz", opts.TimerHz),
		log.String("keys", opts.KeyClear),
	)
	if opts.Trace && !opts.Debug {
		logger.Warn("Instruction tracing is only visible with debug logging enabled")
	}
}
