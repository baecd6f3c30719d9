// Package main implements the main entry point for an interactive CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/retroenv/chip8vm/internal/app"
	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/terminal"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, hostOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	app.PrintBanner(logger, opts, version, commit, date)

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		logger.Fatal("Output is not a terminal, use chip8trace for headless execution")
	}

	if err := run(ctx, logger, opts, hostOptions); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program, hostOptions options.Host) error {
	rom, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return err
	}

	var random machine.RandomSource
	if opts.Seed != 0 {
		random = machine.NewRandom(opts.Seed)
	}
	m := machine.New(logger, random)
	m.SetTrace(opts.Trace)
	if err := m.Load(rom); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	app.PrintInfo(logger, opts, len(rom))

	term, err := terminal.New(terminal.DefaultHoldFrames)
	if err != nil {
		return err
	}
	defer term.Close()

	runner := host.New(logger, m, term, hostOptions)
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("running emulation: %w", err)
	}
	return nil
}
