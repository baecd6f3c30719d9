// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns program and host options
func ParseFlags() (options.Program, options.Host, error) {
	return parseFlags(os.Args[0], os.Args[1:])
}

func parseFlags(name string, arguments []string) (options.Program, options.Host, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, options.Host{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Host{}, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	hostOptions := options.NewHost(opts)
	if err := config.ValidateHost(&hostOptions); err != nil {
		return opts, options.Host{}, err
	}
	opts.KeyClear = hostOptions.KeyClear

	return opts, hostOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.IntVar(&opts.Cycles, "cycles", options.DefaultCycles, "instructions executed per timer tick")
	flags.IntVar(&opts.TimerHz, "hz", options.DefaultTimerHz, "timer tick frequency in Hz")
	flags.StringVar(&opts.KeyClear, "keys", options.DefaultKeyClear, "key clearing policy (none/frame/cycle)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, time based if 0")
	flags.BoolVar(&opts.ContinueOnError, "continue", false, "log failed instructions and continue execution")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
