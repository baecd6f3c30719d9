// Package main implements a headless CHIP-8 runner that executes a ROM for a
// fixed number of frames and prints the resulting machine state.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/keyboard"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	frames int
	hold   string
	color  bool
	quiet  bool
	debug  bool
	trace  bool
	seed   uint64

	host options.Host
}

var (
	colorOn    = ansi.ColorCode("green+b:black")
	colorOff   = ansi.ColorCode("black+h:black")
	colorLabel = ansi.ColorCode("default+b:default")
)

func main() {
	opts := readArguments()
	logger := config.CreateLogger(opts.debug, opts.quiet)

	if !opts.quiet {
		printBanner()
	}

	if err := traceFile(logger, opts, os.Stdout); err != nil {
		logger.Error("Tracing failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := optionFlags{}

	flags.IntVar(&opts.frames, "frames", 60, "number of frames to execute")
	flags.IntVar(&opts.host.Cycles, "cycles", options.DefaultCycles, "instructions executed per frame, the timers tick once per frame")
	flags.StringVar(&opts.host.KeyClear, "keys", options.KeysNone, "key clearing policy (none/frame/cycle)")
	flags.BoolVar(&opts.host.ContinueOnError, "continue", false, "log failed instructions and continue execution")
	flags.StringVar(&opts.hold, "hold", "", "hexadecimal key codes held down during every frame, for example 5A")
	flags.Uint64Var(&opts.seed, "seed", 1, "seed of the random number generator")
	flags.BoolVar(&opts.color, "color", false, "print the framebuffer using ANSI colors")
	flags.BoolVar(&opts.trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 || opts.frames <= 0 {
		printBanner()
		fmt.Printf("usage: chip8trace [options] <ROM file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	opts.input = args[0]
	opts.host.TimerHz = options.DefaultTimerHz

	return opts
}

func printBanner() {
	fmt.Println("[-------------------------------------]")
	fmt.Println("[ chip8trace - headless CHIP-8 runner ]")
	fmt.Printf("[-------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func traceFile(logger *log.Logger, opts optionFlags, output io.Writer) error {
	if err := config.ValidateHost(&opts.host); err != nil {
		return err
	}
	held, err := parseHold(opts.hold)
	if err != nil {
		return err
	}

	rom, err := loader.New(logger).Load(opts.input)
	if err != nil {
		return err
	}

	m := machine.New(logger, machine.NewRandom(opts.seed))
	m.SetTrace(opts.trace)
	if err := m.Load(rom); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	runner := host.New(logger, m, &headless{held: held}, opts.host)
	for range opts.frames {
		if _, err := runner.Frame(); err != nil {
			printState(output, m, opts.color)
			return fmt.Errorf("executing frame: %w", err)
		}
	}

	printState(output, m, opts.color)
	if failures := runner.Failures(); failures > 0 {
		logger.Warn("Instructions failed during execution", log.Int("count", int(failures)))
	}
	return nil
}

// headless is a front-end without output that holds a fixed set of keys.
type headless struct {
	held []uint8
}

func (h *headless) PollInput(keys host.KeySetter) (bool, error) {
	for _, code := range h.held {
		if err := keys.SetKey(code, true); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (h *headless) Render(host.View) error {
	return nil
}

// parseHold parses a string of hexadecimal key codes.
func parseHold(s string) ([]uint8, error) {
	var codes []uint8
	for _, r := range s {
		code, err := strconv.ParseUint(string(r), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("parsing held key '%c': %w", r, err)
		}
		if code >= keyboard.KeyCount {
			return nil, errors.New("held key out of range")
		}
		codes = append(codes, uint8(code))
	}
	return codes, nil
}

func printState(w io.Writer, m *machine.Machine, color bool) {
	label := func(s string) string {
		if color {
			return colorLabel + s + ansi.Reset
		}
		return s
	}

	_, _ = fmt.Fprintf(w, "%s %03X  %s %03X  %s %d  %s %02X  %s %02X  %s %s\n",
		label("PC"), m.PC(), label("I"), m.Index(), label("SP"), m.SP(),
		label("DT"), m.DelayTimer(), label("ST"), m.SoundTimer(), label("state"), m.State())

	var regs []string
	for i, value := range m.Registers() {
		regs = append(regs, fmt.Sprintf("%s=%02X", label(fmt.Sprintf("V%X", i)), value))
	}
	_, _ = fmt.Fprintln(w, strings.Join(regs, " "))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, framebufferString(m.Display(), color))
}

// framebufferString renders the framebuffer as text with one character per
// pixel.
func framebufferString(fb machine.Framebuffer, color bool) string {
	var sb strings.Builder
	for index := range display.CellCount {
		x, _, err := fb.Coordinates(index)
		if err != nil {
			break
		}
		set, _ := fb.Cell(index)

		switch {
		case color && set:
			sb.WriteString(colorOn + "#" + ansi.Reset)
		case color:
			sb.WriteString(colorOff + "." + ansi.Reset)
		case set:
			sb.WriteByte('#')
		default:
			sb.WriteByte('.')
		}
		if x == display.Width-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
