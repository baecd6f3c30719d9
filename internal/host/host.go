// Package host implements the loop that drives a machine: it polls input from
// a front-end, executes a batch of instructions per frame, ticks the timers
// once per frame and renders the framebuffer.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// KeySetter latches key states into the machine.
type KeySetter interface {
	SetKey(code uint8, pressed bool) error
}

// View is the read-only machine state a front-end renders.
type View interface {
	Display() machine.Framebuffer
	PC() uint16
	SoundTimer() uint8
	Awaiting() bool
}

// Emulator is the machine interface used by the runner.
type Emulator interface {
	KeySetter
	View

	Step() error
	TickTimers()
	ClearKeys()
	PresentFrame()
}

// Frontend handles input and output of a host.
type Frontend interface {
	// PollInput latches pending key events and reports whether the user
	// requested to quit.
	PollInput(keys KeySetter) (quit bool, err error)
	// Render outputs the current machine state.
	Render(view View) error
}

// status contains the non framebuffer state shown by front-ends.
type status struct {
	sound    bool
	awaiting bool
}

// Runner drives an emulator with a front-end.
type Runner struct {
	logger   *log.Logger
	emulator Emulator
	frontend Frontend
	opts     options.Host

	frames     uint64
	failures   uint64
	lastStatus status
	rendered   bool
}

// New returns a new runner. The options are expected to be validated.
func New(logger *log.Logger, emulator Emulator, frontend Frontend, opts options.Host) *Runner {
	return &Runner{
		logger:   logger,
		emulator: emulator,
		frontend: frontend,
		opts:     opts,
	}
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Failures returns the number of instructions that failed and were skipped.
func (r *Runner) Failures() uint64 {
	return r.failures
}

// Run executes frames at the configured timer frequency until the context
// is cancelled, the front-end requests to quit or an instruction fails.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.opts.TimerHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			quit, err := r.Frame()
			if err != nil {
				return err
			}
			if quit {
				r.logger.Debug("Quit requested", log.Int("frames", int(r.frames)))
				return nil
			}
		}
	}
}

// Frame polls the input, executes one batch of instructions, ticks the
// timers and renders the result if it changed.
func (r *Runner) Frame() (bool, error) {
	if r.opts.KeyClear == options.KeysFrame {
		r.emulator.ClearKeys()
	}

	quit, err := r.frontend.PollInput(r.emulator)
	if err != nil {
		return false, fmt.Errorf("polling input: %w", err)
	}
	if quit {
		return true, nil
	}

	for range r.opts.Cycles {
		if err := r.step(); err != nil {
			return false, err
		}
	}
	r.emulator.TickTimers()

	if err := r.render(); err != nil {
		return false, err
	}
	r.frames++
	return false, nil
}

func (r *Runner) step() error {
	err := r.emulator.Step()
	if r.opts.KeyClear == options.KeysCycle {
		r.emulator.ClearKeys()
	}
	if err == nil {
		return nil
	}

	// a failed fetch does not advance the program counter and can not be
	// skipped
	var fetchErr *machine.FetchError
	if !r.opts.ContinueOnError || errors.As(err, &fetchErr) {
		return fmt.Errorf("running frame %d: %w", r.frames, err)
	}
	r.failures++
	r.logger.Error("Instruction failed", log.Err(err))
	return nil
}

func (r *Runner) render() error {
	current := status{
		sound:    r.emulator.SoundTimer() > 0,
		awaiting: r.emulator.Awaiting(),
	}
	if r.rendered && !r.emulator.Display().Dirty() && current == r.lastStatus {
		return nil
	}

	if err := r.frontend.Render(r.emulator); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	r.emulator.PresentFrame()
	r.lastStatus = current
	r.rendered = true
	return nil
}
