// Package options contains the program options.
package options

// Key clearing policies of the host loop.
const (
	KeysNone  = "none"  // keys stay latched until the front-end releases them
	KeysFrame = "frame" // all keys are released before polling input of a frame
	KeysCycle = "cycle" // all keys are released after every executed instruction
)

// Defaults of the host loop.
const (
	DefaultCycles   = 10
	DefaultTimerHz  = 60
	DefaultKeyClear = KeysFrame
)

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Cycles          int    `flag:"cycles" usage:"instructions executed per timer tick" default:"10"`
	TimerHz         int    `flag:"hz" usage:"timer tick frequency in Hz" default:"60"`
	KeyClear        string `flag:"keys" usage:"key clearing policy: none, frame, cycle" default:"frame"`
	Seed            uint64 `flag:"seed" usage:"random seed (default: time based)"`
	ContinueOnError bool   `flag:"continue" usage:"log failed instructions and continue execution"`
	Trace           bool   `flag:"trace" usage:"log every executed instruction"`
	Debug           bool   `flag:"debug" usage:"enable debug logging"`
	Quiet           bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Host defines options to control the host loop.
type Host struct {
	Cycles          int    // instructions per frame
	TimerHz         int    // frames per second, each frame ticks the timers once
	KeyClear        string // key clearing policy
	ContinueOnError bool   // log instruction failures instead of stopping
}

// NewHost returns the host loop options for the given program options.
func NewHost(opts Program) Host {
	return Host{
		Cycles:          opts.Cycles,
		TimerHz:         opts.TimerHz,
		KeyClear:        opts.KeyClear,
		ContinueOnError: opts.ContinueOnError,
	}
}
