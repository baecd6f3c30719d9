// Package machine implements the CHIP-8 fetch, decode and execute engine.
// The host owns the loop: it calls Step for every instruction, TickTimers at
// its own cadence and feeds key states through SetKey and ClearKeys.
package machine

import (
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/keyboard"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// Framebuffer is the read-only view of the display used by renderers.
type Framebuffer interface {
	// Pixel returns the state of the pixel at the given wrapped coordinates.
	Pixel(x, y int) bool
	// Cell returns the state of the pixel at the given linear index.
	Cell(index int) (bool, error)
	// Cells returns a copy of all pixel states in row-major order.
	Cells() [display.CellCount]bool
	// Coordinates maps a linear cell index to its x and y coordinates.
	Coordinates(index int) (int, int, error)
	// Dirty returns whether the framebuffer changed since it was last presented.
	Dirty() bool
}

// Machine is a CHIP-8 interpreter instance. It exclusively owns its memory,
// registers, display and keyboard and is not safe for concurrent use.
type Machine struct {
	logger *log.Logger
	random RandomSource
	trace  bool

	memory   *memory.Memory
	cpu      *cpu.CPU
	display  *display.Display
	keyboard *keyboard.Keyboard
}

// New returns a machine with the font table loaded and the program counter
// at the program start. If random is nil, a time seeded source is used.
func New(logger *log.Logger, random RandomSource) *Machine {
	if random == nil {
		random = NewRandom(uint64(time.Now().UnixNano()))
	}

	m := &Machine{
		logger:   logger,
		random:   random,
		memory:   memory.New(),
		cpu:      cpu.New(),
		display:  display.New(),
		keyboard: keyboard.New(),
	}
	m.loadFont()
	return m
}

// SetTrace enables logging of every executed instruction at debug level.
func (m *Machine) SetTrace(enabled bool) {
	m.trace = enabled && m.logger != nil
}

// Load copies the ROM into memory at the program start address.
func (m *Machine) Load(rom []byte) error {
	if len(rom) > memory.ProgramCapacity {
		return &LoadError{
			Size:     len(rom),
			Capacity: memory.ProgramCapacity,
		}
	}
	if err := m.memory.Load(memory.ProgramStart, rom); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	return nil
}

// Reset reinitializes all state and reloads the font table.
// A loaded ROM is cleared as well and needs to be loaded again.
func (m *Machine) Reset() {
	m.memory.Reset()
	m.loadFont()
	m.cpu.Reset()
	m.display.Clear()
	m.keyboard.Clear()
}

func (m *Machine) loadFont() {
	// the font always fits into memory
	_ = m.memory.LoadFont(font[:])
}

// TickTimers decrements the delay and sound timers by one if they are not zero.
func (m *Machine) TickTimers() {
	m.cpu.TickTimers()
}

// SetKey latches the pressed state of the key with the given code 0x0-0xF.
func (m *Machine) SetKey(code uint8, pressed bool) error {
	if err := m.keyboard.Set(code, pressed); err != nil {
		return fmt.Errorf("setting key: %w", err)
	}
	return nil
}

// ClearKeys releases all keys.
func (m *Machine) ClearKeys() {
	m.keyboard.Clear()
}

// Display returns a read-only view of the framebuffer.
func (m *Machine) Display() Framebuffer {
	return m.display
}

// PresentFrame marks the current framebuffer content as rendered.
func (m *Machine) PresentFrame() {
	m.display.ResetDirty()
}

// SoundTimer returns the current sound timer value. The host emits a tone
// while it is not zero.
func (m *Machine) SoundTimer() uint8 {
	return m.cpu.SoundTimer
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.cpu.DelayTimer
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.cpu.PC
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.cpu.I
}

// SP returns the number of return addresses on the call stack.
func (m *Machine) SP() uint8 {
	return m.cpu.SP()
}

// Register returns the value of register Vx.
func (m *Machine) Register(x uint8) (byte, error) {
	value, err := m.cpu.Register(x)
	if err != nil {
		return 0, fmt.Errorf("reading register: %w", err)
	}
	return value, nil
}

// Registers returns a copy of the registers V0-VF.
func (m *Machine) Registers() [cpu.RegisterCount]byte {
	return m.cpu.Registers()
}

// ReadMemory returns the byte at the given memory address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	value, err := m.memory.Read(address)
	if err != nil {
		return 0, fmt.Errorf("reading memory: %w", err)
	}
	return value, nil
}

// State returns the control unit state.
func (m *Machine) State() cpu.State {
	return m.cpu.State()
}

// Awaiting returns whether the machine is blocked waiting for a key press.
func (m *Machine) Awaiting() bool {
	return m.cpu.State() == cpu.AwaitingKey
}

// Step performs one fetch, decode and execute cycle. While the machine is
// awaiting a key press, a step only completes the wait once a key is latched.
func (m *Machine) Step() error {
	if m.cpu.State() == cpu.AwaitingKey {
		return m.completeKeyWait()
	}

	pc := m.cpu.PC
	word, err := m.memory.ReadWord(pc)
	if err != nil {
		return &FetchError{Address: pc, Err: err}
	}
	m.cpu.PC += instruction.Size

	ins, err := instruction.Decode(word)
	if err != nil {
		return fmt.Errorf("decoding instruction at 0x%03X: %w", pc, err)
	}

	if m.trace {
		m.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", ins.String()))
	}

	if err := m.execute(ins); err != nil {
		return fmt.Errorf("executing '%s' at 0x%03X: %w", ins, pc, err)
	}
	return nil
}

// completeKeyWait stores the lowest pressed key in the wait register and
// resumes execution after the blocking instruction.
func (m *Machine) completeKeyWait() error {
	code, ok := m.keyboard.FirstPressed()
	if !ok {
		return nil
	}

	if err := m.cpu.SetRegister(m.cpu.WaitRegister(), code); err != nil {
		return fmt.Errorf("storing awaited key: %w", err)
	}
	m.cpu.Resume()
	m.cpu.PC += instruction.Size
	return nil
}
