// Package cpu implements the CHIP-8 register file and control unit state.
package cpu

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/bounds"
	"github.com/retroenv/chip8vm/internal/memory"
)

const (
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, which doubles as carry, borrow,
	// shifted-out bit and collision flag.
	FlagRegister = 0xF

	// StackDepth is the number of return addresses the call stack can hold.
	StackDepth = 16
)

// State is the control unit execution state.
type State uint8

const (
	// Running is the normal fetch, decode and execute state.
	Running State = iota
	// AwaitingKey blocks execution until a key is pressed.
	AwaitingKey
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// CPU holds the registers, call stack and timers of the machine.
type CPU struct {
	PC uint16 // program counter
	I  uint16 // index register

	DelayTimer uint8
	SoundTimer uint8

	v     [RegisterCount]byte
	stack [StackDepth]uint16
	sp    uint8

	state        State
	waitRegister uint8
}

// New returns a CPU in its power-on state.
func New() *CPU {
	c := &CPU{}
	c.Reset()
	return c
}

// Reset zeroes all registers, the stack and timers and points the program
// counter to the program start.
func (c *CPU) Reset() {
	*c = CPU{
		PC: memory.ProgramStart,
	}
}

// Register returns the value of register Vx.
func (c *CPU) Register(x uint8) (byte, error) {
	if err := bounds.Check("register", int(x), RegisterCount); err != nil {
		return 0, err
	}
	return c.v[x], nil
}

// SetRegister sets register Vx to the given value.
func (c *CPU) SetRegister(x uint8, value byte) error {
	if err := bounds.Check("register", int(x), RegisterCount); err != nil {
		return err
	}
	c.v[x] = value
	return nil
}

// SetFlag sets VF to 1 if the condition is true and to 0 otherwise.
func (c *CPU) SetFlag(condition bool) {
	if condition {
		c.v[FlagRegister] = 1
	} else {
		c.v[FlagRegister] = 0
	}
}

// Registers returns a copy of all general purpose registers.
func (c *CPU) Registers() [RegisterCount]byte {
	return c.v
}

// SP returns the current stack pointer, which is the number of addresses on
// the stack.
func (c *CPU) SP() uint8 {
	return c.sp
}

// Push puts a return address on the call stack.
func (c *CPU) Push(address uint16) error {
	if err := bounds.Check("stack", int(c.sp), StackDepth); err != nil {
		return fmt.Errorf("stack overflow: %w", err)
	}
	c.stack[c.sp] = address
	c.sp++
	return nil
}

// Pop removes and returns the most recently pushed return address.
func (c *CPU) Pop() (uint16, error) {
	if err := bounds.Check("stack", int(c.sp)-1, StackDepth); err != nil {
		return 0, fmt.Errorf("stack underflow: %w", err)
	}
	c.sp--
	return c.stack[c.sp], nil
}

// TickTimers decrements the delay and sound timers if they are not zero.
func (c *CPU) TickTimers() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

// State returns the current control unit state.
func (c *CPU) State() State {
	return c.state
}

// WaitRegister returns the register that receives the key code once a key
// is pressed. It is only meaningful in the AwaitingKey state.
func (c *CPU) WaitRegister() uint8 {
	return c.waitRegister
}

// AwaitKey switches to the AwaitingKey state with Vx as target register.
func (c *CPU) AwaitKey(x uint8) error {
	if err := bounds.Check("register", int(x), RegisterCount); err != nil {
		return err
	}
	c.state = AwaitingKey
	c.waitRegister = x
	return nil
}

// Resume switches back to the Running state.
func (c *CPU) Resume() {
	c.state = Running
	c.waitRegister = 0
}
