package machine

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/bounds"
	"github.com/retroenv/chip8vm/internal/instruction"
)

// BoundsError is returned for memory, stack, register or key accesses
// outside of their valid range.
type BoundsError = bounds.Error

// DecodeError is returned when the fetched word is not a known instruction.
type DecodeError = instruction.DecodeError

// LoadError is returned when a ROM does not fit into the program region.
type LoadError struct {
	Size     int
	Capacity int
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("ROM size %d exceeds program capacity of %d bytes", e.Size, e.Capacity)
}

// FetchError is returned when the instruction word at the program counter can
// not be read. The program counter is not advanced, so repeating the step
// fails again.
type FetchError struct {
	Address uint16
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching instruction at 0x%03X: %v", e.Address, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
