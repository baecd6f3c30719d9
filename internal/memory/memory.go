// Package memory implements the flat 4KB CHIP-8 address space.
package memory

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/bounds"
)

// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Font glyphs (16 glyphs, 5 bytes each)
//	0x050-0x1FF: Unused interpreter area
//	0x200-0xFFF: Program space (3584 bytes)
const (
	// Capacity is the number of addressable bytes.
	Capacity = 0x1000

	// FontStart is the address of the first font glyph.
	FontStart = 0x000

	// ProgramStart is the address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// ProgramCapacity is the maximum size of a program.
	ProgramCapacity = Capacity - ProgramStart
)

const component = "memory"

// Memory is the CHIP-8 main memory.
type Memory struct {
	cells [Capacity]byte
}

// New returns a zeroed memory.
func New() *Memory {
	return &Memory{}
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if err := bounds.Check(component, int(address), Capacity); err != nil {
		return 0, err
	}
	return m.cells[address], nil
}

// ReadWord returns the big endian word at the given address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	high, err := m.Read(address)
	if err != nil {
		return 0, err
	}
	low, err := m.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// CheckRange returns a bounds error if the length bytes starting at the
// given address do not all fit into memory.
func (m *Memory) CheckRange(address uint16, length int) error {
	if length <= 0 {
		return nil
	}
	return bounds.Check(component, int(address)+length-1, Capacity)
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if err := bounds.Check(component, int(address), Capacity); err != nil {
		return err
	}
	m.cells[address] = value
	return nil
}

// Load copies data into memory starting at the given address.
// Nothing is written if the data does not fit completely.
func (m *Memory) Load(address uint16, data []byte) error {
	end := int(address) + len(data)
	if end > Capacity {
		return fmt.Errorf("loading %d bytes at 0x%03X: %w", len(data), address,
			&bounds.Error{Component: component, Index: end - 1, Limit: Capacity})
	}
	copy(m.cells[address:], data)
	return nil
}

// LoadFont copies the font glyph table to the start of memory.
func (m *Memory) LoadFont(font []byte) error {
	if err := m.Load(FontStart, font); err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	return nil
}

// Reset zeroes all memory cells.
func (m *Memory) Reset() {
	m.cells = [Capacity]byte{}
}
