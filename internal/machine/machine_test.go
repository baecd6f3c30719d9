package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	m := New(log.NewTestLogger(t), nil)

	assert.NotNil(t, m.random)
	assert.Equal(t, uint16(memory.ProgramStart), m.PC())
	assert.Equal(t, cpu.Running, m.State())
	assert.False(t, m.Awaiting())

	for i, b := range font {
		value, err := m.ReadMemory(uint16(i))
		assert.NoError(t, err)
		assert.Equal(t, b, value)
	}
}

func TestMachine_Load(t *testing.T) {
	m := New(log.NewTestLogger(t), nil)

	assert.NoError(t, m.Load([]byte{0x12, 0x34}))
	value, err := m.ReadMemory(memory.ProgramStart + 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x34), value)

	assert.NoError(t, m.Load(make([]byte, memory.ProgramCapacity)))

	err = m.Load(make([]byte, memory.ProgramCapacity+1))
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
	assert.Equal(t, memory.ProgramCapacity+1, loadErr.Size)
	assert.Equal(t, memory.ProgramCapacity, loadErr.Capacity)
}

func TestMachine_Reset(t *testing.T) {
	m := newTestMachine(t, 0x6A42, 0xA000, 0xD005, 0x2400)
	steps(t, m, 4)
	m.cpu.DelayTimer = 9
	m.cpu.SoundTimer = 7
	assert.NoError(t, m.SetKey(0x4, true))
	assert.NoError(t, m.memory.Write(0x10, 0xFF))

	m.Reset()

	assert.Equal(t, uint16(memory.ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, uint8(0), m.SP())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.Equal(t, [cpu.RegisterCount]byte{}, m.Registers())
	assert.Equal(t, [display.CellCount]bool{}, m.Display().Cells())

	_, pressed := m.keyboard.FirstPressed()
	assert.False(t, pressed)

	// font is reloaded, program memory is cleared
	value, err := m.ReadMemory(0x10)
	assert.NoError(t, err)
	assert.Equal(t, font[0x10], value)
	value, err = m.ReadMemory(memory.ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), value)
}

func TestMachine_ResetWhileAwaitingKey(t *testing.T) {
	m := newTestMachine(t, 0xF30A, 0x6105)
	steps(t, m, 1)
	assert.True(t, m.Awaiting())
	m.cpu.SoundTimer = 3

	m.Reset()

	assert.Equal(t, cpu.Running, m.State())
	assert.False(t, m.Awaiting())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.Equal(t, uint16(memory.ProgramStart), m.PC())

	// the step decodes the cleared program memory instead of completing the wait
	assert.NoError(t, m.SetKey(0x2, true))
	var decodeErr *DecodeError
	assert.True(t, errors.As(m.Step(), &decodeErr))
	assert.Equal(t, uint8(0), m.Registers()[3])
}

func TestMachine_TickTimers(t *testing.T) {
	m := newTestMachine(t, 0x6002, 0xF015, 0x6101, 0xF118)
	steps(t, m, 4)
	assert.Equal(t, uint8(2), m.DelayTimer())
	assert.Equal(t, uint8(1), m.SoundTimer())

	m.TickTimers()
	assert.Equal(t, uint8(1), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())

	m.TickTimers()
	m.TickTimers()
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestMachine_Keys(t *testing.T) {
	m := New(log.NewTestLogger(t), nil)

	assert.NoError(t, m.SetKey(0xF, true))
	pressed, err := m.keyboard.IsPressed(0xF)
	assert.NoError(t, err)
	assert.True(t, pressed)

	m.ClearKeys()
	_, ok := m.keyboard.FirstPressed()
	assert.False(t, ok)

	var boundsErr *BoundsError
	assert.True(t, errors.As(m.SetKey(0x10, true), &boundsErr))
}

func TestMachine_DisplayView(t *testing.T) {
	m := newTestMachine(t, 0xA000, 0xD001)
	steps(t, m, 2)

	fb := m.Display()
	assert.True(t, fb.Dirty())
	assert.True(t, fb.Pixel(0, 0))
	assert.False(t, fb.Pixel(4, 0))

	x, y, err := fb.Coordinates(display.Width + 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, x)
	assert.Equal(t, 1, y)

	m.PresentFrame()
	assert.False(t, fb.Dirty())
}

func TestMachine_EndToEnd(t *testing.T) {
	m := newTestMachine(t, 0x6005, 0x6103, 0x8014)
	steps(t, m, 3)

	assert.Equal(t, byte(8), register(t, m, 0))
	assert.Equal(t, byte(0), register(t, m, 0xF))
	assert.Equal(t, uint16(0x206), m.PC())
}

func TestMachine_StepDecodeError(t *testing.T) {
	m := newTestMachine(t, 0xFFFF, 0x6007)

	err := m.Step()
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, [4]uint8{0xF, 0xF, 0xF, 0xF}, decodeErr.Nibbles)
	assert.ErrorContains(t, err, "0x200")

	// the bad word was consumed, a host may continue with the next one
	assert.Equal(t, uint16(0x202), m.PC())
	steps(t, m, 1)
	assert.Equal(t, byte(7), register(t, m, 0))
}

func TestMachine_StepFetchOutOfRange(t *testing.T) {
	m := newTestMachine(t, 0x1FFF)
	steps(t, m, 1)
	assert.Equal(t, uint16(0xFFF), m.PC())

	err := m.Step()
	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, uint16(0xFFF), fetchErr.Address)
	assert.Equal(t, uint16(0xFFF), m.PC())

	var boundsErr *BoundsError
	assert.True(t, errors.As(err, &boundsErr))
}

func TestRandom_Reproducible(t *testing.T) {
	r1 := NewRandom(42)
	r2 := NewRandom(42)
	for range 16 {
		assert.Equal(t, r1.Byte(), r2.Byte())
	}
}
