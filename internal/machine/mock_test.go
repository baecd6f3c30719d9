package machine

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// fixedRandom is a random source that always returns the same byte.
type fixedRandom struct {
	value byte
	calls int
}

func (f *fixedRandom) Byte() byte {
	f.calls++
	return f.value
}

// newTestMachine returns a machine with the given instruction words loaded
// at the program start.
func newTestMachine(t *testing.T, program ...uint16) *Machine {
	t.Helper()

	m := New(log.NewTestLogger(t), &fixedRandom{value: 0xA5})
	m.SetTrace(true)

	rom := make([]byte, 0, len(program)*2)
	for _, word := range program {
		rom = append(rom, byte(word>>8), byte(word))
	}
	assert.NoError(t, m.Load(rom))
	return m
}

// steps executes the given number of cycles and fails on any error.
func steps(t *testing.T, m *Machine, count int) {
	t.Helper()

	for range count {
		assert.NoError(t, m.Step())
	}
}

// register returns the value of Vx and fails on an invalid register.
func register(t *testing.T, m *Machine, x uint8) byte {
	t.Helper()

	value, err := m.Register(x)
	assert.NoError(t, err)
	return value
}
