package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.ch8", []byte{0x00, 0xE0, 0x12, 0x00})

		loader := New(log.NewTestLogger(t))
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0xE0, 0x12, 0x00}, rom)
	})

	t.Run("load file with unknown extension", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.bin", []byte{0x12, 0x00})

		loader := New(log.NewTestLogger(t))
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, 2)
	})

	t.Run("load ROM filling the program region", func(t *testing.T) {
		tmpFile := createTempFile(t, "full.ch8", make([]byte, memory.ProgramCapacity))

		loader := New(nil)
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, memory.ProgramCapacity)
	})

	t.Run("error on oversized file", func(t *testing.T) {
		tmpFile := createTempFile(t, "big.ch8", make([]byte, memory.ProgramCapacity+10))

		loader := New(log.NewTestLogger(t))
		_, err := loader.Load(tmpFile)
		var loadErr *machine.LoadError
		assert.True(t, errors.As(err, &loadErr))
		assert.Equal(t, memory.ProgramCapacity, loadErr.Capacity)
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, "empty.ch8", nil)

		loader := New(log.NewTestLogger(t))
		_, err := loader.Load(tmpFile)
		assert.ErrorContains(t, err, "empty")
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		_, err := loader.Load("/nonexistent/file.ch8")
		assert.Error(t, err)
	})
}

func TestLoadReader(t *testing.T) {
	loader := New(nil)

	rom, err := loader.LoadReader(bytes.NewReader([]byte{0xA2, 0x2A}))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xA2, 0x2A}, rom)

	_, err = loader.LoadReader(bytes.NewReader(nil))
	assert.Error(t, err)
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
