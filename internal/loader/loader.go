// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// extensions lists the file extensions commonly used for CHIP-8 ROMs.
var extensions = []string{".ch8", ".c8", ".rom"}

var errEmptyROM = errors.New("ROM is empty")

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the ROM file at the given path. Files that do not fit into the
// program region of the machine memory are rejected with a machine.LoadError.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(path))
	if !knownExtension(ext) && l.logger != nil {
		l.logger.Warn("Unexpected ROM file extension",
			log.String("file", path),
			log.String("extension", ext))
	}

	rom, err := l.LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}
	return rom, nil
}

// LoadReader reads a ROM image from the given reader.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images
	rom, err := io.ReadAll(io.LimitReader(reader, memory.ProgramCapacity+1))
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	if len(rom) == 0 {
		return nil, errEmptyROM
	}
	if len(rom) > memory.ProgramCapacity {
		return nil, &machine.LoadError{
			Size:     len(rom),
			Capacity: memory.ProgramCapacity,
		}
	}
	return rom, nil
}

func knownExtension(ext string) bool {
	for _, known := range extensions {
		if ext == known {
			return true
		}
	}
	return false
}
