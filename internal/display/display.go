// Package display implements the monochrome CHIP-8 framebuffer.
package display

import "github.com/retroenv/chip8vm/internal/bounds"

const (
	// Width is the number of pixel columns.
	Width = 64
	// Height is the number of pixel rows.
	Height = 32
	// CellCount is the total number of pixels.
	CellCount = Width * Height
)

// Display is a 64x32 framebuffer stored row-major, index = Width*y + x.
type Display struct {
	cells [CellCount]bool
	dirty bool
}

// New returns a cleared display.
func New() *Display {
	return &Display{}
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.cells = [CellCount]bool{}
	d.dirty = true
}

// Toggle flips the pixel at the given coordinates, which wrap around the
// screen edges. It returns true if the pixel was set and is now unset.
func (d *Display) Toggle(x, y int) bool {
	index := Index(x, y)
	collision := d.cells[index]
	d.cells[index] = !collision
	d.dirty = true
	return collision
}

// Pixel returns the state of the pixel at the given wrapped coordinates.
func (d *Display) Pixel(x, y int) bool {
	return d.cells[Index(x, y)]
}

// Cell returns the state of the pixel at the given linear index.
func (d *Display) Cell(index int) (bool, error) {
	if err := bounds.Check("display", index, CellCount); err != nil {
		return false, err
	}
	return d.cells[index], nil
}

// Cells returns a copy of all pixel states.
func (d *Display) Cells() [CellCount]bool {
	return d.cells
}

// Coordinates maps a linear cell index to its x and y coordinates.
func (d *Display) Coordinates(index int) (int, int, error) {
	if err := bounds.Check("display", index, CellCount); err != nil {
		return 0, 0, err
	}
	return index % Width, index / Width, nil
}

// Dirty returns whether the framebuffer changed since the last ResetDirty.
func (d *Display) Dirty() bool {
	return d.dirty
}

// ResetDirty marks the current framebuffer content as presented.
func (d *Display) ResetDirty() {
	d.dirty = false
}

// Index maps coordinates to a linear cell index, wrapping both coordinates
// independently at the screen edges.
func Index(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return Width*y + x
}
