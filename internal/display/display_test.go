package display

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/bounds"
	"github.com/retroenv/retrogolib/assert"
)

func TestIndex(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		expected int
	}{
		{"origin", 0, 0, 0},
		{"end of first row", Width - 1, 0, Width - 1},
		{"start of second row", 0, 1, Width},
		{"last cell", Width - 1, Height - 1, CellCount - 1},
		{"x wraps", Width + 2, 0, 2},
		{"y wraps", 3, Height + 1, Width + 3},
		{"negative wraps", -1, -1, CellCount - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Index(tt.x, tt.y))
		})
	}
}

func TestDisplay_Toggle(t *testing.T) {
	d := New()
	assert.False(t, d.Dirty())

	assert.False(t, d.Toggle(5, 7))
	assert.True(t, d.Pixel(5, 7))
	assert.True(t, d.Dirty())

	d.ResetDirty()
	assert.True(t, d.Toggle(5, 7))
	assert.False(t, d.Pixel(5, 7))
	assert.True(t, d.Dirty())

	assert.False(t, d.Toggle(Width+1, Height+1))
	assert.True(t, d.Pixel(1, 1))
}

func TestDisplay_Clear(t *testing.T) {
	d := New()
	d.Toggle(0, 0)
	d.Toggle(63, 31)
	d.ResetDirty()

	d.Clear()
	assert.Equal(t, [CellCount]bool{}, d.Cells())
	assert.True(t, d.Dirty())
}

func TestDisplay_Coordinates(t *testing.T) {
	d := New()

	x, y, err := d.Coordinates(Width*3 + 10)
	assert.NoError(t, err)
	assert.Equal(t, 10, x)
	assert.Equal(t, 3, y)

	var boundsErr *bounds.Error
	_, _, err = d.Coordinates(CellCount)
	assert.True(t, errors.As(err, &boundsErr))
}

func TestDisplay_Cell(t *testing.T) {
	d := New()
	d.Toggle(2, 1)

	on, err := d.Cell(Width + 2)
	assert.NoError(t, err)
	assert.True(t, on)

	_, err = d.Cell(-1)
	assert.Error(t, err)
}
