// Package keyboard implements the 16 key CHIP-8 input latch.
package keyboard

import "github.com/retroenv/chip8vm/internal/bounds"

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keyboard latches the pressed state of every key until it is released or
// explicitly cleared by the host.
type Keyboard struct {
	keys [KeyCount]bool
}

// New returns a keyboard with all keys released.
func New() *Keyboard {
	return &Keyboard{}
}

// Set latches the pressed state of a key.
func (k *Keyboard) Set(code uint8, pressed bool) error {
	if err := bounds.Check("key", int(code), KeyCount); err != nil {
		return err
	}
	k.keys[code] = pressed
	return nil
}

// IsPressed returns whether the given key is latched as pressed.
func (k *Keyboard) IsPressed(code uint8) (bool, error) {
	if err := bounds.Check("key", int(code), KeyCount); err != nil {
		return false, err
	}
	return k.keys[code], nil
}

// FirstPressed returns the lowest pressed key code.
func (k *Keyboard) FirstPressed() (uint8, bool) {
	for code, pressed := range k.keys {
		if pressed {
			return uint8(code), true
		}
	}
	return 0, false
}

// Clear releases all keys.
func (k *Keyboard) Clear() {
	k.keys = [KeyCount]bool{}
}
