package machine

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/memory"
)

// spriteWidth is the number of pixel columns of every sprite row.
const spriteWidth = 8

// execute runs a decoded instruction. The program counter already points to
// the next instruction.
//
//nolint:cyclop,funlen // one case per instruction form
func (m *Machine) execute(ins instruction.Instruction) error {
	switch ins.Op {
	case instruction.ClearScreen:
		m.display.Clear()
		return nil
	case instruction.Return:
		return m.ret()
	case instruction.Jump:
		m.cpu.PC = ins.NNN
		return nil
	case instruction.Call:
		return m.call(ins.NNN)
	case instruction.SkipEqualImmediate:
		return m.skipImmediate(ins.X, ins.NN, true)
	case instruction.SkipNotEqualImmediate:
		return m.skipImmediate(ins.X, ins.NN, false)
	case instruction.SkipEqualRegister:
		return m.skipRegister(ins.X, ins.Y, true)
	case instruction.SkipNotEqualRegister:
		return m.skipRegister(ins.X, ins.Y, false)
	case instruction.SetImmediate:
		return m.cpu.SetRegister(ins.X, ins.NN)
	case instruction.AddImmediate:
		return m.addImmediate(ins.X, ins.NN)
	case instruction.Copy:
		return m.logic(ins.X, ins.Y, func(_, vy byte) byte { return vy })
	case instruction.Or:
		return m.logic(ins.X, ins.Y, func(vx, vy byte) byte { return vx | vy })
	case instruction.And:
		return m.logic(ins.X, ins.Y, func(vx, vy byte) byte { return vx & vy })
	case instruction.Xor:
		return m.logic(ins.X, ins.Y, func(vx, vy byte) byte { return vx ^ vy })
	case instruction.AddRegister:
		return m.addRegister(ins.X, ins.Y)
	case instruction.SubRegister:
		return m.subtract(ins.X, ins.Y, false)
	case instruction.SubRegisterReverse:
		return m.subtract(ins.X, ins.Y, true)
	case instruction.ShiftRight:
		return m.shift(ins.X, false)
	case instruction.ShiftLeft:
		return m.shift(ins.X, true)
	case instruction.SetIndex:
		m.cpu.I = ins.NNN
		return nil
	case instruction.JumpOffset:
		return m.jumpOffset(ins.NNN)
	case instruction.RandomAnd:
		return m.cpu.SetRegister(ins.X, m.random.Byte()&ins.NN)
	case instruction.Draw:
		return m.draw(ins.X, ins.Y, ins.N)
	case instruction.SkipKeyPressed:
		return m.skipKey(ins.X, true)
	case instruction.SkipKeyNotPressed:
		return m.skipKey(ins.X, false)
	case instruction.ReadDelay:
		return m.cpu.SetRegister(ins.X, m.cpu.DelayTimer)
	case instruction.AwaitKey:
		return m.awaitKey(ins.X)
	case instruction.SetDelay:
		return m.withRegister(ins.X, func(vx byte) { m.cpu.DelayTimer = vx })
	case instruction.SetSound:
		return m.withRegister(ins.X, func(vx byte) { m.cpu.SoundTimer = vx })
	case instruction.AddIndex:
		return m.withRegister(ins.X, func(vx byte) { m.cpu.I += uint16(vx) })
	case instruction.FontAddress:
		return m.withRegister(ins.X, func(vx byte) { m.cpu.I = memory.FontStart + uint16(vx)*glyphSize })
	case instruction.BCD:
		return m.bcd(ins.X)
	case instruction.StoreRegisters:
		return m.storeRegisters(ins.X)
	case instruction.LoadRegisters:
		return m.loadRegisters(ins.X)
	default:
		return fmt.Errorf("unsupported instruction form %s", ins.Op)
	}
}

func (m *Machine) ret() error {
	address, err := m.cpu.Pop()
	if err != nil {
		return err
	}
	m.cpu.PC = address
	return nil
}

func (m *Machine) call(address uint16) error {
	if err := m.cpu.Push(m.cpu.PC); err != nil {
		return err
	}
	m.cpu.PC = address
	return nil
}

// skipIf advances the program counter over the next instruction if the
// condition is true.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.cpu.PC += instruction.Size
	}
}

func (m *Machine) skipImmediate(x, nn uint8, equal bool) error {
	vx, err := m.cpu.Register(x)
	if err != nil {
		return err
	}
	m.skipIf((vx == nn) == equal)
	return nil
}

func (m *Machine) skipRegister(x, y uint8, equal bool) error {
	vx, vy, err := m.registerPair(x, y)
	if err != nil {
		return err
	}
	m.skipIf((vx == vy) == equal)
	return nil
}

func (m *Machine) skipKey(x uint8, pressed bool) error {
	vx, err := m.cpu.Register(x)
	if err != nil {
		return err
	}
	isPressed, err := m.keyboard.IsPressed(vx)
	if err != nil {
		return err
	}
	m.skipIf(isPressed == pressed)
	return nil
}

// registerPair returns the values of Vx and Vy.
func (m *Machine) registerPair(x, y uint8) (byte, byte, error) {
	vx, err := m.cpu.Register(x)
	if err != nil {
		return 0, 0, err
	}
	vy, err := m.cpu.Register(y)
	if err != nil {
		return 0, 0, err
	}
	return vx, vy, nil
}

// withRegister calls fun with the value of Vx.
func (m *Machine) withRegister(x uint8, fun func(vx byte)) error {
	vx, err := m.cpu.Register(x)
	if err != nil {
		return err
	}
	fun(vx)
	return nil
}

// addImmediate adds nn to Vx without affecting VF.
func (m *Machine) addImmediate(x, nn uint8) error {
	vx, err := m.cpu.Register(x)
	if err != nil {
		return err
	}
	return m.cpu.SetRegister(x, vx+nn)
}

// logic sets Vx to the result of op applied to Vx and Vy. VF is not affected.
func (m *Machine) logic(x, y uint8, op func(vx, vy byte) byte) error {
	vx, vy, err := m.registerPair(x, y)
	if err != nil {
		return err
	}
	return m.cpu.SetRegister(x, op(vx, vy))
}

// The flag producing instructions below read all operands before writing
// VF, as Vx or Vy can be VF itself. The flag write always comes last.

func (m *Machine) addRegister(x, y uint8) error {
	vx, vy, err := m.registerPair(x, y)
	if err != nil {
		return err
	}
	sum := uint16(vx) + uint16(vy)
	if err := m.cpu.SetRegister(x, byte(sum)); err != nil {
		return err
	}
	m.cpu.SetFlag(sum > 0xFF)
	return nil
}

// subtract sets Vx to Vx-Vy, or Vy-Vx if reverse is set. VF is set to 1 if
// no borrow occurred.
func (m *Machine) subtract(x, y uint8, reverse bool) error {
	vx, vy, err := m.registerPair(x, y)
	if err != nil {
		return err
	}
	minuend, subtrahend := vx, vy
	if reverse {
		minuend, subtrahend = vy, vx
	}
	if err := m.cpu.SetRegister(x, minuend-subtrahend); err != nil {
		return err
	}
	m.cpu.SetFlag(minuend >= subtrahend)
	return nil
}

// shift shifts Vx by one bit, VF receives the bit shifted out.
func (m *Machine) shift(x uint8, left bool) error {
	vx, err := m.cpu.Register(x)
	if err != nil {
		return err
	}

	var result, out byte
	if left {
		result, out = vx<<1, vx>>7
	} else {
		result, out = vx>>1, vx&1
	}
	if err := m.cpu.SetRegister(x, result); err != nil {
		return err
	}
	m.cpu.SetFlag(out == 1)
	return nil
}

func (m *Machine) jumpOffset(address uint16) error {
	v0, err := m.cpu.Register(0)
	if err != nil {
		return err
	}
	m.cpu.PC = address + uint16(v0)
	return nil
}

// draw XORs an n rows high sprite read from I onto the display at (Vx, Vy).
// VF is set to 1 if any set pixel was turned off. The display is not changed
// if the sprite data is not completely inside memory.
func (m *Machine) draw(x, y, rows uint8) error {
	vx, vy, err := m.registerPair(x, y)
	if err != nil {
		return err
	}
	if err := m.memory.CheckRange(m.cpu.I, int(rows)); err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}

	sprite := make([]byte, rows)
	for row := range sprite {
		if sprite[row], err = m.memory.Read(m.cpu.I + uint16(row)); err != nil {
			return fmt.Errorf("reading sprite row %d: %w", row, err)
		}
	}

	originX := int(vx) % display.Width
	originY := int(vy) % display.Height
	collision := false
	for row, data := range sprite {
		for col := range spriteWidth {
			if data&(0x80>>col) == 0 {
				continue
			}
			if m.display.Toggle(originX+col, originY+row) {
				collision = true
			}
		}
	}

	m.cpu.SetFlag(collision)
	return nil
}

// awaitKey stores the lowest pressed key in Vx. If no key is pressed, the
// machine enters the AwaitingKey state with the program counter left at
// this instruction.
func (m *Machine) awaitKey(x uint8) error {
	if code, ok := m.keyboard.FirstPressed(); ok {
		return m.cpu.SetRegister(x, code)
	}

	if err := m.cpu.AwaitKey(x); err != nil {
		return err
	}
	m.cpu.PC -= instruction.Size
	return nil
}

// bcd writes the hundreds, tens and ones digit of Vx to I, I+1 and I+2.
func (m *Machine) bcd(x uint8) error {
	vx, err := m.cpu.Register(x)
	if err != nil {
		return err
	}

	digits := [3]byte{vx / 100, vx / 10 % 10, vx % 10}
	if err := m.memory.CheckRange(m.cpu.I, len(digits)); err != nil {
		return err
	}
	for i, digit := range digits {
		if err := m.memory.Write(m.cpu.I+uint16(i), digit); err != nil {
			return err
		}
	}
	return nil
}

// storeRegisters writes V0 to Vx to memory starting at I. I is unchanged.
func (m *Machine) storeRegisters(x uint8) error {
	if err := m.checkRegisterBlock(x); err != nil {
		return err
	}
	for reg := uint8(0); reg <= x; reg++ {
		value, err := m.cpu.Register(reg)
		if err != nil {
			return err
		}
		if err := m.memory.Write(m.cpu.I+uint16(reg), value); err != nil {
			return err
		}
	}
	return nil
}

// loadRegisters reads V0 to Vx from memory starting at I. I is unchanged.
func (m *Machine) loadRegisters(x uint8) error {
	if err := m.checkRegisterBlock(x); err != nil {
		return err
	}
	for reg := uint8(0); reg <= x; reg++ {
		value, err := m.memory.Read(m.cpu.I + uint16(reg))
		if err != nil {
			return err
		}
		if err := m.cpu.SetRegister(reg, value); err != nil {
			return err
		}
	}
	return nil
}

// checkRegisterBlock verifies that V0 to Vx and the memory block of the same
// size at I are accessible, so that a transfer fails before changing state.
func (m *Machine) checkRegisterBlock(x uint8) error {
	if _, err := m.cpu.Register(x); err != nil {
		return err
	}
	return m.memory.CheckRange(m.cpu.I, int(x)+1)
}
