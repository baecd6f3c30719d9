// Package instruction decodes 16 bit CHIP-8 instruction words into tagged
// instruction forms.
package instruction

import "fmt"

// Size is the size of every CHIP-8 instruction in bytes.
const Size = 2

// Instruction is a decoded instruction. Op selects the form, only the
// operands used by that form are set.
type Instruction struct {
	Op Op

	X   uint8  // first register index
	Y   uint8  // second register index
	NN  uint8  // 8 bit immediate
	NNN uint16 // 12 bit address
	N   uint8  // 4 bit sprite row count
}

// String formats the instruction in assembler syntax, for example "ld V0, $05".
func (i Instruction) String() string {
	name := i.Op.Mnemonic()
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// params formats the operands of the instruction.
func (i Instruction) params() string {
	switch i.Op {
	case ClearScreen, Return:
		return ""

	case Jump, Call, SetIndex:
		return i.formatAddress()

	case JumpOffset:
		return "V0, " + i.formatAddress()

	case SkipEqualImmediate, SkipNotEqualImmediate, SetImmediate, AddImmediate, RandomAnd:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)

	case SkipEqualRegister, SkipNotEqualRegister, Copy, Or, And, Xor,
		AddRegister, SubRegister, SubRegisterReverse:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)

	case ShiftRight, ShiftLeft, SkipKeyPressed, SkipKeyNotPressed:
		return fmt.Sprintf("V%X", i.X)

	case Draw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)

	default:
		return i.formatTimerAndMemory()
	}
}

// formatAddress formats the 12 bit address operand.
func (i Instruction) formatAddress() string {
	if i.Op == SetIndex {
		return fmt.Sprintf("I, $%03X", i.NNN)
	}
	return fmt.Sprintf("$%03X", i.NNN)
}

// formatTimerAndMemory formats the FX__ family operands.
func (i Instruction) formatTimerAndMemory() string {
	switch i.Op {
	case ReadDelay:
		return fmt.Sprintf("V%X, DT", i.X)
	case AwaitKey:
		return fmt.Sprintf("V%X, K", i.X)
	case SetDelay:
		return fmt.Sprintf("DT, V%X", i.X)
	case SetSound:
		return fmt.Sprintf("ST, V%X", i.X)
	case AddIndex:
		return fmt.Sprintf("I, V%X", i.X)
	case FontAddress:
		return fmt.Sprintf("F, V%X", i.X)
	case BCD:
		return fmt.Sprintf("B, V%X", i.X)
	case StoreRegisters:
		return fmt.Sprintf("[I], V%X", i.X)
	case LoadRegisters:
		return fmt.Sprintf("V%X, [I]", i.X)
	default:
		return ""
	}
}
