package instruction

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// operand flags select which operands a form extracts from the word.
const (
	operandX = 1 << iota
	operandY
	operandNN
	operandNNN
	operandN
)

// operandBits are the word bits occupied by each operand.
var operandBits = [...]struct {
	flag int
	bits uint16
}{
	{operandX, 0x0F00},
	{operandY, 0x00F0},
	{operandNN, 0x00FF},
	{operandNNN, 0x0FFF},
	{operandN, 0x000F},
}

// form describes the operands of an instruction form.
type form struct {
	op       Op
	operands int
}

// forms maps the opcode values of the CHIP-8 opcode table to the forms.
// Opcode table entries without a form, like the legacy 0NNN machine code
// call, are not decoded.
var forms = map[uint16]form{
	0x00E0: {ClearScreen, 0},
	0x00EE: {Return, 0},
	0x1000: {Jump, operandNNN},
	0x2000: {Call, operandNNN},
	0x3000: {SkipEqualImmediate, operandX | operandNN},
	0x4000: {SkipNotEqualImmediate, operandX | operandNN},
	0x5000: {SkipEqualRegister, operandX | operandY},
	0x6000: {SetImmediate, operandX | operandNN},
	0x7000: {AddImmediate, operandX | operandNN},
	0x8000: {Copy, operandX | operandY},
	0x8001: {Or, operandX | operandY},
	0x8002: {And, operandX | operandY},
	0x8003: {Xor, operandX | operandY},
	0x8004: {AddRegister, operandX | operandY},
	0x8005: {SubRegister, operandX | operandY},
	0x8006: {ShiftRight, operandX | operandY},
	0x8007: {SubRegisterReverse, operandX | operandY},
	0x800E: {ShiftLeft, operandX | operandY},
	0x9000: {SkipNotEqualRegister, operandX | operandY},
	0xA000: {SetIndex, operandNNN},
	0xB000: {JumpOffset, operandNNN},
	0xC000: {RandomAnd, operandX | operandNN},
	0xD000: {Draw, operandX | operandY | operandN},
	0xE09E: {SkipKeyPressed, operandX},
	0xE0A1: {SkipKeyNotPressed, operandX},
	0xF007: {ReadDelay, operandX},
	0xF00A: {AwaitKey, operandX},
	0xF015: {SetDelay, operandX},
	0xF018: {SetSound, operandX},
	0xF01E: {AddIndex, operandX},
	0xF029: {FontAddress, operandX},
	0xF033: {BCD, operandX},
	0xF055: {StoreRegisters, operandX},
	0xF065: {LoadRegisters, operandX},
}

// pattern matches an instruction word if word&mask == value.
type pattern struct {
	mask  uint16
	value uint16
	form
}

// families groups the patterns by the first nibble of the word.
var families = buildFamilies()

// buildFamilies creates the decoding patterns from the opcode table. All bits
// not occupied by an operand have to match the opcode value, which rejects
// words like 5XY1 that share the first nibble with a known form.
func buildFamilies() [16][]pattern {
	var grouped [16][]pattern
	seen := make(map[uint16]bool, len(forms))

	add := func(value uint16, f form) {
		if seen[value] {
			return
		}
		seen[value] = true
		p := pattern{mask: fixedBits(f.operands), value: value, form: f}
		grouped[value>>12] = append(grouped[value>>12], p)
	}

	for _, opcodes := range chip8.Opcodes {
		for _, opcode := range opcodes {
			if f, ok := forms[opcode.Info.Value]; ok {
				add(opcode.Info.Value, f)
			}
		}
	}
	// forms missing from the opcode table are still decoded
	for value, f := range forms {
		add(value, f)
	}
	return grouped
}

// fixedBits returns the mask of the word bits not occupied by the operands.
func fixedBits(operands int) uint16 {
	mask := uint16(0xFFFF)
	for _, operand := range operandBits {
		if operands&operand.flag != 0 {
			mask &^= operand.bits
		}
	}
	return mask
}

// DecodeError is returned for instruction words that do not match any
// known instruction form.
type DecodeError struct {
	Nibbles [4]uint8
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode %X%X%X%X", e.Nibbles[0], e.Nibbles[1], e.Nibbles[2], e.Nibbles[3])
}

// Nibbles splits an instruction word into its four 4 bit parts,
// most significant first.
func Nibbles(word uint16) [4]uint8 {
	return [4]uint8{
		uint8((word >> 12) & 0xF),
		uint8((word >> 8) & 0xF),
		uint8((word >> 4) & 0xF),
		uint8(word & 0xF),
	}
}

// Decode converts an instruction word into an instruction.
func Decode(word uint16) (Instruction, error) {
	for _, p := range families[word>>12] {
		if word&p.mask == p.value {
			return p.decode(word), nil
		}
	}
	return Instruction{}, &DecodeError{Nibbles: Nibbles(word)}
}

// decode extracts the operands of the pattern from the word.
func (p pattern) decode(word uint16) Instruction {
	ins := Instruction{Op: p.op}
	if p.operands&operandX != 0 {
		ins.X = uint8((word >> 8) & 0xF)
	}
	if p.operands&operandY != 0 {
		ins.Y = uint8((word >> 4) & 0xF)
	}
	if p.operands&operandNN != 0 {
		ins.NN = uint8(word & 0xFF)
	}
	if p.operands&operandNNN != 0 {
		ins.NNN = word & 0x0FFF
	}
	if p.operands&operandN != 0 {
		ins.N = uint8(word & 0xF)
	}
	return ins
}
