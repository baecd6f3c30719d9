package instruction

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one of the decoded instruction forms.
type Op uint8

// All instruction forms, the comment lists the opcode pattern.
const (
	ClearScreen          Op = iota // 00E0
	Return                         // 00EE
	Jump                           // 1NNN
	Call                           // 2NNN
	SkipEqualImmediate             // 3XNN
	SkipNotEqualImmediate          // 4XNN
	SkipEqualRegister              // 5XY0
	SetImmediate                   // 6XNN
	AddImmediate                   // 7XNN
	Copy                           // 8XY0
	Or                             // 8XY1
	And                            // 8XY2
	Xor                            // 8XY3
	AddRegister                    // 8XY4
	SubRegister                    // 8XY5
	ShiftRight                     // 8XY6
	SubRegisterReverse             // 8XY7
	ShiftLeft                      // 8XYE
	SkipNotEqualRegister           // 9XY0
	SetIndex                       // ANNN
	JumpOffset                     // BNNN
	RandomAnd                      // CXNN
	Draw                           // DXYN
	SkipKeyPressed                 // EX9E
	SkipKeyNotPressed              // EXA1
	ReadDelay                      // FX07
	AwaitKey                       // FX0A
	SetDelay                       // FX15
	SetSound                       // FX18
	AddIndex                       // FX1E
	FontAddress                    // FX29
	BCD                            // FX33
	StoreRegisters                 // FX55
	LoadRegisters                  // FX65

	opCount
)

// OpCount is the number of instruction forms.
const OpCount = int(opCount)

// opNames contains a descriptive name for every instruction form.
var opNames = [opCount]string{
	ClearScreen:           "clear-screen",
	Return:                "return",
	Jump:                  "jump",
	Call:                  "call",
	SkipEqualImmediate:    "skip-eq-imm",
	SkipNotEqualImmediate: "skip-neq-imm",
	SkipEqualRegister:     "skip-eq-reg",
	SetImmediate:          "set-imm",
	AddImmediate:          "add-imm",
	Copy:                  "copy",
	Or:                    "or",
	And:                   "and",
	Xor:                   "xor",
	AddRegister:           "add-reg",
	SubRegister:           "sub-reg",
	ShiftRight:            "shift-right",
	SubRegisterReverse:    "sub-reg-rev",
	ShiftLeft:             "shift-left",
	SkipNotEqualRegister:  "skip-neq-reg",
	SetIndex:              "set-index",
	JumpOffset:            "jump-offset",
	RandomAnd:             "rand-and",
	Draw:                  "draw",
	SkipKeyPressed:        "skip-key-pressed",
	SkipKeyNotPressed:     "skip-key-not-pressed",
	ReadDelay:             "read-delay",
	AwaitKey:              "await-key",
	SetDelay:              "set-delay",
	SetSound:              "set-sound",
	AddIndex:              "add-index",
	FontAddress:           "font-address",
	BCD:                   "bcd",
	StoreRegisters:        "store-regs",
	LoadRegisters:         "load-regs",
}

// opMnemonics maps every instruction form to its assembler mnemonic.
var opMnemonics = [opCount]*chip8.Instruction{
	ClearScreen:           chip8.Cls,
	Return:                chip8.Ret,
	Jump:                  chip8.Jp,
	Call:                  chip8.Call,
	SkipEqualImmediate:    chip8.Se,
	SkipNotEqualImmediate: chip8.Sne,
	SkipEqualRegister:     chip8.Se,
	SetImmediate:          chip8.Ld,
	AddImmediate:          chip8.Add,
	Copy:                  chip8.Ld,
	Or:                    chip8.Or,
	And:                   chip8.And,
	Xor:                   chip8.Xor,
	AddRegister:           chip8.Add,
	SubRegister:           chip8.Sub,
	ShiftRight:            chip8.Shr,
	SubRegisterReverse:    chip8.Subn,
	ShiftLeft:             chip8.Shl,
	SkipNotEqualRegister:  chip8.Sne,
	SetIndex:              chip8.Ld,
	JumpOffset:            chip8.Jp,
	RandomAnd:             chip8.Rnd,
	Draw:                  chip8.Drw,
	SkipKeyPressed:        chip8.Skp,
	SkipKeyNotPressed:     chip8.Sknp,
	ReadDelay:             chip8.Ld,
	AwaitKey:              chip8.Ld,
	SetDelay:              chip8.Ld,
	SetSound:              chip8.Ld,
	AddIndex:              chip8.Add,
	FontAddress:           chip8.Ld,
	BCD:                   chip8.Ld,
	StoreRegisters:        chip8.Ld,
	LoadRegisters:         chip8.Ld,
}

// String returns the descriptive name of the instruction form.
func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("op(%d)", uint8(o))
	}
	return opNames[o]
}

// Mnemonic returns the assembler mnemonic of the instruction form.
func (o Op) Mnemonic() string {
	if o >= opCount {
		return ""
	}
	return opMnemonics[o].Name
}
