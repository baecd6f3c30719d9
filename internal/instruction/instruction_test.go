package instruction

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x00E0, chip8.Cls.Name},
		{0x00EE, chip8.Ret.Name},
		{0x1ABC, chip8.Jp.Name + " $ABC"},
		{0x2345, chip8.Call.Name + " $345"},
		{0x3A12, chip8.Se.Name + " VA, $12"},
		{0x9AB0, chip8.Sne.Name + " VA, VB"},
		{0x6005, chip8.Ld.Name + " V0, $05"},
		{0x8014, chip8.Add.Name + " V0, V1"},
		{0x8306, chip8.Shr.Name + " V3"},
		{0x8127, chip8.Subn.Name + " V1, V2"},
		{0xA123, chip8.Ld.Name + " I, $123"},
		{0xB300, chip8.Jp.Name + " V0, $300"},
		{0xC40F, chip8.Rnd.Name + " V4, $0F"},
		{0xD125, chip8.Drw.Name + " V1, V2, $5"},
		{0xE6A1, chip8.Sknp.Name + " V6"},
		{0xF707, chip8.Ld.Name + " V7, DT"},
		{0xF80A, chip8.Ld.Name + " V8, K"},
		{0xF915, chip8.Ld.Name + " DT, V9"},
		{0xFA18, chip8.Ld.Name + " ST, VA"},
		{0xFB1E, chip8.Add.Name + " I, VB"},
		{0xFC29, chip8.Ld.Name + " F, VC"},
		{0xFD33, chip8.Ld.Name + " B, VD"},
		{0xFE55, chip8.Ld.Name + " [I], VE"},
		{0xFF65, chip8.Ld.Name + " VF, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ins.String())
		})
	}
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "add-reg", AddRegister.String())
	assert.Equal(t, "load-regs", LoadRegisters.String())
	assert.Equal(t, "op(200)", Op(200).String())
	assert.Equal(t, "", Op(200).Mnemonic())

	for op := Op(0); op < opCount; op++ {
		assert.NotEmpty(t, op.String())
		assert.NotEmpty(t, op.Mnemonic())
	}
}
