package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperand_Width(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op    Operand
		width int
	}){
		{Operand{}, 0},
		{Nibble(3), 4},
		{Byte(3), 8},
		{Addr(3), 12},
		{Vn(3), 8},
		{I(), 16},
		{Mem(I(), 1), 8},
		{DT(), 8},
		{ST(), 8},
		{Font(Vn(1)), 16},
		{Key(), 8},
	}

	for _, entry := range table {
		assert.Equal(entry.width, entry.op.Width(), entry.op.String())
	}
}

func TestOperand_Const(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint16(0xf), Nibble(0xff).Value)
	assert.Equal(uint16(0xfff), Addr(0xffff).Value)
	assert.False(Byte(1).Writable())
	assert.True(Vn(1).Writable())
	assert.True(VRange(3).Writable())
	assert.False(Range(Vn(0), Byte(1)).Writable())
	assert.True(BCD(Vn(0)).IsSequence())
	assert.False(Vn(0).IsSequence())
}

func TestOperand_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register.I = 0x300

	assert.NoError(Vn(2).Write(cpu, 0x1ab))
	assert.Equal(uint8(0xab), cpu.Register.V[2])

	// Indirect register selection.
	cpu.Register.V[0] = 2
	value, err := V(Vn(0)).Read(cpu)
	assert.NoError(err)
	assert.Equal(uint16(0xab), value)

	cpu.Register.V[0] = 0x10
	_, err = V(Vn(0)).Read(cpu)
	assert.ErrorIs(err, ErrOperandRegister)

	assert.NoError(Mem(I(), 2).Write(cpu, 0x55))
	assert.Equal(uint8(0x55), cpu.Memory.Data[0x302])
	value, err = Mem(I(), 2).Read(cpu)
	assert.NoError(err)
	assert.Equal(uint16(0x55), value)

	assert.NoError(DT().Write(cpu, 0x12))
	assert.NoError(ST().Write(cpu, 0x34))
	assert.Equal(Timers{Delay: 0x12, Sound: 0x34}, cpu.Timer)

	err = Byte(1).Write(cpu, 2)
	assert.ErrorIs(err, ErrOperandWrite)

	_, err = VRange(2).Read(cpu)
	assert.ErrorIs(err, ErrOperandSequence)
}

func TestOperand_Seq(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register.V[4] = 137

	values, err := BCD(Vn(4)).ReadSeq(cpu)
	assert.NoError(err)
	assert.Equal([]uint16{1, 3, 7}, values)

	values, err = Vn(4).ReadSeq(cpu)
	assert.NoError(err)
	assert.Equal([]uint16{137}, values)

	// Only the overlapping prefix is written.
	err = VRange(2).WriteSeq(cpu, []uint16{7, 8, 9})
	assert.NoError(err)
	assert.Equal([]uint8{7, 8, 0}, cpu.Register.V[:3])

	err = VRange(4).WriteSeq(cpu, []uint16{1})
	assert.NoError(err)
	assert.Equal([]uint8{1, 8, 0, 0}, cpu.Register.V[:4])

	err = Vn(5).WriteSeq(cpu, []uint16{0x42, 0x43})
	assert.NoError(err)
	assert.Equal(uint8(0x42), cpu.Register.V[5])

	err = Key().WriteSeq(cpu, []uint16{1})
	assert.ErrorIs(err, ErrOperandWrite)
}

func TestOperand_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op   Operand
		text string
	}){
		{Byte(0x1f), "0x1f"},
		{Vn(0xa), "va"},
		{V(Vn(1)), "v[v1]"},
		{I(), "i"},
		{Mem(I(), 0), "[i]"},
		{Mem(I(), 2), "[i+2]"},
		{DT(), "dt"},
		{Font(Vn(3)), "font(v3)"},
		{BCD(Vn(3)), "bcd(v3)"},
		{Key(), "k"},
		{VRange(2), "(v0 v1)"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.op.String())
	}
}
