package cpu

import (
	"fmt"
	"strings"
)

// OperandKind is the type of an instruction operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_NONE  = OperandKind(0)  // none
	OPERAND_CONST = OperandKind(1)  // const
	OPERAND_V     = OperandKind(2)  // v
	OPERAND_I     = OperandKind(3)  // i
	OPERAND_MEM   = OperandKind(4)  // mem
	OPERAND_DT    = OperandKind(5)  // dt
	OPERAND_ST    = OperandKind(6)  // st
	OPERAND_FONT  = OperandKind(7)  // font
	OPERAND_BCD   = OperandKind(8)  // bcd
	OPERAND_KEY   = OperandKind(9)  // key
	OPERAND_RANGE = OperandKind(10) // range
)

// Operand is a readable and/or writable location in the machine state.
type Operand struct {
	Kind  OperandKind
	Value uint16    // Constant value, or memory cell offset.
	Bits  int       // Constant width in bits.
	Inner *Operand  // Register index (V), base address (MEM), or source register (FONT, BCD).
	Items []Operand // Members of a RANGE.
}

// Const is an immediate constant of the given bit width.
func Const(value uint16, bits int) Operand {
	return Operand{Kind: OPERAND_CONST, Value: value & ((1 << bits) - 1), Bits: bits}
}

// Nibble is a 4-bit constant.
func Nibble(value uint8) Operand {
	return Const(uint16(value), 4)
}

// Byte is an 8-bit constant.
func Byte(value uint8) Operand {
	return Const(uint16(value), 8)
}

// Addr is a 12-bit constant.
func Addr(value uint16) Operand {
	return Const(value, 12)
}

// V is the general purpose register selected by the value of index.
func V(index Operand) Operand {
	return Operand{Kind: OPERAND_V, Inner: &index}
}

// Vn is the general purpose register n.
func Vn(n uint8) Operand {
	return V(Nibble(n))
}

// I is the index register.
func I() Operand {
	return Operand{Kind: OPERAND_I}
}

// Mem is the memory cell at base + offset.
func Mem(base Operand, offset uint16) Operand {
	return Operand{Kind: OPERAND_MEM, Value: offset, Inner: &base}
}

// DT is the delay timer.
func DT() Operand {
	return Operand{Kind: OPERAND_DT}
}

// ST is the sound timer.
func ST() Operand {
	return Operand{Kind: OPERAND_ST}
}

// Font is the address of the font sprite for the digit in reg.
func Font(reg Operand) Operand {
	return Operand{Kind: OPERAND_FONT, Inner: &reg}
}

// BCD is the hundreds, tens and ones digits of reg.
func BCD(reg Operand) Operand {
	return Operand{Kind: OPERAND_BCD, Inner: &reg}
}

// Key is the next key press. Reading it blocks.
func Key() Operand {
	return Operand{Kind: OPERAND_KEY}
}

// Range is an ordered sequence of operands, read or written together.
func Range(items ...Operand) Operand {
	return Operand{Kind: OPERAND_RANGE, Items: items}
}

// VRange is v0 through v(count-1).
func VRange(count int) Operand {
	items := make([]Operand, count)
	for n := range count {
		items[n] = Vn(uint8(n))
	}
	return Range(items...)
}

// MemRange is the memory cells [base+0, base+count).
func MemRange(base Operand, count int) Operand {
	items := make([]Operand, count)
	for n := range count {
		items[n] = Mem(base, uint16(n))
	}
	return Range(items...)
}

// Width returns the width, in bits, of the operand's value.
func (op Operand) Width() int {
	switch op.Kind {
	case OPERAND_CONST:
		return op.Bits
	case OPERAND_I, OPERAND_FONT:
		return 16
	case OPERAND_NONE:
		return 0
	default:
		return 8
	}
}

// IsSequence returns true if the operand produces an ordered sequence.
func (op Operand) IsSequence() bool {
	return op.Kind == OPERAND_RANGE || op.Kind == OPERAND_BCD
}

// Writable returns true if the operand can be the target of a write.
func (op Operand) Writable() bool {
	switch op.Kind {
	case OPERAND_V, OPERAND_I, OPERAND_MEM, OPERAND_DT, OPERAND_ST:
		return true
	case OPERAND_RANGE:
		for _, item := range op.Items {
			if !item.Writable() {
				return false
			}
		}
		return true
	}

	return false
}

// register resolves the register index of a V operand.
func (op Operand) register(cpu *Cpu) (index int, err error) {
	value, err := op.Inner.Read(cpu)
	if err != nil {
		return
	}
	if int(value) >= len(cpu.Register.V) {
		err = ErrOperandRegister
		return
	}

	index = int(value)
	return
}

// address resolves the address of a MEM operand.
func (op Operand) address(cpu *Cpu) (addr int, err error) {
	base, err := op.Inner.Read(cpu)
	if err != nil {
		return
	}

	addr = int(base) + int(op.Value)
	return
}

// Read the scalar value of the operand.
func (op Operand) Read(cpu *Cpu) (value uint16, err error) {
	switch op.Kind {
	case OPERAND_NONE:
		// Reads as zero.
	case OPERAND_CONST:
		value = op.Value
	case OPERAND_V:
		var index int
		index, err = op.register(cpu)
		if err != nil {
			return
		}
		value = uint16(cpu.Register.V[index])
	case OPERAND_I:
		value = cpu.Register.I
	case OPERAND_MEM:
		var addr int
		addr, err = op.address(cpu)
		if err != nil {
			return
		}
		var cell uint8
		cell, err = cpu.Memory.Read(addr)
		value = uint16(cell)
	case OPERAND_DT:
		value = uint16(cpu.Timer.Delay)
	case OPERAND_ST:
		value = uint16(cpu.Timer.Sound)
	case OPERAND_FONT:
		var digit uint16
		digit, err = op.Inner.Read(cpu)
		value = FONT_BASE + digit*FONT_SPRITE_SIZE
	case OPERAND_KEY:
		var key uint8
		key, err = cpu.WaitKeyPress()
		value = uint16(key)
	case OPERAND_BCD, OPERAND_RANGE:
		err = ErrOperandSequence
	default:
		panic("unknown operand")
	}

	return
}

// ReadSeq reads the operand as a sequence. Scalar operands produce a
// single element.
func (op Operand) ReadSeq(cpu *Cpu) (values []uint16, err error) {
	switch op.Kind {
	case OPERAND_BCD:
		var value uint16
		value, err = op.Inner.Read(cpu)
		if err != nil {
			return
		}
		value &= 0xff
		values = []uint16{value / 100, (value / 10) % 10, value % 10}
	case OPERAND_RANGE:
		values = make([]uint16, 0, len(op.Items))
		for _, item := range op.Items {
			var value uint16
			value, err = item.Read(cpu)
			if err != nil {
				return
			}
			values = append(values, value)
		}
	default:
		var value uint16
		value, err = op.Read(cpu)
		if err != nil {
			return
		}
		values = []uint16{value}
	}

	return
}

// Write a scalar value to the operand, truncated to the operand's width.
func (op Operand) Write(cpu *Cpu, value uint16) (err error) {
	switch op.Kind {
	case OPERAND_V:
		var index int
		index, err = op.register(cpu)
		if err != nil {
			return
		}
		cpu.Register.V[index] = uint8(value)
	case OPERAND_I:
		cpu.Register.I = value
	case OPERAND_MEM:
		var addr int
		addr, err = op.address(cpu)
		if err != nil {
			return
		}
		err = cpu.Memory.Write(addr, uint8(value))
	case OPERAND_DT:
		cpu.Timer.Delay = uint8(value)
	case OPERAND_ST:
		cpu.Timer.Sound = uint8(value)
	case OPERAND_RANGE:
		err = op.WriteSeq(cpu, []uint16{value})
	default:
		err = ErrOperandWrite
	}

	return
}

// WriteSeq writes a sequence to the operand. Only the overlapping prefix
// of the operand and values is written.
func (op Operand) WriteSeq(cpu *Cpu, values []uint16) (err error) {
	if op.Kind != OPERAND_RANGE {
		if !op.Writable() {
			err = ErrOperandWrite
			return
		}
		if len(values) > 0 {
			err = op.Write(cpu, values[0])
		}
		return
	}

	count := min(len(op.Items), len(values))
	for n := range count {
		err = op.Items[n].Write(cpu, values[n])
		if err != nil {
			return
		}
	}

	return
}

// String returns a debugging representation of the operand.
func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_CONST:
		return fmt.Sprintf("%#x", op.Value)
	case OPERAND_V:
		if op.Inner.Kind == OPERAND_CONST {
			return fmt.Sprintf("v%x", op.Inner.Value)
		}
		return fmt.Sprintf("v[%v]", op.Inner)
	case OPERAND_MEM:
		if op.Value == 0 {
			return fmt.Sprintf("[%v]", op.Inner)
		}
		return fmt.Sprintf("[%v+%d]", op.Inner, op.Value)
	case OPERAND_FONT, OPERAND_BCD:
		return fmt.Sprintf("%v(%v)", op.Kind, op.Inner)
	case OPERAND_KEY:
		return "k"
	case OPERAND_RANGE:
		items := make([]string, len(op.Items))
		for n, item := range op.Items {
			items[n] = item.String()
		}
		return "(" + strings.Join(items, " ") + ")"
	}

	return op.Kind.String()
}
