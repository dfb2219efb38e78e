package cpu

import (
	"fmt"
	"strings"
)

// Word is a raw big-endian 16-bit instruction word.
type Word uint16

// MakeWord assembles an instruction word from its two bytes.
func MakeWord(hi, lo uint8) Word {
	return Word(uint16(hi)<<8 | uint16(lo))
}

// Family is the high nibble.
func (w Word) Family() uint8 { return uint8(w >> 12) }

// X is the second nibble.
func (w Word) X() uint8 { return uint8(w>>8) & 0xf }

// Y is the third nibble.
func (w Word) Y() uint8 { return uint8(w>>4) & 0xf }

// N is the low nibble.
func (w Word) N() uint8 { return uint8(w) & 0xf }

// KK is the low byte.
func (w Word) KK() uint8 { return uint8(w) }

// NNN is the low 12 bits.
func (w Word) NNN() uint16 { return uint16(w) & 0xfff }

// Bytes returns the word in memory order.
func (w Word) Bytes() [2]uint8 {
	return [2]uint8{uint8(w >> 8), uint8(w)}
}

// Kind is the instruction kind. The line comment is the assembly template;
// 'vx', 'vy', 'byte', 'addr', and 'nibble' are the operand fields.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_CLS      = Kind(0)  // cls
	KIND_RET      = Kind(1)  // ret
	KIND_SYS      = Kind(2)  // sys addr
	KIND_JP       = Kind(3)  // jp addr
	KIND_CALL     = Kind(4)  // call addr
	KIND_SE_VB    = Kind(5)  // se vx, byte
	KIND_SNE_VB   = Kind(6)  // sne vx, byte
	KIND_SE_VV    = Kind(7)  // se vx, vy
	KIND_LD_VB    = Kind(8)  // ld vx, byte
	KIND_ADD_VB   = Kind(9)  // add vx, byte
	KIND_LD_VV    = Kind(10) // ld vx, vy
	KIND_OR       = Kind(11) // or vx, vy
	KIND_AND      = Kind(12) // and vx, vy
	KIND_XOR      = Kind(13) // xor vx, vy
	KIND_ADD_VV   = Kind(14) // add vx, vy
	KIND_SUB      = Kind(15) // sub vx, vy
	KIND_SHR      = Kind(16) // shr vx
	KIND_SUBN     = Kind(17) // subn vx, vy
	KIND_SHL      = Kind(18) // shl vx
	KIND_SNE_VV   = Kind(19) // sne vx, vy
	KIND_LD_I     = Kind(20) // ld i, addr
	KIND_JP_V0    = Kind(21) // jp v0, addr
	KIND_RND      = Kind(22) // rnd vx, byte
	KIND_DRW      = Kind(23) // drw vx, vy, nibble
	KIND_SKP      = Kind(24) // skp vx
	KIND_SKNP     = Kind(25) // sknp vx
	KIND_LD_V_DT  = Kind(26) // ld vx, dt
	KIND_LD_V_K   = Kind(27) // ld vx, k
	KIND_LD_DT_V  = Kind(28) // ld dt, vx
	KIND_LD_ST_V  = Kind(29) // ld st, vx
	KIND_ADD_I_V  = Kind(30) // add i, vx
	KIND_LD_F_V   = Kind(31) // ld f, vx
	KIND_LD_B_V   = Kind(32) // ld b, vx
	KIND_LD_MEM_V = Kind(33) // ld [i], vx
	KIND_LD_V_MEM = Kind(34) // ld vx, [i]
	KIND_COUNT    = Kind(35) // -
)

// kindCode is the instruction word of a kind with all operand fields zero.
var kindCode = [KIND_COUNT]Word{
	KIND_CLS:      0x00e0,
	KIND_RET:      0x00ee,
	KIND_SYS:      0x0000,
	KIND_JP:       0x1000,
	KIND_CALL:     0x2000,
	KIND_SE_VB:    0x3000,
	KIND_SNE_VB:   0x4000,
	KIND_SE_VV:    0x5000,
	KIND_LD_VB:    0x6000,
	KIND_ADD_VB:   0x7000,
	KIND_LD_VV:    0x8000,
	KIND_OR:       0x8001,
	KIND_AND:      0x8002,
	KIND_XOR:      0x8003,
	KIND_ADD_VV:   0x8004,
	KIND_SUB:      0x8005,
	KIND_SHR:      0x8006,
	KIND_SUBN:     0x8007,
	KIND_SHL:      0x800e,
	KIND_SNE_VV:   0x9000,
	KIND_LD_I:     0xa000,
	KIND_JP_V0:    0xb000,
	KIND_RND:      0xc000,
	KIND_DRW:      0xd000,
	KIND_SKP:      0xe09e,
	KIND_SKNP:     0xe0a1,
	KIND_LD_V_DT:  0xf007,
	KIND_LD_V_K:   0xf00a,
	KIND_LD_DT_V:  0xf015,
	KIND_LD_ST_V:  0xf018,
	KIND_ADD_I_V:  0xf01e,
	KIND_LD_F_V:   0xf029,
	KIND_LD_B_V:   0xf033,
	KIND_LD_MEM_V: 0xf055,
	KIND_LD_V_MEM: 0xf065,
}

// Code returns the base instruction word of the kind.
func (kind Kind) Code() Word {
	return kindCode[kind]
}

// Template returns the assembly template of the kind, split into the
// mnemonic and its operand fields.
func (kind Kind) Template() (mnemonic string, fields []string) {
	mnemonic, rest, _ := strings.Cut(kind.String(), " ")
	if len(rest) != 0 {
		fields = strings.Split(rest, ", ")
	}
	return
}

// Instruction is a decoded instruction.
type Instruction struct {
	Kind Kind
	Word Word    // Raw instruction word.
	Dst  Operand // Destination, or first compared, operand.
	Src  Operand // Source, or second compared, operand.
	Aux  Operand // Jump offset, or sprite height.
}

// Decode an instruction word.
func Decode(word Word) (ins Instruction, err error) {
	vx := Vn(word.X())
	vy := Vn(word.Y())

	ins.Word = word
	ins.Kind = KIND_COUNT

	switch word.Family() {
	case 0x0:
		switch word {
		case 0x00e0:
			ins.Kind = KIND_CLS
		case 0x00ee:
			ins.Kind = KIND_RET
		default:
			ins.Kind = KIND_SYS
			ins.Src = Addr(word.NNN())
			ins.Aux = Nibble(0)
		}
	case 0x1:
		ins.Kind = KIND_JP
		ins.Src = Addr(word.NNN())
		ins.Aux = Nibble(0)
	case 0x2:
		ins.Kind = KIND_CALL
		ins.Src = Addr(word.NNN())
	case 0x3, 0x4:
		ins.Kind = KIND_SE_VB
		if word.Family() == 0x4 {
			ins.Kind = KIND_SNE_VB
		}
		ins.Dst = vx
		ins.Src = Byte(word.KK())
	case 0x5, 0x9:
		if word.N() != 0 {
			break
		}
		ins.Kind = KIND_SE_VV
		if word.Family() == 0x9 {
			ins.Kind = KIND_SNE_VV
		}
		ins.Dst = vx
		ins.Src = vy
	case 0x6:
		ins.Kind = KIND_LD_VB
		ins.Dst = vx
		ins.Src = Byte(word.KK())
	case 0x7:
		ins.Kind = KIND_ADD_VB
		ins.Dst = vx
		ins.Src = Byte(word.KK())
	case 0x8:
		switch word.N() {
		case 0x0:
			ins.Kind = KIND_LD_VV
		case 0x1:
			ins.Kind = KIND_OR
		case 0x2:
			ins.Kind = KIND_AND
		case 0x3:
			ins.Kind = KIND_XOR
		case 0x4:
			ins.Kind = KIND_ADD_VV
		case 0x5:
			ins.Kind = KIND_SUB
		case 0x6:
			ins.Kind = KIND_SHR
		case 0x7:
			ins.Kind = KIND_SUBN
		case 0xe:
			ins.Kind = KIND_SHL
		}
		ins.Dst = vx
		if ins.Kind != KIND_SHR && ins.Kind != KIND_SHL {
			ins.Src = vy
		}
	case 0xa:
		ins.Kind = KIND_LD_I
		ins.Dst = I()
		ins.Src = Addr(word.NNN())
	case 0xb:
		ins.Kind = KIND_JP_V0
		ins.Src = Addr(word.NNN())
		ins.Aux = Vn(0)
	case 0xc:
		ins.Kind = KIND_RND
		ins.Dst = vx
		ins.Src = Byte(word.KK())
	case 0xd:
		ins.Kind = KIND_DRW
		ins.Dst = vx
		ins.Src = vy
		ins.Aux = Nibble(word.N())
	case 0xe:
		switch word.KK() {
		case 0x9e:
			ins.Kind = KIND_SKP
			ins.Src = vx
		case 0xa1:
			ins.Kind = KIND_SKNP
			ins.Src = vx
		}
	case 0xf:
		count := int(word.X()) + 1
		switch word.KK() {
		case 0x07:
			ins.Kind = KIND_LD_V_DT
			ins.Dst = vx
			ins.Src = DT()
		case 0x0a:
			ins.Kind = KIND_LD_V_K
			ins.Dst = vx
			ins.Src = Key()
		case 0x15:
			ins.Kind = KIND_LD_DT_V
			ins.Dst = DT()
			ins.Src = vx
		case 0x18:
			ins.Kind = KIND_LD_ST_V
			ins.Dst = ST()
			ins.Src = vx
		case 0x1e:
			ins.Kind = KIND_ADD_I_V
			ins.Dst = I()
			ins.Src = vx
		case 0x29:
			ins.Kind = KIND_LD_F_V
			ins.Dst = I()
			ins.Src = Font(vx)
		case 0x33:
			ins.Kind = KIND_LD_B_V
			ins.Dst = MemRange(I(), 3)
			ins.Src = BCD(vx)
		case 0x55:
			ins.Kind = KIND_LD_MEM_V
			ins.Dst = MemRange(I(), count)
			ins.Src = VRange(count)
		case 0x65:
			ins.Kind = KIND_LD_V_MEM
			ins.Dst = VRange(count)
			ins.Src = MemRange(I(), count)
		}
	}

	if ins.Kind == KIND_COUNT {
		err = ErrOpcode(word)
		ins = Instruction{Kind: KIND_COUNT, Word: word}
	}

	return
}

// DecodeBytes decodes an instruction from its two bytes.
func DecodeBytes(hi, lo uint8) (ins Instruction, err error) {
	return Decode(MakeWord(hi, lo))
}

// String returns the assembly form of the instruction.
func (ins Instruction) String() string {
	w := ins.Word
	if ins.Kind < 0 || ins.Kind >= KIND_COUNT {
		return fmt.Sprintf("dw 0x%04x", uint16(w))
	}

	return strings.NewReplacer(
		"vx", fmt.Sprintf("v%x", w.X()),
		"vy", fmt.Sprintf("v%x", w.Y()),
		"byte", fmt.Sprintf("0x%02x", w.KK()),
		"addr", fmt.Sprintf("0x%03x", w.NNN()),
		"nibble", fmt.Sprintf("%v", w.N()),
	).Replace(ins.Kind.String())
}
