package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	f.Add(uint16(0x00e0), uint16(0x300), uint8(0x12), true)
	f.Add(uint16(0x00ee), uint16(0x300), uint8(0x12), false)
	f.Add(uint16(0xd12f), uint16(0xff8), uint8(0x3e), true)
	f.Add(uint16(0xff65), uint16(0xff8), uint8(0x00), false)
	f.Add(uint16(0xf133), uint16(0xffe), uint8(0xff), true)

	f.Fuzz(func(t *testing.T, opcode uint16, index uint16, value uint8, stack bool) {
		assert := assert.New(t)

		word := Word(opcode)
		code := word.Bytes()

		cpu := NewCpu()
		cpu.Reset(code[:])
		cpu.Rand = func() uint8 { return 0x5a }
		cpu.Keyboard = &testKeyboard{pressed: []uint8{0x3}}
		cpu.KeyPollInterval = 1
		cpu.Register.I = index
		for n := range cpu.Register.V {
			cpu.Register.V[n] = value + uint8(n)
		}
		if stack {
			cpu.Stack.Push(0x400)
		}

		depth := cpu.Stack.Depth()

		err := cpu.Tick()

		ins, derr := Decode(word)
		if derr != nil {
			assert.Equal(derr, err)
			assert.Equal(uint16(PROGRAM_START), cpu.Pc)
			return
		}

		if err != nil {
			var ei *ErrInstruction
			assert.True(errors.As(err, &ei), "%v: %v", ins, err)
			assert.False(errors.Is(err, ErrOpcode(0)), "%v: %v", ins, err)
			return
		}

		switch ins.Kind {
		case KIND_SYS, KIND_JP:
			assert.Equal(word.NNN(), cpu.Pc)
		case KIND_CALL:
			assert.Equal(word.NNN(), cpu.Pc)
			assert.Equal(depth+1, cpu.Stack.Depth())
		case KIND_RET:
			assert.Equal(uint16(0x402), cpu.Pc)
			assert.Equal(depth-1, cpu.Stack.Depth())
		case KIND_JP_V0:
			assert.Equal(word.NNN()+uint16(value), cpu.Pc)
		case KIND_SE_VB, KIND_SNE_VB, KIND_SE_VV, KIND_SNE_VV, KIND_SKP, KIND_SKNP:
			assert.Contains([]uint16{PROGRAM_START + 2, PROGRAM_START + 4}, cpu.Pc)
		default:
			assert.Equal(uint16(PROGRAM_START+2), cpu.Pc)
			assert.Equal(depth, cpu.Stack.Depth())
		}

		assert.Equal(1, cpu.Ticks)
	})
}
