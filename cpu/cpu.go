package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/ezrec/chip8/display"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":      fmt.Sprintf("0x%x", MEMORY_SIZE),
	"FONT_BASE":        fmt.Sprintf("0x%x", FONT_BASE),
	"FONT_SPRITE_SIZE": fmt.Sprintf("%v", FONT_SPRITE_SIZE),
	"PROGRAM_START":    fmt.Sprintf("0x%x", PROGRAM_START),
	"STACK_LIMIT":      fmt.Sprintf("%v", STACK_LIMIT),
	"KEY_COUNT":        fmt.Sprintf("%v", KEY_COUNT),
	"SCREEN_WIDTH":     fmt.Sprintf("%v", display.WIDTH),
	"SCREEN_HEIGHT":    fmt.Sprintf("%v", display.HEIGHT),
}

// Cpu is the interpreter state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   *Memory   // Program and data memory.
	Register Registers // Register file.
	Stack    Stack     // Return address stack.
	Timer    Timers    // Delay and sound timers.
	Pc       uint16    // Program counter.

	Display  *display.Display // Framebuffer.
	Keyboard Keyboard         // Keypad, may be nil.
	Rand     func() uint8     // Random byte source. Defaults to math/rand/v2.

	KeyPollInterval time.Duration // Poll rate while waiting for a key.
	KeyPreempt      bool          // Allow a quit signal to interrupt a key wait.

	Ticks int // Instructions executed.
}

// NewCpu creates a new CPU with an empty program loaded.
func NewCpu() (cpu *Cpu) {
	mem, _ := NewMemory(nil)
	cpu = &Cpu{
		Memory:  mem,
		Display: &display.Display{},
		Pc:      PROGRAM_START,
	}

	return
}

// Defines for the assembler.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "   pc: %03X\n", cpu.Pc)
	fmt.Fprintf(&sb, "    i: %03X\n", cpu.Register.I)
	for n, val := range cpu.Register.V {
		fmt.Fprintf(&sb, "   v%X: %02X\n", n, val)
	}
	fmt.Fprintf(&sb, "   dt: %02X\n", cpu.Timer.Delay)
	fmt.Fprintf(&sb, "   st: %02X\n", cpu.Timer.Sound)
	if val, ok := cpu.Stack.Peek(); ok {
		fmt.Fprintf(&sb, "stack: %03X (%v)\n", val, cpu.Stack.Depth())
	} else {
		fmt.Fprintf(&sb, "stack: ---\n")
	}

	text = sb.String()
	return
}

// Reset the CPU state, and load a new program.
// - Clears the registers, timers, stack and display.
// - Reloads memory with the font and the program.
// - Sets the PC to the program start.
func (cpu *Cpu) Reset(program []uint8) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset, %v byte program", len(program))
	}

	mem, err := NewMemory(program)
	if err != nil {
		return
	}

	cpu.Memory = mem
	cpu.Register.Reset()
	cpu.Timer.Reset()
	cpu.Stack.Reset()
	cpu.Pc = PROGRAM_START
	cpu.Ticks = 0

	if cpu.Display == nil {
		cpu.Display = &display.Display{}
	}
	cpu.Display.Clear()

	return
}

// FetchCode fetches the instruction word at the PC.
func (cpu *Cpu) FetchCode() (word Word, err error) {
	if int(cpu.Pc)+1 >= MEMORY_SIZE {
		err = ErrPcEnd
		return
	}

	word, err = cpu.Memory.Fetch(int(cpu.Pc))
	return
}

// Tick executes a single instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Display != nil {
		cpu.Display.Verbose = cpu.Verbose
	}

	word, err := cpu.FetchCode()
	if err != nil {
		return
	}

	ins, err := Decode(word)
	if err != nil {
		return
	}

	jumped, err := cpu.Execute(ins)
	if err != nil {
		return
	}

	if !jumped {
		cpu.Pc += 2
	}

	cpu.Ticks++

	return
}

// random returns the next random byte.
func (cpu *Cpu) random() uint8 {
	if cpu.Rand != nil {
		return cpu.Rand()
	}
	return uint8(rand.Uint32())
}

// setFlag sets VF to 1 or 0.
func (cpu *Cpu) setFlag(flag bool) {
	cpu.Register.V[REG_VF] = 0
	if flag {
		cpu.Register.V[REG_VF] = 1
	}
}

// skipIf advances the PC past the next instruction.
func (cpu *Cpu) skipIf(cond bool) {
	if cond {
		cpu.Pc += 2
	}
}

// Execute executes a single decoded instruction.
// If jumped is true, the PC was set by the instruction and must not be advanced.
func (cpu *Cpu) Execute(ins Instruction) (jumped bool, err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrOpcode(0)) {
			err = &ErrInstruction{Word: ins.Word, Err: err}
		}
	}()
	if cpu.Verbose {
		log.Printf("%03x: %04x %v", cpu.Pc, uint16(ins.Word), ins)
	}

	// Operand values, for the binary operations.
	var a, b uint16
	switch ins.Kind {
	case KIND_ADD_VB, KIND_ADD_VV, KIND_ADD_I_V,
		KIND_OR, KIND_AND, KIND_XOR,
		KIND_SUB, KIND_SUBN, KIND_SHR, KIND_SHL,
		KIND_SE_VB, KIND_SNE_VB, KIND_SE_VV, KIND_SNE_VV:
		a, err = ins.Dst.Read(cpu)
		if err != nil {
			return
		}
		b, err = ins.Src.Read(cpu)
		if err != nil {
			return
		}
	}

	switch ins.Kind {
	case KIND_CLS:
		cpu.Display.Clear()
	case KIND_RET:
		// Resumes after the CALL, with the normal PC advance.
		var pc uint16
		pc, err = cpu.Stack.Pop()
		if err != nil {
			return
		}
		cpu.Pc = pc
	case KIND_SYS, KIND_JP, KIND_JP_V0:
		var target, offset uint16
		target, err = ins.Src.Read(cpu)
		if err != nil {
			return
		}
		offset, err = ins.Aux.Read(cpu)
		if err != nil {
			return
		}
		cpu.Pc = target + offset
		jumped = true
	case KIND_CALL:
		var target uint16
		target, err = ins.Src.Read(cpu)
		if err != nil {
			return
		}
		err = cpu.Stack.Push(cpu.Pc)
		if err != nil {
			return
		}
		cpu.Pc = target
		jumped = true
	case KIND_SE_VB, KIND_SE_VV:
		cpu.skipIf(a == b)
	case KIND_SNE_VB, KIND_SNE_VV:
		cpu.skipIf(a != b)
	case KIND_SKP, KIND_SKNP:
		if cpu.Keyboard == nil {
			err = ErrKeyboard
			return
		}
		var key uint16
		key, err = ins.Src.Read(cpu)
		if err != nil {
			return
		}
		held := key < KEY_COUNT && cpu.Keyboard.KeyHeld(uint8(key))
		cpu.skipIf(held == (ins.Kind == KIND_SKP))
	case KIND_LD_VB, KIND_LD_VV, KIND_LD_I,
		KIND_LD_V_DT, KIND_LD_V_K, KIND_LD_DT_V, KIND_LD_ST_V,
		KIND_LD_F_V, KIND_LD_B_V, KIND_LD_MEM_V, KIND_LD_V_MEM:
		var values []uint16
		values, err = ins.Src.ReadSeq(cpu)
		if err != nil {
			return
		}
		err = ins.Dst.WriteSeq(cpu, values)
	case KIND_ADD_VB, KIND_ADD_I_V:
		err = ins.Dst.Write(cpu, a+b)
	case KIND_ADD_VV:
		cpu.setFlag(a+b > 0xff)
		err = ins.Dst.Write(cpu, a+b)
	case KIND_OR:
		err = ins.Dst.Write(cpu, a|b)
	case KIND_AND:
		err = ins.Dst.Write(cpu, a&b)
	case KIND_XOR:
		err = ins.Dst.Write(cpu, a^b)
	case KIND_SUB:
		cpu.setFlag(a >= b)
		err = ins.Dst.Write(cpu, a-b)
	case KIND_SUBN:
		cpu.setFlag(b >= a)
		err = ins.Dst.Write(cpu, b-a)
	case KIND_SHR:
		cpu.setFlag(a&1 != 0)
		err = ins.Dst.Write(cpu, a>>1)
	case KIND_SHL:
		cpu.setFlag(a&0x80 != 0)
		err = ins.Dst.Write(cpu, a<<1)
	case KIND_RND:
		var mask uint16
		mask, err = ins.Src.Read(cpu)
		if err != nil {
			return
		}
		err = ins.Dst.Write(cpu, uint16(cpu.random())&mask)
	case KIND_DRW:
		err = cpu.draw(ins)
	default:
		err = ErrOpcode(ins.Word)
	}

	return
}

// draw XORs an n-byte sprite at I onto the display at (Vx, Vy).
// VF is set if any lit pixel was turned off.
func (cpu *Cpu) draw(ins Instruction) (err error) {
	x, err := ins.Dst.Read(cpu)
	if err != nil {
		return
	}
	y, err := ins.Src.Read(cpu)
	if err != nil {
		return
	}
	rows, err := ins.Aux.Read(cpu)
	if err != nil {
		return
	}

	var collision bool
	for row := range int(rows) {
		var line uint8
		line, err = cpu.Memory.Read(int(cpu.Register.I) + row)
		if err != nil {
			return
		}
		for col := range 8 {
			bit := (line>>(7-col))&1 != 0
			if cpu.Display.Xor(int(x)+col, int(y)+row, bit) {
				collision = true
			}
		}
	}

	cpu.setFlag(collision)
	return
}
