// Package cpu implements the interpreter core and assembler for the CHIP-8
// virtual machine.
//
// The machine consists of 4096 bytes of memory (font sprites at 0x000, the
// program at 0x200), sixteen 8-bit registers (v0-vf) plus the 16-bit index
// register (i), a 16 entry return stack, the delay and sound timers, a
// 64x32 display and a 16 key keypad.
//
// Instructions are decoded into an Instruction value whose operands are
// drawn from a small closed set of Operand kinds (constants, registers,
// memory cells, timers, font addresses, BCD digits, the keypad and ranges
// of the above). Every instruction is executed purely through operand reads
// and writes against the Cpu state.
//
// The assembler provides the Cowgod mnemonics, with labels, equates, macros
// and compile-time expression evaluation.
package cpu
