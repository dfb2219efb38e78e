package cpu

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcEnd      = errors.New(f("pc past end of memory"))
	ErrStackEmpty = errors.New(f("stack empty"))
	ErrStackFull  = errors.New(f("stack full"))
	ErrKeyboard   = errors.New(f("keyboard missing"))
	ErrQuit       = errors.New(f("quit requested"))

	// Operand errors
	ErrOperandWrite    = errors.New(f("operand not writable"))
	ErrOperandSequence = errors.New(f("operand is a sequence"))
	ErrOperandRegister = errors.New(f("register index out of range"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrOpcode is a decode failure, carrying the offending instruction word.
type ErrOpcode Word

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x", uint16(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// Bytes returns the raw instruction bytes, in memory order.
func (eo ErrOpcode) Bytes() [2]uint8 {
	return [2]uint8{uint8(eo >> 8), uint8(eo)}
}

// ErrInstruction is a failure while executing a decoded instruction.
type ErrInstruction struct {
	Word Word  // Instruction word being executed.
	Err  error // Underlying failure.
}

func (ei *ErrInstruction) Error() string {
	return f("opcode 0x%04x: %v", uint16(ei.Word), ei.Err)
}

func (ei *ErrInstruction) Unwrap() error {
	return ei.Err
}

// ErrAddress is an access outside of memory.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%x out of range", int(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrProgramSize is a program too large to fit in memory.
type ErrProgramSize int

func (ep ErrProgramSize) Error() string {
	return f("program of %v bytes exceeds 0x%x", int(ep), PROGRAM_MAX_SIZE)
}

func (ep ErrProgramSize) Is(err error) (ok bool) {
	_, ok = err.(ErrProgramSize)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrValueRange is an assembler operand too large for its field.
type ErrValueRange struct {
	Value uint32
	Bits  int
}

func (err ErrValueRange) Error() string {
	return f("0x%x does not fit in %v bits", err.Value, err.Bits)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
