package emulator

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint16 // Program counter of the failing instruction.
	LineNo int    // Source line, if a listing is attached.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc 0x%03x %v", err.Pc, err.Err)
	}
	return f("pc 0x%03x line %v %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
