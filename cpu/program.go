package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Opcode is a single assembled line.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      int      // Load address of the first byte.
	Words     []string // Source words, after macro and equate expansion.
	Bytes     []uint8  // Assembled bytes.
	LinkLabel string   // Label linked into the final two bytes, if any.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug is the listing entry for an address.
type Debug struct {
	*Opcode
	Index int // Byte offset of the address within the opcode.
}

// Debug returns the listing entry containing addr.
// If no opcode covers addr, Debug.Opcode is nil.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the program image, to be loaded at PROGRAM_START.
func (prog *Program) Binary() (bin []uint8) {
	for addr, value := range prog.Codes() {
		offset := int(addr) - PROGRAM_START
		if offset < 0 {
			continue
		}
		for len(bin) <= offset {
			bin = append(bin, 0)
		}
		bin[offset] = value
	}

	return
}

// Codes iterates over the assembled bytes, by address.
func (prog *Program) Codes() iter.Seq2[uint16, uint8] {
	return func(yield func(addr uint16, value uint8) bool) {
		for _, op := range prog.Opcodes {
			addr := uint16(op.Addr)
			for n, value := range op.Bytes {
				if !yield(addr+uint16(n), value) {
					return
				}
			}
		}
	}
}

// Listing writes the assembled bytes of each line next to its source words.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		hex := make([]string, len(op.Bytes))
		for n, value := range op.Bytes {
			hex[n] = fmt.Sprintf("%02x", value)
		}
		_, err = fmt.Fprintf(w, "%4v %03x: %-12s %v\n", op.LineNo, op.Addr,
			strings.Join(hex, " "), strings.Join(op.Words, " "))
		if err != nil {
			return
		}
	}

	return
}

// Disassemble writes a listing of a program image loaded at PROGRAM_START.
// Words that do not decode are listed as 'dw'.
func Disassemble(w io.Writer, bin []uint8) (err error) {
	for offset := 0; offset < len(bin); offset += 2 {
		var lo uint8
		if offset+1 < len(bin) {
			lo = bin[offset+1]
		}
		word := MakeWord(bin[offset], lo)
		ins, _ := Decode(word)
		_, err = fmt.Fprintf(w, "%03x: %04x  %v\n", PROGRAM_START+offset, uint16(word), ins)
		if err != nil {
			return
		}
	}

	return
}
