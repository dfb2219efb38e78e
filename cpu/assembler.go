// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// Assembler is a single pass macro assembler for CHIP-8 programs,
// using Cowgod's mnemonics.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) > 1 && word[0] == '#' {
		word = "0x" + word[1:]
	}
	value, err = strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// fieldValue returns the value of a word, which must fit in bits.
// Negative values are accepted in two's complement form.
func (asm *Assembler) fieldValue(word string, bits int) (value uint16, err error) {
	v64, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v64 >= (1<<bits) || v64 < -(1<<(bits-1)) {
		err = ErrValueRange{Value: uint32(v64), Bits: bits}
		return
	}

	value = uint16(v64) & ((1 << bits) - 1)
	return
}

// register returns the register index of a 'vN' word.
func (asm *Assembler) register(word string) (index uint8, err error) {
	if len(word) != 2 || (word[0] != 'v' && word[0] != 'V') {
		err = ErrRegisterInvalid
		return
	}

	n, err := strconv.ParseUint(word[1:], 16, 4)
	if err != nil {
		err = ErrRegisterInvalid
		return
	}

	index = uint8(n)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// splitWords splits a line on whitespace and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddr gets the address of the next emitted byte.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return PROGRAM_START
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + len(last.Bytes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = splitWords(strings.Join(words[2:], " "))
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if size := asm.currentAddr() - PROGRAM_START; size > PROGRAM_MAX_SIZE {
		err = ErrProgramSize(size)
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		if len(op.Bytes) < 2 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", label, op.LineNo, op.Words)
		}
		op.Bytes[len(op.Bytes)-2] |= uint8(addr >> 8)
		op.Bytes[len(op.Bytes)-1] |= uint8(addr)
	}

	prog = &Program{
		Opcodes: asm.Opcode,
	}
	asm.Opcode = nil

	return
}

// encode an instruction of a kind, from its operand words.
func (asm *Assembler) encode(kind Kind, fields []string, args []string) (word Word, label string, err error) {
	word = kind.Code()

	for n, field := range fields {
		arg := args[n]
		var value uint16
		var index uint8
		switch field {
		case "vx":
			index, err = asm.register(arg)
			word |= Word(index) << 8
		case "vy":
			index, err = asm.register(arg)
			word |= Word(index) << 4
		case "byte":
			value, err = asm.fieldValue(arg, 8)
			word |= Word(value)
		case "nibble":
			value, err = asm.fieldValue(arg, 4)
			word |= Word(value)
		case "addr":
			value, err = asm.fieldValue(arg, 12)
			if err != nil && reLabel.MatchString(arg) {
				label = arg
				err = nil
			}
			word |= Word(value)
		default:
			if !strings.EqualFold(field, arg) {
				err = ErrOperandInvalid
			}
		}
		if err != nil {
			return
		}
	}

	return
}

// parseInstruction matches the words against the instruction templates.
func (asm *Assembler) parseInstruction(words []string) (bytes []uint8, label string, err error) {
	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	known := false
	most := 0
	for kind := range KIND_COUNT {
		name, fields := kind.Template()
		if name != mnemonic {
			continue
		}
		known = true
		most = max(most, len(fields))
		if len(fields) != len(args) {
			continue
		}

		word, link, kind_err := asm.encode(kind, fields, args)
		if kind_err != nil {
			if err == nil {
				err = kind_err
			}
			continue
		}

		code := word.Bytes()
		bytes = code[:]
		label = link
		err = nil
		return
	}

	switch {
	case !known:
		err = ErrInstructionInvalid
	case err != nil:
		// Report the first operand error.
	case len(args) > most:
		err = ErrOpcodeExtraArgs
	default:
		err = ErrOpcodeValueMissing
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	defer func() {
		if len(bytes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: asm.currentAddr(), Words: words, Bytes: bytes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	switch strings.ToLower(words[0]) {
	case "db":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value uint16
			value, err = asm.fieldValue(word, 8)
			if err != nil {
				bytes = nil
				return
			}
			bytes = append(bytes, uint8(value))
		}
	case "dw":
		if len(words) != 2 {
			if len(words) < 2 {
				err = ErrOpcodeValueMissing
			} else {
				err = ErrOpcodeExtraArgs
			}
			return
		}
		var value uint16
		value, err = asm.fieldValue(words[1], 16)
		if err != nil {
			if !reLabel.MatchString(words[1]) {
				return
			}
			label = words[1]
			value = 0
			err = nil
		}
		bytes = []uint8{uint8(value >> 8), uint8(value)}
	default:
		bytes, label, err = asm.parseInstruction(words)
	}

	return
}
