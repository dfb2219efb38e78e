package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/romloader"
)

func main() {
	var output string
	var disassemble bool
	var listing bool
	var verbose bool

	flag.StringVar(&output, "o", "", "Output ROM file (default: source name with .ch8)")
	flag.BoolVar(&disassemble, "d", false, "Disassemble a ROM to stdout")
	flag.BoolVar(&listing, "l", false, "Write an assembly listing to stdout")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one input file, got %v", os.Args[0], flag.Args())
	}

	input := flag.Arg(0)

	if disassemble {
		rom, _, err := romloader.LoadROM(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		err = cpu.Disassemble(os.Stdout, rom)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		return
	}

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	prog, err := emu.Assembler().Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	if listing {
		err = prog.Listing(os.Stdout)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	}

	if len(output) == 0 {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".ch8"
	}
	if output == input {
		log.Fatalf("%v: output would overwrite the source", input)
	}

	err = os.WriteFile(output, prog.Binary(), 0644)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
