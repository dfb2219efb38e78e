// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
)

const (
	TICKS_PER_FRAME   = 1  // Default instructions per frame.
	FRAMES_PER_SECOND = 60 // Default frame rate.
	STEP_QUIT_KEY     = 1  // Step mode key that ends execution.
)

var _emulator_defines = map[string]string{
	"FRAMES_PER_SECOND": fmt.Sprintf("%v", FRAMES_PER_SECOND),
}

// Emulator state. CPU + execution loop.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	TicksPerFrame int           // Instructions executed per frame.
	FrameDuration time.Duration // Target frame period.
	Step          bool          // Wait for a key press after each instruction.

	Sleep  func(time.Duration) // Frame pacing. Defaults to time.Sleep.
	Frames int                 // Frames presented since reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:           cpu.NewCpu(),
		Program:       &cpu.Program{},
		TicksPerFrame: TICKS_PER_FRAME,
		FrameDuration: time.Second / FRAMES_PER_SECOND,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assembler returns an assembler with the emulator defines predefined.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	return
}

// Reset the emulator, and load a ROM image with no program listing.
func (emu *Emulator) Reset(rom []uint8) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Reset(rom)
	if err != nil {
		return
	}

	emu.Frames = 0
	emu.Program = &cpu.Program{}

	return
}

// Load resets the emulator with an assembled program.
// The program listing is used for runtime error locations.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	err = emu.Reset(prog.Binary())
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator.
// done is set on normal termination: the PC ran off the end of memory,
// or a quit was requested.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrPcEnd) || errors.Is(err, cpu.ErrQuit) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: state\n%v", emu.Cpu)
	}

	if emu.Step {
		var key uint8
		key, err = emu.Cpu.WaitKeyPress()
		if errors.Is(err, cpu.ErrQuit) {
			err = nil
			done = true
			return
		}
		if err != nil {
			return
		}
		if key == STEP_QUIT_KEY {
			done = true
			return
		}
	}

	return
}

// quitRequested polls the external quit signal.
func (emu *Emulator) quitRequested() bool {
	return emu.Cpu.Keyboard != nil && emu.Cpu.Keyboard.QuitRequested()
}

// Frame runs one frame: the tick batch, the frame-presented notification,
// and the timer decrement.
func (emu *Emulator) Frame() (done bool, err error) {
	if emu.quitRequested() {
		if emu.Verbose {
			log.Printf("emulator: quit requested")
		}
		done = true
		return
	}

	ticks := max(emu.TicksPerFrame, 1)
	for range ticks {
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	emu.Cpu.Display.Present()
	emu.Cpu.Timer.Decrement()
	emu.Frames++

	return
}

// Run frames until termination, paced to FrameDuration.
// Returns ctx.Err() if the context is cancelled first.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	sleep := emu.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		start := time.Now()

		var done bool
		done, err = emu.Frame()
		if done || err != nil {
			return
		}

		remain := emu.FrameDuration - time.Since(start)
		if remain > 0 {
			sleep(remain)
		}
	}
}
