// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ezrec/chip8/bridge/ebiten"
	"github.com/ezrec/chip8/bridge/term"
	"github.com/ezrec/chip8/config"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/keypad"
	"github.com/ezrec/chip8/romloader"
)

func main() {
	var configFile string
	var verbose bool
	var step bool
	var ui string
	var frames int
	var keys string

	flag.StringVar(&configFile, "c", "", "JSON configuration file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&step, "s", false, "Step mode: wait for a key after each instruction, key 1 quits")
	flag.StringVar(&ui, "ui", "ebiten", "User interface: ebiten, term, or none")
	flag.IntVar(&frames, "frames", 0, "Frame limit when -ui none (0 = no limit)")
	flag.StringVar(&keys, "keys", "", "Scripted hex key presses when -ui none, quits after the last")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one ROM file, got %v", os.Args[0], flag.Args())
	}

	path := flag.Arg(0)

	conf := config.Default()
	if len(configFile) != 0 {
		var err error
		conf, err = config.Load(configFile)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Step = step
	emu.TicksPerFrame = conf.TicksPerFrame
	emu.FrameDuration = conf.FrameDuration()

	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".asm") {
		inf, err := os.Open(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		prog, err := emu.Assembler().Parse(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		err = emu.Load(prog)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	} else {
		rom, romName, err := romloader.LoadROM(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		err = emu.Reset(rom)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		name = romName
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var err error
	switch ui {
	case "ebiten":
		var runner *ebiten.Runner
		runner, err = ebiten.NewRunner(emu, conf)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
		runner.Verbose = verbose
		err = runner.Run(ctx, name)
	case "term":
		var tm *term.Terminal
		tm, err = term.New(emu, conf, os.Stdin, os.Stdout)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
		err = tm.Run(ctx)
	case "none":
		err = runHeadless(ctx, emu, frames, keys)
		fmt.Print(emu.Display.String())
	default:
		log.Fatalf("%v: unknown user interface %q", os.Args[0], ui)
	}

	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
}

// scriptKeyboard is a key script that also quits when the context is done.
type scriptKeyboard struct {
	*keypad.Script
	ctx context.Context
}

func (kb *scriptKeyboard) QuitRequested() bool {
	return kb.ctx.Err() != nil || kb.Script.QuitRequested()
}

// runHeadless runs without presentation, optionally limited to a number
// of frames, with scripted key presses. An interrupt is a normal quit.
func runHeadless(ctx context.Context, emu *emulator.Emulator, frames int, keys string) (err error) {
	defer func() {
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}()

	script, err := keypad.NewScript(keys, len(keys) != 0)
	if err != nil {
		return
	}

	emu.Keyboard = &scriptKeyboard{Script: script, ctx: ctx}
	emu.KeyPreempt = true
	emu.Sleep = func(time.Duration) {}

	if frames <= 0 {
		err = emu.Run(ctx)
		return
	}

	for range frames {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Frame()
		if done || err != nil {
			return
		}
	}

	return
}
