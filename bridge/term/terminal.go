// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package term presents the interpreter on an ANSI terminal in raw mode,
// and feeds typed keys to the keypad.
package term

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/ezrec/chip8/config"
	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/keypad"
)

// Terminal connects an emulator to a terminal.
type Terminal struct {
	Verbose bool

	emu      *emulator.Emulator
	in       *os.File
	out      io.Writer
	fb       *display.Framebuffer
	keys     *Keys
	renderer *Renderer
}

// New attaches a terminal presenter and keypad to the emulator.
func New(emu *emulator.Emulator, conf *config.Config, in *os.File, out io.Writer) (tm *Terminal, err error) {
	names, err := conf.KeyMap()
	if err != nil {
		return
	}

	state := &keypad.State{Verbose: emu.Verbose}
	keys, err := NewKeys(state, names)
	if err != nil {
		return
	}
	keys.Verbose = emu.Verbose

	active := conf.ActiveColor.RGBA()
	inactive := conf.InactiveColor.RGBA()

	tm = &Terminal{
		Verbose:  emu.Verbose,
		emu:      emu,
		in:       in,
		out:      out,
		fb:       display.NewFramebuffer(active, inactive),
		keys:     keys,
		renderer: NewRenderer(out, active, inactive),
	}

	tm.fb.OnPresent(func() {
		err := tm.renderer.Draw(tm.fb.Frame())
		if err != nil && tm.Verbose {
			log.Printf("term: %v", err)
		}
	})

	emu.Display.Subscribe(tm.fb)
	emu.Keyboard = state
	// Ctrl-C must be able to end a blocking key wait.
	emu.KeyPreempt = true

	return
}

// Run the emulator on the terminal until it terminates, or a quit key is
// typed. The terminal mode is restored on return.
func (tm *Terminal) Run(ctx context.Context) (err error) {
	raw, err := MakeRaw(int(tm.in.Fd()))
	if err != nil {
		return
	}

	io.WriteString(tm.out, SCREEN_CLEAR+CURSOR_HIDE)
	defer func() {
		io.WriteString(tm.out, ATTR_RESET+CURSOR_SHOW+"\r\n")
		err = errors.Join(err, raw.Restore())
	}()

	err = tm.run(ctx)
	return
}

// run the emulator and the key reader. A cancelled context is a normal quit.
func (tm *Terminal) run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := make(chan error, 1)
	go func() {
		reader <- tm.keys.ReadFrom(ctx, tm.in)
	}()

	err = tm.emu.Run(ctx)

	cancel()
	rerr := <-reader
	if err == nil {
		err = rerr
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	return
}
