// Package ebiten presents the interpreter in an Ebiten window, and feeds
// the window's keyboard to the keypad.
package ebiten

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ezrec/chip8/config"
	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/keypad"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrKeyUnknown is a key map entry with no matching Ebiten key.
type ErrKeyUnknown string

func (err ErrKeyUnknown) Error() string {
	return f("key '%v' is not a known keyboard key", string(err))
}

// LookupKey finds the Ebiten key for a configuration key name.
// Names are matched case-insensitively, and a bare digit matches its
// Digit key.
func LookupKey(name string) (key ebiten.Key, err error) {
	for key = ebiten.Key(0); key <= ebiten.KeyMax; key++ {
		keyName := key.String()
		if strings.EqualFold(keyName, name) || strings.EqualFold(keyName, "Digit"+name) {
			return
		}
	}

	err = ErrKeyUnknown(name)
	return
}

// Runner implements ebiten.Game for an emulator.
//
// The emulator runs in its own goroutine, paced by Emulator.Run. The
// Ebiten update loop only polls the keyboard and presents the last frame.
type Runner struct {
	Verbose bool

	emu       *emulator.Emulator
	keys      *keypad.State
	fb        *display.Framebuffer
	keyMap    [cpu.KEY_COUNT]ebiten.Key
	pixelSize int

	image *ebiten.Image
	pix   []byte

	done     chan error
	finished bool
	err      error
}

// NewRunner attaches a window presenter and keypad to the emulator.
func NewRunner(emu *emulator.Emulator, conf *config.Config) (runner *Runner, err error) {
	names, err := conf.KeyMap()
	if err != nil {
		return
	}

	runner = &Runner{
		emu:       emu,
		keys:      &keypad.State{Verbose: emu.Verbose},
		fb:        display.NewFramebuffer(conf.ActiveColor.RGBA(), conf.InactiveColor.RGBA()),
		pixelSize: conf.PixelSize,
		done:      make(chan error, 1),
	}

	for index, name := range names {
		runner.keyMap[index], err = LookupKey(name)
		if err != nil {
			runner = nil
			return
		}
	}

	emu.Display.Subscribe(runner.fb)
	emu.Keyboard = runner.keys
	// Closing the window must be able to end a blocking key wait.
	emu.KeyPreempt = true

	return
}

// Run opens the window, and runs the emulator until it terminates or the
// window is closed.
func (runner *Runner) Run(ctx context.Context, title string) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		runner.done <- runner.emu.Run(ctx)
	}()

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(display.WIDTH*runner.pixelSize, display.HEIGHT*runner.pixelSize)
	ebiten.SetTPS(ebiten.DefaultTPS)

	err = ebiten.RunGame(runner)

	runner.keys.Quit()
	cancel()

	if !runner.finished {
		runner.err = <-runner.done
	}

	if errors.Is(err, ebiten.Termination) || err == nil {
		err = runner.err
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	return
}

// pollInput reads the mapped keys into the keypad.
func (runner *Runner) pollInput() {
	var mask uint16
	for index, key := range runner.keyMap {
		if ebiten.IsKeyPressed(key) {
			mask |= 1 << index
		}
	}

	runner.keys.SetHeld(mask)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if runner.Verbose {
			log.Printf("ebiten: escape pressed")
		}
		runner.keys.Quit()
	}
}

// Update implements ebiten.Game.
func (runner *Runner) Update() error {
	select {
	case runner.err = <-runner.done:
		runner.finished = true
		return ebiten.Termination
	default:
	}

	if ebiten.IsFocused() {
		runner.pollInput()
	}

	return nil
}

// Draw implements ebiten.Game.
func (runner *Runner) Draw(screen *ebiten.Image) {
	if runner.image == nil {
		runner.image = ebiten.NewImage(display.WIDTH, display.HEIGHT)
	}

	runner.pix = runner.fb.RGBA(runner.pix)
	runner.image.WritePixels(runner.pix)

	screen.DrawImage(runner.image, nil)
}

// Layout implements ebiten.Game.
func (runner *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return display.WIDTH, display.HEIGHT
}
