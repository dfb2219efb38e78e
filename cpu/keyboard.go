package cpu

import (
	"log"
	"time"
)

const (
	KEY_COUNT         = 16               // Number of logical keys, 0x0 - 0xF.
	KEY_POLL_INTERVAL = time.Second / 60 // Default blocking key read poll rate.
)

// Keyboard is the logical keypad, as seen by the interpreter.
type Keyboard interface {
	// KeyHeld returns true if the logical key is currently held down.
	KeyHeld(key uint8) bool
	// KeyPressed returns the next pending key press, if any. Never blocks.
	KeyPressed() (key uint8, ok bool)
	// QuitRequested returns true once an external quit signal arrived.
	QuitRequested() bool
}

// WaitKeyPress blocks until a key is pressed, polling the keyboard every
// KeyPollInterval.
//
// A quit signal does not interrupt the wait unless KeyPreempt is set, in
// which case ErrQuit is returned.
func (cpu *Cpu) WaitKeyPress() (key uint8, err error) {
	if cpu.Keyboard == nil {
		err = ErrKeyboard
		return
	}

	interval := cpu.KeyPollInterval
	if interval <= 0 {
		interval = KEY_POLL_INTERVAL
	}

	if cpu.Verbose {
		log.Printf("cpu: waiting for key press")
	}

	for {
		var ok bool
		key, ok = cpu.Keyboard.KeyPressed()
		if ok && key < KEY_COUNT {
			return
		}

		if cpu.KeyPreempt && cpu.Keyboard.QuitRequested() {
			err = ErrQuit
			return
		}

		time.Sleep(interval)
	}
}
