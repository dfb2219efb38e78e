// Package keypad provides cpu.Keyboard implementations that are not tied to
// a particular window system.
//
// State is fed by a frontend from its own goroutine, and read by the
// interpreter. Script replays a fixed sequence of key presses, for headless
// runs and tests.
package keypad
