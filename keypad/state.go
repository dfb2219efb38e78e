package keypad

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/ezrec/chip8/cpu"
)

const (
	PENDING_LIMIT = 16 // Maximum queued key presses.
)

// State is the shared keypad state between a frontend and the interpreter.
type State struct {
	Verbose bool

	held    atomic.Uint32
	quit    atomic.Bool
	mutex   sync.Mutex
	pending []uint8
}

var _ cpu.Keyboard = (*State)(nil)

// queue a key press, dropping the oldest if the queue is full.
func (st *State) queue(key uint8) {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	if len(st.pending) >= PENDING_LIMIT {
		st.pending = st.pending[1:]
	}
	st.pending = append(st.pending, key)
}

// Press marks the key held, and queues a key press.
func (st *State) Press(key uint8) {
	if key >= cpu.KEY_COUNT {
		return
	}

	if st.Verbose {
		log.Printf("keypad: press %x", key)
	}

	for {
		old := st.held.Load()
		if st.held.CompareAndSwap(old, old|(1<<key)) {
			break
		}
	}

	st.queue(key)
}

// Release marks the key as no longer held.
func (st *State) Release(key uint8) {
	if key >= cpu.KEY_COUNT {
		return
	}

	for {
		old := st.held.Load()
		if st.held.CompareAndSwap(old, old&^(1<<key)) {
			break
		}
	}
}

// SetHeld replaces the held key mask. Keys newly held are queued as presses.
func (st *State) SetHeld(mask uint16) {
	old := st.held.Swap(uint32(mask))
	pressed := uint32(mask) &^ old
	for key := range uint8(cpu.KEY_COUNT) {
		if pressed&(1<<key) != 0 {
			if st.Verbose {
				log.Printf("keypad: press %x", key)
			}
			st.queue(key)
		}
	}
}

// Held returns the held key mask.
func (st *State) Held() uint16 {
	return uint16(st.held.Load())
}

// Quit signals the interpreter to stop.
func (st *State) Quit() {
	st.quit.Store(true)
}

// KeyHeld implements cpu.Keyboard.
func (st *State) KeyHeld(key uint8) bool {
	return key < cpu.KEY_COUNT && st.held.Load()&(1<<key) != 0
}

// KeyPressed implements cpu.Keyboard.
func (st *State) KeyPressed() (key uint8, ok bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	if len(st.pending) == 0 {
		return
	}

	key = st.pending[0]
	st.pending = st.pending[1:]
	ok = true
	return
}

// QuitRequested implements cpu.Keyboard.
func (st *State) QuitRequested() bool {
	return st.quit.Load()
}
