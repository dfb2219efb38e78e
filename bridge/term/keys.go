package term

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"
	"unicode"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/keypad"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

const (
	HOLD_TIME = 500 * time.Millisecond // Key held time after its last byte.

	CTRL_C = 0x03
	ESCAPE = 0x1b
)

// ErrKeyUnknown is a key map entry that is not a single printable character.
type ErrKeyUnknown string

func (err ErrKeyUnknown) Error() string {
	return f("key '%v' is not a single printable character", string(err))
}

// Keys translates terminal input bytes into keypad state.
//
// A terminal reports no key releases, so a key stays held until no byte
// for it has arrived for HoldTime. Auto-repeat keeps a held key alive.
type Keys struct {
	Verbose  bool
	State    *keypad.State
	HoldTime time.Duration

	mutex    sync.Mutex
	keyMap   map[byte]uint8
	lastSeen [cpu.KEY_COUNT]time.Time
}

// NewKeys creates a key translator for the named keys. Letters match
// either case.
func NewKeys(state *keypad.State, names [cpu.KEY_COUNT]string) (keys *Keys, err error) {
	keyMap := map[byte]uint8{}
	for index, name := range names {
		if len(name) != 1 || !unicode.IsPrint(rune(name[0])) {
			err = ErrKeyUnknown(name)
			return
		}
		ch := rune(name[0])
		keyMap[byte(unicode.ToLower(ch))] = uint8(index)
		keyMap[byte(unicode.ToUpper(ch))] = uint8(index)
	}

	keys = &Keys{
		State:    state,
		HoldTime: HOLD_TIME,
		keyMap:   keyMap,
	}

	return
}

// Feed processes a chunk of input read at time now.
// Ctrl-C, or a lone Escape, requests a quit. Escape sequences are ignored.
func (keys *Keys) Feed(data []byte, now time.Time) {
	keys.mutex.Lock()
	defer keys.mutex.Unlock()

	for n, ch := range data {
		switch {
		case ch == CTRL_C:
			keys.State.Quit()
			return
		case ch == ESCAPE:
			if n == len(data)-1 {
				keys.State.Quit()
			}
			return
		}

		key, ok := keys.keyMap[ch]
		if !ok {
			continue
		}

		if keys.Verbose {
			log.Printf("term: key %q -> %x", ch, key)
		}

		if !keys.State.KeyHeld(key) {
			keys.State.Press(key)
		}
		keys.lastSeen[key] = now
	}
}

// Expire releases keys not seen within HoldTime of now.
func (keys *Keys) Expire(now time.Time) {
	keys.mutex.Lock()
	defer keys.mutex.Unlock()

	for key := range uint8(cpu.KEY_COUNT) {
		if !keys.State.KeyHeld(key) {
			continue
		}
		if now.Sub(keys.lastSeen[key]) >= keys.HoldTime {
			keys.State.Release(key)
		}
	}
}

// ReadFrom feeds input from r until the context is done or r fails.
// An empty read (io.EOF from a raw terminal read timeout) only expires keys.
func (keys *Keys) ReadFrom(ctx context.Context, r io.Reader) (err error) {
	buf := make([]byte, 64)

	for ctx.Err() == nil {
		var n int
		n, err = r.Read(buf)
		now := time.Now()
		if n > 0 {
			keys.Feed(buf[:n], now)
		}
		keys.Expire(now)

		if errors.Is(err, io.EOF) {
			err = nil
			continue
		}
		if err != nil {
			return
		}
	}

	return
}
