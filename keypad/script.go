package keypad

import (
	"strconv"
	"strings"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrScriptKey is an invalid key in a script.
type ErrScriptKey string

func (err ErrScriptKey) Error() string {
	return f("script key '%v' is not a hex digit", string(err))
}

// Script replays a fixed sequence of key presses.
// Each press is held until the next press is read.
type Script struct {
	Presses       []uint8 // Remaining key presses, in order.
	QuitWhenEmpty bool    // Request quit once all presses are consumed.

	held int // Last pressed key plus one, or zero.
}

var _ cpu.Keyboard = (*Script)(nil)

// NewScript creates a script from a list of hex digits, separated by
// spaces or commas. For example: "1 2 a f".
func NewScript(text string, quitWhenEmpty bool) (script *Script, err error) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ','
	})

	presses := make([]uint8, 0, len(words))
	for _, word := range words {
		var value uint64
		value, err = strconv.ParseUint(word, 16, 8)
		if err != nil || value >= cpu.KEY_COUNT {
			err = ErrScriptKey(word)
			return
		}
		presses = append(presses, uint8(value))
	}

	script = &Script{
		Presses:       presses,
		QuitWhenEmpty: quitWhenEmpty,
	}
	return
}

// KeyHeld implements cpu.Keyboard.
func (sc *Script) KeyHeld(key uint8) bool {
	return sc.held != 0 && int(key)+1 == sc.held
}

// KeyPressed implements cpu.Keyboard.
func (sc *Script) KeyPressed() (key uint8, ok bool) {
	if len(sc.Presses) == 0 {
		sc.held = 0
		return
	}

	key = sc.Presses[0]
	sc.Presses = sc.Presses[1:]
	sc.held = int(key) + 1
	ok = true
	return
}

// QuitRequested implements cpu.Keyboard.
func (sc *Script) QuitRequested() bool {
	return sc.QuitWhenEmpty && len(sc.Presses) == 0
}
