package keypad

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Press(t *testing.T) {
	assert := assert.New(t)

	st := &State{}
	assert.False(st.KeyHeld(3))
	_, ok := st.KeyPressed()
	assert.False(ok)

	st.Press(3)
	st.Press(0xf)
	st.Press(0x10)
	assert.True(st.KeyHeld(3))
	assert.True(st.KeyHeld(0xf))
	assert.False(st.KeyHeld(0x10))
	assert.Equal(uint16(0x8008), st.Held())

	key, ok := st.KeyPressed()
	assert.True(ok)
	assert.Equal(uint8(3), key)
	key, ok = st.KeyPressed()
	assert.True(ok)
	assert.Equal(uint8(0xf), key)
	_, ok = st.KeyPressed()
	assert.False(ok)

	st.Release(3)
	assert.False(st.KeyHeld(3))
	assert.True(st.KeyHeld(0xf))
}

func TestState_SetHeld(t *testing.T) {
	assert := assert.New(t)

	st := &State{}
	st.SetHeld(0x0003)
	st.SetHeld(0x0006)
	assert.Equal(uint16(0x0006), st.Held())

	var keys []uint8
	for {
		key, ok := st.KeyPressed()
		if !ok {
			break
		}
		keys = append(keys, key)
	}
	assert.Equal([]uint8{0, 1, 2}, keys)
}

func TestState_PendingLimit(t *testing.T) {
	assert := assert.New(t)

	st := &State{}
	for n := range PENDING_LIMIT + 4 {
		st.Press(uint8(n % 16))
	}

	key, ok := st.KeyPressed()
	assert.True(ok)
	assert.Equal(uint8(4), key)
}

func TestState_Quit(t *testing.T) {
	assert := assert.New(t)

	st := &State{}
	assert.False(st.QuitRequested())
	st.Quit()
	assert.True(st.QuitRequested())
}

func TestState_Concurrent(t *testing.T) {
	assert := assert.New(t)

	st := &State{}

	var wg sync.WaitGroup
	for n := range 8 {
		wg.Add(1)
		go func(key uint8) {
			defer wg.Done()
			for range 100 {
				st.Press(key)
				st.Release(key)
			}
		}(uint8(n))
	}
	wg.Wait()

	assert.Equal(uint16(0), st.Held())
}
