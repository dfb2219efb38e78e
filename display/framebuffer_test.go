package display

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramebuffer(t *testing.T) {
	assert := assert.New(t)

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	black := color.RGBA{0, 0, 0, 0xff}

	dp := &Display{}
	fb := NewFramebuffer(white, black)
	dp.Subscribe(fb)

	var presented int
	fb.OnPresent(func() { presented++ })

	dp.Xor(2, 1, true)

	// Not visible until presented.
	assert.False(fb.Frame()[1][2])
	assert.Equal(0, fb.Frames())

	dp.Present()
	assert.True(fb.Frame()[1][2])
	assert.Equal(1, fb.Frames())
	assert.Equal(1, presented)

	pix := fb.RGBA(nil)
	assert.Equal(WIDTH*HEIGHT*4, len(pix))
	offset := (1*WIDTH + 2) * 4
	assert.Equal([]byte{0xff, 0xff, 0xff, 0xff}, pix[offset:offset+4])
	assert.Equal([]byte{0, 0, 0, 0xff}, pix[0:4])

	dp.Clear()
	assert.True(fb.Frame()[1][2])
	dp.Present()
	assert.Equal([HEIGHT][WIDTH]bool{}, fb.Frame())
	assert.Equal(2, presented)

	again := fb.RGBA(pix)
	assert.Equal(&pix[0], &again[0])
	assert.Equal([]byte{0, 0, 0, 0xff}, again[offset:offset+4])
}
