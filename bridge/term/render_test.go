package term

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/display"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

func TestRenderer_Render(t *testing.T) {
	assert := assert.New(t)

	rn := NewRenderer(nil, white, black)

	var frame [display.HEIGHT][display.WIDTH]bool
	frame[0][0] = true
	frame[1][1] = true

	out := string(rn.Render(frame))
	assert.True(strings.HasPrefix(out, CURSOR_HOME))
	assert.Equal(display.HEIGHT/2, strings.Count(out, "\r\n"))
	assert.Equal(display.WIDTH*display.HEIGHT/2, strings.Count(out, HALF_BLOCK))

	lines := strings.Split(out, "\r\n")
	first := strings.TrimPrefix(lines[0], CURSOR_HOME)
	// Pixel (0,0) on, (0,1) off; pixel (1,0) off, (1,1) on.
	assert.True(strings.HasPrefix(first,
		"\x1b[38;2;255;255;255m\x1b[48;2;0;0;0m"+HALF_BLOCK+
			"\x1b[38;2;0;0;0m\x1b[48;2;255;255;255m"+HALF_BLOCK+
			"\x1b[48;2;0;0;0m"+HALF_BLOCK+HALF_BLOCK))
	assert.True(strings.HasSuffix(first, ATTR_RESET))
}

func TestRenderer_Draw(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	rn := NewRenderer(&buf, white, black)

	var frame [display.HEIGHT][display.WIDTH]bool
	assert.NoError(rn.Draw(frame))
	size := buf.Len()
	assert.NotZero(size)

	// Unchanged frames are not redrawn.
	assert.NoError(rn.Draw(frame))
	assert.Equal(size, buf.Len())

	frame[5][5] = true
	assert.NoError(rn.Draw(frame))
	assert.Greater(buf.Len(), size)
}

func TestRenderer_Framebuffer(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	rn := NewRenderer(&buf, white, black)

	fb := display.NewFramebuffer(white, black)
	fb.OnPresent(func() {
		assert.NoError(rn.Draw(fb.Frame()))
	})

	dp := &display.Display{}
	dp.Subscribe(fb)
	dp.Xor(3, 3, true)
	assert.Zero(buf.Len())

	dp.Present()
	assert.NotZero(buf.Len())
}
