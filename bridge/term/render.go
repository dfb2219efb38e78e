package term

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/ezrec/chip8/display"
)

const (
	HALF_BLOCK = "▀" // Upper half block: foreground is the top pixel.

	CURSOR_HOME  = "\x1b[H"
	CURSOR_HIDE  = "\x1b[?25l"
	CURSOR_SHOW  = "\x1b[?25h"
	SCREEN_CLEAR = "\x1b[2J"
	ATTR_RESET   = "\x1b[0m"
)

// Renderer draws presented frames to a terminal with 24-bit color, two
// pixel rows per text line.
type Renderer struct {
	Active   color.RGBA
	Inactive color.RGBA

	w     io.Writer
	last  [display.HEIGHT][display.WIDTH]bool
	drawn bool
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, active, inactive color.RGBA) (rn *Renderer) {
	rn = &Renderer{
		Active:   active,
		Inactive: inactive,
		w:        w,
	}

	return
}

func (rn *Renderer) color(on bool) color.RGBA {
	if on {
		return rn.Active
	}
	return rn.Inactive
}

// Render formats a frame as terminal output, starting from the home position.
func (rn *Renderer) Render(frame [display.HEIGHT][display.WIDTH]bool) []byte {
	var buf bytes.Buffer

	buf.WriteString(CURSOR_HOME)

	for y := 0; y < display.HEIGHT; y += 2 {
		var fg, bg color.RGBA
		first := true
		for x := range display.WIDTH {
			top := rn.color(frame[y][x])
			bottom := rn.color(frame[y+1][x])
			if first || top != fg {
				fmt.Fprintf(&buf, "\x1b[38;2;%d;%d;%dm", top.R, top.G, top.B)
				fg = top
			}
			if first || bottom != bg {
				fmt.Fprintf(&buf, "\x1b[48;2;%d;%d;%dm", bottom.R, bottom.G, bottom.B)
				bg = bottom
			}
			first = false
			buf.WriteString(HALF_BLOCK)
		}
		buf.WriteString(ATTR_RESET)
		buf.WriteString("\r\n")
	}

	return buf.Bytes()
}

// Draw writes the frame if it differs from the last one drawn.
func (rn *Renderer) Draw(frame [display.HEIGHT][display.WIDTH]bool) (err error) {
	if rn.drawn && frame == rn.last {
		return
	}

	_, err = rn.w.Write(rn.Render(frame))
	if err != nil {
		return
	}

	rn.last = frame
	rn.drawn = true

	return
}
