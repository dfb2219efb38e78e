package display

import (
	"image/color"
	"sync"
)

// Framebuffer is a Subscriber which mirrors the display into an RGBA
// pixel buffer, suitable for presentation.
//
// Pixel changes are staged, and only become visible in the buffer
// returned by Frame() once an EVENT_PRESENT arrives.
type Framebuffer struct {
	Active   color.RGBA // Color of a set pixel.
	Inactive color.RGBA // Color of an unset pixel.

	mutex    sync.Mutex
	staged   [HEIGHT][WIDTH]bool
	frame    [HEIGHT][WIDTH]bool
	frames   int
	onUpdate func()
}

var _ Subscriber = (*Framebuffer)(nil)

// NewFramebuffer creates a new framebuffer with the given colors.
func NewFramebuffer(active, inactive color.RGBA) (fb *Framebuffer) {
	fb = &Framebuffer{
		Active:   active,
		Inactive: inactive,
	}

	return
}

// OnPresent registers a function called (from the emulation goroutine)
// after every presented frame.
func (fb *Framebuffer) OnPresent(fn func()) {
	fb.mutex.Lock()
	defer fb.mutex.Unlock()

	fb.onUpdate = fn
}

// Notify implements Subscriber.
func (fb *Framebuffer) Notify(ev Event) {
	fb.mutex.Lock()

	var fn func()

	switch ev.Kind {
	case EVENT_XOR:
		fb.staged[ev.Y][ev.X] = ev.Value
	case EVENT_CLEAR:
		clear(fb.staged[:])
	case EVENT_PRESENT:
		fb.frame = fb.staged
		fb.frames++
		fn = fb.onUpdate
	}

	fb.mutex.Unlock()

	if fn != nil {
		fn()
	}
}

// Frames returns the number of presented frames.
func (fb *Framebuffer) Frames() int {
	fb.mutex.Lock()
	defer fb.mutex.Unlock()

	return fb.frames
}

// Frame returns a copy of the last presented pixel grid.
func (fb *Framebuffer) Frame() (frame [HEIGHT][WIDTH]bool) {
	fb.mutex.Lock()
	defer fb.mutex.Unlock()

	frame = fb.frame
	return
}

// RGBA renders the last presented frame into pix, which must hold
// WIDTH*HEIGHT*4 bytes, and returns it. A nil pix allocates a new buffer.
func (fb *Framebuffer) RGBA(pix []byte) []byte {
	if len(pix) < WIDTH*HEIGHT*4 {
		pix = make([]byte, WIDTH*HEIGHT*4)
	}

	frame := fb.Frame()

	for y := range HEIGHT {
		for x := range WIDTH {
			c := fb.Inactive
			if frame[y][x] {
				c = fb.Active
			}
			offset := (y*WIDTH + x) * 4
			pix[offset+0] = c.R
			pix[offset+1] = c.G
			pix[offset+2] = c.B
			pix[offset+3] = c.A
		}
	}

	return pix
}
