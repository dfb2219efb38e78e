// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package display implements the 64x32 monochrome display of the CHIP-8
// virtual machine.
//
// The display never renders anything itself. Every state change is
// published as an Event to the subscribers, which are free to present the
// grid however they like.
package display

import (
	"log"
	"strings"
)

const (
	WIDTH  = 64 // Display width, in pixels.
	HEIGHT = 32 // Display height, in pixels.
)

// EventKind is the type of a display change notification.
type EventKind int

//go:generate go tool stringer -linecomment -type=EventKind
const (
	EVENT_XOR     = EventKind(0) // xor
	EVENT_CLEAR   = EventKind(1) // clear
	EVENT_PRESENT = EventKind(2) // present
)

// Event is a display change notification.
//
// For EVENT_XOR, X and Y are the (wrapped) pixel coordinates and Value is
// the final state of the pixel.
type Event struct {
	Kind  EventKind
	X     int
	Y     int
	Value bool
}

// Subscriber listens to display events.
type Subscriber interface {
	Notify(ev Event)
}

// SubscriberFunc adapts a function to a Subscriber.
type SubscriberFunc func(ev Event)

func (fn SubscriberFunc) Notify(ev Event) {
	fn(ev)
}

// Display is the pixel grid.
type Display struct {
	Verbose bool // If set, log clear and present events.

	Pixel [HEIGHT][WIDTH]bool // Pixel state, indexed by [y][x].

	subscriber []*Subscriber
}

// Subscribe adds a subscriber, and returns a function which removes it.
func (dp *Display) Subscribe(sub Subscriber) (cancel func()) {
	entry := &sub
	dp.subscriber = append(dp.subscriber, entry)

	cancel = func() {
		for n, other := range dp.subscriber {
			if other == entry {
				dp.subscriber = append(dp.subscriber[:n], dp.subscriber[n+1:]...)
				return
			}
		}
	}

	return
}

func (dp *Display) notify(ev Event) {
	for _, sub := range dp.subscriber {
		(*sub).Notify(ev)
	}
}

// Get returns the state of the pixel at (x mod WIDTH, y mod HEIGHT).
func (dp *Display) Get(x, y int) bool {
	x, y = wrap(x, y)
	return dp.Pixel[y][x]
}

// Xor toggles the pixel at (x mod WIDTH, y mod HEIGHT) by bit.
// Returns true if the pixel went from set to unset.
func (dp *Display) Xor(x, y int, bit bool) (collision bool) {
	if !bit {
		return
	}

	x, y = wrap(x, y)

	collision = dp.Pixel[y][x]
	dp.Pixel[y][x] = !collision

	dp.notify(Event{Kind: EVENT_XOR, X: x, Y: y, Value: dp.Pixel[y][x]})

	return
}

// Clear unsets all pixels.
func (dp *Display) Clear() {
	if dp.Verbose {
		log.Printf("display: clear")
	}

	clear(dp.Pixel[:])

	dp.notify(Event{Kind: EVENT_CLEAR})
}

// Present signals the end of a frame.
func (dp *Display) Present() {
	dp.notify(Event{Kind: EVENT_PRESENT})
}

// Count returns the number of set pixels.
func (dp *Display) Count() (count int) {
	for y := range HEIGHT {
		for x := range WIDTH {
			if dp.Pixel[y][x] {
				count++
			}
		}
	}

	return
}

// String renders the display as text, one line per row.
func (dp *Display) String() string {
	var sb strings.Builder

	for y := range HEIGHT {
		for x := range WIDTH {
			if dp.Pixel[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func wrap(x, y int) (int, int) {
	x %= WIDTH
	if x < 0 {
		x += WIDTH
	}
	y %= HEIGHT
	if y < 0 {
		y += HEIGHT
	}
	return x, y
}
