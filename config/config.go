// Package config loads the interpreter configuration from a JSON document.
package config

import (
	"encoding/json"
	"errors"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrTicksPerFrame   = errors.New(f("ticks_per_frame must be positive"))
	ErrFramesPerSecond = errors.New(f("frames_per_second must be between 1 and 1000"))
	ErrPixelSize       = errors.New(f("pixel_size must be between 1 and 64"))
)

// ErrKeyName is an invalid entry in the keyboard map.
type ErrKeyName string

func (err ErrKeyName) Error() string {
	return f("keyboard entry '%v' is invalid", string(err))
}

// DefaultKeyboard maps each hex digit to a physical key name.
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var DefaultKeyboard = map[string]string{
	"1": "1", "2": "2", "3": "3", "C": "4",
	"4": "Q", "5": "W", "6": "E", "D": "R",
	"7": "A", "8": "S", "9": "D", "E": "F",
	"A": "Z", "0": "X", "B": "C", "F": "V",
}

// Color is an RGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBA returns the opaque color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Config is the interpreter configuration.
type Config struct {
	TicksPerFrame   int               `json:"ticks_per_frame"`
	FramesPerSecond int               `json:"frames_per_second"`
	PixelSize       int               `json:"pixel_size"`
	ActiveColor     Color             `json:"active_color"`
	InactiveColor   Color             `json:"inactive_color"`
	Keyboard        map[string]string `json:"keyboard"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		TicksPerFrame:   1,
		FramesPerSecond: 60,
		PixelSize:       10,
		ActiveColor:     Color{R: 0xff, G: 0xff, B: 0xff},
		InactiveColor:   Color{},
		Keyboard:        map[string]string{},
	}
}

// Load reads a configuration file. Fields missing from the file keep
// their default values.
func Load(path string) (config *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	config, err = Parse(data)
	return
}

// Parse decodes a JSON configuration document.
func Parse(data []byte) (config *Config, err error) {
	config = Default()

	err = json.Unmarshal(data, config)
	if err != nil {
		config = nil
		return
	}

	err = config.Validate()
	if err != nil {
		config = nil
		return
	}

	return
}

// Validate checks the configuration values.
func (config *Config) Validate() (err error) {
	if config.TicksPerFrame < 1 {
		return ErrTicksPerFrame
	}
	if config.FramesPerSecond < 1 || config.FramesPerSecond > 1000 {
		return ErrFramesPerSecond
	}
	if config.PixelSize < 1 || config.PixelSize > 64 {
		return ErrPixelSize
	}

	_, err = config.KeyMap()
	return
}

// FrameDuration is the target period of a single frame.
func (config *Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(max(config.FramesPerSecond, 1))
}

// KeyMap returns the physical key name for each logical key.
// Hex digits are matched case-insensitively. Logical keys missing from the
// configuration use DefaultKeyboard.
func (config *Config) KeyMap() (keys [cpu.KEY_COUNT]string, err error) {
	for digit, name := range DefaultKeyboard {
		index, _ := strconv.ParseUint(digit, 16, 8)
		keys[index] = name
	}

	for digit, name := range config.Keyboard {
		index, perr := strconv.ParseUint(strings.TrimSpace(digit), 16, 8)
		if perr != nil || index >= cpu.KEY_COUNT {
			err = ErrKeyName(digit)
			return
		}
		if len(strings.TrimSpace(name)) == 0 {
			err = ErrKeyName(digit)
			return
		}
		keys[index] = strings.TrimSpace(name)
	}

	return
}
