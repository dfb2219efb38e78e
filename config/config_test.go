package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	config := Default()
	assert.NoError(config.Validate())
	assert.Equal(1, config.TicksPerFrame)
	assert.Equal(time.Second/60, config.FrameDuration())
	assert.Equal(10, config.PixelSize)
	assert.Equal(color.RGBA{0xff, 0xff, 0xff, 0xff}, config.ActiveColor.RGBA())
	assert.Equal(color.RGBA{0, 0, 0, 0xff}, config.InactiveColor.RGBA())

	keys, err := config.KeyMap()
	assert.NoError(err)
	assert.Equal([16]string{
		"X", "1", "2", "3",
		"Q", "W", "E", "A",
		"S", "D", "Z", "C",
		"4", "R", "F", "V",
	}, keys)
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	config, err := Parse([]byte(`{
		"ticks_per_frame": 10,
		"pixel_size": 8,
		"active_color": {"r": 0, "g": 255, "b": 0},
		"keyboard": {"a": "Space", "F": "Enter"}
	}`))
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal(10, config.TicksPerFrame)
	assert.Equal(60, config.FramesPerSecond)
	assert.Equal(8, config.PixelSize)
	assert.Equal(Color{G: 255}, config.ActiveColor)
	assert.Equal(Color{}, config.InactiveColor)

	keys, err := config.KeyMap()
	assert.NoError(err)
	assert.Equal("Space", keys[0xa])
	assert.Equal("Enter", keys[0xf])
	assert.Equal("X", keys[0x0])
}

func TestParse_Invalid(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		json string
		err  error
	}){
		{`{"ticks_per_frame": 0}`, ErrTicksPerFrame},
		{`{"frames_per_second": 0}`, ErrFramesPerSecond},
		{`{"pixel_size": 100}`, ErrPixelSize},
		{`{"keyboard": {"10": "A"}}`, ErrKeyName("10")},
		{`{"keyboard": {"g": "A"}}`, ErrKeyName("g")},
		{`{"keyboard": {"1": ""}}`, ErrKeyName("1")},
	}

	for _, entry := range table {
		config, err := Parse([]byte(entry.json))
		assert.ErrorIs(err, entry.err, entry.json)
		assert.Nil(config, entry.json)
	}

	_, err := Parse([]byte(`{`))
	assert.Error(err)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"frames_per_second": 30}`), 0o644)
	assert.NoError(err)

	config, err := Load(path)
	assert.NoError(err)
	assert.Equal(time.Second/30, config.FrameDuration())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(err, os.ErrNotExist)
}
