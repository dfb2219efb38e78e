package romloader

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testROM = []byte{0x00, 0xe0, 0xa2, 0x2a, 0x60, 0x0c, 0xd0, 0x15, 0x12, 0x08}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writeZip(t *testing.T, name string, files map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for fname, data := range files {
		fw, err := w.Create(fname)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func writeGzip(t *testing.T, name string, inner string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := gzip.NewWriter(f)
	w.Name = inner
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

func writeTarGz(t *testing.T, name string, files map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	for fname, data := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     fname,
			Mode:     0644,
			Size:     int64(len(data)),
			Typeflag: tar.TypeReg,
		}))
		_, err = tw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return path
}

func TestLoadROM_Raw(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "maze.ch8", testROM)
	data, name, err := LoadROM(path)
	assert.NoError(err)
	assert.Equal(testROM, data)
	assert.Equal("maze.ch8", name)

	// Unknown extensions are still raw programs.
	path = writeFile(t, "MAZE", testROM)
	data, name, err = LoadROM(path)
	assert.NoError(err)
	assert.Equal(testROM, data)
	assert.Equal("MAZE", name)
}

func TestLoadROM_Errors(t *testing.T) {
	assert := assert.New(t)

	_, _, err := LoadROM(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.ErrorIs(err, os.ErrNotExist)

	_, _, err = LoadROM(writeFile(t, "empty.ch8", nil))
	assert.ErrorIs(err, ErrEmpty)

	_, _, err = LoadROM(writeFile(t, "big.ch8", make([]byte, maxROMSize+1)))
	assert.ErrorIs(err, ErrFileTooLarge)

	data, _, err := LoadROM(writeFile(t, "full.ch8", make([]byte, maxROMSize)))
	assert.NoError(err)
	assert.Len(data, maxROMSize)

	_, _, err = LoadROM(writeFile(t, "maze.ch8.xz", testROM))
	assert.ErrorIs(err, ErrUnsupportedFormat)
}

func TestLoadROM_Zip(t *testing.T) {
	assert := assert.New(t)

	path := writeZip(t, "games.zip", map[string][]byte{
		"README.txt":      []byte("not a rom"),
		"games/MAZE.CH8":  testROM,
		"games/notes.doc": {0xff},
	})
	data, name, err := LoadROM(path)
	assert.NoError(err)
	assert.Equal(testROM, data)
	assert.Equal("MAZE.CH8", name)

	path = writeZip(t, "empty.zip", map[string][]byte{
		"README.txt": []byte("not a rom"),
	})
	_, _, err = LoadROM(path)
	assert.ErrorIs(err, ErrNoROMFile)

	path = writeZip(t, "big.zip", map[string][]byte{
		"big.ch8": make([]byte, maxROMSize+1),
	})
	_, _, err = LoadROM(path)
	assert.ErrorIs(err, ErrFileTooLarge)
}

func TestLoadROM_Gzip(t *testing.T) {
	assert := assert.New(t)

	path := writeGzip(t, "maze.ch8.gz", "maze.ch8", testROM)
	data, name, err := LoadROM(path)
	assert.NoError(err)
	assert.Equal(testROM, data)
	assert.Equal("maze.ch8", name)

	// No embedded name, so the archive name less its extension.
	path = writeGzip(t, "pong.ch8.gz", "", testROM)
	data, name, err = LoadROM(path)
	assert.NoError(err)
	assert.Equal(testROM, data)
	assert.Equal("pong.ch8", name)
}

func TestLoadROM_TarGz(t *testing.T) {
	assert := assert.New(t)

	path := writeTarGz(t, "games.tar.gz", map[string][]byte{
		"games/pong.c8": testROM,
	})
	data, name, err := LoadROM(path)
	assert.NoError(err)
	assert.Equal(testROM, data)
	assert.Equal("pong.c8", name)

	path = writeTarGz(t, "docs.tgz", map[string][]byte{
		"docs/readme.txt": []byte("hello"),
	})
	_, _, err = LoadROM(path)
	assert.ErrorIs(err, ErrNoROMFile)
}

func TestDetectFormat(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		header []byte
		path   string
		format formatType
	}{
		{[]byte{0x50, 0x4B, 0x03, 0x04, 0x00}, "game.ch8", formatZIP},
		{[]byte{0x50, 0x4B, 0x05, 0x06, 0x00}, "game", formatZIP},
		{[]byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C, 0x00}, "game.bin", format7z},
		{[]byte{0x1F, 0x8B, 0x08}, "game", formatGzip},
		{[]byte("Rar!\x1a\x07"), "game", formatRAR},
		{[]byte{0x00, 0xe0}, "game.zip", formatZIP},
		{[]byte{0x00, 0xe0}, "game.7z", format7z},
		{[]byte{0x00, 0xe0}, "game.TGZ", formatGzip},
		{[]byte{0x00, 0xe0}, "game.rar", formatRAR},
		{[]byte{0x00, 0xe0}, "game.bz2", formatUnknown},
		{[]byte{0x00, 0xe0}, "game.ch8", formatRaw},
		{[]byte{0x12}, "game", formatRaw},
	}

	for n, entry := range table {
		assert.Equal(entry.format, detectFormat(entry.header, entry.path), "%d: %v", n, entry.path)
	}
}

func TestIsROMFile(t *testing.T) {
	assert := assert.New(t)

	assert.True(isROMFile("pong.ch8"))
	assert.True(isROMFile("dir/PONG.C8"))
	assert.True(isROMFile("pong.rom"))
	assert.False(isROMFile("pong.txt"))
	assert.False(isROMFile("ch8"))
}

func TestLoadROM_ErrLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "missing.ch8")
	_, _, err := LoadROM(path)

	var el *ErrLoad
	if assert.ErrorAs(err, &el) {
		assert.Equal("failed to open file", el.Action)
		assert.ErrorIs(el, os.ErrNotExist)
		assert.Contains(el.Error(), "failed to open file: ")
	}

	empty := writeFile(t, "empty.ch8", nil)
	_, _, err = LoadROM(empty)
	if assert.ErrorAs(err, &el) {
		assert.Equal(empty, el.Action)
		assert.Equal(empty+": "+ErrEmpty.Error(), err.Error())
	}
}
