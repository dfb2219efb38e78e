// Package romloader handles loading CHIP-8 ROM files from various sources,
// including compressed archives (ZIP, 7z, gzip, tar.gz, RAR).
package romloader

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// Maximum ROM size, the memory available above the program start.
const maxROMSize = cpu.PROGRAM_MAX_SIZE

var (
	// ErrNoROMFile is returned when no ROM file is found in an archive
	ErrNoROMFile = errors.New(f("no .ch8 file found in archive"))
	// ErrUnsupportedFormat is returned for recognized but unsupported formats
	ErrUnsupportedFormat = errors.New(f("unsupported file format"))
	// ErrFileTooLarge is returned when the ROM exceeds the program memory
	ErrFileTooLarge = errors.New(f("file exceeds maximum size limit"))
	// ErrEmpty is returned for a zero length ROM
	ErrEmpty = errors.New(f("file is empty"))
)

// ErrLoad is a failure while loading a ROM.
type ErrLoad struct {
	Action string // What was being done, already localised.
	Err    error  // Underlying failure.
}

func (el *ErrLoad) Error() string {
	return f("%v: %v", el.Action, el.Err)
}

func (el *ErrLoad) Unwrap() error {
	return el.Err
}

// loadError wraps err with a localised description of the failed action.
func loadError(err error, format string, args ...any) error {
	return &ErrLoad{Action: f(format, args...), Err: err}
}

// formatType represents the detected file format
type formatType int

const (
	formatUnknown formatType = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// unsupportedExt lists compression formats that are recognized but not handled.
var unsupportedExt = []string{".bz2", ".xz", ".zst", ".lz", ".lzma", ".tar"}

// romExt lists the ROM file extensions searched for in archives.
var romExt = []string{".ch8", ".c8", ".rom"}

// LoadROM loads a ROM from a file path. It automatically detects and extracts
// from archives. Returns the ROM data, the filename of the ROM (useful for display),
// and any error encountered.
func LoadROM(path string) ([]byte, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", loadError(err, "failed to open file")
	}
	defer file.Close()

	// Read header for magic byte detection
	header := make([]byte, 16)
	n, err := file.Read(header)
	if err != nil && err != io.EOF {
		return nil, "", loadError(err, "failed to read file header")
	}
	header = header[:n]

	if n == 0 {
		return nil, "", loadError(ErrEmpty, "%v", path)
	}

	// Detect format
	format := detectFormat(header, path)

	// Reset file position
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, "", loadError(err, "failed to seek file")
	}

	switch format {
	case formatRaw:
		data, err := limitedRead(file)
		if err != nil {
			return nil, "", loadError(err, "failed to read ROM")
		}
		return data, filepath.Base(path), nil

	case formatZIP:
		return extractFromZIP(path)

	case format7z:
		return extractFrom7z(path)

	case formatGzip:
		return extractFromGzip(path)

	case formatRAR:
		return extractFromRAR(path)

	default:
		return nil, "", loadError(ErrUnsupportedFormat, "%v", path)
	}
}

// detectFormat determines the file format based on magic bytes and extension
func detectFormat(header []byte, path string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	// Check magic bytes first (more reliable)
	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	// Fall back to extension
	switch ext {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}

	for _, unsupported := range unsupportedExt {
		if ext == unsupported {
			return formatUnknown
		}
	}

	// CHIP-8 programs have no header, so anything else is a raw ROM.
	return formatRaw
}

// isROMFile checks if a filename has a ROM extension (case-insensitive)
func isROMFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, rom := range romExt {
		if ext == rom {
			return true
		}
	}
	return false
}

// limitedRead reads from r up to maxROMSize bytes, returning an error if exceeded
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxROMSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxROMSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
