package cpu

// Memory map.
const (
	MEMORY_SIZE      = 0x1000 // Total addressable memory.
	FONT_BASE        = 0x000  // Start of the built-in font sprites.
	FONT_SPRITE_SIZE = 5      // Bytes per font sprite.
	PROGRAM_START    = 0x200  // Load address, and initial PC, of a program.
	PROGRAM_MAX_SIZE = MEMORY_SIZE - PROGRAM_START
)

// FontSprites is the built-in hexadecimal digit sprite set, 0 through F.
var FontSprites = [16 * FONT_SPRITE_SIZE]uint8{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// Memory is the flat byte store of the machine.
type Memory struct {
	Data [MEMORY_SIZE]uint8
}

// NewMemory creates a memory image with the font and program loaded.
func NewMemory(program []uint8) (mem *Memory, err error) {
	if PROGRAM_START+len(program) > MEMORY_SIZE {
		err = ErrProgramSize(len(program))
		return
	}

	mem = &Memory{}
	copy(mem.Data[FONT_BASE:], FontSprites[:])
	copy(mem.Data[PROGRAM_START:], program)

	return
}

// Read a byte at addr.
func (mem *Memory) Read(addr int) (value uint8, err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrAddress(addr)
		return
	}

	value = mem.Data[addr]
	return
}

// Write a byte at addr.
func (mem *Memory) Write(addr int, value uint8) (err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrAddress(addr)
		return
	}

	mem.Data[addr] = value
	return
}

// Fetch the big-endian instruction word at addr.
func (mem *Memory) Fetch(addr int) (word Word, err error) {
	hi, err := mem.Read(addr)
	if err != nil {
		return
	}
	lo, err := mem.Read(addr + 1)
	if err != nil {
		return
	}

	word = MakeWord(hi, lo)
	return
}
