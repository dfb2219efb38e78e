package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0x200, Words: []string{"ld", "v0", "0x10"}, Bytes: []uint8{0x60, 0x10}},
			{LineNo: 2, Addr: 0x202, Words: []string{"db", "1", "2", "3"}, Bytes: []uint8{0x01, 0x02, 0x03}},
			{LineNo: 4, Addr: 0x205, Words: []string{"cls"}, Bytes: []uint8{0x00, 0xe0}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	table := [](struct {
		addr   uint16
		lineno int
		index  int
	}){
		{0x200, 1, 0},
		{0x201, 1, 1},
		{0x202, 2, 0},
		{0x204, 2, 2},
		{0x205, 4, 0},
		{0x206, 4, 1},
	}

	for _, entry := range table {
		dbg := prog.Debug(entry.addr)
		if assert.NotNil(dbg.Opcode, entry.addr) {
			assert.Equal(entry.lineno, dbg.LineNo, entry.addr)
			assert.Equal(entry.index, dbg.Index, entry.addr)
		}
	}
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	for _, addr := range []uint16{0x000, 0x1ff, 0x207, 0xfff} {
		dbg := prog.Debug(addr)
		assert.Nil(dbg.Opcode)
		assert.Equal(0, dbg.Index)
	}
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]uint8{0x60, 0x10, 0x01, 0x02, 0x03, 0x00, 0xe0}, prog.Binary())

	// Gaps are zero filled.
	prog.Opcodes[2].Addr = 0x208
	assert.Equal([]uint8{0x60, 0x10, 0x01, 0x02, 0x03, 0x00, 0x00, 0x00, 0x00, 0xe0}, prog.Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var addrs []uint16
	for addr := range prog.Codes() {
		addrs = append(addrs, addr)
		if addr == 0x203 {
			break
		}
	}
	assert.Equal([]uint16{0x200, 0x201, 0x202, 0x203}, addrs)
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	var sb strings.Builder
	err := Disassemble(&sb, []uint8{0x00, 0xe0, 0xd1, 0x25, 0xff, 0xff, 0x12})
	assert.NoError(err)
	assert.Equal(strings.Join([]string{
		"200: 00e0  cls",
		"202: d125  drw v1, v2, 5",
		"204: ffff  dw 0xffff",
		"206: 1200  jp 0x200",
		"",
	}, "\n"), sb.String())
}

func TestProgram_Listing(t *testing.T) {
	assert := assert.New(t)

	var buf strings.Builder
	err := testProgram().Listing(&buf)
	assert.NoError(err)
	assert.Equal(""+
		"   1 200: 60 10        ld v0 0x10\n"+
		"   2 202: 01 02 03     db 1 2 3\n"+
		"   4 205: 00 e0        cls\n",
		buf.String())
}
