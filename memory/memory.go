// Package memory implements the primitive, tagged memory devices that
// get attached to an address bus: plain RAM, read-only ROM, the
// mirrored 2KiB CPU work RAM, and the PPU's nametable/palette storage.
package memory

import "github.com/rdkern/nesbox/neserr"

// RAM is a plain read/write buffer. Offset is relative to wherever
// the bus attached it.
type RAM struct {
	buf []uint8
}

func NewRAM(size int) *RAM {
	return &RAM{buf: make([]uint8, size)}
}

func (m *RAM) Read(offset uint16) uint8 {
	return m.buf[offset]
}

func (m *RAM) Write(offset uint16, val uint8) error {
	m.buf[offset] = val
	return nil
}

// ROM is a read-only buffer backed by cartridge data. Writes always
// fail with WriteToReadOnly.
type ROM struct {
	buf []uint8
}

func NewROM(data []uint8) *ROM {
	buf := make([]uint8, len(data))
	copy(buf, data)
	return &ROM{buf: buf}
}

func (m *ROM) Read(offset uint16) uint8 {
	return m.buf[offset%uint16(len(m.buf))]
}

func (m *ROM) Write(offset uint16, val uint8) error {
	return &neserr.WriteToReadOnly{Addr: offset}
}

// CPURAM is the NES's 2KiB of work RAM, mirrored four times across
// $0000-$1FFF. Attach it to cover the whole $0000-$1FFF window; the
// mirroring is applied internally rather than by the bus.
type CPURAM struct {
	buf [0x0800]uint8
}

func NewCPURAM() *CPURAM {
	return &CPURAM{}
}

func (m *CPURAM) Read(offset uint16) uint8 {
	return m.buf[offset&0x07FF]
}

func (m *CPURAM) Write(offset uint16, val uint8) error {
	m.buf[offset&0x07FF] = val
	return nil
}

// Clear resets the work RAM to power-on zero state.
func (m *CPURAM) Clear() {
	m.buf = [0x0800]uint8{}
}

// Mirroring identifies how the PPU's two physical 1KiB nametable
// banks are mapped onto the four logical $2000/$2400/$2800/$2C00
// slots.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleA
	MirrorFourScreen
)

// NametableRAM holds the PPU's 2KiB (or, for four-screen boards, 4KiB)
// of nametable storage and resolves the logical $2000-$2FFF address
// space down to physical bank + offset according to the cartridge's
// mirroring tag.
type NametableRAM struct {
	mirror Mirroring
	banks  [4][0x0400]uint8 // A, B, C, D; C/D only used in four-screen mode
}

func NewNametableRAM(mirror Mirroring) *NametableRAM {
	return &NametableRAM{mirror: mirror}
}

// bankFor maps a logical nametable index (0-3, selecting $2000,
// $2400, $2800, $2C00) to a physical bank index per the mirroring
// table in the VRAM bus spec.
func (n *NametableRAM) bankFor(slot uint16) int {
	switch n.mirror {
	case MirrorHorizontal:
		return int(slot / 2) // $2000,$2400->A; $2800,$2C00->B
	case MirrorVertical:
		return int(slot % 2) // $2000,$2800->A; $2400,$2C00->B
	case MirrorSingleA:
		return 0
	case MirrorFourScreen:
		return int(slot)
	}
	return 0
}

// Read returns the byte at offset within the logical $2000-$2FFF
// nametable region (offset is relative to $2000, i.e. 0..0xFFF).
func (n *NametableRAM) Read(offset uint16) uint8 {
	slot := (offset / 0x0400) & 0x03
	return n.banks[n.bankFor(slot)][offset&0x03FF]
}

func (n *NametableRAM) Write(offset uint16, val uint8) error {
	slot := (offset / 0x0400) & 0x03
	n.banks[n.bankFor(slot)][offset&0x03FF] = val
	return nil
}

// PaletteRAM is the PPU's 32 bytes of palette indices, with the four
// sprite-palette "backdrop" entries aliased onto the corresponding
// background-palette entries.
type PaletteRAM struct {
	buf [0x20]uint8
}

func NewPaletteRAM() *PaletteRAM {
	return &PaletteRAM{}
}

// index applies the $3F10/$14/$18/$1C -> $3F00/$04/$08/$0C aliasing.
func index(offset uint16) uint16 {
	offset &= 0x1F
	if offset&0x13 == 0x10 {
		offset &^= 0x10
	}
	return offset
}

func (p *PaletteRAM) Read(offset uint16) uint8 {
	return p.buf[index(offset)]
}

func (p *PaletteRAM) Write(offset uint16, val uint8) error {
	p.buf[index(offset)] = val
	return nil
}
