// Package ppu implements the NES Picture Processing Unit: scanline
// composition of background and sprite layers into a framebuffer,
// the CPU-visible register file, OAM, and VRAM address decoding.
// Rendering is scanline-granular rather than cycle-exact -- an entire
// scanline's worth of pixels is produced in one call, which is enough
// to drive a host frame loop without modeling per-dot PPU behavior.
package ppu

import "github.com/rdkern/nesbox/memory"

// CHR is the capability the PPU needs from the cartridge: raw access
// to the 8KiB pattern-table space ($0000-$1FFF on the PPU bus).
type CHR interface {
	CHRRead(addr uint16) uint8
	CHRWrite(addr uint16, val uint8) error
}

// NMI is the capability the PPU uses to signal the CPU; satisfied by
// *mos6502.CPU without the PPU importing that package directly.
type NMI interface {
	TriggerNMI()
}

const (
	Width  = 256
	Height = 240
)

// PPU holds all picture-processing state: registers, OAM, the
// internal loopy scroll/address registers, and references to the
// nametable/palette RAM and cartridge CHR it composites from.
type PPU struct {
	chr CHR
	nt  *memory.NametableRAM
	pal *memory.PaletteRAM
	nmi NMI

	oamMem *oam

	ctrl, mask, status uint8
	v, t               loopy
	fineX              uint8
	writeLatch         bool
	readBuffer         uint8

	scanline int16 // -1 (pre-render) through 260
	frameOdd bool

	spriteZeroOnLine bool
	spriteLineBuf    []sprite
}

// New constructs a PPU wired to its cartridge CHR source, a
// mirroring-configured nametable RAM, palette RAM, and the CPU's NMI
// input.
func New(chr CHR, nt *memory.NametableRAM, pal *memory.PaletteRAM, nmi NMI) *PPU {
	return &PPU{
		chr:      chr,
		nt:       nt,
		pal:      pal,
		nmi:      nmi,
		oamMem:   newOAM(),
		scanline: -1,
	}
}

// Scanline reports the current scanline index.
func (p *PPU) Scanline() int16 { return p.scanline }

// WriteOAMByte is the destination for OAM DMA transfers ($4014):
// console copies 256 bytes from CPU page $XX00-$XXFF here in order.
func (p *PPU) WriteOAMByte(i int, val uint8) {
	p.oamMem.writeAt(uint8(i), val)
}

// vramRead resolves a PPU-bus address ($0000-$3FFF) to its source
// device: pattern tables on the cartridge, nametables (mirrored per
// the cartridge's wiring), or palette RAM (mirrored every 32 bytes,
// $3F20-$3FFF echoing $3F00-$3F1F).
func (p *PPU) vramRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.chr.CHRRead(addr)
	case addr < 0x3F00:
		return p.nt.Read((addr - 0x2000) & 0x0FFF)
	default:
		return p.pal.Read(addr & 0x1F)
	}
}

func (p *PPU) vramWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.chr.CHRWrite(addr, val)
	case addr < 0x3F00:
		p.nt.Write((addr-0x2000)&0x0FFF, val)
	default:
		p.pal.Write(addr&0x1F, val)
	}
}

// readData implements PPUDATA's one-read-behind buffering: reads of
// $0000-$3EFF return the previous read's value and latch the new one,
// while palette reads ($3F00-$3FFF) return immediately since the
// palette has no such delay on real hardware.
func (p *PPU) readData() uint8 {
	addr := uint16(p.v) & 0x3FFF
	var result uint8
	if addr >= 0x3F00 {
		result = p.vramRead(addr)
		p.readBuffer = p.vramRead(addr - 0x1000)
	} else {
		result = p.readBuffer
		p.readBuffer = p.vramRead(addr)
	}
	p.v += loopy(p.vramIncrement())
	return result
}

func (p *PPU) writeData(val uint8) {
	p.vramWrite(uint16(p.v)&0x3FFF, val)
	p.v += loopy(p.vramIncrement())
}

// backgroundPixel returns the palette index (0-15, where 0 mod 4 is
// always transparent/backdrop) for screen position (x, y), sourced
// from the nametable/attribute/pattern fetch the real PPU performs
// tile-by-tile; this scanline-granular model does the equivalent work
// once per pixel instead of once per 8-dot tile fetch.
func (p *PPU) backgroundPixel(x, y int16) uint8 {
	if p.mask&maskShowBg == 0 {
		return 0
	}
	if x < 8 && p.mask&maskShowBgLeft8 == 0 {
		return 0
	}

	scrolledX := int(x) + int(p.fineX) + int(p.v.coarseX())*8
	scrolledY := int(y) + int(p.v.fineY()) + int(p.v.coarseY())*8

	nametableX := (scrolledX / 8) % 64
	nametableY := (scrolledY / 8) % 60
	tileCol := nametableX % 32
	tileRow := nametableY % 32
	ntIndex := p.v.nametable()
	if nametableX >= 32 {
		ntIndex ^= 1
	}
	if nametableY >= 30 {
		ntIndex ^= 2
	}

	ntBase := 0x2000 + ntIndex*0x0400
	tileAddr := ntBase + uint16(tileRow)*32 + uint16(tileCol)
	tileIndex := p.vramRead(tileAddr)

	attrAddr := ntBase + 0x3C0 + uint16(tileRow/4)*8 + uint16(tileCol/4)
	attrByte := p.vramRead(attrAddr)
	shift := uint((tileCol%4)/2*2 + (tileRow%4)/2*4)
	paletteHigh := (attrByte >> shift) & 0x03

	fineX := uint(scrolledX % 8)
	fineYInTile := uint(scrolledY % 8)
	patternAddr := p.bgPatternBase() + uint16(tileIndex)*16 + uint16(fineYInTile)
	lo := p.vramRead(patternAddr)
	hi := p.vramRead(patternAddr + 8)
	bit := 7 - fineX
	pixel := ((lo>>bit)&1)<<0 | ((hi>>bit)&1)<<1

	if pixel == 0 {
		return 0
	}
	return paletteHigh<<2 | pixel
}

// spritePixel returns the palette index for the highest-priority
// sprite covering (x, y) on the current scanline's evaluated sprite
// set, plus whether it was sprite zero and whether it draws behind
// the background.
func (p *PPU) spritePixel(x int16) (idx uint8, isZero bool, behind bool, opaque bool) {
	if p.mask&maskShowSprites == 0 {
		return 0, false, false, false
	}
	if x < 8 && p.mask&maskShowSpritesLeft8 == 0 {
		return 0, false, false, false
	}

	for _, s := range p.spriteLineBuf {
		col := x - int16(s.x)
		if col < 0 || col > 7 {
			continue
		}
		if !s.flipH {
			col = 7 - col
		}
		row := p.scanline - int16(s.y) - 1
		height := p.spriteHeight()
		if s.flipV {
			row = height - 1 - row
		}
		tile := uint16(s.tile)
		base := p.spritePatternBase()
		if height == 16 {
			base = uint16(tile&1) * 0x1000
			tile &^= 1
			if row >= 8 {
				tile++
				row -= 8
			}
		}
		patternAddr := base + tile*16 + uint16(row)
		lo := p.vramRead(patternAddr)
		hi := p.vramRead(patternAddr + 8)
		bit := uint(col)
		pixel := ((lo>>bit)&1)<<0 | ((hi>>bit)&1)<<1
		if pixel == 0 {
			continue
		}
		return 0x10 | s.palette<<2 | pixel, s.isSpriteZero, s.priority == priorityBehind, true
	}
	return 0, false, false, false
}

// ProcessScanline renders one full scanline into fb (a flat
// row-major 256x240 buffer of 0x00RRGGBB pixels) and advances the
// PPU's scanline counter, firing NMI at the start of vertical blank
// when enabled. It returns the new scanline index.
func (p *PPU) ProcessScanline(fb *[Width * Height]uint32) int16 {
	switch {
	case p.scanline == -1:
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
		if p.renderingEnabled() {
			p.v.transferY(p.t)
		}
	case p.scanline == 241:
		p.status |= statusVBlank
		if p.ctrl&ctrlGenerateNMI != 0 {
			p.nmi.TriggerNMI()
		}
	}

	if p.scanline >= 0 && p.scanline < Height {
		p.renderVisibleLine(fb)
	}

	if p.renderingEnabled() && p.scanline >= -1 && p.scanline < Height {
		p.v.transferX(p.t)
	}

	p.scanline++
	if p.scanline > 260 {
		p.scanline = -1
		p.frameOdd = !p.frameOdd
	}
	return p.scanline
}

func (p *PPU) renderVisibleLine(fb *[Width * Height]uint32) {
	p.spriteLineBuf = p.oamMem.evaluate(p.scanline, p.spriteHeight() == 16)
	if len(p.spriteLineBuf) >= 8 {
		p.status |= statusSpriteOverflow
	}

	for x := int16(0); x < Width; x++ {
		bgIdx := p.backgroundPixel(x, p.scanline)
		spIdx, spZero, spBehind, spOpaque := p.spritePixel(x)

		if spOpaque && spZero && bgIdx != 0 {
			p.status |= statusSprite0Hit
		}

		var colorIdx uint8
		switch {
		case spOpaque && !spBehind:
			colorIdx = spIdx
		case bgIdx != 0:
			colorIdx = bgIdx
		case spOpaque:
			colorIdx = spIdx
		default:
			colorIdx = 0
		}

		palByte := p.vramRead(0x3F00 + uint16(colorIdx))
		fb[int(p.scanline)*Width+int(x)] = SystemPalette[palByte&0x3F]
	}
}
