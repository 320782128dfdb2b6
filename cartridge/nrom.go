package cartridge

import (
	"github.com/rdkern/nesbox/memory"
	"github.com/rdkern/nesbox/neserr"
)

func init() {
	registerMapper(0, newNROM)
}

// nrom implements mapper 0 (NROM): one or two fixed 16KB PRG banks
// with no bank switching, and either 8KB of CHR ROM or, when the
// header reports zero CHR blocks, 8KB of CHR RAM.
type nrom struct {
	prg       []byte
	chr       []byte
	chrIsRAM  bool
	mirroring memory.Mirroring
}

func newNROM(h Header, prg, chr []byte) Mapper {
	chrIsRAM := h.CHRBlocks == 0
	if chrIsRAM {
		chr = make([]byte, chrBlockSize)
	}
	return &nrom{prg: prg, chr: chr, chrIsRAM: chrIsRAM, mirroring: h.Mirroring}
}

// PRGRead maps $8000-$FFFF onto the cartridge's PRG bank(s). A
// 16KB (single-bank) board mirrors $C000-$FFFF onto $8000-$BFFF.
func (m *nrom) PRGRead(addr uint16) uint8 {
	off := addr & 0x7FFF
	if len(m.prg) == prgBlockSize {
		off &= 0x3FFF
	}
	return m.prg[off]
}

func (m *nrom) PRGWrite(addr uint16, val uint8) error {
	return &neserr.WriteToReadOnly{Addr: addr}
}

func (m *nrom) CHRRead(addr uint16) uint8 {
	return m.chr[addr&0x1FFF]
}

func (m *nrom) CHRWrite(addr uint16, val uint8) error {
	if !m.chrIsRAM {
		return &neserr.WriteToReadOnly{Addr: addr}
	}
	m.chr[addr&0x1FFF] = val
	return nil
}

func (m *nrom) Mirroring() memory.Mirroring {
	return m.mirroring
}
