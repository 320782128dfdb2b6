package cartridge

import "fmt"

// Cartridge is a fully parsed ROM image: its header plus the mapper
// that owns PRG/CHR access and mirroring.
type Cartridge struct {
	Header Header
	mapper Mapper
}

// Load parses romBytes as an iNES image and constructs the
// cartridge's mapper. Trainer data, if present, is skipped (it exists
// to patch PRG RAM at load time on a handful of very old dumps, which
// this module does not emulate).
func Load(romBytes []byte) (*Cartridge, error) {
	h, err := ParseHeader(romBytes)
	if err != nil {
		return nil, err
	}

	off := headerSize
	if h.HasTrainer {
		off += trainerSize
	}

	prgLen := int(h.PRGBlocks) * prgBlockSize
	if off+prgLen > len(romBytes) {
		return nil, fmt.Errorf("cartridge: PRG data truncated, need %d bytes after offset %d, have %d", prgLen, off, len(romBytes)-off)
	}
	prg := romBytes[off : off+prgLen]
	off += prgLen

	chrLen := int(h.CHRBlocks) * chrBlockSize
	if off+chrLen > len(romBytes) {
		return nil, fmt.Errorf("cartridge: CHR data truncated, need %d bytes after offset %d, have %d", chrLen, off, len(romBytes)-off)
	}
	chr := romBytes[off : off+chrLen]

	m, err := newMapper(h, prg, chr)
	if err != nil {
		return nil, err
	}

	return &Cartridge{Header: h, mapper: m}, nil
}

// Mapper returns the cartridge's mapper, which the console wires
// directly onto the CPU and PPU buses.
func (c *Cartridge) Mapper() Mapper {
	return c.mapper
}
