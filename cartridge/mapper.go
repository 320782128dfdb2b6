package cartridge

import (
	"fmt"

	"github.com/rdkern/nesbox/memory"
	"github.com/rdkern/nesbox/neserr"
)

// Mapper is what a cartridge board exposes to the rest of the
// machine: PRG access for the CPU bus, CHR access for the PPU bus,
// and the nametable mirroring it wires up. Implementations are free
// to bank-switch PRGRead/PRGWrite/CHRRead/CHRWrite however their
// hardware does.
type Mapper interface {
	PRGRead(addr uint16) uint8
	PRGWrite(addr uint16, val uint8) error
	CHRRead(addr uint16) uint8
	CHRWrite(addr uint16, val uint8) error
	Mirroring() memory.Mirroring
}

// factory builds a Mapper from a parsed header and the raw PRG/CHR
// banks extracted from the ROM image.
type factory func(h Header, prg, chr []byte) Mapper

var registry = map[uint16]factory{}

// registerMapper is called from each mapper implementation's init(),
// keying it by iNES mapper id. Re-registering an id is a programming
// error, not a runtime condition, so it panics like the teacher's own
// mapper registry does.
func registerMapper(id uint16, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("cartridge: mapper id %d already registered", id))
	}
	registry[id] = f
}

func newMapper(h Header, prg, chr []byte) (Mapper, error) {
	f, ok := registry[h.MapperID]
	if !ok {
		return nil, &neserr.UnsupportedMapper{ID: h.MapperID}
	}
	return f(h, prg, chr), nil
}
