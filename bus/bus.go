// Package bus implements the CPU-visible address bus: an ordered,
// non-overlapping cover of the 16-bit address space built from
// attached devices, sealed once at startup for O(1) dispatch.
package bus

import (
	"fmt"
	"sort"

	"github.com/rdkern/nesbox/neserr"
)

// Device is anything that can be attached to the bus. Offset is the
// address relative to the start of the window the device was
// attached at, not the raw CPU address.
type Device interface {
	Read(offset uint16) uint8
	Write(offset uint16, val uint8) error
}

type entry struct {
	start, end uint16 // inclusive
	dev        Device
}

// Bus is the CPU's 16-bit address space. Attach devices with Attach,
// then call Seal once before the first Read/Write.
type Bus struct {
	entries []entry
	sealed  bool
	page    [256]*entry // per-page accelerator, built by Seal
}

func New() *Bus {
	return &Bus{}
}

// Attach registers dev as the owner of [start, end] (inclusive).
// Attach fails once the bus has been sealed.
func (b *Bus) Attach(start, end uint16, dev Device) error {
	if b.sealed {
		return fmt.Errorf("bus: cannot attach after Seal")
	}
	if end < start {
		return fmt.Errorf("bus: bad window [$%04X, $%04X]", start, end)
	}
	b.entries = append(b.entries, entry{start: start, end: end, dev: dev})
	return nil
}

// Seal sorts the attached entries by start address, verifies they
// form a non-overlapping cover of the full 16-bit space, and builds a
// per-page lookup table so Read/Write are O(1).
func (b *Bus) Seal() error {
	sort.Slice(b.entries, func(i, j int) bool { return b.entries[i].start < b.entries[j].start })

	want := uint32(0)
	for i, e := range b.entries {
		if uint32(e.start) != want {
			return fmt.Errorf("bus: gap or overlap before $%04X", e.start)
		}
		want = uint32(e.end) + 1
		_ = i
	}
	if want != 0x10000 {
		return fmt.Errorf("bus: address space not fully covered, ends at $%04X", want-1)
	}

	for page := 0; page < 256; page++ {
		addr := uint16(page) << 8
		e, err := b.find(addr)
		if err != nil {
			return err
		}
		b.page[page] = e
	}

	b.sealed = true
	return nil
}

func (b *Bus) find(addr uint16) (*entry, error) {
	for i := range b.entries {
		e := &b.entries[i]
		if addr >= e.start && addr <= e.end {
			return e, nil
		}
	}
	return nil, &neserr.AddressUnmapped{Addr: addr}
}

// locate resolves addr to its owning entry, preferring the per-page
// cache once sealed but falling back to a linear scan (used by tests
// that poke the bus before Seal).
func (b *Bus) locate(addr uint16) (*entry, error) {
	if b.sealed {
		if e := b.page[addr>>8]; e != nil && addr >= e.start && addr <= e.end {
			return e, nil
		}
	}
	return b.find(addr)
}

// ReadByte returns the byte at addr. An unmapped address after Seal
// indicates a configuration bug, not a runtime condition a game can
// trigger, so it panics rather than threading an error through every
// instruction's addressing-mode evaluation.
func (b *Bus) ReadByte(addr uint16) uint8 {
	e, err := b.locate(addr)
	if err != nil {
		panic(err)
	}
	return e.dev.Read(addr - e.start)
}

// WriteByte forwards to the owning device. Unlike reads, a write can
// legitimately fail at runtime (WriteToReadOnly), so the error
// propagates to the caller instead of panicking.
func (b *Bus) WriteByte(addr uint16, val uint8) error {
	e, err := b.locate(addr)
	if err != nil {
		return err
	}
	return e.dev.Write(addr-e.start, val)
}

// ReadWord performs a little-endian 16-bit read, honouring the 6502
// zero-page wrap: when addr is itself in zero page, the high byte
// comes from (addr+1)&0xFF rather than addr+1.
func (b *Bus) ReadWord(addr uint16) uint16 {
	if addr < 0x100 {
		return b.ReadWordZeroPage(uint8(addr))
	}
	lo := uint16(b.ReadByte(addr))
	hi := uint16(b.ReadByte(addr + 1))
	return lo | hi<<8
}

// ReadWordZeroPage reads a 16-bit pointer stored at a zero-page
// address, wrapping within page zero: the high byte is read from
// (addr+1)&0xFF, not addr+1. This is also the formula (Indirect,X)
// and (Indirect),Y use to fetch their base pointer.
func (b *Bus) ReadWordZeroPage(addr uint8) uint16 {
	lo := uint16(b.ReadByte(uint16(addr)))
	hi := uint16(b.ReadByte(uint16(addr + 1)))
	return lo | hi<<8
}

// ReadWordPageBug reproduces the 6502's JMP (Indirect) bug: when addr
// is $xxFF, the high byte of the target is fetched from $xx00 instead
// of $(xxFF+1), because the CPU never carries into the high byte of
// the pointer.
func (b *Bus) ReadWordPageBug(addr uint16) uint16 {
	lo := uint16(b.ReadByte(addr))
	hiAddr := (addr & 0xFF00) | ((addr + 1) & 0x00FF)
	hi := uint16(b.ReadByte(hiAddr))
	return lo | hi<<8
}
