package console

import (
	"github.com/rdkern/nesbox/apu"
	"github.com/rdkern/nesbox/bus"
	"github.com/rdkern/nesbox/cartridge"
	"github.com/rdkern/nesbox/controller"
	"github.com/rdkern/nesbox/mos6502"
	"github.com/rdkern/nesbox/ppu"
)

// ppuRegPort adapts the PPU's eight $2000-$2007 registers, mirrored
// every 8 bytes through $3FFF, into a bus.Device.
type ppuRegPort struct {
	ppu *ppu.PPU
}

func (p *ppuRegPort) Read(offset uint16) uint8 {
	return p.ppu.ReadRegister(uint8(offset % 8))
}

func (p *ppuRegPort) Write(offset uint16, val uint8) error {
	p.ppu.WriteRegister(uint8(offset%8), val)
	return nil
}

// apuLowPort covers $4000-$4013: the pulse/triangle/noise/DMC register
// groups, all write-only from the CPU's point of view.
type apuLowPort struct {
	regs *apu.Registers
}

func (a *apuLowPort) Read(offset uint16) uint8        { return a.regs.Read(offset) }
func (a *apuLowPort) Write(offset uint16, val uint8) error { return a.regs.Write(offset, val) }

// apuStatusPort covers $4015, the one APU register that reads back
// meaningfully.
type apuStatusPort struct {
	regs *apu.Registers
}

func (a *apuStatusPort) Read(offset uint16) uint8 { return a.regs.Read(0x15) }
func (a *apuStatusPort) Write(offset uint16, val uint8) error {
	return a.regs.Write(0x15, val)
}

// prgPort adapts a cartridge Mapper's PRG access (addressed over the
// full $8000-$FFFF CPU range) to the bus's window-relative offsets.
type prgPort struct {
	mapper cartridge.Mapper
}

func (p *prgPort) Read(offset uint16) uint8 {
	return p.mapper.PRGRead(0x8000 + offset)
}

func (p *prgPort) Write(offset uint16, val uint8) error {
	return p.mapper.PRGWrite(0x8000+offset, val)
}

// pad1Port is $4016. Real hardware strobes both controllers from a
// single write to this address; only controller 1's shift register is
// readable here.
type pad1Port struct {
	pad1, pad2 *controller.Pad
}

func (p *pad1Port) Read(offset uint16) uint8 { return p.pad1.Read(offset) }

func (p *pad1Port) Write(offset uint16, val uint8) error {
	if err := p.pad1.Write(offset, val); err != nil {
		return err
	}
	return p.pad2.Write(offset, val)
}

// pad2OrFrameCounterPort is $4017, which is two unrelated hardware
// registers sharing one address depending on direction: reads return
// controller 2's shift register, writes configure the APU frame
// counter sequencer.
type pad2OrFrameCounterPort struct {
	pad2 *controller.Pad
	regs *apu.Registers
}

func (p *pad2OrFrameCounterPort) Read(offset uint16) uint8 { return p.pad2.Read(offset) }

func (p *pad2OrFrameCounterPort) Write(offset uint16, val uint8) error {
	return p.regs.Write(0x17, val)
}

// oamDMA services a write to $4014: the CPU names a page ($XX00-$XXFF)
// and all 256 bytes are copied into OAM in one go. Real hardware
// stalls the CPU for 513 or 514 cycles while this happens; this model
// always charges 513, which is close enough at scanline granularity.
type oamDMA struct {
	bus *bus.Bus
	ppu *ppu.PPU
	cpu *mos6502.CPU
}

func (d *oamDMA) Read(offset uint16) uint8 { return 0 }

func (d *oamDMA) Write(offset uint16, val uint8) error {
	page := uint16(val) << 8
	for i := 0; i < 256; i++ {
		d.ppu.WriteOAMByte(i, d.bus.ReadByte(page+uint16(i)))
	}
	d.cpu.AddCycles(513)
	return nil
}
