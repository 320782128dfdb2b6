// Package console wires the CPU, PPU, cartridge, controllers and APU
// register file together into a runnable machine, and exposes the
// small host-facing API (run a frame, push input, inspect state) that
// cmd/nesbox drives.
package console

import (
	"fmt"

	"github.com/rdkern/nesbox/apu"
	"github.com/rdkern/nesbox/bus"
	"github.com/rdkern/nesbox/cartridge"
	"github.com/rdkern/nesbox/controller"
	"github.com/rdkern/nesbox/memory"
	"github.com/rdkern/nesbox/mos6502"
	"github.com/rdkern/nesbox/neserr"
	"github.com/rdkern/nesbox/ppu"
)

const (
	FrameWidth  = ppu.Width
	FrameHeight = ppu.Height
)

// Emulator is the whole machine: a CPU and PPU sharing a cartridge,
// driven one scanline at a time.
type Emulator struct {
	cpu  *mos6502.CPU
	ppu  *ppu.PPU
	bus  *bus.Bus
	cart *cartridge.Cartridge

	pad1, pad2 *controller.Pad
	apuRegs    *apu.Registers

	dma oamDMA
}

// New parses romBytes as an iNES image, builds the full address bus
// (work RAM, PPU registers, APU/IO, cartridge PRG) and resets the CPU
// from the cartridge's reset vector.
func New(romBytes []byte) (*Emulator, error) {
	cart, err := cartridge.Load(romBytes)
	if err != nil {
		return nil, fmt.Errorf("console: loading cartridge: %w", err)
	}

	e := &Emulator{
		cart:    cart,
		pad1:    &controller.Pad{},
		pad2:    &controller.Pad{},
		apuRegs: apu.NewRegisters(),
	}

	mapper := cart.Mapper()
	nt := memory.NewNametableRAM(mapper.Mirroring())
	pal := memory.NewPaletteRAM()

	e.cpu = mos6502.New()
	e.ppu = ppu.New(mapper, nt, pal, e.cpu)

	b := bus.New()
	e.bus = b
	e.dma = oamDMA{bus: b, ppu: e.ppu, cpu: e.cpu}

	attachments := []struct {
		start, end uint16
		dev        bus.Device
	}{
		{0x0000, 0x1FFF, memory.NewCPURAM()},
		{0x2000, 0x3FFF, &ppuRegPort{ppu: e.ppu}},
		{0x4000, 0x4013, &apuLowPort{regs: e.apuRegs}},
		{0x4014, 0x4014, &e.dma},
		{0x4015, 0x4015, &apuStatusPort{regs: e.apuRegs}},
		{0x4016, 0x4016, &pad1Port{pad1: e.pad1, pad2: e.pad2}},
		{0x4017, 0x4017, &pad2OrFrameCounterPort{pad2: e.pad2, regs: e.apuRegs}},
		{0x4018, 0x5FFF, memory.NewRAM(0x5FFF - 0x4018 + 1)}, // APU test regs + cartridge expansion: unused by NROM
		{0x6000, 0x7FFF, memory.NewRAM(0x2000)},              // PRG RAM / SRAM
		{0x8000, 0xFFFF, &prgPort{mapper: mapper}},
	}
	for _, a := range attachments {
		if err := b.Attach(a.start, a.end, a.dev); err != nil {
			return nil, fmt.Errorf("console: attaching $%04X-$%04X: %w", a.start, a.end, err)
		}
	}
	if err := b.Seal(); err != nil {
		return nil, fmt.Errorf("console: sealing bus: %w", err)
	}

	e.cpu.Reset(b)
	return e, nil
}

// RunFrame advances the machine exactly one video frame (262
// scanlines, -1 through 260) writing composed pixels into fb.
func (e *Emulator) RunFrame(fb *[FrameWidth * FrameHeight]uint32) error {
	start := e.cpu.Scanline()
	for {
		scanline, err := e.cpu.RunOneScanline(e.bus)
		if err != nil {
			return &neserr.EmulatorError{Err: err}
		}
		e.ppu.ProcessScanline(fb)
		if scanline == start {
			return nil
		}
	}
}

// SetButtons latches player's (0 or 1) current button mask.
func (e *Emulator) SetButtons(player int, mask uint8) {
	if player == 0 {
		e.pad1.SetButtons(mask)
	} else {
		e.pad2.SetButtons(mask)
	}
}

// ReadMemory reads a single CPU-visible byte for debugging/disassembly
// purposes. It goes through the same bus dispatch a real CPU read
// would, so peeking at a PPU register here can trigger the same read
// side effects (VBlank-clear, write-latch reset) a live read would --
// see the Open Question decision in DESIGN.md.
func (e *Emulator) ReadMemory(addr uint16) uint8 {
	return e.bus.ReadByte(addr)
}

// WriteMemory pokes a single CPU-visible byte, for the debug BIOS's
// memory-editing command.
func (e *Emulator) WriteMemory(addr uint16, val uint8) error {
	return e.bus.WriteByte(addr, val)
}

// Reset re-vectors the CPU through the cartridge's reset vector
// without rebuilding the rest of the machine.
func (e *Emulator) Reset() {
	e.cpu.Reset(e.bus)
}

// Step executes exactly one CPU instruction (or services a pending
// NMI), for the debug BIOS's single-step command.
func (e *Emulator) Step() (int, error) {
	return e.cpu.Step(e.bus)
}

// SetPC forces the program counter, for the debug BIOS's "set PC"
// command.
func (e *Emulator) SetPC(pc uint16) {
	e.cpu.SetPC(pc)
}

// StackAddr returns the CPU's current top-of-stack address.
func (e *Emulator) StackAddr() uint16 {
	return e.cpu.StackAddr()
}

func (e *Emulator) String() string {
	return e.cpu.String()
}

// Snapshot returns the CPU's current register/scheduling state.
func (e *Emulator) Snapshot() mos6502.State {
	return e.cpu.Snapshot()
}

// Cartridge exposes the loaded cartridge's header, for diagnostics.
func (e *Emulator) Cartridge() *cartridge.Cartridge {
	return e.cart
}
