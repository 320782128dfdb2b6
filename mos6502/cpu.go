// Package mos6502 implements the MOS Technology 6502 processor core
// used by the NES: registers, flags, the 256-entry opcode dispatch
// table, addressing-mode evaluation, and interrupt vectoring.
// https://www.nesdev.org/obelisk-6502-guide/
package mos6502

import (
	"fmt"

	"github.com/rdkern/nesbox/neserr"
)

// Memory is the capability the CPU needs from whatever sits on the
// other side of the address bus. bus.Bus satisfies this; tests can
// supply a lighter fake.
type Memory interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, val uint8) error
	ReadWord(addr uint16) uint16
	ReadWordZeroPage(addr uint8) uint16
	ReadWordPageBug(addr uint16) uint16
}

// Status flags, packed into the P register.
const (
	FlagCarry     = 1 << 0
	FlagZero      = 1 << 1
	FlagInterrupt = 1 << 2
	FlagDecimal   = 1 << 3
	FlagBreak     = 1 << 4
	FlagUnused    = 1 << 5
	FlagOverflow  = 1 << 6
	FlagNegative  = 1 << 7
)

const (
	StackPage = 0x0100

	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE

	// scanlineDots is one scanline (341 PPU dots) expressed in CPU
	// cycles: a CPU cycle is 3 dots, so a scanline is 341/3 cycles. Baseline accounting
	// is scanline-granular, not cycle-exact (see Non-goals).
	scanlineDots = 341.0 / 3.0
)

// State is an immutable snapshot of CPU registers and scheduling
// counters, safe to hold onto after the CPU has moved on.
type State struct {
	A, X, Y    uint8
	SP         uint8
	PC         uint16
	P          uint8
	Cycle      float64
	Scanline   int16
	PendingNMI bool
}

// CPU holds all machine state for the 6502 core: the visible
// registers plus the scanline-bounded scheduling counters described
// in the data model (cycle counter, scanline counter, pending-NMI
// latch).
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8

	cycle      float64 // cycles elapsed within the current scanline
	scanline   int16   // -1 (pre-render) through 260 (last VBlank line)
	pendingNMI bool

	jumped bool // set by branch/jump/interrupt handlers to suppress PC += length
}

// New constructs a CPU with the 6502 power-on register state. PC is
// not valid until Reset is called against a live Memory.
func New() *CPU {
	return &CPU{
		SP:       0xFD,
		P:        FlagUnused | FlagInterrupt,
		scanline: -1,
	}
}

// Reset loads PC from the reset vector at $FFFC and restores the
// power-on counters. It does not touch RAM contents; that is the
// bus's devices' job.
func (c *CPU) Reset(mem Memory) {
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.scanline = -1
	c.cycle = 0
	c.pendingNMI = false
	c.PC = mem.ReadWord(vectorReset)
}

// TriggerNMI latches a pending non-maskable interrupt, consumed at
// the next instruction boundary.
func (c *CPU) TriggerNMI() {
	c.pendingNMI = true
}

// Scanline returns the current scanline index (-1..260).
func (c *CPU) Scanline() int16 {
	return c.scanline
}

// AddCycles folds externally-incurred CPU cycles (OAM DMA, for
// example) into the scanline scheduling counter without executing an
// instruction.
func (c *CPU) AddCycles(n int) {
	c.cycle += float64(n)
}

func (c *CPU) String() string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X SP=%02X PC=%04X P=%s", c.A, c.X, c.Y, c.SP, c.PC, flagString(c.P))
}

func flagString(p uint8) string {
	flags := []struct {
		mask uint8
		ch   byte
	}{
		{FlagNegative, 'N'}, {FlagOverflow, 'V'}, {FlagUnused, 'U'}, {FlagBreak, 'B'},
		{FlagDecimal, 'D'}, {FlagInterrupt, 'I'}, {FlagZero, 'Z'}, {FlagCarry, 'C'},
	}
	buf := make([]byte, len(flags))
	for i, f := range flags {
		if p&f.mask != 0 {
			buf[i] = f.ch
		} else {
			buf[i] = '.'
		}
	}
	return string(buf)
}

func (c *CPU) getFlag(mask uint8) bool {
	return c.P&mask != 0
}

func (c *CPU) setFlag(mask uint8, on bool) {
	if on {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

func (c *CPU) pushByte(mem Memory, v uint8) {
	mem.WriteByte(StackPage+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) popByte(mem Memory) uint8 {
	c.SP++
	return mem.ReadByte(StackPage + uint16(c.SP))
}

// pushWord pushes the high byte first, so the low byte ends up on
// top of the stack and is popped first by popWord.
func (c *CPU) pushWord(mem Memory, v uint16) {
	c.pushByte(mem, uint8(v>>8))
	c.pushByte(mem, uint8(v))
}

func (c *CPU) popWord(mem Memory) uint16 {
	lo := uint16(c.popByte(mem))
	hi := uint16(c.popByte(mem))
	return lo | hi<<8
}

// pullStatus applies the shared PLP/RTI rule: every bit of the pulled
// byte is restored except U (forced to 1) and B (forced to 0) -- B
// and U are only meaningful in the copy that gets pushed to the
// stack, never in the live P register.
func pullStatus(popped uint8) uint8 {
	return (popped &^ (FlagUnused | FlagBreak)) | FlagUnused
}

// StackAddr returns the current top-of-stack address, useful for
// debug inspection.
func (c *CPU) StackAddr() uint16 {
	return StackPage + uint16(c.SP)
}

// SetPC forces the program counter, for the debug BIOS's "set PC"
// command.
func (c *CPU) SetPC(pc uint16) {
	c.PC = pc
}

// Step executes exactly one unit of work: servicing a pending NMI if
// latched, otherwise fetching, decoding and executing one instruction.
// It returns the number of CPU cycles consumed. Exported for the debug
// BIOS's single-step command; RunOneScanline uses the unexported path
// internally for the same work.
func (c *CPU) Step(mem Memory) (int, error) {
	return c.step(mem)
}

func (c *CPU) step(mem Memory) (int, error) {
	if c.pendingNMI {
		c.pendingNMI = false
		c.pushWord(mem, c.PC)
		c.pushByte(mem, (c.P&^FlagBreak)|FlagUnused)
		c.setFlag(FlagInterrupt, true)
		c.PC = mem.ReadWord(vectorNMI)
		return 7, nil
	}

	pc0 := c.PC
	opcode := mem.ReadByte(pc0)
	entry := dispatch[opcode]
	if entry.exec == nil {
		return 0, &neserr.IllegalInstruction{Opcode: opcode, PC: pc0}
	}

	op := evalMode(c, mem, entry.mode, pc0)

	c.jumped = false
	extra, err := entry.exec(c, mem, op)
	if err != nil {
		return 0, err
	}

	if entry.bonusOnCross && op.pageCrossed {
		extra++
	}

	if !c.jumped {
		c.PC = pc0 + uint16(entry.length)
	}

	return int(entry.cycles) + extra, nil
}

// RunOneScanline executes instructions (and any pending NMI) until the
// accumulated cycle count crosses one scanline's worth of CPU cycles,
// then advances and wraps the scanline counter and returns control to
// the coordinator.
func (c *CPU) RunOneScanline(mem Memory) (int16, error) {
	for {
		cycles, err := c.step(mem)
		if err != nil {
			return c.scanline, err
		}
		c.cycle += float64(cycles)

		if c.cycle >= scanlineDots {
			c.cycle -= scanlineDots
			c.scanline++
			if c.scanline > 260 {
				c.scanline = -1
			}
			return c.scanline, nil
		}
	}
}

// Snapshot returns a value copy of the CPU's visible state, safe for
// a caller to inspect after the CPU has continued running.
func (c *CPU) Snapshot() State {
	return State{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC, P: c.P,
		Cycle: c.cycle, Scanline: c.scanline, PendingNMI: c.pendingNMI,
	}
}
