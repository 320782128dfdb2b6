package mos6502

import "testing"

// fakeMem is a flat 64KiB memory satisfying Memory, used so these
// tests don't need a real bus.
type fakeMem struct {
	buf [0x10000]uint8
}

func (m *fakeMem) ReadByte(addr uint16) uint8 { return m.buf[addr] }
func (m *fakeMem) WriteByte(addr uint16, v uint8) error {
	m.buf[addr] = v
	return nil
}
func (m *fakeMem) ReadWord(addr uint16) uint16 {
	if addr&0xFF == 0xFF {
		return m.ReadWordPageBug(addr)
	}
	return uint16(m.buf[addr]) | uint16(m.buf[addr+1])<<8
}
func (m *fakeMem) ReadWordZeroPage(addr uint8) uint16 {
	return uint16(m.buf[addr]) | uint16(m.buf[uint8(addr+1)])<<8
}
func (m *fakeMem) ReadWordPageBug(addr uint16) uint16 {
	hiAddr := (addr & 0xFF00) | ((addr + 1) & 0x00FF)
	return uint16(m.buf[addr]) | uint16(m.buf[hiAddr])<<8
}

func newCPUAt(mem *fakeMem, pc uint16) *CPU {
	c := New()
	mem.buf[0xFFFC] = uint8(pc)
	mem.buf[0xFFFD] = uint8(pc >> 8)
	c.Reset(mem)
	return c
}

func TestResetLoadsVector(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	if c.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = %#02x, want 0xFD", c.SP)
	}
}

// Scenario B: BEQ taken, crossing a page boundary, from $00F0.
func TestBranchTakenPageCross(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x00F0)
	c.setFlag(FlagZero, true)
	mem.buf[0x00F0] = 0xF0 // BEQ
	mem.buf[0x00F1] = 0x10 // +16

	cycles, err := c.step(mem)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.PC != 0x0102 {
		t.Fatalf("PC = %#04x, want 0x0102", c.PC)
	}
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4 (base 2 + taken 1 + page-cross 1)", cycles)
	}
}

func TestBranchNotTaken(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x00F0)
	c.setFlag(FlagZero, false)
	mem.buf[0x00F0] = 0xF0
	mem.buf[0x00F1] = 0x10

	cycles, err := c.step(mem)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.PC != 0x00F2 {
		t.Fatalf("PC = %#04x, want 0x00F2", c.PC)
	}
	if cycles != 2 {
		t.Fatalf("cycles = %d, want 2", cycles)
	}
}

// Scenario C: ADC $50 + $50 with carry clear overflows into negative.
func TestADCOverflow(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	c.A = 0x50
	mem.buf[0x8000] = 0x69 // ADC #imm
	mem.buf[0x8001] = 0x50

	if _, err := c.step(mem); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.A != 0xA0 {
		t.Fatalf("A = %#02x, want 0xA0", c.A)
	}
	if c.getFlag(FlagZero) {
		t.Error("Z should be clear")
	}
	if !c.getFlag(FlagNegative) {
		t.Error("N should be set")
	}
	if !c.getFlag(FlagOverflow) {
		t.Error("V should be set")
	}
	if c.getFlag(FlagCarry) {
		t.Error("C should be clear")
	}
}

func TestSBCBorrow(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	c.A = 0x10
	c.setFlag(FlagCarry, true) // no borrow going in
	mem.buf[0x8000] = 0xE9    // SBC #imm
	mem.buf[0x8001] = 0x20

	if _, err := c.step(mem); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.A != 0xF0 {
		t.Fatalf("A = %#02x, want 0xF0", c.A)
	}
	if c.getFlag(FlagCarry) {
		t.Error("C should be clear (borrow occurred)")
	}
}

// Scenario D: JMP ($30FF) must hit the page-wrap bug.
func TestJMPIndirectPageBug(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	mem.buf[0x8000] = 0x6C // JMP (ind)
	mem.buf[0x8001] = 0xFF
	mem.buf[0x8002] = 0x30
	mem.buf[0x30FF] = 0x80
	mem.buf[0x3100] = 0x50
	mem.buf[0x3000] = 0x40

	if _, err := c.step(mem); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.PC != 0x4080 {
		t.Fatalf("PC = %#04x, want 0x4080", c.PC)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	mem.buf[0x8000] = 0x20 // JSR
	mem.buf[0x8001] = 0x00
	mem.buf[0x8002] = 0x90
	mem.buf[0x9000] = 0x60 // RTS

	if _, err := c.step(mem); err != nil {
		t.Fatalf("JSR step: %v", err)
	}
	if c.PC != 0x9000 {
		t.Fatalf("PC after JSR = %#04x, want 0x9000", c.PC)
	}
	if _, err := c.step(mem); err != nil {
		t.Fatalf("RTS step: %v", err)
	}
	if c.PC != 0x8003 {
		t.Fatalf("PC after RTS = %#04x, want 0x8003", c.PC)
	}
}

func TestPHPSetsBreakOnStackOnly(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	c.P = FlagUnused // nothing else set
	mem.buf[0x8000] = 0x08 // PHP

	if _, err := c.step(mem); err != nil {
		t.Fatalf("step: %v", err)
	}
	pushed := mem.buf[0x0100+uint16(c.SP)+1]
	if pushed&FlagBreak == 0 {
		t.Error("pushed status should have B set")
	}
	if c.P&FlagBreak != 0 {
		t.Error("live P should never have B set")
	}
}

func TestPLPIgnoresBreakAndUnusedFromStack(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	c.pushByte(mem, 0xFF&^FlagUnused) // push with U clear, B set
	mem.buf[0x8000] = 0x28            // PLP

	if _, err := c.step(mem); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.P&FlagBreak != 0 {
		t.Error("B should never land in live P")
	}
	if c.P&FlagUnused == 0 {
		t.Error("U should always be forced set in live P")
	}
}

func TestNMIPushesStateAndVectors(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	mem.buf[0xFFFA] = 0x00
	mem.buf[0xFFFB] = 0x90
	mem.buf[0x8000] = 0xEA // NOP, never reached

	c.TriggerNMI()
	cycles, err := c.step(mem)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if cycles != 7 {
		t.Fatalf("cycles = %d, want 7", cycles)
	}
	if c.PC != 0x9000 {
		t.Fatalf("PC = %#04x, want 0x9000", c.PC)
	}
	if !c.getFlag(FlagInterrupt) {
		t.Error("I should be set after NMI")
	}
}

func TestIllegalOpcodeReturnsError(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	mem.buf[0x8000] = 0x02 // unused slot

	if _, err := c.step(mem); err == nil {
		t.Fatal("expected IllegalInstruction error")
	}
}

func TestRunOneScanlineAdvancesCounter(t *testing.T) {
	mem := &fakeMem{}
	c := newCPUAt(mem, 0x8000)
	for i := uint16(0); i < 0x200; i++ {
		mem.buf[0x8000+i] = 0xEA // NOP
	}

	scanline, err := c.RunOneScanline(mem)
	if err != nil {
		t.Fatalf("RunOneScanline: %v", err)
	}
	if scanline != 0 {
		t.Fatalf("scanline = %d, want 0", scanline)
	}
}
