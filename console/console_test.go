package console

import (
	"testing"

	"github.com/rdkern/nesbox/controller"
	"github.com/rdkern/nesbox/ppu"
)

const (
	headerSize   = 16
	prgBlockSize = 16384
	chrBlockSize = 8192
)

// buildROM assembles a minimal one-bank NROM image: prgFill in every
// PRG byte except a reset vector at the end of the bank pointing to
// $8000.
func buildROM(prgFill byte) []byte {
	buf := make([]byte, headerSize+prgBlockSize+chrBlockSize)
	copy(buf[0:4], "NES\x1A")
	buf[4] = 1 // 1 PRG bank
	buf[5] = 1 // 1 CHR bank
	for i := headerSize; i < headerSize+prgBlockSize; i++ {
		buf[i] = prgFill
	}
	// Reset vector at $FFFC/$FFFD -> bank-relative offset 0x3FFC (the
	// single 16 KiB bank is mirrored at $C000-$FFFF).
	buf[headerSize+0x3FFC] = 0x00
	buf[headerSize+0x3FFD] = 0x80
	return buf
}

func TestNewBuildsAndResetsCPU(t *testing.T) {
	e, err := New(buildROM(0xEA)) // NOP filler
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	snap := e.Snapshot()
	if snap.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", snap.PC)
	}
}

func TestRunFrameExecutesWithoutError(t *testing.T) {
	e, err := New(buildROM(0xEA))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var fb [FrameWidth * FrameHeight]uint32
	if err := e.RunFrame(&fb); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
}

func TestReadMemorySeesCartridgePRG(t *testing.T) {
	e, err := New(buildROM(0x42))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := e.ReadMemory(0x9000); got != 0x42 {
		t.Errorf("ReadMemory(0x9000) = %#02x, want 0x42", got)
	}
}

func TestWriteMemoryWritesThroughToRAM(t *testing.T) {
	e, err := New(buildROM(0xEA))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.WriteMemory(0x0010, 0x99); err != nil {
		t.Fatalf("WriteMemory: %v", err)
	}
	if got := e.ReadMemory(0x0010); got != 0x99 {
		t.Errorf("ReadMemory(0x0010) = %#02x, want 0x99", got)
	}
	// $0810 mirrors $0010 within the 2KiB work RAM window.
	if got := e.ReadMemory(0x0810); got != 0x99 {
		t.Errorf("ReadMemory(0x0810) (mirror) = %#02x, want 0x99", got)
	}
}

func TestControllerRoundTripsThroughBus(t *testing.T) {
	e, err := New(buildROM(0xEA))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.SetButtons(0, controller.ButtonA|controller.ButtonStart)

	e.WriteMemory(0x4016, 1) // strobe high
	e.WriteMemory(0x4016, 0) // strobe low, latch

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0}
	for i, w := range want {
		if got := e.ReadMemory(0x4016); got&0x01 != w {
			t.Errorf("bit %d: got %d, want %d", i, got&0x01, w)
		}
	}
}

func TestSecondControllerReadsIndependently(t *testing.T) {
	e, err := New(buildROM(0xEA))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.SetButtons(1, controller.ButtonB)

	e.WriteMemory(0x4016, 1)
	e.WriteMemory(0x4016, 0)

	if got := e.ReadMemory(0x4017) & 0x01; got != 0 {
		t.Errorf("pad2 bit 0 (A) = %d, want 0", got)
	}
	if got := e.ReadMemory(0x4017) & 0x01; got != 1 {
		t.Errorf("pad2 bit 1 (B) = %d, want 1", got)
	}
}

func TestOAMDMACopiesPage(t *testing.T) {
	e, err := New(buildROM(0xEA))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 256; i++ {
		e.WriteMemory(0x0200+uint16(i), uint8(i))
	}
	if err := e.WriteMemory(0x4014, 0x02); err != nil {
		t.Fatalf("WriteMemory(0x4014): %v", err)
	}
	e.ppu.WriteRegister(ppu.RegOAMADDR, 0x7F)
	if got := e.ppu.ReadRegister(ppu.RegOAMDATA); got != 0x7F {
		t.Errorf("OAM[0x7F] after DMA = %#02x, want 0x7F (copied from $027F)", got)
	}
}

func TestResetRevectorsCPU(t *testing.T) {
	e, err := New(buildROM(0xEA))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Reset()
	if got := e.Snapshot().PC; got != 0x8000 {
		t.Errorf("PC after Reset = %#04x, want 0x8000", got)
	}
}
