package cartridge

import (
	"errors"
	"testing"

	"github.com/rdkern/nesbox/memory"
	"github.com/rdkern/nesbox/neserr"
)

func buildROM(prgBlocks, chrBlocks uint8, flags6, flags7 uint8, prgFill, chrFill byte) []byte {
	buf := make([]byte, headerSize+int(prgBlocks)*prgBlockSize+int(chrBlocks)*chrBlockSize)
	copy(buf[0:4], "NES\x1A")
	buf[4] = prgBlocks
	buf[5] = chrBlocks
	buf[6] = flags6
	buf[7] = flags7
	for i := headerSize; i < headerSize+int(prgBlocks)*prgBlockSize; i++ {
		buf[i] = prgFill
	}
	for i := headerSize + int(prgBlocks)*prgBlockSize; i < len(buf); i++ {
		buf[i] = chrFill
	}
	return buf
}

func TestParseHeaderRejectsShortBuffer(t *testing.T) {
	_, err := ParseHeader([]byte{1, 2, 3})
	if !errors.Is(err, neserr.InvalidHeader) {
		t.Fatalf("got %v, want wrapping neserr.InvalidHeader", err)
	}
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	buf := buildROM(1, 1, 0, 0, 0, 0)
	copy(buf[0:4], "BAD\x00")
	_, err := ParseHeader(buf)
	if !errors.Is(err, neserr.InvalidHeader) {
		t.Fatalf("got %v, want wrapping neserr.InvalidHeader", err)
	}
}

func TestParseHeaderMirroring(t *testing.T) {
	h, err := ParseHeader(buildROM(1, 1, flag6Mirroring, 0, 0, 0))
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Mirroring != memory.MirrorVertical {
		t.Errorf("Mirroring = %v, want vertical", h.Mirroring)
	}

	h, err = ParseHeader(buildROM(1, 1, 0, 0, 0, 0))
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Mirroring != memory.MirrorHorizontal {
		t.Errorf("Mirroring = %v, want horizontal", h.Mirroring)
	}
}

func TestLoadNROMSingleBankMirrors(t *testing.T) {
	rom := buildROM(1, 1, 0, 0, 0x42, 0x11)
	c, err := Load(rom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := c.Mapper()
	if got := m.PRGRead(0x8000); got != 0x42 {
		t.Errorf("PRGRead(0x8000) = %#02x, want 0x42", got)
	}
	if got := m.PRGRead(0xC000); got != 0x42 {
		t.Errorf("PRGRead(0xC000) = %#02x, want 0x42 (mirrored)", got)
	}
}

func TestLoadNROMTwoBanksDoNotMirror(t *testing.T) {
	buf := buildROM(2, 1, 0, 0, 0, 0)
	buf[headerSize] = 0xAA
	buf[headerSize+prgBlockSize] = 0xBB
	c, err := Load(buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := c.Mapper()
	if got := m.PRGRead(0x8000); got != 0xAA {
		t.Errorf("PRGRead(0x8000) = %#02x, want 0xAA", got)
	}
	if got := m.PRGRead(0xC000); got != 0xBB {
		t.Errorf("PRGRead(0xC000) = %#02x, want 0xBB", got)
	}
}

func TestLoadUnsupportedMapper(t *testing.T) {
	buf := buildROM(1, 1, 0xF0, 0, 0, 0) // mapper id 15, unregistered
	_, err := Load(buf)
	var um *neserr.UnsupportedMapper
	if !errors.As(err, &um) {
		t.Fatalf("got %v, want *neserr.UnsupportedMapper", err)
	}
}

func TestCHRRAMWhenNoCHRBlocks(t *testing.T) {
	buf := buildROM(1, 0, 0, 0, 0, 0)
	c, err := Load(buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := c.Mapper()
	if err := m.CHRWrite(0x0010, 0x77); err != nil {
		t.Fatalf("CHRWrite to CHR RAM should succeed: %v", err)
	}
	if got := m.CHRRead(0x0010); got != 0x77 {
		t.Errorf("CHRRead = %#02x, want 0x77", got)
	}
}

func TestCHRROMRejectsWrite(t *testing.T) {
	buf := buildROM(1, 1, 0, 0, 0, 0)
	c, _ := Load(buf)
	if err := c.Mapper().CHRWrite(0, 1); err == nil {
		t.Fatal("expected write to CHR ROM to fail")
	}
}

func TestIgnoreHighNibbleHeuristic(t *testing.T) {
	buf := buildROM(1, 1, 0x10, 0x10, 0, 0) // mapper would be 0x11 = 17
	copy(buf[12:16], []byte{'D', 'u', 'd', 'e'})
	h, err := ParseHeader(buf)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.MapperID != 1 {
		t.Errorf("MapperID = %d, want 1 (high nibble ignored)", h.MapperID)
	}
}
