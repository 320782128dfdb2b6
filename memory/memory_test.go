package memory

import (
	"errors"
	"testing"

	"github.com/rdkern/nesbox/neserr"
)

func TestROMWriteFails(t *testing.T) {
	r := NewROM([]uint8{1, 2, 3, 4})
	if err := r.Write(0, 9); err == nil {
		t.Fatal("expected WriteToReadOnly, got nil")
	} else {
		var wro *neserr.WriteToReadOnly
		if !errors.As(err, &wro) {
			t.Fatalf("got %v, want *neserr.WriteToReadOnly", err)
		}
	}
	if got := r.Read(2); got != 3 {
		t.Errorf("Read(2) = %d, want 3", got)
	}
}

func TestCPURAMMirroring(t *testing.T) {
	ram := NewCPURAM()
	ram.Write(0x0010, 0x42)
	for _, mirror := range []uint16{0x0010, 0x0810, 0x1010, 0x1810} {
		if got := ram.Read(mirror); got != 0x42 {
			t.Errorf("Read(%#04x) = %#02x, want 0x42", mirror, got)
		}
	}
}

func TestNametableMirroringHorizontal(t *testing.T) {
	nt := NewNametableRAM(MirrorHorizontal)
	nt.Write(0x0000, 0xAA)
	nt.Write(0x0800, 0xBB)

	for o := uint16(0); o <= 0x3FF; o++ {
		if got, want := nt.Read(o), nt.Read(0x0400+o); got != want {
			t.Fatalf("offset %#03x: $2000 bank=%#02x $2400 bank=%#02x, want equal", o, got, want)
		}
		if got, want := nt.Read(0x0800+o), nt.Read(0x0C00+o); got != want {
			t.Fatalf("offset %#03x: $2800 bank=%#02x $2C00 bank=%#02x, want equal", o, got, want)
		}
	}
	if nt.Read(0x0000) != 0xAA || nt.Read(0x0800) != 0xBB {
		t.Fatal("horizontal mirroring did not preserve distinct A/B banks")
	}
}

func TestNametableMirroringVertical(t *testing.T) {
	nt := NewNametableRAM(MirrorVertical)
	nt.Write(0x0000, 0x11)
	nt.Write(0x0400, 0x22)

	if got := nt.Read(0x0800); got != 0x11 {
		t.Errorf("$2800 = %#02x, want 0x11 (mirrors $2000)", got)
	}
	if got := nt.Read(0x0C00); got != 0x22 {
		t.Errorf("$2C00 = %#02x, want 0x22 (mirrors $2400)", got)
	}
}

func TestPaletteAliasing(t *testing.T) {
	p := NewPaletteRAM()
	cases := []struct{ a, b uint16 }{
		{0x10, 0x00}, {0x14, 0x04}, {0x18, 0x08}, {0x1C, 0x0C},
	}
	for _, tc := range cases {
		p.Write(tc.a, 0x37)
		if got := p.Read(tc.b); got != 0x37 {
			t.Errorf("write $3F%02X not observable at $3F%02X: got %#02x", tc.a, tc.b, got)
		}
		p.Write(tc.b, 0x09)
		if got := p.Read(tc.a); got != 0x09 {
			t.Errorf("write $3F%02X not observable at $3F%02X: got %#02x", tc.b, tc.a, got)
		}
	}
}
