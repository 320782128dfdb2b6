package ppu

import "testing"

// TestSystemPaletteGoldenValues checks a handful of well-known NES
// master palette entries byte-exact against the canonical RGB values,
// and confirms the packing leaves the top byte zero (0x00RRGGBB).
func TestSystemPaletteGoldenValues(t *testing.T) {
	tests := []struct {
		index int
		want  uint32
	}{
		{0x00, 0x808080},
		{0x01, 0x003DA6},
		{0x0F, 0x050505},
		{0x10, 0xC7C7C7},
		{0x20, 0xFFFFFF},
		{0x30, 0xFFFFFF},
		{0x3D, 0xDDDDDD},
		{0x3E, 0x111111},
	}

	for _, tc := range tests {
		got := SystemPalette[tc.index]
		if got != tc.want {
			t.Errorf("SystemPalette[%#02x] = %#08x, want %#08x", tc.index, got, tc.want)
		}
		if got&0xFF000000 != 0 {
			t.Errorf("SystemPalette[%#02x] = %#08x, top byte should be 0x00", tc.index, got)
		}
	}
}
