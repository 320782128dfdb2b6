package ppu

// loopy packs the PPU's internal scroll/address register layout
// (named for Loopy's classic nesdev scrolling writeup):
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopy uint16

func (l loopy) coarseX() uint16    { return uint16(l) & 0x001F }
func (l loopy) coarseY() uint16    { return (uint16(l) & 0x03E0) >> 5 }
func (l loopy) nametable() uint16  { return (uint16(l) & 0x0C00) >> 10 }
func (l loopy) fineY() uint16      { return (uint16(l) & 0x7000) >> 12 }

func (l *loopy) setCoarseX(n uint16) { *l = loopy((uint16(*l) & 0xFFE0) | (n & 0x001F)) }
func (l *loopy) setCoarseY(n uint16) { *l = loopy((uint16(*l) & 0xFC1F) | ((n & 0x001F) << 5)) }
func (l *loopy) setNametable(n uint16) { *l = loopy((uint16(*l) & 0xF3FF) | ((n & 0x03) << 10)) }
func (l *loopy) setFineY(n uint16)   { *l = loopy((uint16(*l) & 0x0FFF) | ((n & 0x07) << 12)) }

// incrementCoarseX implements the nametable-wraparound rule used when
// stepping the background fetcher one tile to the right across the
// visible scanline.
func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		*l ^= 0x0400 // flip horizontal nametable bit
		return
	}
	l.setCoarseX(l.coarseX() + 1)
}

// incrementY implements the coarse/fine Y carry rule, including the
// 30-row nametable wrap (rows 30 and 31 are attribute-table space the
// hardware still walks through on real carts with the vertical-wrap
// quirk, so wrap at 30 rather than 32).
func (l *loopy) incrementY() {
	if l.fineY() < 7 {
		l.setFineY(l.fineY() + 1)
		return
	}
	l.setFineY(0)
	y := l.coarseY()
	switch y {
	case 29:
		l.setCoarseY(0)
		*l ^= 0x0800 // flip vertical nametable bit
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(y + 1)
	}
}

// transferX copies the horizontal scroll bits (coarse X, nametable X)
// from t into v, performed at the start of each visible scanline.
func (v *loopy) transferX(t loopy) {
	*v = loopy((uint16(*v) &^ 0x041F) | (uint16(t) & 0x041F))
}

// transferY copies the vertical scroll bits from t into v, performed
// once at the pre-render line.
func (v *loopy) transferY(t loopy) {
	*v = loopy((uint16(*v) &^ 0x7BE0) | (uint16(t) & 0x7BE0))
}
