package mos6502

// opcode describes one entry of the 256-slot dispatch table: how to
// evaluate the operand, how long the instruction is in bytes, its
// base cycle cost, and whether a page-crossing addressing mode earns
// an extra cycle for this particular opcode (stores and RMW
// instructions never do; most reads do).
type opcode struct {
	exec         instrFunc
	mode         AddrMode
	length       uint8
	cycles       uint8
	bonusOnCross bool
}

var dispatch [256]opcode

func op(code uint8, exec instrFunc, mode AddrMode, length, cycles uint8, bonus bool) {
	dispatch[code] = opcode{exec: exec, mode: mode, length: length, cycles: cycles, bonusOnCross: bonus}
}

// InstructionLength reports the byte length of the instruction encoded
// by opcode, or 1 for an illegal opcode (so a debug memory dump can
// still advance). Used by the debug BIOS's instruction-bytes display.
func InstructionLength(opcode uint8) uint8 {
	if l := dispatch[opcode].length; l > 0 {
		return l
	}
	return 1
}

func init() {
	op(0x69, adc, Immediate, 2, 2, false)
	op(0x65, adc, ZeroPage, 2, 3, false)
	op(0x75, adc, ZeroPageX, 2, 4, false)
	op(0x6D, adc, Absolute, 3, 4, false)
	op(0x7D, adc, AbsoluteX, 3, 4, true)
	op(0x79, adc, AbsoluteY, 3, 4, true)
	op(0x61, adc, IndirectX, 2, 6, false)
	op(0x71, adc, IndirectY, 2, 5, true)

	op(0x29, and, Immediate, 2, 2, false)
	op(0x25, and, ZeroPage, 2, 3, false)
	op(0x35, and, ZeroPageX, 2, 4, false)
	op(0x2D, and, Absolute, 3, 4, false)
	op(0x3D, and, AbsoluteX, 3, 4, true)
	op(0x39, and, AbsoluteY, 3, 4, true)
	op(0x21, and, IndirectX, 2, 6, false)
	op(0x31, and, IndirectY, 2, 5, true)

	op(0x0A, asl, Accumulator, 1, 2, false)
	op(0x06, asl, ZeroPage, 2, 5, false)
	op(0x16, asl, ZeroPageX, 2, 6, false)
	op(0x0E, asl, Absolute, 3, 6, false)
	op(0x1E, asl, AbsoluteX, 3, 7, false)

	op(0x90, bcc, Relative, 2, 2, false)
	op(0xB0, bcs, Relative, 2, 2, false)
	op(0xF0, beq, Relative, 2, 2, false)
	op(0x30, bmi, Relative, 2, 2, false)
	op(0xD0, bne, Relative, 2, 2, false)
	op(0x10, bpl, Relative, 2, 2, false)
	op(0x50, bvc, Relative, 2, 2, false)
	op(0x70, bvs, Relative, 2, 2, false)

	op(0x24, bit, ZeroPage, 2, 3, false)
	op(0x2C, bit, Absolute, 3, 4, false)

	op(0x00, brk, Implicit, 1, 7, false)

	op(0x18, clc, Implicit, 1, 2, false)
	op(0xD8, cld, Implicit, 1, 2, false)
	op(0x58, cli, Implicit, 1, 2, false)
	op(0xB8, clv, Implicit, 1, 2, false)
	op(0x38, sec, Implicit, 1, 2, false)
	op(0xF8, sed, Implicit, 1, 2, false)
	op(0x78, sei, Implicit, 1, 2, false)

	op(0xC9, cmp, Immediate, 2, 2, false)
	op(0xC5, cmp, ZeroPage, 2, 3, false)
	op(0xD5, cmp, ZeroPageX, 2, 4, false)
	op(0xCD, cmp, Absolute, 3, 4, false)
	op(0xDD, cmp, AbsoluteX, 3, 4, true)
	op(0xD9, cmp, AbsoluteY, 3, 4, true)
	op(0xC1, cmp, IndirectX, 2, 6, false)
	op(0xD1, cmp, IndirectY, 2, 5, true)

	op(0xE0, cpx, Immediate, 2, 2, false)
	op(0xE4, cpx, ZeroPage, 2, 3, false)
	op(0xEC, cpx, Absolute, 3, 4, false)

	op(0xC0, cpy, Immediate, 2, 2, false)
	op(0xC4, cpy, ZeroPage, 2, 3, false)
	op(0xCC, cpy, Absolute, 3, 4, false)

	op(0xC6, dec, ZeroPage, 2, 5, false)
	op(0xD6, dec, ZeroPageX, 2, 6, false)
	op(0xCE, dec, Absolute, 3, 6, false)
	op(0xDE, dec, AbsoluteX, 3, 7, false)
	op(0xCA, dex, Implicit, 1, 2, false)
	op(0x88, dey, Implicit, 1, 2, false)

	op(0x49, eor, Immediate, 2, 2, false)
	op(0x45, eor, ZeroPage, 2, 3, false)
	op(0x55, eor, ZeroPageX, 2, 4, false)
	op(0x4D, eor, Absolute, 3, 4, false)
	op(0x5D, eor, AbsoluteX, 3, 4, true)
	op(0x59, eor, AbsoluteY, 3, 4, true)
	op(0x41, eor, IndirectX, 2, 6, false)
	op(0x51, eor, IndirectY, 2, 5, true)

	op(0xE6, inc, ZeroPage, 2, 5, false)
	op(0xF6, inc, ZeroPageX, 2, 6, false)
	op(0xEE, inc, Absolute, 3, 6, false)
	op(0xFE, inc, AbsoluteX, 3, 7, false)
	op(0xE8, inx, Implicit, 1, 2, false)
	op(0xC8, iny, Implicit, 1, 2, false)

	op(0x4C, jmp, Absolute, 3, 3, false)
	op(0x6C, jmp, Indirect, 3, 5, false)
	op(0x20, jsr, Absolute, 3, 6, false)

	op(0xA9, lda, Immediate, 2, 2, false)
	op(0xA5, lda, ZeroPage, 2, 3, false)
	op(0xB5, lda, ZeroPageX, 2, 4, false)
	op(0xAD, lda, Absolute, 3, 4, false)
	op(0xBD, lda, AbsoluteX, 3, 4, true)
	op(0xB9, lda, AbsoluteY, 3, 4, true)
	op(0xA1, lda, IndirectX, 2, 6, false)
	op(0xB1, lda, IndirectY, 2, 5, true)

	op(0xA2, ldx, Immediate, 2, 2, false)
	op(0xA6, ldx, ZeroPage, 2, 3, false)
	op(0xB6, ldx, ZeroPageY, 2, 4, false)
	op(0xAE, ldx, Absolute, 3, 4, false)
	op(0xBE, ldx, AbsoluteY, 3, 4, true)

	op(0xA0, ldy, Immediate, 2, 2, false)
	op(0xA4, ldy, ZeroPage, 2, 3, false)
	op(0xB4, ldy, ZeroPageX, 2, 4, false)
	op(0xAC, ldy, Absolute, 3, 4, false)
	op(0xBC, ldy, AbsoluteX, 3, 4, true)

	op(0x4A, lsr, Accumulator, 1, 2, false)
	op(0x46, lsr, ZeroPage, 2, 5, false)
	op(0x56, lsr, ZeroPageX, 2, 6, false)
	op(0x4E, lsr, Absolute, 3, 6, false)
	op(0x5E, lsr, AbsoluteX, 3, 7, false)

	op(0xEA, nop, Implicit, 1, 2, false)

	op(0x09, ora, Immediate, 2, 2, false)
	op(0x05, ora, ZeroPage, 2, 3, false)
	op(0x15, ora, ZeroPageX, 2, 4, false)
	op(0x0D, ora, Absolute, 3, 4, false)
	op(0x1D, ora, AbsoluteX, 3, 4, true)
	op(0x19, ora, AbsoluteY, 3, 4, true)
	op(0x01, ora, IndirectX, 2, 6, false)
	op(0x11, ora, IndirectY, 2, 5, true)

	op(0x48, pha, Implicit, 1, 3, false)
	op(0x08, php, Implicit, 1, 3, false)
	op(0x68, pla, Implicit, 1, 4, false)
	op(0x28, plp, Implicit, 1, 4, false)

	op(0x2A, rol, Accumulator, 1, 2, false)
	op(0x26, rol, ZeroPage, 2, 5, false)
	op(0x36, rol, ZeroPageX, 2, 6, false)
	op(0x2E, rol, Absolute, 3, 6, false)
	op(0x3E, rol, AbsoluteX, 3, 7, false)

	op(0x6A, ror, Accumulator, 1, 2, false)
	op(0x66, ror, ZeroPage, 2, 5, false)
	op(0x76, ror, ZeroPageX, 2, 6, false)
	op(0x6E, ror, Absolute, 3, 6, false)
	op(0x7E, ror, AbsoluteX, 3, 7, false)

	op(0x40, rti, Implicit, 1, 6, false)
	op(0x60, rts, Implicit, 1, 6, false)

	op(0xE9, sbc, Immediate, 2, 2, false)
	op(0xE5, sbc, ZeroPage, 2, 3, false)
	op(0xF5, sbc, ZeroPageX, 2, 4, false)
	op(0xED, sbc, Absolute, 3, 4, false)
	op(0xFD, sbc, AbsoluteX, 3, 4, true)
	op(0xF9, sbc, AbsoluteY, 3, 4, true)
	op(0xE1, sbc, IndirectX, 2, 6, false)
	op(0xF1, sbc, IndirectY, 2, 5, true)

	op(0x85, sta, ZeroPage, 2, 3, false)
	op(0x95, sta, ZeroPageX, 2, 4, false)
	op(0x8D, sta, Absolute, 3, 4, false)
	op(0x9D, sta, AbsoluteX, 3, 5, false)
	op(0x99, sta, AbsoluteY, 3, 5, false)
	op(0x81, sta, IndirectX, 2, 6, false)
	op(0x91, sta, IndirectY, 2, 6, false)

	op(0x86, stx, ZeroPage, 2, 3, false)
	op(0x96, stx, ZeroPageY, 2, 4, false)
	op(0x8E, stx, Absolute, 3, 4, false)

	op(0x84, sty, ZeroPage, 2, 3, false)
	op(0x94, sty, ZeroPageX, 2, 4, false)
	op(0x8C, sty, Absolute, 3, 4, false)

	op(0xAA, tax, Implicit, 1, 2, false)
	op(0xA8, tay, Implicit, 1, 2, false)
	op(0xBA, tsx, Implicit, 1, 2, false)
	op(0x8A, txa, Implicit, 1, 2, false)
	op(0x9A, txs, Implicit, 1, 2, false)
	op(0x98, tya, Implicit, 1, 2, false)
}
