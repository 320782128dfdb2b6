package mos6502

// instrFunc executes one decoded instruction against its evaluated
// operand. It returns the number of cycles to add beyond the opcode's
// table base (branches return their taken and page-cross penalties
// here; the read page-cross penalty is added by step() from the
// table's bonusOnCross flag) and any error the memory side produced.
type instrFunc func(c *CPU, mem Memory, op operand) (int, error)

func adc(c *CPU, mem Memory, op operand) (int, error) {
	m := op.Load(c, mem)
	carryIn := uint16(0)
	if c.getFlag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(m) + carryIn
	result := uint8(sum)

	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^m)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
	return 0, nil
}

func sbc(c *CPU, mem Memory, op operand) (int, error) {
	m := op.Load(c, mem) ^ 0xFF
	carryIn := uint16(0)
	if c.getFlag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(m) + carryIn
	result := uint8(sum)

	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^m)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
	return 0, nil
}

func and(c *CPU, mem Memory, op operand) (int, error) {
	c.A &= op.Load(c, mem)
	c.setZN(c.A)
	return 0, nil
}

func asl(c *CPU, mem Memory, op operand) (int, error) {
	v := op.Load(c, mem)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	c.setZN(v)
	return 0, op.Store(c, mem, v)
}

func lsr(c *CPU, mem Memory, op operand) (int, error) {
	v := op.Load(c, mem)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	c.setZN(v)
	return 0, op.Store(c, mem, v)
}

func rol(c *CPU, mem Memory, op operand) (int, error) {
	v := op.Load(c, mem)
	oldCarry := uint8(0)
	if c.getFlag(FlagCarry) {
		oldCarry = 1
	}
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = (v << 1) | oldCarry
	c.setZN(v)
	return 0, op.Store(c, mem, v)
}

func ror(c *CPU, mem Memory, op operand) (int, error) {
	v := op.Load(c, mem)
	oldCarry := uint8(0)
	if c.getFlag(FlagCarry) {
		oldCarry = 0x80
	}
	c.setFlag(FlagCarry, v&0x01 != 0)
	v = (v >> 1) | oldCarry
	c.setZN(v)
	return 0, op.Store(c, mem, v)
}

func branchIf(c *CPU, op operand, cond bool) (int, error) {
	if !cond {
		return 0, nil
	}
	c.PC = op.addr
	c.jumped = true
	extra := 1
	if op.pageCrossed {
		extra++
	}
	return extra, nil
}

func bcc(c *CPU, mem Memory, op operand) (int, error) { return branchIf(c, op, !c.getFlag(FlagCarry)) }
func bcs(c *CPU, mem Memory, op operand) (int, error) { return branchIf(c, op, c.getFlag(FlagCarry)) }
func beq(c *CPU, mem Memory, op operand) (int, error) { return branchIf(c, op, c.getFlag(FlagZero)) }
func bne(c *CPU, mem Memory, op operand) (int, error) {
	return branchIf(c, op, !c.getFlag(FlagZero))
}
func bmi(c *CPU, mem Memory, op operand) (int, error) {
	return branchIf(c, op, c.getFlag(FlagNegative))
}
func bpl(c *CPU, mem Memory, op operand) (int, error) {
	return branchIf(c, op, !c.getFlag(FlagNegative))
}
func bvc(c *CPU, mem Memory, op operand) (int, error) {
	return branchIf(c, op, !c.getFlag(FlagOverflow))
}
func bvs(c *CPU, mem Memory, op operand) (int, error) {
	return branchIf(c, op, c.getFlag(FlagOverflow))
}

func bit(c *CPU, mem Memory, op operand) (int, error) {
	m := op.Load(c, mem)
	c.setFlag(FlagZero, c.A&m == 0)
	c.setFlag(FlagOverflow, m&0x40 != 0)
	c.setFlag(FlagNegative, m&0x80 != 0)
	return 0, nil
}

func brk(c *CPU, mem Memory, op operand) (int, error) {
	c.pushWord(mem, c.PC+2)
	c.pushByte(mem, c.P|FlagBreak|FlagUnused)
	c.setFlag(FlagInterrupt, true)
	c.PC = mem.ReadWord(vectorIRQ)
	c.jumped = true
	return 0, nil
}

func clc(c *CPU, mem Memory, op operand) (int, error) { c.setFlag(FlagCarry, false); return 0, nil }
func cld(c *CPU, mem Memory, op operand) (int, error) { c.setFlag(FlagDecimal, false); return 0, nil }
func cli(c *CPU, mem Memory, op operand) (int, error) {
	c.setFlag(FlagInterrupt, false)
	return 0, nil
}
func clv(c *CPU, mem Memory, op operand) (int, error) { c.setFlag(FlagOverflow, false); return 0, nil }
func sec(c *CPU, mem Memory, op operand) (int, error) { c.setFlag(FlagCarry, true); return 0, nil }
func sed(c *CPU, mem Memory, op operand) (int, error) { c.setFlag(FlagDecimal, true); return 0, nil }
func sei(c *CPU, mem Memory, op operand) (int, error) { c.setFlag(FlagInterrupt, true); return 0, nil }

func compare(c *CPU, reg, m uint8) {
	result := reg - m
	c.setFlag(FlagCarry, reg >= m)
	c.setZN(result)
}

func cmp(c *CPU, mem Memory, op operand) (int, error) {
	compare(c, c.A, op.Load(c, mem))
	return 0, nil
}
func cpx(c *CPU, mem Memory, op operand) (int, error) {
	compare(c, c.X, op.Load(c, mem))
	return 0, nil
}
func cpy(c *CPU, mem Memory, op operand) (int, error) {
	compare(c, c.Y, op.Load(c, mem))
	return 0, nil
}

func dec(c *CPU, mem Memory, op operand) (int, error) {
	v := op.Load(c, mem) - 1
	c.setZN(v)
	return 0, op.Store(c, mem, v)
}
func dex(c *CPU, mem Memory, op operand) (int, error) {
	c.X--
	c.setZN(c.X)
	return 0, nil
}
func dey(c *CPU, mem Memory, op operand) (int, error) {
	c.Y--
	c.setZN(c.Y)
	return 0, nil
}
func inc(c *CPU, mem Memory, op operand) (int, error) {
	v := op.Load(c, mem) + 1
	c.setZN(v)
	return 0, op.Store(c, mem, v)
}
func inx(c *CPU, mem Memory, op operand) (int, error) {
	c.X++
	c.setZN(c.X)
	return 0, nil
}
func iny(c *CPU, mem Memory, op operand) (int, error) {
	c.Y++
	c.setZN(c.Y)
	return 0, nil
}

func eor(c *CPU, mem Memory, op operand) (int, error) {
	c.A ^= op.Load(c, mem)
	c.setZN(c.A)
	return 0, nil
}

func jmp(c *CPU, mem Memory, op operand) (int, error) {
	c.PC = op.addr
	c.jumped = true
	return 0, nil
}

func jsr(c *CPU, mem Memory, op operand) (int, error) {
	c.pushWord(mem, c.PC+2)
	c.PC = op.addr
	c.jumped = true
	return 0, nil
}

func lda(c *CPU, mem Memory, op operand) (int, error) {
	c.A = op.Load(c, mem)
	c.setZN(c.A)
	return 0, nil
}
func ldx(c *CPU, mem Memory, op operand) (int, error) {
	c.X = op.Load(c, mem)
	c.setZN(c.X)
	return 0, nil
}
func ldy(c *CPU, mem Memory, op operand) (int, error) {
	c.Y = op.Load(c, mem)
	c.setZN(c.Y)
	return 0, nil
}

func nop(c *CPU, mem Memory, op operand) (int, error) { return 0, nil }

func ora(c *CPU, mem Memory, op operand) (int, error) {
	c.A |= op.Load(c, mem)
	c.setZN(c.A)
	return 0, nil
}

func pha(c *CPU, mem Memory, op operand) (int, error) {
	c.pushByte(mem, c.A)
	return 0, nil
}
func php(c *CPU, mem Memory, op operand) (int, error) {
	c.pushByte(mem, c.P|FlagBreak|FlagUnused)
	return 0, nil
}
func pla(c *CPU, mem Memory, op operand) (int, error) {
	c.A = c.popByte(mem)
	c.setZN(c.A)
	return 0, nil
}
func plp(c *CPU, mem Memory, op operand) (int, error) {
	c.P = pullStatus(c.popByte(mem))
	return 0, nil
}

func rti(c *CPU, mem Memory, op operand) (int, error) {
	c.P = pullStatus(c.popByte(mem))
	c.PC = c.popWord(mem)
	c.jumped = true
	return 0, nil
}

func rts(c *CPU, mem Memory, op operand) (int, error) {
	c.PC = c.popWord(mem) + 1
	c.jumped = true
	return 0, nil
}

func sta(c *CPU, mem Memory, op operand) (int, error) { return 0, op.Store(c, mem, c.A) }
func stx(c *CPU, mem Memory, op operand) (int, error) { return 0, op.Store(c, mem, c.X) }
func sty(c *CPU, mem Memory, op operand) (int, error) { return 0, op.Store(c, mem, c.Y) }

func tax(c *CPU, mem Memory, op operand) (int, error) {
	c.X = c.A
	c.setZN(c.X)
	return 0, nil
}
func tay(c *CPU, mem Memory, op operand) (int, error) {
	c.Y = c.A
	c.setZN(c.Y)
	return 0, nil
}
func tsx(c *CPU, mem Memory, op operand) (int, error) {
	c.X = c.SP
	c.setZN(c.X)
	return 0, nil
}
func txa(c *CPU, mem Memory, op operand) (int, error) {
	c.A = c.X
	c.setZN(c.A)
	return 0, nil
}
func txs(c *CPU, mem Memory, op operand) (int, error) {
	c.SP = c.X
	return 0, nil
}
func tya(c *CPU, mem Memory, op operand) (int, error) {
	c.A = c.Y
	c.setZN(c.A)
	return 0, nil
}
