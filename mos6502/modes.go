package mos6502

// AddrMode identifies one of the 6502's addressing modes.
type AddrMode uint8

const (
	Implicit AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

// operand is the result of evaluating an addressing mode: an effective
// address (when one exists) plus enough context for the instruction
// handler to load or store through it without the mode evaluator
// having to guess whether a read is wanted. Evaluating a mode never
// reads the target of Absolute/ZeroPage/etc addressing itself -- only
// Load() does -- so STA/STX/STY never trigger a spurious read of a
// memory-mapped I/O register as a side effect of computing where to
// write.
type operand struct {
	mode        AddrMode
	addr        uint16
	immediate   uint8 // valid only when mode == Immediate
	pageCrossed bool
}

// Load returns the operand's value, reading through the bus for every
// mode except Accumulator and Immediate.
func (o operand) Load(c *CPU, mem Memory) uint8 {
	switch o.mode {
	case Accumulator:
		return c.A
	case Immediate:
		return o.immediate
	default:
		return mem.ReadByte(o.addr)
	}
}

// Store writes v back through the operand, to the accumulator or to
// memory.
func (o operand) Store(c *CPU, mem Memory, v uint8) error {
	if o.mode == Accumulator {
		c.A = v
		return nil
	}
	return mem.WriteByte(o.addr, v)
}

// evalMode computes the operand for entry.mode given that the opcode
// byte sits at pc (the operand bytes, if any, follow immediately).
// It never advances c.PC; the caller does that once per instruction
// after execution, using the opcode's fixed length.
func evalMode(c *CPU, mem Memory, mode AddrMode, pc uint16) operand {
	operandAddr := pc + 1

	switch mode {
	case Implicit:
		return operand{mode: mode}

	case Accumulator:
		return operand{mode: mode}

	case Immediate:
		return operand{mode: mode, immediate: mem.ReadByte(operandAddr), addr: operandAddr}

	case ZeroPage:
		zp := mem.ReadByte(operandAddr)
		return operand{mode: mode, addr: uint16(zp)}

	case ZeroPageX:
		zp := mem.ReadByte(operandAddr) + c.X
		return operand{mode: mode, addr: uint16(zp)}

	case ZeroPageY:
		zp := mem.ReadByte(operandAddr) + c.Y
		return operand{mode: mode, addr: uint16(zp)}

	case Relative:
		offset := int8(mem.ReadByte(operandAddr))
		nextPC := pc + 2
		addr := uint16(int32(nextPC) + int32(offset))
		return operand{mode: mode, addr: addr, pageCrossed: (addr & 0xFF00) != (nextPC & 0xFF00)}

	case Absolute:
		addr := mem.ReadWord(operandAddr)
		return operand{mode: mode, addr: addr}

	case AbsoluteX:
		base := mem.ReadWord(operandAddr)
		addr := base + uint16(c.X)
		return operand{mode: mode, addr: addr, pageCrossed: (addr & 0xFF00) != (base & 0xFF00)}

	case AbsoluteY:
		base := mem.ReadWord(operandAddr)
		addr := base + uint16(c.Y)
		return operand{mode: mode, addr: addr, pageCrossed: (addr & 0xFF00) != (base & 0xFF00)}

	case Indirect:
		ptr := mem.ReadWord(operandAddr)
		addr := mem.ReadWordPageBug(ptr)
		return operand{mode: mode, addr: addr}

	case IndirectX:
		zp := mem.ReadByte(operandAddr) + c.X
		addr := mem.ReadWordZeroPage(zp)
		return operand{mode: mode, addr: addr}

	case IndirectY:
		zp := mem.ReadByte(operandAddr)
		base := mem.ReadWordZeroPage(zp)
		addr := base + uint16(c.Y)
		return operand{mode: mode, addr: addr, pageCrossed: (addr & 0xFF00) != (base & 0xFF00)}
	}

	return operand{mode: mode}
}
