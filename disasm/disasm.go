// Package disasm renders 6502 instruction bytes as assembly mnemonics
// for debug traces. It is a thin, read-only collaborator: it never
// executes anything, only formats what a byte reader already holds.
package disasm

import (
	"fmt"

	"github.com/rdkern/nesbox/mos6502"
)

type entry struct {
	name string
	mode mos6502.AddrMode
}

var table [256]entry

func set(code uint8, name string, mode mos6502.AddrMode) {
	table[code] = entry{name: name, mode: mode}
}

func init() {
	set(0x69, "ADC", mos6502.Immediate)
	set(0x65, "ADC", mos6502.ZeroPage)
	set(0x75, "ADC", mos6502.ZeroPageX)
	set(0x6D, "ADC", mos6502.Absolute)
	set(0x7D, "ADC", mos6502.AbsoluteX)
	set(0x79, "ADC", mos6502.AbsoluteY)
	set(0x61, "ADC", mos6502.IndirectX)
	set(0x71, "ADC", mos6502.IndirectY)

	set(0x29, "AND", mos6502.Immediate)
	set(0x25, "AND", mos6502.ZeroPage)
	set(0x35, "AND", mos6502.ZeroPageX)
	set(0x2D, "AND", mos6502.Absolute)
	set(0x3D, "AND", mos6502.AbsoluteX)
	set(0x39, "AND", mos6502.AbsoluteY)
	set(0x21, "AND", mos6502.IndirectX)
	set(0x31, "AND", mos6502.IndirectY)

	set(0x0A, "ASL", mos6502.Accumulator)
	set(0x06, "ASL", mos6502.ZeroPage)
	set(0x16, "ASL", mos6502.ZeroPageX)
	set(0x0E, "ASL", mos6502.Absolute)
	set(0x1E, "ASL", mos6502.AbsoluteX)

	set(0x90, "BCC", mos6502.Relative)
	set(0xB0, "BCS", mos6502.Relative)
	set(0xF0, "BEQ", mos6502.Relative)
	set(0x30, "BMI", mos6502.Relative)
	set(0xD0, "BNE", mos6502.Relative)
	set(0x10, "BPL", mos6502.Relative)
	set(0x50, "BVC", mos6502.Relative)
	set(0x70, "BVS", mos6502.Relative)

	set(0x24, "BIT", mos6502.ZeroPage)
	set(0x2C, "BIT", mos6502.Absolute)

	set(0x00, "BRK", mos6502.Implicit)

	set(0x18, "CLC", mos6502.Implicit)
	set(0xD8, "CLD", mos6502.Implicit)
	set(0x58, "CLI", mos6502.Implicit)
	set(0xB8, "CLV", mos6502.Implicit)
	set(0x38, "SEC", mos6502.Implicit)
	set(0xF8, "SED", mos6502.Implicit)
	set(0x78, "SEI", mos6502.Implicit)

	set(0xC9, "CMP", mos6502.Immediate)
	set(0xC5, "CMP", mos6502.ZeroPage)
	set(0xD5, "CMP", mos6502.ZeroPageX)
	set(0xCD, "CMP", mos6502.Absolute)
	set(0xDD, "CMP", mos6502.AbsoluteX)
	set(0xD9, "CMP", mos6502.AbsoluteY)
	set(0xC1, "CMP", mos6502.IndirectX)
	set(0xD1, "CMP", mos6502.IndirectY)

	set(0xE0, "CPX", mos6502.Immediate)
	set(0xE4, "CPX", mos6502.ZeroPage)
	set(0xEC, "CPX", mos6502.Absolute)

	set(0xC0, "CPY", mos6502.Immediate)
	set(0xC4, "CPY", mos6502.ZeroPage)
	set(0xCC, "CPY", mos6502.Absolute)

	set(0xC6, "DEC", mos6502.ZeroPage)
	set(0xD6, "DEC", mos6502.ZeroPageX)
	set(0xCE, "DEC", mos6502.Absolute)
	set(0xDE, "DEC", mos6502.AbsoluteX)
	set(0xCA, "DEX", mos6502.Implicit)
	set(0x88, "DEY", mos6502.Implicit)

	set(0x49, "EOR", mos6502.Immediate)
	set(0x45, "EOR", mos6502.ZeroPage)
	set(0x55, "EOR", mos6502.ZeroPageX)
	set(0x4D, "EOR", mos6502.Absolute)
	set(0x5D, "EOR", mos6502.AbsoluteX)
	set(0x59, "EOR", mos6502.AbsoluteY)
	set(0x41, "EOR", mos6502.IndirectX)
	set(0x51, "EOR", mos6502.IndirectY)

	set(0xE6, "INC", mos6502.ZeroPage)
	set(0xF6, "INC", mos6502.ZeroPageX)
	set(0xEE, "INC", mos6502.Absolute)
	set(0xFE, "INC", mos6502.AbsoluteX)
	set(0xE8, "INX", mos6502.Implicit)
	set(0xC8, "INY", mos6502.Implicit)

	set(0x4C, "JMP", mos6502.Absolute)
	set(0x6C, "JMP", mos6502.Indirect)
	set(0x20, "JSR", mos6502.Absolute)

	set(0xA9, "LDA", mos6502.Immediate)
	set(0xA5, "LDA", mos6502.ZeroPage)
	set(0xB5, "LDA", mos6502.ZeroPageX)
	set(0xAD, "LDA", mos6502.Absolute)
	set(0xBD, "LDA", mos6502.AbsoluteX)
	set(0xB9, "LDA", mos6502.AbsoluteY)
	set(0xA1, "LDA", mos6502.IndirectX)
	set(0xB1, "LDA", mos6502.IndirectY)

	set(0xA2, "LDX", mos6502.Immediate)
	set(0xA6, "LDX", mos6502.ZeroPage)
	set(0xB6, "LDX", mos6502.ZeroPageY)
	set(0xAE, "LDX", mos6502.Absolute)
	set(0xBE, "LDX", mos6502.AbsoluteY)

	set(0xA0, "LDY", mos6502.Immediate)
	set(0xA4, "LDY", mos6502.ZeroPage)
	set(0xB4, "LDY", mos6502.ZeroPageX)
	set(0xAC, "LDY", mos6502.Absolute)
	set(0xBC, "LDY", mos6502.AbsoluteX)

	set(0x4A, "LSR", mos6502.Accumulator)
	set(0x46, "LSR", mos6502.ZeroPage)
	set(0x56, "LSR", mos6502.ZeroPageX)
	set(0x4E, "LSR", mos6502.Absolute)
	set(0x5E, "LSR", mos6502.AbsoluteX)

	set(0xEA, "NOP", mos6502.Implicit)

	set(0x09, "ORA", mos6502.Immediate)
	set(0x05, "ORA", mos6502.ZeroPage)
	set(0x15, "ORA", mos6502.ZeroPageX)
	set(0x0D, "ORA", mos6502.Absolute)
	set(0x1D, "ORA", mos6502.AbsoluteX)
	set(0x19, "ORA", mos6502.AbsoluteY)
	set(0x01, "ORA", mos6502.IndirectX)
	set(0x11, "ORA", mos6502.IndirectY)

	set(0x48, "PHA", mos6502.Implicit)
	set(0x08, "PHP", mos6502.Implicit)
	set(0x68, "PLA", mos6502.Implicit)
	set(0x28, "PLP", mos6502.Implicit)

	set(0x2A, "ROL", mos6502.Accumulator)
	set(0x26, "ROL", mos6502.ZeroPage)
	set(0x36, "ROL", mos6502.ZeroPageX)
	set(0x2E, "ROL", mos6502.Absolute)
	set(0x3E, "ROL", mos6502.AbsoluteX)

	set(0x6A, "ROR", mos6502.Accumulator)
	set(0x66, "ROR", mos6502.ZeroPage)
	set(0x76, "ROR", mos6502.ZeroPageX)
	set(0x6E, "ROR", mos6502.Absolute)
	set(0x7E, "ROR", mos6502.AbsoluteX)

	set(0x40, "RTI", mos6502.Implicit)
	set(0x60, "RTS", mos6502.Implicit)

	set(0xE9, "SBC", mos6502.Immediate)
	set(0xE5, "SBC", mos6502.ZeroPage)
	set(0xF5, "SBC", mos6502.ZeroPageX)
	set(0xED, "SBC", mos6502.Absolute)
	set(0xFD, "SBC", mos6502.AbsoluteX)
	set(0xF9, "SBC", mos6502.AbsoluteY)
	set(0xE1, "SBC", mos6502.IndirectX)
	set(0xF1, "SBC", mos6502.IndirectY)

	set(0x85, "STA", mos6502.ZeroPage)
	set(0x95, "STA", mos6502.ZeroPageX)
	set(0x8D, "STA", mos6502.Absolute)
	set(0x9D, "STA", mos6502.AbsoluteX)
	set(0x99, "STA", mos6502.AbsoluteY)
	set(0x81, "STA", mos6502.IndirectX)
	set(0x91, "STA", mos6502.IndirectY)

	set(0x86, "STX", mos6502.ZeroPage)
	set(0x96, "STX", mos6502.ZeroPageY)
	set(0x8E, "STX", mos6502.Absolute)

	set(0x84, "STY", mos6502.ZeroPage)
	set(0x94, "STY", mos6502.ZeroPageX)
	set(0x8C, "STY", mos6502.Absolute)

	set(0xAA, "TAX", mos6502.Implicit)
	set(0xA8, "TAY", mos6502.Implicit)
	set(0xBA, "TSX", mos6502.Implicit)
	set(0x8A, "TXA", mos6502.Implicit)
	set(0x9A, "TXS", mos6502.Implicit)
	set(0x98, "TYA", mos6502.Implicit)
}

// operandFormats gives the printf-style operand format per addressing
// mode; Implicit and Accumulator are handled separately since they
// take no byte(s) from the instruction stream.
var operandFormats = map[mos6502.AddrMode]string{
	mos6502.Immediate:   "#$%02X",
	mos6502.ZeroPage:    "$%02X",
	mos6502.ZeroPageX:   "$%02X,X",
	mos6502.ZeroPageY:   "$%02X,Y",
	mos6502.Absolute:    "$%04X",
	mos6502.AbsoluteX:   "$%04X,X",
	mos6502.AbsoluteY:   "$%04X,Y",
	mos6502.Indirect:    "($%04X)",
	mos6502.IndirectX:   "($%02X,X)",
	mos6502.IndirectY:   "($%02X),Y",
	mos6502.Relative:    "$%04X",
}

// Instruction is one disassembled instruction: its mnemonic text and
// byte length, so a caller can advance to the next instruction without
// re-deriving it.
type Instruction struct {
	Text   string
	Length uint8
}

// Disassemble decodes the instruction at pc, reading operand bytes via
// read. Unassigned opcodes render as "???" with a length of 1 so a
// caller can still step past them.
func Disassemble(read func(addr uint16) uint8, pc uint16) Instruction {
	opcode := read(pc)
	e := table[opcode]
	if e.name == "" {
		return Instruction{Text: fmt.Sprintf(".byte $%02X ; ???", opcode), Length: 1}
	}

	length := mos6502.InstructionLength(opcode)

	var operand string
	switch e.mode {
	case mos6502.Implicit:
	case mos6502.Accumulator:
		operand = "A"
	case mos6502.Relative:
		offset := int8(read(pc + 1))
		target := uint16(int32(pc) + 2 + int32(offset))
		operand = fmt.Sprintf(operandFormats[e.mode], target)
	default:
		switch length {
		case 2:
			operand = fmt.Sprintf(operandFormats[e.mode], read(pc+1))
		case 3:
			arg := uint16(read(pc+1)) | uint16(read(pc+2))<<8
			operand = fmt.Sprintf(operandFormats[e.mode], arg)
		}
	}

	text := e.name
	if operand != "" {
		text += " " + operand
	}
	return Instruction{Text: text, Length: length}
}
