// Package neserr defines the error kinds shared by the bus, cartridge,
// CPU and coordinator packages so callers can use errors.As/errors.Is
// instead of string matching.
package neserr

import "fmt"

// InvalidHeader is returned when an iNES file is too short or missing
// the "NES\x1A" magic.
var InvalidHeader = fmt.Errorf("invalid iNES header")

// UnsupportedMapper is returned when a ROM asks for a mapper id that
// has no registered implementation.
type UnsupportedMapper struct {
	ID uint16
}

func (e *UnsupportedMapper) Error() string {
	return fmt.Sprintf("unsupported mapper id %d", e.ID)
}

// WriteToReadOnly is returned when the CPU writes to a ROM-backed bus
// device. It indicates an emulator bug, not a game bug.
type WriteToReadOnly struct {
	Addr uint16
}

func (e *WriteToReadOnly) Error() string {
	return fmt.Sprintf("write to read-only device at $%04X", e.Addr)
}

// IllegalInstruction is returned when the CPU decodes an opcode with
// no dispatch table entry.
type IllegalInstruction struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalInstruction) Error() string {
	return fmt.Sprintf("illegal instruction $%02X at $%04X", e.Opcode, e.PC)
}

// AddressUnmapped is returned when a sealed bus has no device covering
// an address. This should never happen if Seal validated full
// coverage; its presence indicates a configuration bug.
type AddressUnmapped struct {
	Addr uint16
}

func (e *AddressUnmapped) Error() string {
	return fmt.Sprintf("no device mapped at $%04X", e.Addr)
}

// EmulatorError wraps whatever runtime error escaped RunFrame. Once
// returned, the Emulator's internal state is considered poisoned.
type EmulatorError struct {
	Err error
}

func (e *EmulatorError) Error() string {
	return fmt.Sprintf("emulator halted: %v", e.Err)
}

func (e *EmulatorError) Unwrap() error {
	return e.Err
}
