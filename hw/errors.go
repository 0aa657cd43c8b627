package hw

import (
	"errors"
	"fmt"
)

var (
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
	ErrOutOfBounds         = errors.New("address out of bounds")
	ErrHalted              = errors.New("cpu halted")
)

// UnimplementedOpcodeError is returned by Step when the byte at PC doesn't
// encode an 8080 instruction.
type UnimplementedOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode $%02X at $%04X", e.Opcode, e.PC)
}

func (e *UnimplementedOpcodeError) Is(err error) bool {
	return err == ErrUnimplementedOpcode
}

// OutOfBoundsError reports a memory access outside of the 64KB address space.
type OutOfBoundsError struct {
	Addr int
	Op   string // read, write, load, push, pop, fetch
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: address $%X out of bounds", e.Op, e.Addr)
}

func (e *OutOfBoundsError) Is(err error) bool {
	return err == ErrOutOfBounds
}
