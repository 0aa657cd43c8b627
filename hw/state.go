package hw

import (
	"fmt"

	"github.com/go-faster/jx"
)

// State is a snapshot of the CPU registers and control state.
type State struct {
	PC, SP              uint16
	A, B, C, D, E, H, L uint8
	Flags               Flags

	InterruptsEnabled bool
	Halted            bool
}

func (c *CPU) State() State {
	return State{
		PC:                c.pc,
		SP:                c.sp,
		A:                 c.regs[RegA],
		B:                 c.regs[RegB],
		C:                 c.regs[RegC],
		D:                 c.regs[RegD],
		E:                 c.regs[RegE],
		H:                 c.regs[RegH],
		L:                 c.regs[RegL],
		Flags:             c.flags,
		InterruptsEnabled: c.inte,
		Halted:            c.halted,
	}
}

// String returns a human readable dump of the state. The format is not
// meant to be parsed.
func (s State) String() string {
	return fmt.Sprintf("PC:%04X SP:%04X AF:%02X%02X BC:%02X%02X DE:%02X%02X HL:%02X%02X F:%s INTE:%t HALT:%t",
		s.PC, s.SP, s.A, s.Flags.Byte(), s.B, s.C, s.D, s.E, s.H, s.L,
		s.Flags, s.InterruptsEnabled, s.Halted)
}

// EncodeJSON writes the state as a JSON object.
func (s State) EncodeJSON(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(s.PC)
	e.FieldStart("sp")
	e.UInt16(s.SP)

	e.FieldStart("registers")
	e.ObjStart()
	regs := [...]struct {
		name string
		val  uint8
	}{
		{"a", s.A}, {"b", s.B}, {"c", s.C}, {"d", s.D},
		{"e", s.E}, {"h", s.H}, {"l", s.L},
	}
	for _, r := range regs {
		e.FieldStart(r.name)
		e.UInt8(r.val)
	}
	e.ObjEnd()

	e.FieldStart("flags")
	e.ObjStart()
	e.FieldStart("s")
	e.Bool(s.Flags.S())
	e.FieldStart("z")
	e.Bool(s.Flags.Z())
	e.FieldStart("ac")
	e.Bool(s.Flags.AC())
	e.FieldStart("p")
	e.Bool(s.Flags.P())
	e.FieldStart("cy")
	e.Bool(s.Flags.CY())
	e.ObjEnd()

	e.FieldStart("interrupts_enabled")
	e.Bool(s.InterruptsEnabled)
	e.FieldStart("halted")
	e.Bool(s.Halted)
	e.ObjEnd()
}
