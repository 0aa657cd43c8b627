package hw

import (
	"fmt"
	"io"
)

type disasmer interface {
	Disasm(pc uint16) DisasmOp
}

type tracer struct {
	d disasmer
	w io.Writer
}

// write the execution trace line for the instruction about to be executed.
func (t *tracer) write(state State) {
	dis := t.d.Disasm(state.PC)
	buf := dis.Bytes()

	buf = fmt.Appendf(buf, "A:%02X BC:%02X%02X DE:%02X%02X HL:%02X%02X SP:%04X F:%s\n",
		state.A, state.B, state.C, state.D, state.E, state.H, state.L,
		state.SP, state.Flags)
	t.w.Write(buf)
}
