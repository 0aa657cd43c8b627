package hw

import (
	"bytes"
	"fmt"
)

// DisasmOp is the disassembly of a single instruction.
type DisasmOp struct {
	Opcode string // mnemonic
	Oper   string
	Buf    []byte // instruction bytes
	PC     uint16
}

func disasm(mem *Memory, pc uint16) DisasmOp {
	op := &ops[mem.Peek8(pc)]

	n := min(int(op.size), MemSize-int(pc))
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = mem.Peek8(pc + uint16(i))
	}

	d := DisasmOp{
		Opcode: op.name,
		Oper:   op.oper,
		Buf:    buf,
		PC:     pc,
	}
	if n < int(op.size) {
		// Truncated by the end of memory.
		d.Oper += "???"
		return d
	}

	switch op.arg {
	case argImm8:
		d.Oper += fmt.Sprintf("#$%02X", buf[1])
	case argPort:
		d.Oper += fmt.Sprintf("$%02X", buf[1])
	case argImm16:
		d.Oper += fmt.Sprintf("#$%04X", uint16(buf[2])<<8|uint16(buf[1]))
	case argAddr:
		d.Oper += fmt.Sprintf("$%04X", uint16(buf[2])<<8|uint16(buf[1]))
	}
	return d
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

// disasmLen is the width of the disassembly column of the execution trace.
const disasmLen = 32

// Bytes returns the fixed width representation of d, used by the execution
// tracer: address, instruction bytes, mnemonic and operand.
func (d DisasmOp) Bytes() []byte {
	buf := make([]byte, disasmLen)

	hexEncode(buf[0:], byte(d.PC>>8))
	hexEncode(buf[2:], byte(d.PC))
	buf[4] = ' '
	buf[5] = ' '

	off := 6
	for i := range d.Buf {
		hexEncode(buf[off:], d.Buf[i])
		buf[off+2] = ' '
		off += 3
	}

	for ; off < 16; off++ {
		buf[off] = ' '
	}

	off += copy(buf[off:], d.Opcode)
	if d.Oper != "" {
		buf[off] = ' '
		off++
	}

	buf = append(buf[:off], d.Oper...)
	off += len(d.Oper)
	if len(buf) >= disasmLen {
		buf = append(buf, ' ')
	} else {
		buf = buf[:disasmLen]
		for i := off; i < disasmLen; i++ {
			buf[i] = ' '
		}
	}

	return buf
}

func (d DisasmOp) String() string {
	return string(bytes.TrimRight(d.Bytes(), " "))
}
