package hw

import (
	"io"
)

// CPU is an Intel 8080 processor with its 64KB of memory.
//
// A CPU is not safe for concurrent use.
type CPU struct {
	mem Memory

	regs  [numRegs]uint8
	pc    uint16
	sp    uint16
	flags Flags

	inte   bool // interrupts enabled
	halted bool

	// Non-nil when execution tracing is enabled.
	tracer *tracer
}

// NewCPU creates a CPU with memory, registers and flags zeroed.
func NewCPU() *CPU {
	return &CPU{}
}

// Load copies buf into memory, starting at address 0.
func (c *CPU) Load(buf []byte) error {
	return c.mem.Load(0, buf)
}

// Step executes the instruction at PC.
func (c *CPU) Step() error {
	if c.halted {
		return ErrHalted
	}

	opcode := c.mem.Peek8(c.pc)
	c.traceOp()

	op := &ops[opcode]
	if op.fn == nil {
		return &UnimplementedOpcodeError{Opcode: opcode, PC: c.pc}
	}

	// The whole instruction must be inside memory before operands are read.
	if end := int(c.pc) + int(op.size) - 1; end >= MemSize {
		return &OutOfBoundsError{Addr: end, Op: "fetch"}
	}
	return op.fn(c)
}

// Run executes up to n instructions. It stops early on error or when the CPU
// halts and returns the number of executed instructions.
func (c *CPU) Run(n int) (int, error) {
	for i := range n {
		if err := c.Step(); err != nil {
			return i, err
		}
		if c.halted {
			return i + 1, nil
		}
	}
	return n, nil
}

func (c *CPU) PC() uint16              { return c.pc }
func (c *CPU) SP() uint16              { return c.sp }
func (c *CPU) Flags() Flags            { return c.flags }
func (c *CPU) Reg(r Reg) uint8         { return c.regs[r] }
func (c *CPU) InterruptsEnabled() bool { return c.inte }
func (c *CPU) Halted() bool            { return c.halted }

func (c *CPU) SetPC(pc uint16) { c.pc = pc }
func (c *CPU) SetSP(sp uint16) { c.sp = sp }

// Peek8 reads memory without side effects.
func (c *CPU) Peek8(addr uint16) uint8 {
	return c.mem.Peek8(addr)
}

// Pair returns the 16-bit value of a register pair. For PSW, the high byte is
// the accumulator and the low byte the packed flags.
func (c *CPU) Pair(p Pair) uint16 {
	switch p {
	case PairSP:
		return c.sp
	case PairPSW:
		return uint16(c.regs[RegA])<<8 | uint16(c.flags.Byte())
	}
	hi, lo := p.regs()
	return uint16(c.regs[hi])<<8 | uint16(c.regs[lo])
}

func (c *CPU) setPair(p Pair, val uint16) {
	switch p {
	case PairSP:
		c.sp = val
		return
	case PairPSW:
		c.regs[RegA] = uint8(val >> 8)
		c.flags = FlagsFromByte(uint8(val))
		return
	}
	hi, lo := p.regs()
	c.regs[hi] = uint8(val >> 8)
	c.regs[lo] = uint8(val)
}

/* operand access */

// load reads a decoded register field.
func (c *CPU) load(op Operand) (uint8, error) {
	switch op := op.(type) {
	case Reg:
		return c.regs[op], nil
	case MemRef:
		return c.mem.Read8(int(c.Pair(PairHL)))
	}
	panic("unknown operand")
}

// store writes a decoded register field.
func (c *CPU) store(op Operand, val uint8) error {
	switch op := op.(type) {
	case Reg:
		c.regs[op] = val
		return nil
	case MemRef:
		return c.mem.Write8(int(c.Pair(PairHL)), val)
	}
	panic("unknown operand")
}

// imm8 returns the byte following the opcode. Step has already checked that
// the whole instruction lies in memory.
func (c *CPU) imm8() uint8 {
	return c.mem.Peek8(c.pc + 1)
}

// imm16 returns the little-endian word following the opcode.
func (c *CPU) imm16() uint16 {
	return uint16(c.mem.Peek8(c.pc+2))<<8 | uint16(c.mem.Peek8(c.pc+1))
}

// next returns the address of the instruction following the current one,
// of length n.
func (c *CPU) next(n int) (uint16, error) {
	addr := int(c.pc) + n
	if addr >= MemSize {
		return 0, &OutOfBoundsError{Addr: addr, Op: "fetch"}
	}
	return uint16(addr), nil
}

// advance moves PC past the current instruction, of length n.
func (c *CPU) advance(n int) error {
	pc, err := c.next(n)
	if err != nil {
		return err
	}
	c.pc = pc
	return nil
}

/* stack operations */

// push16 stores the high byte at SP-1, the low byte at SP-2, then decrements
// SP by 2.
func (c *CPU) push16(val uint16) error {
	top := int(c.sp) - 2
	if top < 0 {
		return &OutOfBoundsError{Addr: top, Op: "push"}
	}
	if err := c.mem.Write16(top, val); err != nil {
		return err
	}
	c.sp = uint16(top)
	return nil
}

// pop16 reads the low byte at SP, the high byte at SP+1, then increments SP
// by 2.
func (c *CPU) pop16() (uint16, error) {
	top := int(c.sp) + 2
	if top >= MemSize {
		return 0, &OutOfBoundsError{Addr: top, Op: "pop"}
	}
	val, err := c.mem.Read16(int(c.sp))
	if err != nil {
		return 0, err
	}
	c.sp = uint16(top)
	return val, nil
}

/* tracing / debugging */

func (c *CPU) SetTraceOutput(w io.Writer) {
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) traceOp() {
	if c.tracer != nil {
		c.tracer.write(c.State())
	}
}

func (c *CPU) Disasm(pc uint16) DisasmOp {
	return disasm(&c.mem, pc)
}
