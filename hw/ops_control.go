package hw

import "go8080/emu/log"

/* Branch, stack and machine control groups */

// cond evaluates the 3-bit condition field of Jcc, Ccc and Rcc.
func (c *CPU) cond(cc uint8) bool {
	switch cc {
	case 0:
		return !c.flags.Z()
	case 1:
		return c.flags.Z()
	case 2:
		return !c.flags.CY()
	case 3:
		return c.flags.CY()
	case 4:
		return !c.flags.P()
	case 5:
		return c.flags.P()
	case 6:
		return !c.flags.S()
	default:
		return c.flags.S()
	}
}

func jmp(c *CPU) error {
	c.pc = c.imm16()
	return nil
}

func jmpIf(cc uint8) func(*CPU) error {
	return func(c *CPU) error {
		if c.cond(cc) {
			return jmp(c)
		}
		return c.advance(3)
	}
}

// callTo pushes the address of the next instruction, of length n, and jumps
// to addr.
func (c *CPU) callTo(addr uint16, n int) error {
	retaddr, err := c.next(n)
	if err != nil {
		return err
	}
	if err := c.push16(retaddr); err != nil {
		return err
	}
	c.pc = addr
	return nil
}

func call(c *CPU) error {
	return c.callTo(c.imm16(), 3)
}

func callIf(cc uint8) func(*CPU) error {
	return func(c *CPU) error {
		if c.cond(cc) {
			return call(c)
		}
		return c.advance(3)
	}
}

func ret(c *CPU) error {
	addr, err := c.pop16()
	if err != nil {
		return err
	}
	c.pc = addr
	return nil
}

func retIf(cc uint8) func(*CPU) error {
	return func(c *CPU) error {
		if c.cond(cc) {
			return ret(c)
		}
		return c.advance(1)
	}
}

func rst(n uint8) func(*CPU) error {
	return func(c *CPU) error {
		return c.callTo(uint16(n)*8, 1)
	}
}

func pchl(c *CPU) error {
	c.pc = c.Pair(PairHL)
	return nil
}

func push(rp Pair) func(*CPU) error {
	return func(c *CPU) error {
		if err := c.push16(c.Pair(rp)); err != nil {
			return err
		}
		return c.advance(1)
	}
}

func pop(rp Pair) func(*CPU) error {
	return func(c *CPU) error {
		val, err := c.pop16()
		if err != nil {
			return err
		}
		c.setPair(rp, val)
		return c.advance(1)
	}
}

// xthl exchanges HL with the word on top of the stack.
func xthl(c *CPU) error {
	top, err := c.mem.Read16(int(c.sp))
	if err != nil {
		return err
	}
	if err := c.mem.Write16(int(c.sp), c.Pair(PairHL)); err != nil {
		return err
	}
	c.setPair(PairHL, top)
	return c.advance(1)
}

func sphl(c *CPU) error {
	c.sp = c.Pair(PairHL)
	return c.advance(1)
}

// No device is attached to the I/O ports, IN and OUT only skip their port
// operand.

func in(c *CPU) error {
	log.ModIO.DebugZ("IN").
		Hex8("port", c.imm8()).
		Hex16("pc", c.pc).
		End()
	return c.advance(2)
}

func out(c *CPU) error {
	log.ModIO.DebugZ("OUT").
		Hex8("port", c.imm8()).
		Hex8("A", c.regs[RegA]).
		Hex16("pc", c.pc).
		End()
	return c.advance(2)
}

func ei(c *CPU) error {
	c.inte = true
	return c.advance(1)
}

func di(c *CPU) error {
	c.inte = false
	return c.advance(1)
}

// hlt stops the CPU, Step returns ErrHalted from now on.
func hlt(c *CPU) error {
	if err := c.advance(1); err != nil {
		return err
	}
	c.halted = true
	log.ModCPU.InfoZ("CPU halted").
		Hex16("PC", c.pc).
		End()
	return nil
}
