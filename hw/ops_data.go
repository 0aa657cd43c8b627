package hw

/* Data transfer group. None of these affect the flags. */

func nop(c *CPU) error {
	return c.advance(1)
}

func mov(dst, src Operand) func(*CPU) error {
	return func(c *CPU) error {
		val, err := c.load(src)
		if err != nil {
			return err
		}
		if err := c.store(dst, val); err != nil {
			return err
		}
		return c.advance(1)
	}
}

func mvi(dst Operand) func(*CPU) error {
	return func(c *CPU) error {
		if err := c.store(dst, c.imm8()); err != nil {
			return err
		}
		return c.advance(2)
	}
}

func lxi(rp Pair) func(*CPU) error {
	return func(c *CPU) error {
		c.setPair(rp, c.imm16())
		return c.advance(3)
	}
}

func lda(c *CPU) error {
	val, err := c.mem.Read8(int(c.imm16()))
	if err != nil {
		return err
	}
	c.regs[RegA] = val
	return c.advance(3)
}

func sta(c *CPU) error {
	if err := c.mem.Write8(int(c.imm16()), c.regs[RegA]); err != nil {
		return err
	}
	return c.advance(3)
}

func lhld(c *CPU) error {
	val, err := c.mem.Read16(int(c.imm16()))
	if err != nil {
		return err
	}
	c.setPair(PairHL, val)
	return c.advance(3)
}

func shld(c *CPU) error {
	if err := c.mem.Write16(int(c.imm16()), c.Pair(PairHL)); err != nil {
		return err
	}
	return c.advance(3)
}

func ldax(rp Pair) func(*CPU) error {
	return func(c *CPU) error {
		val, err := c.mem.Read8(int(c.Pair(rp)))
		if err != nil {
			return err
		}
		c.regs[RegA] = val
		return c.advance(1)
	}
}

func stax(rp Pair) func(*CPU) error {
	return func(c *CPU) error {
		if err := c.mem.Write8(int(c.Pair(rp)), c.regs[RegA]); err != nil {
			return err
		}
		return c.advance(1)
	}
}

func xchg(c *CPU) error {
	hl, de := c.Pair(PairHL), c.Pair(PairDE)
	c.setPair(PairHL, de)
	c.setPair(PairDE, hl)
	return c.advance(1)
}
