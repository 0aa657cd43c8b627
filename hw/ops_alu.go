package hw

/* Arithmetic and logical groups */

// addc sets A = A + val + cy.
func (c *CPU) addc(val, cy uint8) {
	a := c.regs[RegA]
	sum := uint16(a) + uint16(val) + uint16(cy)
	res := uint8(sum)

	c.flags.setZSP(res)
	c.flags.set(FlagCY, sum > 0xFF)
	c.flags.set(FlagAC, (a^val^res)&0x10 != 0)
	c.regs[RegA] = res
}

// subb computes A - val - borrow, updates the flags and returns the result
// without storing it. The 8080 subtracts by adding the one's complement, CY
// is the inverted carry out and AC the carry out of bit 3 of that addition.
func (c *CPU) subb(val, borrow uint8) uint8 {
	a := c.regs[RegA]
	sum := uint16(a) + uint16(^val) + uint16(borrow^1)
	res := uint8(sum)

	c.flags.setZSP(res)
	c.flags.set(FlagCY, sum <= 0xFF)
	c.flags.set(FlagAC, (a^^val^res)&0x10 != 0)
	return res
}

func (c *CPU) add(val uint8) { c.addc(val, 0) }
func (c *CPU) adc(val uint8) { c.addc(val, c.flags.carry()) }
func (c *CPU) sub(val uint8) { c.regs[RegA] = c.subb(val, 0) }
func (c *CPU) sbb(val uint8) { c.regs[RegA] = c.subb(val, c.flags.carry()) }
func (c *CPU) cmp(val uint8) { c.subb(val, 0) }

func (c *CPU) ana(val uint8) {
	a := c.regs[RegA]
	res := a & val
	c.flags.setZSP(res)
	c.flags.set(FlagCY, false)
	c.flags.set(FlagAC, (a|val)&0x08 != 0)
	c.regs[RegA] = res
}

func (c *CPU) xra(val uint8) {
	res := c.regs[RegA] ^ val
	c.flags.setZSP(res)
	c.flags.set(FlagCY|FlagAC, false)
	c.regs[RegA] = res
}

func (c *CPU) ora(val uint8) {
	res := c.regs[RegA] | val
	c.flags.setZSP(res)
	c.flags.set(FlagCY|FlagAC, false)
	c.regs[RegA] = res
}

func alu(f func(*CPU, uint8), src Operand) func(*CPU) error {
	return func(c *CPU) error {
		val, err := c.load(src)
		if err != nil {
			return err
		}
		f(c, val)
		return c.advance(1)
	}
}

func aluImm(f func(*CPU, uint8)) func(*CPU) error {
	return func(c *CPU) error {
		f(c, c.imm8())
		return c.advance(2)
	}
}

// INR and DCR leave the carry flag untouched.

func inr(op Operand) func(*CPU) error {
	return func(c *CPU) error {
		val, err := c.load(op)
		if err != nil {
			return err
		}
		val++
		c.flags.setZSP(val)
		c.flags.set(FlagAC, val&0x0F == 0)
		if err := c.store(op, val); err != nil {
			return err
		}
		return c.advance(1)
	}
}

func dcr(op Operand) func(*CPU) error {
	return func(c *CPU) error {
		val, err := c.load(op)
		if err != nil {
			return err
		}
		val--
		c.flags.setZSP(val)
		c.flags.set(FlagAC, val&0x0F != 0x0F)
		if err := c.store(op, val); err != nil {
			return err
		}
		return c.advance(1)
	}
}

func inx(rp Pair) func(*CPU) error {
	return func(c *CPU) error {
		c.setPair(rp, c.Pair(rp)+1)
		return c.advance(1)
	}
}

func dcx(rp Pair) func(*CPU) error {
	return func(c *CPU) error {
		c.setPair(rp, c.Pair(rp)-1)
		return c.advance(1)
	}
}

// dad adds a register pair to HL, only the carry flag is affected.
func dad(rp Pair) func(*CPU) error {
	return func(c *CPU) error {
		sum := uint32(c.Pair(PairHL)) + uint32(c.Pair(rp))
		c.setPair(PairHL, uint16(sum))
		c.flags.set(FlagCY, sum > 0xFFFF)
		return c.advance(1)
	}
}

func daa(c *CPU) error {
	a := c.regs[RegA]
	lsb, msb := a&0x0F, a>>4
	cy := c.flags.CY()

	var correction uint8
	if lsb > 9 || c.flags.AC() {
		correction |= 0x06
	}
	if cy || msb > 9 || (msb >= 9 && lsb > 9) {
		correction |= 0x60
		cy = true
	}

	c.addc(correction, 0)
	c.flags.set(FlagCY, cy)
	return c.advance(1)
}

/* Rotates, the bit shifted out always lands in the carry. */

func rlc(c *CPU) error {
	a := c.regs[RegA]
	c.regs[RegA] = a<<1 | a>>7
	c.flags.set(FlagCY, a&0x80 != 0)
	return c.advance(1)
}

func rrc(c *CPU) error {
	a := c.regs[RegA]
	c.regs[RegA] = a>>1 | a<<7
	c.flags.set(FlagCY, a&0x01 != 0)
	return c.advance(1)
}

func ral(c *CPU) error {
	a := c.regs[RegA]
	c.regs[RegA] = a<<1 | c.flags.carry()
	c.flags.set(FlagCY, a&0x80 != 0)
	return c.advance(1)
}

func rar(c *CPU) error {
	a := c.regs[RegA]
	c.regs[RegA] = a>>1 | c.flags.carry()<<7
	c.flags.set(FlagCY, a&0x01 != 0)
	return c.advance(1)
}

func cma(c *CPU) error {
	c.regs[RegA] = ^c.regs[RegA]
	return c.advance(1)
}

func stc(c *CPU) error {
	c.flags.set(FlagCY, true)
	return c.advance(1)
}

func cmc(c *CPU) error {
	c.flags ^= FlagCY
	return c.advance(1)
}
