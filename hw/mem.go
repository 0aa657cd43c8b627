package hw

// MemSize is the size of the 8080 address space.
const MemSize = 0x10000

// Memory is the flat 64KB address space of the CPU.
//
// Addresses are taken as int so that computations overflowing 16 bits (stack
// below 0, operand past the end of memory...) are detected and reported as
// OutOfBoundsError instead of silently wrapping around.
type Memory struct {
	data [MemSize]uint8
}

func checkAddr(addr int, op string) error {
	if addr < 0 || addr >= MemSize {
		return &OutOfBoundsError{Addr: addr, Op: op}
	}
	return nil
}

func (m *Memory) Read8(addr int) (uint8, error) {
	if err := checkAddr(addr, "read"); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

func (m *Memory) Write8(addr int, val uint8) error {
	if err := checkAddr(addr, "write"); err != nil {
		return err
	}
	m.data[addr] = val
	return nil
}

// Read16 reads a little-endian word: low byte at addr, high byte at addr+1.
func (m *Memory) Read16(addr int) (uint16, error) {
	if err := checkAddr(addr+1, "read"); err != nil {
		return 0, err
	}
	if err := checkAddr(addr, "read"); err != nil {
		return 0, err
	}
	return uint16(m.data[addr+1])<<8 | uint16(m.data[addr]), nil
}

// Write16 writes a little-endian word. Nothing is written if any of the two
// bytes falls outside memory.
func (m *Memory) Write16(addr int, val uint16) error {
	if err := checkAddr(addr+1, "write"); err != nil {
		return err
	}
	if err := checkAddr(addr, "write"); err != nil {
		return err
	}
	m.data[addr] = uint8(val)
	m.data[addr+1] = uint8(val >> 8)
	return nil
}

// Peek8 reads a byte without any bounds check, a 16-bit address is always
// inside memory.
func (m *Memory) Peek8(addr uint16) uint8 {
	return m.data[addr]
}

// Load copies buf at offset off.
func (m *Memory) Load(off int, buf []byte) error {
	if len(buf) == 0 {
		return checkAddr(off, "load")
	}
	if err := checkAddr(off, "load"); err != nil {
		return err
	}
	if err := checkAddr(off+len(buf)-1, "load"); err != nil {
		return err
	}
	copy(m.data[off:], buf)
	return nil
}
