package hw

import "fmt"

//go:generate go tool stringer -type=Reg -trimprefix=Reg
//go:generate go tool stringer -type=Pair -trimprefix=Pair

// Reg is an 8-bit register.
type Reg uint8

const (
	RegB Reg = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegA

	numRegs
)

// MemRef is the operand designating the memory byte addressed by HL.
type MemRef struct{}

func (MemRef) String() string { return "M" }

// Operand is the decoded form of the 3-bit register field of an opcode: either
// a Reg or MemRef.
type Operand interface {
	fmt.Stringer
	operand()
}

func (Reg) operand()    {}
func (MemRef) operand() {}

// operands maps the 3-bit register field of an opcode to its operand.
var operands = [8]Operand{RegB, RegC, RegD, RegE, RegH, RegL, MemRef{}, RegA}

// Pair is a 16-bit register pair.
type Pair uint8

const (
	PairBC Pair = iota
	PairDE
	PairHL
	PairSP
	PairPSW
)

// pairs maps the 2-bit register pair field of LXI, DAD, INX and DCX.
var pairs = [4]Pair{PairBC, PairDE, PairHL, PairSP}

// stackPairs maps the 2-bit register pair field of PUSH and POP.
var stackPairs = [4]Pair{PairBC, PairDE, PairHL, PairPSW}

// regs returns the high and low registers of a register pair. Only valid for
// BC, DE and HL.
func (p Pair) regs() (hi, lo Reg) {
	switch p {
	case PairBC:
		return RegB, RegC
	case PairDE:
		return RegD, RegE
	case PairHL:
		return RegH, RegL
	}
	panic(fmt.Sprintf("register pair %s has no 8-bit halves", p))
}

// mnemonic returns the name of p in 8080 assembly, where a pair is named
// after its high register.
func (p Pair) mnemonic() string {
	switch p {
	case PairSP, PairPSW:
		return p.String()
	}
	hi, _ := p.regs()
	return hi.String()
}
