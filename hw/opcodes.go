package hw

import (
	"fmt"
	"strconv"
)

// argKind describes the operand bytes following an opcode.
type argKind uint8

const (
	argNone  argKind = iota
	argImm8          // 8-bit immediate data
	argPort          // 8-bit I/O port number
	argImm16         // 16-bit immediate data
	argAddr          // 16-bit address
)

func (k argKind) size() uint8 {
	switch k {
	case argImm8, argPort:
		return 2
	case argImm16, argAddr:
		return 3
	}
	return 1
}

type opdef struct {
	name string // mnemonic
	oper string // fixed part of the operand, registers or condition
	arg  argKind
	size uint8

	// nil for opcodes without 8080 semantics.
	fn func(*CPU) error
}

// ops maps all 256 opcodes to their definition. Undefined opcodes have a nil
// fn and are reported by Step as UnimplementedOpcodeError.
var ops [256]opdef

func def(opcode uint8, name, oper string, arg argKind, fn func(*CPU) error) {
	if ops[opcode].fn != nil {
		panic(fmt.Sprintf("opcode %02X defined twice (%s, %s)", opcode, ops[opcode].name, name))
	}
	ops[opcode] = opdef{name: name, oper: oper, arg: arg, size: arg.size(), fn: fn}
}

var (
	aluNames    = [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
	aluImmNames = [8]string{"ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI"}
	aluOps      = [8]func(*CPU, uint8){(*CPU).add, (*CPU).adc, (*CPU).sub, (*CPU).sbb, (*CPU).ana, (*CPU).xra, (*CPU).ora, (*CPU).cmp}

	condNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
)

func init() {
	def(0x00, "NOP", "", argNone, nop)

	// Register pair group.
	for field := range uint8(4) {
		rp, srp := pairs[field], stackPairs[field]
		base := field << 4

		def(0x01|base, "LXI", rp.mnemonic()+",", argImm16, lxi(rp))
		def(0x03|base, "INX", rp.mnemonic(), argNone, inx(rp))
		def(0x09|base, "DAD", rp.mnemonic(), argNone, dad(rp))
		def(0x0B|base, "DCX", rp.mnemonic(), argNone, dcx(rp))
		def(0xC1|base, "POP", srp.mnemonic(), argNone, pop(srp))
		def(0xC5|base, "PUSH", srp.mnemonic(), argNone, push(srp))
	}

	def(0x02, "STAX", "B", argNone, stax(PairBC))
	def(0x12, "STAX", "D", argNone, stax(PairDE))
	def(0x0A, "LDAX", "B", argNone, ldax(PairBC))
	def(0x1A, "LDAX", "D", argNone, ldax(PairDE))
	def(0x22, "SHLD", "", argAddr, shld)
	def(0x2A, "LHLD", "", argAddr, lhld)
	def(0x32, "STA", "", argAddr, sta)
	def(0x3A, "LDA", "", argAddr, lda)

	// Single register group.
	for field := range uint8(8) {
		op := operands[field]
		base := field << 3

		def(0x04|base, "INR", op.String(), argNone, inr(op))
		def(0x05|base, "DCR", op.String(), argNone, dcr(op))
		def(0x06|base, "MVI", op.String()+",", argImm8, mvi(op))
	}

	def(0x07, "RLC", "", argNone, rlc)
	def(0x0F, "RRC", "", argNone, rrc)
	def(0x17, "RAL", "", argNone, ral)
	def(0x1F, "RAR", "", argNone, rar)
	def(0x27, "DAA", "", argNone, daa)
	def(0x2F, "CMA", "", argNone, cma)
	def(0x37, "STC", "", argNone, stc)
	def(0x3F, "CMC", "", argNone, cmc)

	// MOV, with MOV M,M encoding HLT.
	for dst := range uint8(8) {
		for src := range uint8(8) {
			opcode := 0x40 | dst<<3 | src
			if opcode == 0x76 {
				def(opcode, "HLT", "", argNone, hlt)
				continue
			}
			d, s := operands[dst], operands[src]
			def(opcode, "MOV", d.String()+","+s.String(), argNone, mov(d, s))
		}
	}

	// Accumulator group.
	for g := range uint8(8) {
		for src := range uint8(8) {
			op := operands[src]
			def(0x80|g<<3|src, aluNames[g], op.String(), argNone, alu(aluOps[g], op))
		}
		def(0xC6|g<<3, aluImmNames[g], "", argImm8, aluImm(aluOps[g]))
	}

	// Control transfer group.
	for cc := range uint8(8) {
		base := cc << 3
		def(0xC0|base, "R"+condNames[cc], "", argNone, retIf(cc))
		def(0xC2|base, "J"+condNames[cc], "", argAddr, jmpIf(cc))
		def(0xC4|base, "C"+condNames[cc], "", argAddr, callIf(cc))
		def(0xC7|base, "RST", strconv.Itoa(int(cc)), argNone, rst(cc))
	}

	def(0xC3, "JMP", "", argAddr, jmp)
	def(0xC9, "RET", "", argNone, ret)
	def(0xCD, "CALL", "", argAddr, call)
	def(0xE9, "PCHL", "", argNone, pchl)
	def(0xE3, "XTHL", "", argNone, xthl)
	def(0xEB, "XCHG", "", argNone, xchg)
	def(0xF9, "SPHL", "", argNone, sphl)

	def(0xD3, "OUT", "", argPort, out)
	def(0xDB, "IN", "", argPort, in)
	def(0xF3, "DI", "", argNone, di)
	def(0xFB, "EI", "", argNone, ei)

	// Remaining opcodes have no semantics, keep their disassembly readable.
	for i := range ops {
		if ops[i].fn == nil {
			ops[i] = opdef{name: "???", size: 1}
		}
	}
}
