package hw

import (
	"errors"
	"math/bits"
	"testing"
)

func TestScenarios(t *testing.T) {
	t.Run("MVI MVI ADD", func(t *testing.T) {
		cpu := NewCPU()
		if err := cpu.Load([]byte{0x3E, 0x05, 0x06, 0x03, 0x80}); err != nil {
			t.Fatal(err)
		}
		runAndCheckState(t, cpu, 3,
			"A", 0x08,
			"B", 0x03,
			"PC", 0x0005,
			"Fzc", 0,
		)
	})
	t.Run("LXI H", func(t *testing.T) {
		cpu := NewCPU()
		if err := cpu.Load([]byte{0x21, 0x34, 0x12}); err != nil {
			t.Fatal(err)
		}
		runAndCheckState(t, cpu, 1,
			"H", 0x12,
			"L", 0x34,
			"PC", 0x0003,
		)
	})
	t.Run("LXI B PUSH B", func(t *testing.T) {
		cpu := NewCPU()
		if err := cpu.Load([]byte{0x01, 0x00, 0x20, 0xC5}); err != nil {
			t.Fatal(err)
		}
		cpu.SetSP(0x2400)
		runAndCheckState(t, cpu, 2,
			"SP", 0x23FE,
			"PC", 0x0004,
			"mem", `23FE: 00 20`,
		)
	})
}

func TestADIAllValues(t *testing.T) {
	cpu := NewCPU()
	cpu.mem.data[0] = 0xC6 // ADI

	for a := range 256 {
		for data := range 256 {
			cpu.pc = 0
			cpu.flags = 0
			cpu.regs[RegA] = uint8(a)
			cpu.mem.data[1] = uint8(data)

			if err := cpu.Step(); err != nil {
				t.Fatal(err)
			}

			sum := a + data
			res := uint8(sum)
			f := cpu.Flags()
			if got := cpu.Reg(RegA); got != res {
				t.Fatalf("%02X+%02X: A = %02X, want %02X", a, data, got, res)
			}
			if f.CY() != (sum >= 256) {
				t.Fatalf("%02X+%02X: CY = %t, want %t", a, data, f.CY(), sum >= 256)
			}
			if f.Z() != (res == 0) || f.S() != (res >= 0x80) || f.P() != (bits.OnesCount8(res)%2 == 0) {
				t.Fatalf("%02X+%02X: flags = %s, result %02X", a, data, f, res)
			}
			if cpu.PC() != 2 {
				t.Fatalf("%02X+%02X: PC = %04X, want 0002", a, data, cpu.PC())
			}
		}
	}
}

func TestCPIAllValues(t *testing.T) {
	cpu := NewCPU()
	cpu.mem.data[0] = 0xFE // CPI

	for a := range 256 {
		for data := range 256 {
			cpu.pc = 0
			cpu.flags = 0
			cpu.regs[RegA] = uint8(a)
			cpu.mem.data[1] = uint8(data)

			if err := cpu.Step(); err != nil {
				t.Fatal(err)
			}

			f := cpu.Flags()
			if got := cpu.Reg(RegA); got != uint8(a) {
				t.Fatalf("CPI %02X modified A: %02X, want %02X", data, got, a)
			}
			if f.CY() != (data > a) {
				t.Fatalf("%02X-%02X: CY = %t, want %t", a, data, f.CY(), data > a)
			}
			if f.Z() != (data == a) {
				t.Fatalf("%02X-%02X: Z = %t, want %t", a, data, f.Z(), data == a)
			}
		}
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	for field, rp := range stackPairs {
		t.Run(rp.String(), func(t *testing.T) {
			val := uint16(0xBEEF)
			if rp == PairPSW {
				// The flags byte reads back normalized.
				val = 0x12D7
			}

			cpu := NewCPU()
			cpu.mem.data[0] = 0xC5 | uint8(field)<<4 // PUSH
			cpu.mem.data[1] = 0xC1 | uint8(field)<<4 // POP
			cpu.SetSP(0x8000)
			cpu.setPair(rp, val)

			if err := cpu.Step(); err != nil {
				t.Fatal(err)
			}
			cpu.setPair(rp, 0)
			if err := cpu.Step(); err != nil {
				t.Fatal(err)
			}

			if got := cpu.Pair(rp); got != val {
				t.Errorf("%s = %04X, want %04X", rp, got, val)
			}
			if cpu.SP() != 0x8000 {
				t.Errorf("SP = %04X, want 8000", cpu.SP())
			}
		})
	}

	t.Run("PUSH B POP D", func(t *testing.T) {
		cpu := loadCPUWith(t, `0000: 31 00 80 01 34 12 C5 D1`)
		runAndCheckState(t, cpu, 4,
			"DE", 0x1234,
			"BC", 0x1234,
			"SP", 0x8000,
		)
	})
}

func TestCallRetRoundTrip(t *testing.T) {
	cpu := loadCPUWith(t, `
0000: 31 00 40 CD 10 00
0010: C9
`)
	runAndCheckState(t, cpu, 2,
		"PC", 0x0010,
		"SP", 0x3FFE,
		"mem", `3FFE: 06 00`,
	)
	runAndCheckState(t, cpu, 1,
		"PC", 0x0006,
		"SP", 0x4000,
	)
}

func TestXCHGTwice(t *testing.T) {
	cpu := loadCPUWith(t, `0000: 21 34 12 11 CD AB EB`)
	runAndCheckState(t, cpu, 3,
		"HL", 0xABCD,
		"DE", 0x1234,
	)

	cpu.mem.data[7] = 0xEB
	runAndCheckState(t, cpu, 1,
		"HL", 0x1234,
		"DE", 0xABCD,
	)
}

func TestRLCFullRotation(t *testing.T) {
	for _, a := range []uint8{0x00, 0x01, 0x5A, 0xA5, 0x80, 0xFF} {
		cpu := NewCPU()
		for i := range 8 {
			cpu.mem.data[i] = 0x07
		}
		cpu.regs[RegA] = a
		cpu.flags.set(FlagCY, a&0x01 != 0)

		runAndCheckState(t, cpu, 8,
			"A", a,
			"Fc", a&0x01,
			"PC", 8,
		)
	}
}

func TestINRDCRPreserveCarry(t *testing.T) {
	t.Run("INR with carry set", func(t *testing.T) {
		// STC; MVI B,FF; INR B
		cpu := loadCPUWith(t, `0000: 37 06 FF 04`)
		runAndCheckState(t, cpu, 3,
			"B", 0x00,
			"Fzapc", 1,
			"Fs", 0,
		)
	})
	t.Run("DCR with carry clear", func(t *testing.T) {
		// MVI B,00; DCR B
		cpu := loadCPUWith(t, `0000: 06 00 05`)
		runAndCheckState(t, cpu, 2,
			"B", 0xFF,
			"Fsp", 1,
			"Fzac", 0,
		)
	})
	t.Run("INR M", func(t *testing.T) {
		// LXI H,2000; INR M
		cpu := loadCPUWith(t, `
0000: 21 00 20 34
2000: 0F
`)
		runAndCheckState(t, cpu, 2,
			"Fa", 1,
			"Fc", 0,
			"mem", `2000: 10`,
		)
	})
}

func TestUndefinedOpcodes(t *testing.T) {
	for _, opcode := range []uint8{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0xCB, 0xD9, 0xDD, 0xED, 0xFD} {
		cpu := NewCPU()
		cpu.mem.data[0x100] = opcode
		cpu.SetPC(0x100)

		err := cpu.Step()
		if !errors.Is(err, ErrUnimplementedOpcode) {
			t.Fatalf("opcode %02X: got err = %v, want ErrUnimplementedOpcode", opcode, err)
		}
		var uerr *UnimplementedOpcodeError
		if !errors.As(err, &uerr) {
			t.Fatalf("opcode %02X: got %T, want *UnimplementedOpcodeError", opcode, err)
		}
		if uerr.Opcode != opcode || uerr.PC != 0x100 {
			t.Errorf("got %+v, want opcode %02X at 0100", uerr, opcode)
		}
		if cpu.PC() != 0x100 {
			t.Errorf("PC moved to %04X", cpu.PC())
		}
	}
}

func TestHLT(t *testing.T) {
	cpu := loadCPUWith(t, `0000: 00 76 00`)

	n, err := cpu.Run(10)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("executed %d instructions, want 2", n)
	}
	if !cpu.Halted() {
		t.Fatal("CPU should be halted")
	}
	if cpu.PC() != 2 {
		t.Errorf("PC = %04X, want 0002", cpu.PC())
	}
	if err := cpu.Step(); !errors.Is(err, ErrHalted) {
		t.Errorf("Step after HLT: got %v, want ErrHalted", err)
	}
	if cpu.PC() != 2 {
		t.Errorf("PC moved after HLT to %04X", cpu.PC())
	}
}

func TestInterruptFlag(t *testing.T) {
	cpu := loadCPUWith(t, `0000: FB F3`)

	if err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	if !cpu.InterruptsEnabled() {
		t.Error("interrupts should be enabled after EI")
	}
	if err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	if cpu.InterruptsEnabled() {
		t.Error("interrupts should be disabled after DI")
	}
}

func TestLoadOversize(t *testing.T) {
	cpu := NewCPU()
	if err := cpu.Load(make([]byte, MemSize+1)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
	if err := cpu.Load(make([]byte, MemSize)); err != nil {
		t.Fatalf("loading 64KB: %v", err)
	}
}

func TestStackBounds(t *testing.T) {
	t.Run("push underflow", func(t *testing.T) {
		cpu := loadCPUWith(t, `0000: C5`)
		cpu.SetSP(0x0001)

		err := cpu.Step()
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) || oob.Op != "push" {
			t.Fatalf("got err = %v, want push out of bounds", err)
		}
		if cpu.SP() != 0x0001 || cpu.PC() != 0 {
			t.Errorf("state modified: SP=%04X PC=%04X", cpu.SP(), cpu.PC())
		}
	})
	t.Run("pop overflow", func(t *testing.T) {
		cpu := loadCPUWith(t, `0000: C1`)
		cpu.SetSP(0xFFFE)

		err := cpu.Step()
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) || oob.Op != "pop" {
			t.Fatalf("got err = %v, want pop out of bounds", err)
		}
	})
	t.Run("xthl at end of memory", func(t *testing.T) {
		cpu := loadCPUWith(t, `0000: E3`)
		cpu.SetSP(0xFFFF)

		if err := cpu.Step(); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("got err = %v, want ErrOutOfBounds", err)
		}
	})
}

func TestFetchPastEnd(t *testing.T) {
	t.Run("truncated operand", func(t *testing.T) {
		cpu := NewCPU()
		cpu.mem.data[0xFFFE] = 0xC3 // JMP
		cpu.SetPC(0xFFFE)

		err := cpu.Step()
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) || oob.Op != "fetch" {
			t.Fatalf("got err = %v, want fetch out of bounds", err)
		}
		if oob.Addr != MemSize {
			t.Errorf("got addr = %X, want %X", oob.Addr, MemSize)
		}
	})
	t.Run("fall through", func(t *testing.T) {
		cpu := NewCPU()
		cpu.SetPC(0xFFFF) // NOP

		err := cpu.Step()
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("got err = %v, want ErrOutOfBounds", err)
		}
		if cpu.PC() != 0xFFFF {
			t.Errorf("PC = %04X, want FFFF", cpu.PC())
		}
	})
	t.Run("jump from end of memory", func(t *testing.T) {
		cpu := NewCPU()
		cpu.mem.data[0xFFFD] = 0xC3
		cpu.SetPC(0xFFFD)

		runAndCheckState(t, cpu, 1, "PC", 0x0000)
	})
}
