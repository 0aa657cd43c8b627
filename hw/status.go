package hw

import "math/bits"

// Flags holds the five 8080 condition flags. Bit positions are those of the
// flags byte pushed with PSW.
type Flags uint8

const (
	FlagCY Flags = 1 << 0 // Carry
	FlagP  Flags = 1 << 2 // Parity (even)
	FlagAC Flags = 1 << 4 // Auxiliary carry
	FlagZ  Flags = 1 << 6 // Zero
	FlagS  Flags = 1 << 7 // Sign

	flagsMask = FlagS | FlagZ | FlagAC | FlagP | FlagCY

	// bit 1 of the PSW flags byte always reads as 1.
	pswFixedBits = 0x02
)

// FlagsFromByte unpacks a PSW flags byte. Bits that are not condition flags
// are dropped.
func FlagsFromByte(b uint8) Flags {
	return Flags(b) & flagsMask
}

// Byte packs the flags into the PSW flags byte.
func (f Flags) Byte() uint8 {
	return uint8(f&flagsMask) | pswFixedBits
}

func (f Flags) S() bool  { return f&FlagS != 0 }
func (f Flags) Z() bool  { return f&FlagZ != 0 }
func (f Flags) AC() bool { return f&FlagAC != 0 }
func (f Flags) P() bool  { return f&FlagP != 0 }
func (f Flags) CY() bool { return f&FlagCY != 0 }

// carry returns the carry flag as 0 or 1.
func (f Flags) carry() uint8 {
	return uint8(f & FlagCY)
}

func (f *Flags) set(flag Flags, on bool) {
	if on {
		*f |= flag
	} else {
		*f &^= flag
	}
}

// setZSP applies the zero, sign and parity rules to v.
func (f *Flags) setZSP(v uint8) {
	f.set(FlagZ, v == 0)
	f.set(FlagS, v&0x80 != 0)
	f.set(FlagP, bits.OnesCount8(v)%2 == 0)
}

// String returns the flags as "SZAPC", a lowercase letter for a cleared flag.
func (f Flags) String() string {
	const letters = "szapcSZAPC"
	order := [5]Flags{FlagS, FlagZ, FlagAC, FlagP, FlagCY}

	s := make([]byte, len(order))
	for i, flag := range order {
		if f&flag != 0 {
			s[i] = letters[i+5]
		} else {
			s[i] = letters[i]
		}
	}
	return string(s)
}
