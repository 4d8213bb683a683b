package cpu

import "strings"

const (
	flagCBit = uint8(1 << 0) // Carry flag
	flagZBit = uint8(1 << 1) // Zero flag
	flagIBit = uint8(1 << 2) // Interrupt Disable flag
	flagDBit = uint8(1 << 3) // Decimal Mode flag
	flagBBit = uint8(1 << 4) // Break Command flag
	flagUBit = uint8(1 << 5) // Unused, always reads as 1
	flagVBit = uint8(1 << 6) // Overflow flag
	flagNBit = uint8(1 << 7) // Negative flag
)

// Status is the processor status register P.
//
// Break only has a meaning in a copy of P pushed on the stack, where it
// tells BRK/PHP apart from IRQ/NMI. It is kept here so that a decoded
// snapshot shows what was pushed.
type Status struct {
	Negative  bool
	Overflow  bool
	Break     bool
	Decimal   bool
	Interrupt bool
	Zero      bool
	Carry     bool
}

// Byte encodes the flags. Bit 5 is always set.
func (s Status) Byte() uint8 {
	p := flagUBit
	if s.Negative {
		p |= flagNBit
	}
	if s.Overflow {
		p |= flagVBit
	}
	if s.Break {
		p |= flagBBit
	}
	if s.Decimal {
		p |= flagDBit
	}
	if s.Interrupt {
		p |= flagIBit
	}
	if s.Zero {
		p |= flagZBit
	}
	if s.Carry {
		p |= flagCBit
	}
	return p
}

// SetByte decodes every flag from p. Bit 5 is ignored.
func (s *Status) SetByte(p uint8) {
	s.Negative = p&flagNBit > 0
	s.Overflow = p&flagVBit > 0
	s.Break = p&flagBBit > 0
	s.Decimal = p&flagDBit > 0
	s.Interrupt = p&flagIBit > 0
	s.Zero = p&flagZBit > 0
	s.Carry = p&flagCBit > 0
}

// String renders the flags as NV-BDIZC, lowercase when clear.
func (s Status) String() string {
	var b strings.Builder
	bit := func(set bool, r rune) {
		if !set {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	bit(s.Negative, 'N')
	bit(s.Overflow, 'V')
	b.WriteRune('-')
	bit(s.Break, 'B')
	bit(s.Decimal, 'D')
	bit(s.Interrupt, 'I')
	bit(s.Zero, 'Z')
	bit(s.Carry, 'C')
	return b.String()
}

// Registers is the complete programmer visible state of the CPU.
type Registers struct {
	A  uint8  // used to perform arithmetic and logical operations
	X  uint8  // used primarily for indexing and temporary storage
	Y  uint8  // used mainly for indexing and temporary storage
	SP uint8  // stack pointer, offset into the stack page
	PC uint16 // program counter
	P  Status
}

// StackAddr is the address SP currently points at.
func (r Registers) StackAddr() uint16 {
	return stackStartAddr | uint16(r.SP)
}

func isNegative(v uint8) bool {
	return v&0x80 > 0
}

func (c *CPU) setZN(v uint8) {
	c.reg.P.Zero = v == 0
	c.reg.P.Negative = isNegative(v)
}
