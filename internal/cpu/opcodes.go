package cpu

func isSameSign(a, b uint8) bool {
	return (a^b)&0x80 == 0
}

func (c *CPU) carry() uint8 {
	if c.reg.P.Carry {
		return 1
	}
	return 0
}

func (c *CPU) decimalMode() bool {
	return c.reg.P.Decimal && !c.noDecimal
}

// addBinary adds m and the carry to A, setting N, V, Z and C.
func (c *CPU) addBinary(m uint8) {
	a := c.reg.A
	r16 := uint16(a) + uint16(m) + uint16(c.carry())
	r8 := uint8(r16)
	c.reg.P.Carry = r16 > 0xff
	c.reg.P.Overflow = isSameSign(a, m) && !isSameSign(a, r8)
	c.setZN(r8)
	c.reg.A = r8
}

// Add with Carry
func (c *CPU) adc(op operand) {
	m := c.load(op)
	if !c.decimalMode() {
		c.addBinary(m)
		return
	}

	// NMOS decimal mode: Z comes from the binary sum, N and V from the
	// sum after the low nibble is adjusted, C from the final result.
	a := c.reg.A
	carry := c.carry()
	lo := uint16(a&0x0f) + uint16(m&0x0f) + uint16(carry)
	if lo >= 0x0a {
		lo = ((lo + 0x06) & 0x0f) + 0x10
	}
	r := uint16(a&0xf0) + uint16(m&0xf0) + lo

	c.reg.P.Zero = a+m+carry == 0
	c.reg.P.Negative = isNegative(uint8(r))
	c.reg.P.Overflow = isSameSign(a, m) && !isSameSign(a, uint8(r))
	if r >= 0xa0 {
		r += 0x60
	}
	c.reg.P.Carry = r >= 0x100
	c.reg.A = uint8(r)
}

// Subtract with Carry
func (c *CPU) sbc(op operand) {
	m := c.load(op)
	a := c.reg.A
	borrow := 1 - int(c.carry())

	// flags follow the binary subtraction in both modes
	c.addBinary(^m)
	if !c.decimalMode() {
		return
	}

	lo := int(a&0x0f) - int(m&0x0f) - borrow
	if lo < 0 {
		lo = ((lo - 0x06) & 0x0f) - 0x10
	}
	r := int(a&0xf0) - int(m&0xf0) + lo
	if r < 0 {
		r -= 0x60
	}
	c.reg.A = uint8(r)
}

// Logical AND
func (c *CPU) and(op operand) {
	c.reg.A &= c.load(op)
	c.setZN(c.reg.A)
}

// Exclusive OR
func (c *CPU) eor(op operand) {
	c.reg.A ^= c.load(op)
	c.setZN(c.reg.A)
}

// Logical Inclusive OR
func (c *CPU) ora(op operand) {
	c.reg.A |= c.load(op)
	c.setZN(c.reg.A)
}

// Arithmetic Shift Left
func (c *CPU) asl(op operand) {
	v := c.load(op)
	c.reg.P.Carry = v&0x80 > 0
	v <<= 1
	c.setZN(v)
	c.store(op, v)
}

// Logical Shift Right
func (c *CPU) lsr(op operand) {
	v := c.load(op)
	c.reg.P.Carry = v&0x01 > 0
	v >>= 1
	c.setZN(v)
	c.store(op, v)
}

// Rotate Left
func (c *CPU) rol(op operand) {
	v := c.load(op)
	r := v<<1 | c.carry()
	c.reg.P.Carry = v&0x80 > 0
	c.setZN(r)
	c.store(op, r)
}

// Rotate Right
func (c *CPU) ror(op operand) {
	v := c.load(op)
	r := v>>1 | c.carry()<<7
	c.reg.P.Carry = v&0x01 > 0
	c.setZN(r)
	c.store(op, r)
}

// Bit Test
func (c *CPU) bit(op operand) {
	m := c.load(op)
	c.reg.P.Zero = c.reg.A&m == 0
	c.reg.P.Negative = m&flagNBit > 0
	c.reg.P.Overflow = m&flagVBit > 0
}

func (c *CPU) compare(reg uint8, op operand) {
	m := c.load(op)
	c.reg.P.Carry = reg >= m
	c.setZN(reg - m)
}

// Compare
func (c *CPU) cmp(op operand) { c.compare(c.reg.A, op) }

// Compare X Register
func (c *CPU) cpx(op operand) { c.compare(c.reg.X, op) }

// Compare Y Register
func (c *CPU) cpy(op operand) { c.compare(c.reg.Y, op) }

// branchIf jumps to the resolved target. A taken branch costs one cycle,
// two when the target is on another page.
func (c *CPU) branchIf(condition bool, op operand) {
	if !condition {
		return
	}
	c.extraCycles++
	if op.pageCrossed {
		c.extraCycles++
	}
	c.reg.PC = op.addr
}

// Branch if Carry Clear
func (c *CPU) bcc(op operand) { c.branchIf(!c.reg.P.Carry, op) }

// Branch if Carry Set
func (c *CPU) bcs(op operand) { c.branchIf(c.reg.P.Carry, op) }

// Branch if Equal
func (c *CPU) beq(op operand) { c.branchIf(c.reg.P.Zero, op) }

// Branch if Not Equal
func (c *CPU) bne(op operand) { c.branchIf(!c.reg.P.Zero, op) }

// Branch if Minus
func (c *CPU) bmi(op operand) { c.branchIf(c.reg.P.Negative, op) }

// Branch if Positive
func (c *CPU) bpl(op operand) { c.branchIf(!c.reg.P.Negative, op) }

// Branch if Overflow Clear
func (c *CPU) bvc(op operand) { c.branchIf(!c.reg.P.Overflow, op) }

// Branch if Overflow Set
func (c *CPU) bvs(op operand) { c.branchIf(c.reg.P.Overflow, op) }

// Force Interrupt. The byte after the opcode is skipped.
func (c *CPU) brk(_ operand) {
	c.enterInterrupt(InterruptBRK, c.reg.PC+1)
}

// Clear Carry Flag
func (c *CPU) clc(_ operand) { c.reg.P.Carry = false }

// Clear Decimal Mode
func (c *CPU) cld(_ operand) { c.reg.P.Decimal = false }

// Clear Interrupt Disable
func (c *CPU) cli(_ operand) { c.reg.P.Interrupt = false }

// Clear Overflow Flag
func (c *CPU) clv(_ operand) { c.reg.P.Overflow = false }

// Set Carry Flag
func (c *CPU) sec(_ operand) { c.reg.P.Carry = true }

// Set Decimal Flag
func (c *CPU) sed(_ operand) { c.reg.P.Decimal = true }

// Set Interrupt Disable
func (c *CPU) sei(_ operand) { c.reg.P.Interrupt = true }

// Decrement Memory
func (c *CPU) dec(op operand) {
	r := c.load(op) - 1
	c.setZN(r)
	c.store(op, r)
}

// Increment Memory
func (c *CPU) inc(op operand) {
	r := c.load(op) + 1
	c.setZN(r)
	c.store(op, r)
}

// Decrement X Register
func (c *CPU) dex(_ operand) {
	c.reg.X--
	c.setZN(c.reg.X)
}

// Decrement Y Register
func (c *CPU) dey(_ operand) {
	c.reg.Y--
	c.setZN(c.reg.Y)
}

// Increment X Register
func (c *CPU) inx(_ operand) {
	c.reg.X++
	c.setZN(c.reg.X)
}

// Increment Y Register
func (c *CPU) iny(_ operand) {
	c.reg.Y++
	c.setZN(c.reg.Y)
}

// Jump
func (c *CPU) jmp(op operand) {
	c.reg.PC = op.addr
}

// Jump to Subroutine. The pushed address is the last byte of the JSR
// instruction, RTS adds the missing one.
func (c *CPU) jsr(op operand) {
	c.stackPush16(c.reg.PC - 1)
	c.reg.PC = op.addr
}

// Return from Subroutine
func (c *CPU) rts(_ operand) {
	c.reg.PC = c.stackPop16() + 1
}

// Return from Interrupt
func (c *CPU) rti(_ operand) {
	c.stackPopStatus()
	c.reg.PC = c.stackPop16()
}

// Load Accumulator
func (c *CPU) lda(op operand) {
	c.reg.A = c.load(op)
	c.setZN(c.reg.A)
}

// Load X Register
func (c *CPU) ldx(op operand) {
	c.reg.X = c.load(op)
	c.setZN(c.reg.X)
}

// Load Y Register
func (c *CPU) ldy(op operand) {
	c.reg.Y = c.load(op)
	c.setZN(c.reg.Y)
}

// Store Accumulator
func (c *CPU) sta(op operand) { c.store(op, c.reg.A) }

// Store X Register
func (c *CPU) stx(op operand) { c.store(op, c.reg.X) }

// Store Y Register
func (c *CPU) sty(op operand) { c.store(op, c.reg.Y) }

// No Operation
func (c *CPU) nop(_ operand) {}

// Push Accumulator
func (c *CPU) pha(_ operand) { c.stackPush8(c.reg.A) }

// Push Processor Status
func (c *CPU) php(_ operand) { c.stackPushStatus(true) }

// Pull Accumulator
func (c *CPU) pla(_ operand) {
	c.reg.A = c.stackPop8()
	c.setZN(c.reg.A)
}

// Pull Processor Status
func (c *CPU) plp(_ operand) { c.stackPopStatus() }

// Transfer Accumulator to X
func (c *CPU) tax(_ operand) {
	c.reg.X = c.reg.A
	c.setZN(c.reg.X)
}

// Transfer Accumulator to Y
func (c *CPU) tay(_ operand) {
	c.reg.Y = c.reg.A
	c.setZN(c.reg.Y)
}

// Transfer Stack Pointer to X
func (c *CPU) tsx(_ operand) {
	c.reg.X = c.reg.SP
	c.setZN(c.reg.X)
}

// Transfer X to Accumulator
func (c *CPU) txa(_ operand) {
	c.reg.A = c.reg.X
	c.setZN(c.reg.A)
}

// Transfer X to Stack Pointer. No flags.
func (c *CPU) txs(_ operand) {
	c.reg.SP = c.reg.X
}

// Transfer Y to Accumulator
func (c *CPU) tya(_ operand) {
	c.reg.A = c.reg.Y
	c.setZN(c.reg.A)
}
