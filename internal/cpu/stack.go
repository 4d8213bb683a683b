package cpu

// SP wraps around inside the stack page on both push and pull, like the
// real chip. Nothing is signalled.

func (c *CPU) stackPush8(data uint8) {
	c.write8(stackStartAddr|uint16(c.reg.SP), data)
	c.reg.SP--
}

func (c *CPU) stackPop8() uint8 {
	c.reg.SP++
	return c.read8(stackStartAddr | uint16(c.reg.SP))
}

func (c *CPU) stackPush16(data uint16) {
	c.stackPush8(uint8(data >> 8))
	c.stackPush8(uint8(data))
}

func (c *CPU) stackPop16() uint16 {
	lo := uint16(c.stackPop8())
	hi := uint16(c.stackPop8())
	return lo | hi<<8
}

// stackPushStatus pushes P with bit 5 set. The B bit is set for BRK and
// PHP and clear for IRQ and NMI.
func (c *CPU) stackPushStatus(brk bool) {
	p := c.reg.P
	p.Break = brk
	c.stackPush8(p.Byte())
}

// stackPopStatus restores P. B and bit 5 don't exist in the register,
// so they are dropped.
func (c *CPU) stackPopStatus() {
	c.reg.P.SetByte(c.stackPop8())
	c.reg.P.Break = false
}
