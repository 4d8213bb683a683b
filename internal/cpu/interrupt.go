package cpu

// Interrupt identifies an interrupt sequence.
type Interrupt uint8

const (
	InterruptNone Interrupt = iota
	InterruptReset
	InterruptNMI
	InterruptIRQ
	InterruptBRK
)

// Vector addresses. Each holds a little endian pointer.
const (
	VectorNMI   = uint16(0xfffa)
	VectorReset = uint16(0xfffc)
	VectorIRQ   = uint16(0xfffe) // shared by IRQ and BRK
)

const interruptCycles = 7

func (i Interrupt) String() string {
	switch i {
	case InterruptNone:
		return "NONE"
	case InterruptReset:
		return "RESET"
	case InterruptNMI:
		return "NMI"
	case InterruptIRQ:
		return "IRQ"
	case InterruptBRK:
		return "BRK"
	}
	return "???"
}

func (i Interrupt) vector() uint16 {
	switch i {
	case InterruptNMI:
		return VectorNMI
	case InterruptReset:
		return VectorReset
	}
	return VectorIRQ
}

// Reset puts the CPU in its power-up state and loads PC from the reset
// vector. Nothing is pushed.
func (c *CPU) Reset() {
	c.reg = Registers{
		SP: 0xfd,
		P:  Status{Interrupt: true},
		PC: c.read16(InterruptReset.vector()),
	}
	c.nmiPending = false
	c.extraCycles = 0
	c.totalCycles = interruptCycles
}

// SetNMI drives the NMI line. The interrupt is latched on the rising
// edge and taken at the next instruction boundary.
func (c *CPU) SetNMI(level bool) {
	if level && !c.nmiLine {
		c.nmiPending = true
	}
	c.nmiLine = level
}

// SetIRQ drives the IRQ line. IRQ is level triggered: it is taken at
// every instruction boundary while the line is held and I is clear.
func (c *CPU) SetIRQ(level bool) {
	c.irqLine = level
}

func (c *CPU) pendingInterrupt() Interrupt {
	switch {
	case c.nmiPending:
		return InterruptNMI
	case c.irqLine && !c.reg.P.Interrupt:
		return InterruptIRQ
	}
	return InterruptNone
}

// enterInterrupt pushes the return address and status, disables IRQ and
// jumps through the vector of kind.
func (c *CPU) enterInterrupt(kind Interrupt, ret uint16) {
	if kind == InterruptNMI {
		c.nmiPending = false
	}
	c.stackPush16(ret)
	c.stackPushStatus(kind == InterruptBRK)
	c.reg.P.Interrupt = true
	c.reg.PC = c.read16(kind.vector())
}
