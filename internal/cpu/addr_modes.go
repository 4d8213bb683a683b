package cpu

import "fmt"

// AddrMode tells how an instruction locates its operand.
type AddrMode string

const (
	// Immediate: #$nn
	//
	// The operand is the byte following the opcode. No memory is read
	// besides the instruction stream.
	AddrModeIMM AddrMode = "IMM"

	// Zero Page: $nn
	//
	// The operand lives in the first 256 bytes of memory.
	AddrModeZP AddrMode = "ZP"

	// Zero Page Indexed with X: $nn,X
	//
	// X is added to the zero page address. The sum wraps inside page 0,
	// so $FF,X with X=1 reads $0000.
	AddrModeZPX AddrMode = "ZPX"

	// Zero Page Indexed with Y: $nn,Y
	//
	// Like ZPX with the Y register. Only LDX and STX use it.
	AddrModeZPY AddrMode = "ZPY"

	// Absolute: $nnnn
	//
	// A full little endian 16-bit address follows the opcode.
	AddrModeABS AddrMode = "ABS"

	// Absolute Indexed with X: $nnnn,X
	//
	// X is added to the 16-bit address. Read instructions take one more
	// cycle when the sum lands on another page.
	AddrModeABSX AddrMode = "ABSX"

	// Absolute Indexed with Y: $nnnn,Y
	AddrModeABSY AddrMode = "ABSY"

	// Indirect: ($nnnn)
	//
	// JMP only. The operand is the address of a pointer. When the pointer
	// sits at $xxFF its high byte is fetched from $xx00 instead of the
	// next page, the same way the NMOS chip does it.
	AddrModeIND AddrMode = "IND"

	// Indexed Indirect: ($nn,X)
	//
	// X is added to the zero page address first, then the pointer found
	// there is dereferenced. Both the sum and the pointer's high byte
	// fetch wrap inside page 0.
	AddrModeINDX AddrMode = "INDX"

	// Indirect Indexed: ($nn),Y
	//
	// The zero page pointer is dereferenced first, then Y is added.
	// Crossing a page costs read instructions one cycle.
	AddrModeINDY AddrMode = "INDY"

	// Relative: $nn
	//
	// Branches only. A signed displacement from the address of the next
	// instruction.
	AddrModeREL AddrMode = "REL"

	// Accumulator: A
	//
	// The instruction works on the accumulator.
	AddrModeACC AddrMode = "ACC"

	// Implied
	//
	// No operand.
	AddrModeIMP AddrMode = "IMP"
)

func addrModeFromString(s string) (AddrMode, error) {
	switch mode := AddrMode(s); mode {
	case AddrModeIMM, AddrModeZP, AddrModeZPX, AddrModeZPY,
		AddrModeABS, AddrModeABSX, AddrModeABSY, AddrModeIND,
		AddrModeINDX, AddrModeINDY, AddrModeREL, AddrModeACC, AddrModeIMP:
		return mode, nil
	}
	return AddrMode("UNKNOWN"), fmt.Errorf("address mode couldn't be parsed from %s", s)
}

// OperandSize is the number of bytes following the opcode.
func (mode AddrMode) OperandSize() uint16 {
	switch mode {
	case AddrModeIMM, AddrModeZP, AddrModeZPX, AddrModeZPY,
		AddrModeINDX, AddrModeINDY, AddrModeREL:
		return 1
	case AddrModeABS, AddrModeABSX, AddrModeABSY, AddrModeIND:
		return 2
	}
	return 0
}

type operandKind uint8

const (
	operandNone operandKind = iota
	operandImmediate
	operandMemory
	operandAccumulator
	operandRelative
)

// operand is what the resolver hands to an instruction handler.
type operand struct {
	kind        operandKind
	addr        uint16 // effective address, or branch target for operandRelative
	value       uint8  // immediate value
	pageCrossed bool
}

func isDiffPage(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}

// resolve decodes the operand of an instruction whose operand bytes
// start at pc. It returns the address of the next instruction too.
// Registers and memory are not modified.
func (c *CPU) resolve(mode AddrMode, pc uint16) (operand, uint16) {
	switch mode {
	case AddrModeIMM:
		return operand{kind: operandImmediate, value: c.read8(pc)}, pc + 1

	case AddrModeZP:
		return operand{kind: operandMemory, addr: uint16(c.read8(pc))}, pc + 1

	case AddrModeZPX:
		return operand{kind: operandMemory, addr: uint16(c.read8(pc) + c.reg.X)}, pc + 1

	case AddrModeZPY:
		return operand{kind: operandMemory, addr: uint16(c.read8(pc) + c.reg.Y)}, pc + 1

	case AddrModeABS:
		return operand{kind: operandMemory, addr: c.read16(pc)}, pc + 2

	case AddrModeABSX:
		return c.indexed(c.read16(pc), c.reg.X), pc + 2

	case AddrModeABSY:
		return c.indexed(c.read16(pc), c.reg.Y), pc + 2

	case AddrModeIND:
		ptr := c.read16(pc)
		// the carry out of the low byte never reaches the high byte
		hi := ptr&0xff00 | uint16(uint8(ptr)+1)
		addr := uint16(c.read8(ptr)) | uint16(c.read8(hi))<<8
		return operand{kind: operandMemory, addr: addr}, pc + 2

	case AddrModeINDX:
		ptr := c.read8(pc) + c.reg.X
		return operand{kind: operandMemory, addr: c.readZP16(ptr)}, pc + 1

	case AddrModeINDY:
		return c.indexed(c.readZP16(c.read8(pc)), c.reg.Y), pc + 1

	case AddrModeREL:
		next := pc + 1
		offset := uint16(c.read8(pc))
		if offset&0x80 > 0 {
			offset |= 0xff00 // add leading 1 s to save the sign
		}
		target := next + offset
		return operand{kind: operandRelative, addr: target, pageCrossed: isDiffPage(next, target)}, next

	case AddrModeACC:
		return operand{kind: operandAccumulator}, pc

	case AddrModeIMP:
		return operand{kind: operandNone}, pc
	}
	panic(fmt.Sprintf("unknown address mode %q", mode))
}

func (c *CPU) indexed(base uint16, index uint8) operand {
	addr := base + uint16(index)
	return operand{kind: operandMemory, addr: addr, pageCrossed: isDiffPage(base, addr)}
}

// readZP16 reads a pointer from the zero page, wrapping $FF to $00.
func (c *CPU) readZP16(ptr uint8) uint16 {
	return uint16(c.read8(uint16(ptr))) | uint16(c.read8(uint16(ptr+1)))<<8
}

// load returns the value an operand refers to.
func (c *CPU) load(op operand) uint8 {
	switch op.kind {
	case operandImmediate:
		return op.value
	case operandMemory:
		return c.read8(op.addr)
	case operandAccumulator:
		return c.reg.A
	}
	panic(fmt.Sprintf("load from operand kind %d", op.kind))
}

// store writes v where an operand refers to.
func (c *CPU) store(op operand, v uint8) {
	switch op.kind {
	case operandMemory:
		c.write8(op.addr, v)
	case operandAccumulator:
		c.reg.A = v
	default:
		panic(fmt.Sprintf("store to operand kind %d", op.kind))
	}
}
