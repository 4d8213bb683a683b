package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	type testArgs struct {
		mode     AddrMode
		code     []uint8 // operand bytes at $0801
		x, y     uint8
		setup    func(c *CPU)
		expected operand
		next     uint16
	}

	testDo := func(t *testing.T, in testArgs) {
		c, ram := newTestCPU(t)
		loadProgram(t, c, ram, 0x0801, in.code...)
		c.reg.X = in.x
		c.reg.Y = in.y
		if in.setup != nil {
			in.setup(c)
		}
		before := c.Registers()

		op, next := c.resolve(in.mode, 0x0801)

		assert.Equal(t, in.expected, op, "operand")
		assert.Equal(t, in.next, next, "next PC")
		assert.Equal(t, before, c.Registers(), "registers are not touched")
	}

	zp := func(addr uint8, lo, hi uint8) func(c *CPU) {
		return func(c *CPU) {
			c.write8(uint16(addr), lo)
			c.write8(uint16(addr+1), hi)
		}
	}

	t.Run("IMM", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeIMM, code: []uint8{0x42},
			expected: operand{kind: operandImmediate, value: 0x42}, next: 0x0802})
	})
	t.Run("ZP", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeZP, code: []uint8{0x42},
			expected: operand{kind: operandMemory, addr: 0x0042}, next: 0x0802})
	})
	t.Run("ZPX wraps inside page 0", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeZPX, code: []uint8{0xff}, x: 0x02,
			expected: operand{kind: operandMemory, addr: 0x0001}, next: 0x0802})
	})
	t.Run("ZPY wraps inside page 0", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeZPY, code: []uint8{0x80}, y: 0x90,
			expected: operand{kind: operandMemory, addr: 0x0010}, next: 0x0802})
	})
	t.Run("ABS", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeABS, code: []uint8{0x34, 0x12},
			expected: operand{kind: operandMemory, addr: 0x1234}, next: 0x0803})
	})
	t.Run("ABSX same page", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeABSX, code: []uint8{0x34, 0x12}, x: 0x01,
			expected: operand{kind: operandMemory, addr: 0x1235}, next: 0x0803})
	})
	t.Run("ABSX page crossed", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeABSX, code: []uint8{0xff, 0x12}, x: 0x01,
			expected: operand{kind: operandMemory, addr: 0x1300, pageCrossed: true}, next: 0x0803})
	})
	t.Run("ABSY wraps at the end of memory", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeABSY, code: []uint8{0xff, 0xff}, y: 0x02,
			expected: operand{kind: operandMemory, addr: 0x0001, pageCrossed: true}, next: 0x0803})
	})
	t.Run("IND", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeIND, code: []uint8{0x00, 0x30}, setup: func(c *CPU) {
			c.write8(0x3000, 0xcd)
			c.write8(0x3001, 0xab)
		}, expected: operand{kind: operandMemory, addr: 0xabcd}, next: 0x0803})
	})
	t.Run("IND page wrap bug", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeIND, code: []uint8{0xff, 0x30}, setup: func(c *CPU) {
			c.write8(0x30ff, 0xcd)
			c.write8(0x3000, 0xab)
			c.write8(0x3100, 0xee)
		}, expected: operand{kind: operandMemory, addr: 0xabcd}, next: 0x0803})
	})
	t.Run("INDX", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeINDX, code: []uint8{0x20}, x: 0x04, setup: zp(0x24, 0x74, 0x20),
			expected: operand{kind: operandMemory, addr: 0x2074}, next: 0x0802})
	})
	t.Run("INDX index wraps inside page 0", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeINDX, code: []uint8{0xf0}, x: 0x20, setup: zp(0x10, 0x00, 0x40),
			expected: operand{kind: operandMemory, addr: 0x4000}, next: 0x0802})
	})
	t.Run("INDX pointer wraps inside page 0", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeINDX, code: []uint8{0xff}, setup: zp(0xff, 0x34, 0x12),
			expected: operand{kind: operandMemory, addr: 0x1234}, next: 0x0802})
	})
	t.Run("INDY", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeINDY, code: []uint8{0x86}, y: 0x10, setup: zp(0x86, 0x28, 0x40),
			expected: operand{kind: operandMemory, addr: 0x4038}, next: 0x0802})
	})
	t.Run("INDY page crossed", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeINDY, code: []uint8{0x86}, y: 0xff, setup: zp(0x86, 0x28, 0x40),
			expected: operand{kind: operandMemory, addr: 0x4127, pageCrossed: true}, next: 0x0802})
	})
	t.Run("INDY pointer wraps inside page 0", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeINDY, code: []uint8{0xff}, setup: zp(0xff, 0x00, 0x50),
			expected: operand{kind: operandMemory, addr: 0x5000}, next: 0x0802})
	})
	t.Run("REL forward", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeREL, code: []uint8{0x10},
			expected: operand{kind: operandRelative, addr: 0x0812}, next: 0x0802})
	})
	t.Run("REL backward across page", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeREL, code: []uint8{0xf0},
			expected: operand{kind: operandRelative, addr: 0x07f2, pageCrossed: true}, next: 0x0802})
	})
	t.Run("ACC", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeACC, expected: operand{kind: operandAccumulator}, next: 0x0801})
	})
	t.Run("IMP", func(t *testing.T) {
		testDo(t, testArgs{mode: AddrModeIMP, expected: operand{kind: operandNone}, next: 0x0801})
	})
}

func TestResolve_UnknownModePanics(t *testing.T) {
	c, _ := newTestCPU(t)
	assert.Panics(t, func() { c.resolve(AddrMode("XYZ"), 0) })
}

func TestAddrModeFromString(t *testing.T) {
	for _, s := range []string{"IMM", "ZP", "ZPX", "ZPY", "ABS", "ABSX", "ABSY", "IND", "INDX", "INDY", "REL", "ACC", "IMP"} {
		mode, err := addrModeFromString(s)
		assert.NoError(t, err)
		assert.Equal(t, AddrMode(s), mode)
	}

	_, err := addrModeFromString("ZPZ")
	assert.Error(t, err)
}
