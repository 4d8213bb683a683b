package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetZN(t *testing.T) {
	c := &CPU{}
	for v := 0; v <= 0xff; v++ {
		c.setZN(uint8(v))
		assert.Equal(t, v == 0, c.reg.P.Zero, "Z for %02X", v)
		assert.Equal(t, v&0x80 != 0, c.reg.P.Negative, "N for %02X", v)
	}
}

func TestSetZN_LeavesOtherFlags(t *testing.T) {
	c := &CPU{}
	c.reg.P = Status{Carry: true, Overflow: true, Decimal: true, Interrupt: true}
	c.setZN(0x80)
	assert.Equal(t, Status{Carry: true, Overflow: true, Decimal: true, Interrupt: true, Negative: true}, c.reg.P)
}

func TestStatus_Byte(t *testing.T) {
	t.Run("unused bit always set", func(t *testing.T) {
		assert.Equal(t, flagUBit, Status{}.Byte())
	})

	t.Run("every flag", func(t *testing.T) {
		s := Status{Negative: true, Overflow: true, Break: true, Decimal: true, Interrupt: true, Zero: true, Carry: true}
		assert.Equal(t, uint8(0xff), s.Byte())
	})

	t.Run("single flags", func(t *testing.T) {
		assert.Equal(t, flagUBit|flagCBit, Status{Carry: true}.Byte())
		assert.Equal(t, flagUBit|flagZBit, Status{Zero: true}.Byte())
		assert.Equal(t, flagUBit|flagIBit, Status{Interrupt: true}.Byte())
		assert.Equal(t, flagUBit|flagDBit, Status{Decimal: true}.Byte())
		assert.Equal(t, flagUBit|flagBBit, Status{Break: true}.Byte())
		assert.Equal(t, flagUBit|flagVBit, Status{Overflow: true}.Byte())
		assert.Equal(t, flagUBit|flagNBit, Status{Negative: true}.Byte())
	})
}

func TestStatus_SetByte(t *testing.T) {
	for p := 0; p <= 0xff; p++ {
		var s Status
		s.SetByte(uint8(p))
		assert.Equal(t, uint8(p)|flagUBit, s.Byte(), "P %02X", p)
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "nv-bdizc", Status{}.String())
	assert.Equal(t, "Nv-bdIzC", Status{Negative: true, Interrupt: true, Carry: true}.String())
}

func TestRegisters_StackAddr(t *testing.T) {
	for sp := 0; sp <= 0xff; sp++ {
		addr := Registers{SP: uint8(sp)}.StackAddr()
		assert.GreaterOrEqual(t, addr, uint16(0x0100))
		assert.LessOrEqual(t, addr, uint16(0x01ff))
	}
}
