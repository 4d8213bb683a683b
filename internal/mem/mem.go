package mem

import (
	"errors"
	"fmt"
)

// Size of the flat 6502 address space in bytes.
const Size = 0x10000

var ErrAddressOutOfRange = errors.New("address out of range")

type Reader interface {
	Read8(addr uint16) uint8
}

type ReadWriter interface {
	Reader
	Write8(addr uint16, data uint8)
}

// Loader accepts a bulk copy of a program image.
type Loader interface {
	Load(addr uint16, data []uint8) error
}

// RAM is the whole 64 KB address space with no mirroring or mapped I/O.
//
// $0000-$00FF: zero page
// $0100-$01FF: stack page
// $FFFA-$FFFB: NMI vector
// $FFFC-$FFFD: reset vector
// $FFFE-$FFFF: IRQ/BRK vector
type RAM struct {
	ram [Size]uint8
}

func NewRAM() *RAM {
	return &RAM{}
}

func (r *RAM) Read8(addr uint16) uint8 {
	return r.ram[addr]
}

func (r *RAM) Write8(addr uint16, data uint8) {
	r.ram[addr] = data
}

// Read16 reads a little endian word. The high byte address wraps
// from $FFFF to $0000.
func (r *RAM) Read16(addr uint16) uint16 {
	return uint16(r.ram[addr]) | uint16(r.ram[addr+1])<<8
}

// Load copies data starting at addr. Nothing is written if the image
// doesn't fit below $10000.
func (r *RAM) Load(addr uint16, data []uint8) error {
	if int(addr)+len(data) > Size {
		return fmt.Errorf("%w: %d bytes at $%04X", ErrAddressOutOfRange, len(data), addr)
	}
	copy(r.ram[addr:], data)
	return nil
}

func (r *RAM) Clear() {
	r.ram = [Size]uint8{}
}
