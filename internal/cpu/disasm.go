package cpu

import (
	"fmt"

	"github.com/nevisdale/mos6502/internal/mem"
)

// Disassembly is one decoded instruction.
type Disassembly struct {
	Addr        uint16
	Bytes       []uint8
	Instruction Instruction
	Text        string // e.g. "LDA #$05"
}

// Disassemble decodes the instruction at addr without executing it.
// Illegal opcodes decode as a one byte "???".
func Disassemble(rd mem.Reader, addr uint16) Disassembly {
	instr := Lookup(rd.Read8(addr))
	d := Disassembly{
		Addr:        addr,
		Instruction: instr,
	}
	for i := uint16(0); i < instr.Size(); i++ {
		d.Bytes = append(d.Bytes, rd.Read8(addr+i))
	}

	operand8 := func() uint8 { return rd.Read8(addr + 1) }
	operand16 := func() uint16 { return uint16(rd.Read8(addr+1)) | uint16(rd.Read8(addr+2))<<8 }

	name := instr.Mnemonic.String()
	switch instr.Mode {
	case AddrModeIMM:
		d.Text = fmt.Sprintf("%s #$%02X", name, operand8())
	case AddrModeZP:
		d.Text = fmt.Sprintf("%s $%02X", name, operand8())
	case AddrModeZPX:
		d.Text = fmt.Sprintf("%s $%02X,X", name, operand8())
	case AddrModeZPY:
		d.Text = fmt.Sprintf("%s $%02X,Y", name, operand8())
	case AddrModeABS:
		d.Text = fmt.Sprintf("%s $%04X", name, operand16())
	case AddrModeABSX:
		d.Text = fmt.Sprintf("%s $%04X,X", name, operand16())
	case AddrModeABSY:
		d.Text = fmt.Sprintf("%s $%04X,Y", name, operand16())
	case AddrModeIND:
		d.Text = fmt.Sprintf("%s ($%04X)", name, operand16())
	case AddrModeINDX:
		d.Text = fmt.Sprintf("%s ($%02X,X)", name, operand8())
	case AddrModeINDY:
		d.Text = fmt.Sprintf("%s ($%02X),Y", name, operand8())
	case AddrModeREL:
		offset := uint16(operand8())
		if offset&0x80 > 0 {
			offset |= 0xff00 // add leading 1 s to save the sign
		}
		d.Text = fmt.Sprintf("%s $%04X", name, addr+2+offset)
	case AddrModeACC:
		d.Text = fmt.Sprintf("%s A", name)
	default:
		d.Text = name
	}
	return d
}

// DisassembleFrom decodes n consecutive instructions starting at addr.
func DisassembleFrom(rd mem.Reader, addr uint16, n int) []Disassembly {
	out := make([]Disassembly, 0, n)
	for i := 0; i < n; i++ {
		d := Disassemble(rd, addr)
		out = append(out, d)
		addr += uint16(len(d.Bytes))
	}
	return out
}

// String formats d the way a monitor listing does:
// "$0800: A9 05     LDA #$05".
func (d Disassembly) String() string {
	var raw string
	for i, b := range d.Bytes {
		if i > 0 {
			raw += " "
		}
		raw += fmt.Sprintf("%02X", b)
	}
	return fmt.Sprintf("$%04X: %-8s  %s", d.Addr, raw, d.Text)
}
