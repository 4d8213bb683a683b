package cpu

import (
	"errors"
	"fmt"

	"github.com/nevisdale/mos6502/internal/mem"
)

const (
	// The stack is located in the fixed memory page $0100 to $01FF.
	stackStartAddr = uint16(0x100)
)

var ErrIllegalOpcode = errors.New("illegal opcode")

// IllegalOpcodeError is returned by Step when the byte at PC is not a
// documented opcode. It matches ErrIllegalOpcode.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode %02X at PC %04X", e.Opcode, e.PC)
}

func (e *IllegalOpcodeError) Is(target error) bool {
	return target == ErrIllegalOpcode
}

// Outcome describes one Step.
type Outcome struct {
	// Instruction is the zero value when the step serviced an interrupt.
	Instruction Instruction
	Interrupt   Interrupt
	Cycles      uint8
	PC          uint16 // program counter after the step
}

type Option func(c *CPU)

// WithoutDecimalMode makes ADC and SBC ignore the D flag, like the
// Ricoh 2A03. SED and CLD still change the flag.
func WithoutDecimalMode() Option {
	return func(c *CPU) {
		c.noDecimal = true
	}
}

type CPU struct {
	reg         Registers
	bus         mem.ReadWriter
	noDecimal   bool
	totalCycles uint64
	extraCycles uint8 // cycles added by the running handler

	nmiLine    bool
	nmiPending bool
	irqLine    bool
}

func NewCPU(rw mem.ReadWriter, opts ...Option) (*CPU, error) {
	if err := loadInstructions(); err != nil {
		return nil, fmt.Errorf("couldn't load instruction table: %w", err)
	}
	c := &CPU{
		bus: rw,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reg.SP = 0xfd
	c.reg.P.Interrupt = true
	return c, nil
}

func (c *CPU) read8(addr uint16) uint8 {
	return c.bus.Read8(addr)
}

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.read8(addr)) | uint16(c.read8(addr+1))<<8
}

func (c *CPU) write8(addr uint16, data uint8) {
	c.bus.Write8(addr, data)
}

// Registers returns a copy of the register file.
func (c *CPU) Registers() Registers {
	return c.reg
}

// SetPC moves the program counter. It is meant for loaders and
// debuggers placing the CPU before execution starts.
func (c *CPU) SetPC(pc uint16) {
	c.reg.PC = pc
}

// Cycles is the number of cycles run since the last reset.
func (c *CPU) Cycles() uint64 {
	return c.totalCycles
}

// Step executes exactly one instruction, or enters one pending
// interrupt.
//
// An illegal opcode aborts the step before anything is changed.
func (c *CPU) Step() (Outcome, error) {
	if kind := c.pendingInterrupt(); kind != InterruptNone {
		c.enterInterrupt(kind, c.reg.PC)
		c.totalCycles += interruptCycles
		return Outcome{Interrupt: kind, Cycles: interruptCycles, PC: c.reg.PC}, nil
	}

	pc := c.reg.PC
	opcode := c.read8(pc)
	instr := Lookup(opcode)
	if !instr.Legal() {
		return Outcome{}, &IllegalOpcodeError{Opcode: opcode, PC: pc}
	}

	op, next := c.resolve(instr.Mode, pc+1)
	c.reg.PC = next

	c.extraCycles = 0
	handlers[instr.Mnemonic](c, op)

	cycles := instr.Cycles + c.extraCycles
	if instr.Penalty == PenaltyPageCross && op.pageCrossed {
		cycles++
	}
	c.totalCycles += uint64(cycles)

	return Outcome{Instruction: instr, Cycles: cycles, PC: c.reg.PC}, nil
}
