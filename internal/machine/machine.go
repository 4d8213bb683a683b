// Package machine wires a CPU to 64 KB of RAM and drives it.
package machine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/nevisdale/mos6502/internal/cpu"
	"github.com/nevisdale/mos6502/internal/loader"
	"github.com/nevisdale/mos6502/internal/mem"
)

// ErrTrapped is returned by Run when an instruction jumps or branches to
// itself. Test ROMs end that way, on success as well as on failure.
var ErrTrapped = errors.New("cpu trapped")

const (
	// about one 60 Hz frame of a 1 MHz 6502
	cyclesPerTic = 1_000_000 / 60

	historySize = 8
)

type Machine struct {
	cpu *cpu.CPU
	ram *mem.RAM

	entry    uint16
	hasEntry bool

	trace *log.Logger

	pause          bool
	oneStepAndStop bool
	halt           error

	ticCounter uint64

	// addresses of the last executed instructions, oldest first
	history []uint16
}

func New(opts ...cpu.Option) (*Machine, error) {
	m := &Machine{
		ram: mem.NewRAM(),
	}
	c, err := cpu.NewCPU(m.ram, opts...)
	if err != nil {
		return nil, fmt.Errorf("couldn't create cpu: %w", err)
	}
	m.cpu = c
	return m, nil
}

// Install writes p into memory. A program with an entry point is started
// there by the next Reset, otherwise the reset vector decides.
func (m *Machine) Install(p *loader.Program) error {
	if err := p.Install(m.ram); err != nil {
		return err
	}
	m.entry, m.hasEntry = p.Entry, p.HasEntry
	return nil
}

func (m *Machine) Reset() {
	m.cpu.Reset()
	if m.hasEntry {
		m.cpu.SetPC(m.entry)
	}
	m.halt = nil
	m.history = m.history[:0]
	m.ticCounter = 0
}

// SetTrace writes one line per executed instruction to w, in the layout
// of the nestest log. A nil w turns tracing off.
func (m *Machine) SetTrace(w io.Writer) {
	if w == nil {
		m.trace = nil
		return
	}
	m.trace = log.New(w, "", 0)
}

func (m *Machine) traceLine() string {
	reg := m.cpu.Registers()
	d := cpu.Disassemble(m.ram, reg.PC)

	raw := make([]string, 0, len(d.Bytes))
	for _, b := range d.Bytes {
		raw = append(raw, fmt.Sprintf("%02X", b))
	}
	return fmt.Sprintf("%04X  %-8s  %-30s  A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		reg.PC, strings.Join(raw, " "), d.Text,
		reg.A, reg.X, reg.Y, reg.P.Byte(), reg.SP, m.cpu.Cycles())
}

// Step runs one instruction or interrupt entry.
func (m *Machine) Step() (cpu.Outcome, error) {
	pc := m.cpu.Registers().PC
	if m.trace != nil {
		m.trace.Print(m.traceLine())
	}
	out, err := m.cpu.Step()
	if err != nil {
		return out, err
	}
	if out.Interrupt == cpu.InterruptNone {
		m.remember(pc)
	}
	return out, nil
}

func (m *Machine) remember(pc uint16) {
	if len(m.history) == historySize {
		copy(m.history, m.history[1:])
		m.history = m.history[:historySize-1]
	}
	m.history = append(m.history, pc)
}

func isTrap(pc uint16, out cpu.Outcome) bool {
	if out.Interrupt != cpu.InterruptNone || out.PC != pc {
		return false
	}
	return out.Instruction.Mnemonic == cpu.JMP || out.Instruction.Mode == cpu.AddrModeREL
}

// Run steps until limit instructions have run (0 means no limit), the CPU
// traps, an instruction fails or ctx is done. It returns the number of
// steps taken.
func (m *Machine) Run(ctx context.Context, limit uint64) (uint64, error) {
	var steps uint64
	for limit == 0 || steps < limit {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		pc := m.cpu.Registers().PC
		out, err := m.Step()
		if err != nil {
			return steps, err
		}
		steps++
		if isTrap(pc, out) {
			return steps, fmt.Errorf("%w at $%04X", ErrTrapped, pc)
		}
	}
	return steps, nil
}

// Tic advances the machine by one frame worth of cycles, or by one
// instruction after OneStepAndStop. Nothing runs while paused or halted.
func (m *Machine) Tic() {
	if m.halt != nil {
		return
	}
	if m.pause && !m.oneStepAndStop {
		return
	}

	budget := uint64(cyclesPerTic)
	if m.oneStepAndStop {
		budget = 1
	}
	for spent := uint64(0); spent < budget; {
		pc := m.cpu.Registers().PC
		out, err := m.Step()
		if err != nil {
			m.stop(err)
			break
		}
		if isTrap(pc, out) {
			m.stop(fmt.Errorf("%w at $%04X", ErrTrapped, pc))
			break
		}
		spent += uint64(out.Cycles)
	}

	if m.oneStepAndStop {
		m.oneStepAndStop = false
		m.pause = true
	}
	m.ticCounter++
}

func (m *Machine) stop(err error) {
	m.halt = err
	m.pause = true
	log.Printf("machine halted: %s", err)
}

func (m *Machine) TogglePause() {
	m.pause = !m.pause
}

func (m *Machine) OneStepAndStop() {
	m.oneStepAndStop = true
}

func (m *Machine) SetIRQ(level bool) {
	m.cpu.SetIRQ(level)
}

func (m *Machine) SetNMI(level bool) {
	m.cpu.SetNMI(level)
}

func (m *Machine) Registers() cpu.Registers {
	return m.cpu.Registers()
}

// Peek reads memory without side effects.
func (m *Machine) Peek(addr uint16) uint8 {
	return m.ram.Read8(addr)
}

// Disassemble decodes n instructions starting at PC.
func (m *Machine) Disassemble(n int) []cpu.Disassembly {
	return cpu.DisassembleFrom(m.ram, m.cpu.Registers().PC, n)
}

// History disassembles the most recently executed instructions, oldest
// first.
func (m *Machine) History() []cpu.Disassembly {
	out := make([]cpu.Disassembly, 0, len(m.history))
	for _, pc := range m.history {
		out = append(out, cpu.Disassemble(m.ram, pc))
	}
	return out
}

type DebugInfo struct {
	PC     uint16
	A      uint8
	X      uint8
	Y      uint8
	SP     uint8
	P      cpu.Status
	Cycles uint64
	Tics   uint64
	Paused bool
	Halt   error
}

func (d DebugInfo) StatusString() string {
	return d.P.String()
}

func (m *Machine) DebugInfo() DebugInfo {
	reg := m.cpu.Registers()
	return DebugInfo{
		PC:     reg.PC,
		A:      reg.A,
		X:      reg.X,
		Y:      reg.Y,
		SP:     reg.SP,
		P:      reg.P,
		Cycles: m.cpu.Cycles(),
		Tics:   m.ticCounter,
		Paused: m.pause,
		Halt:   m.halt,
	}
}
