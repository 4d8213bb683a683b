package cpu

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

//go:embed opcode_matrix.csv
var opcodeMatrixFileData []byte

// Penalty says which extra cycles an instruction can take on top of its
// base count.
type Penalty uint8

const (
	PenaltyNone      Penalty = iota
	PenaltyPageCross         // +1 when indexing crosses a page
	PenaltyBranch            // +1 when taken, +1 more when the target is on another page
)

func penaltyFromString(s string) (Penalty, error) {
	switch s {
	case "-":
		return PenaltyNone, nil
	case "page":
		return PenaltyPageCross, nil
	case "branch":
		return PenaltyBranch, nil
	}
	return PenaltyNone, fmt.Errorf("penalty couldn't be parsed from %s", s)
}

// Instruction describes one opcode.
type Instruction struct {
	Opcode   uint8
	Mnemonic Mnemonic
	Mode     AddrMode
	Cycles   uint8
	Penalty  Penalty
}

// Legal reports whether the opcode is a documented instruction.
func (i Instruction) Legal() bool {
	return i.Mnemonic != Illegal
}

// Size is the instruction length in bytes, opcode included.
func (i Instruction) Size() uint16 {
	return 1 + i.Mode.OperandSize()
}

var (
	instructionsOnce sync.Once
	instructions     [0x100]Instruction
	instructionsErr  error
)

func loadInstructions() error {
	instructionsOnce.Do(func() {
		instructions, instructionsErr = parseOpcodeMatrix(opcodeMatrixFileData)
	})
	return instructionsErr
}

// Lookup returns the instruction for an opcode. Undocumented opcodes
// return an entry whose Mnemonic is Illegal.
func Lookup(opcode uint8) Instruction {
	if err := loadInstructions(); err != nil {
		return illegalInstruction(opcode)
	}
	return instructions[opcode]
}

func illegalInstruction(opcode uint8) Instruction {
	return Instruction{Opcode: opcode, Mnemonic: Illegal, Mode: AddrModeIMP}
}

func parseOpcodeMatrix(data []byte) ([0x100]Instruction, error) {
	var table [0x100]Instruction
	for i := range table {
		table[i] = illegalInstruction(uint8(i))
	}

	r := csv.NewReader(bytes.NewReader(data))
	_, _ = r.Read() // skip header

	r.ReuseRecord = true
	r.FieldsPerRecord = -1

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table, fmt.Errorf("couldn't read data from csv: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		if len(record) != 5 {
			return table, fmt.Errorf("invalid format for the record: %s: must be 5 parts", strings.Join(record, string(r.Comma)))
		}

		opcodeByte, err := strconv.ParseUint(record[0], 0, 8)
		if err != nil {
			return table, fmt.Errorf("invalid format for opcode byte: %w", err)
		}
		if table[opcodeByte].Legal() {
			return table, fmt.Errorf("opcode %s is defined twice", record[0])
		}

		mnemonic, err := mnemonicFromString(record[1])
		if err != nil {
			return table, fmt.Errorf("invalid format for mnemonic: %w", err)
		}

		addressMode, err := addrModeFromString(record[2])
		if err != nil {
			return table, fmt.Errorf("invalid format for address mode: %w", err)
		}

		cycles, err := strconv.ParseUint(record[3], 0, 8)
		if err != nil {
			return table, fmt.Errorf("invalid format for opcode cycles: %w", err)
		}

		penalty, err := penaltyFromString(record[4])
		if err != nil {
			return table, fmt.Errorf("invalid format for penalty: %w", err)
		}

		table[opcodeByte] = Instruction{
			Opcode:   uint8(opcodeByte),
			Mnemonic: mnemonic,
			Mode:     addressMode,
			Cycles:   uint8(cycles),
			Penalty:  penalty,
		}
	}

	return table, nil
}
