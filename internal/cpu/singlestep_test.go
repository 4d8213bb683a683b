package cpu

import (
	"encoding/json"
	"os"
	"path"
	"strconv"
	"testing"
)

// Test_CPU_SingleStepTest runs the per-opcode JSON suites from
// https://github.com/SingleStepTests/65x02 (6502 directory).
func Test_CPU_SingleStepTest(t *testing.T) {
	t.Parallel()

	type cpuState struct {
		PC uint16 `json:"pc"`
		S  uint8  `json:"s"`
		A  uint8  `json:"a"`
		X  uint8  `json:"x"`
		Y  uint8  `json:"y"`
		P  uint8  `json:"p"`

		// slice of elements where
		// element[0] is address
		// element[1] is value
		RAM [][]uint16 `json:"ram"`
	}

	type testInstance struct {
		Name    string   `json:"name"`
		Initial cpuState `json:"initial"`
		Final   cpuState `json:"final"`

		// slice of elements where
		// element[0] is address
		// element[1] is value
		// element[2] is operation (read/write)
		Cycles [][]any `json:"cycles"`
	}

	dir := os.Getenv("SINGLE_STEP_TEST_DIR")
	if dir == "" {
		t.Skip("skipping test because SINGLE_STEP_TEST_DIR is not set")
		return
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	mem := newStepMem(t)
	doTest := func(t *testing.T, test testInstance) {
		// init memory
		mem.reset()
		for _, addrVal := range test.Initial.RAM {
			mem.set(addrVal[0], uint8(addrVal[1]))
		}
		for _, cyc := range test.Cycles {
			op := cyc[2].(string)
			addr := uint16(cyc[0].(float64))
			data := uint8(cyc[1].(float64))
			mem.allow(op, addr, data)
		}

		// init CPU
		cpu, err := NewCPU(mem)
		if err != nil {
			t.Fatal(err)
		}
		cpu.reg.PC = test.Initial.PC
		cpu.reg.SP = test.Initial.S
		cpu.reg.A = test.Initial.A
		cpu.reg.X = test.Initial.X
		cpu.reg.Y = test.Initial.Y
		cpu.reg.P.SetByte(test.Initial.P)

		// run CPU
		out, err := cpu.Step()
		if err != nil {
			t.Fatalf("%s: %v", test.Name, err)
		}

		// check final state of CPU
		if cpu.reg.PC != test.Final.PC {
			t.Fatalf("%s: expected PC %04X, got %04X", test.Name, test.Final.PC, cpu.reg.PC)
		}
		if cpu.reg.SP != test.Final.S {
			t.Fatalf("%s: expected S %02X, got %02X", test.Name, test.Final.S, cpu.reg.SP)
		}
		if cpu.reg.A != test.Final.A {
			t.Fatalf("%s: expected A %02X, got %02X", test.Name, test.Final.A, cpu.reg.A)
		}
		if cpu.reg.X != test.Final.X {
			t.Fatalf("%s: expected X %02X, got %02X", test.Name, test.Final.X, cpu.reg.X)
		}
		if cpu.reg.Y != test.Final.Y {
			t.Fatalf("%s: expected Y %02X, got %02X", test.Name, test.Final.Y, cpu.reg.Y)
		}
		// B and bit 5 only exist on the stack
		const ignored = flagBBit | flagUBit
		if got := cpu.reg.P.Byte(); (got^test.Final.P)&^ignored != 0 {
			t.Fatalf("%s: expected P %02X, got %02X", test.Name, test.Final.P, got)
		}
		if int(out.Cycles) != len(test.Cycles) {
			t.Fatalf("%s: expected %d cycles, got %d", test.Name, len(test.Cycles), out.Cycles)
		}

		// check final state of memory
		for _, addrVal := range test.Final.RAM {
			mem.mustBe(addrVal[0], uint8(addrVal[1]))
		}
	}

	var tests []testInstance
	for _, file := range files {
		opcodeStr := path.Base(file.Name())[:2]
		opcode, err := strconv.ParseUint(opcodeStr, 16, 8)
		if err != nil {
			t.Fatalf("failed to parse opcode from file name %s: %v", file.Name(), err)
		}

		fileData, err := os.ReadFile(path.Join(dir, file.Name()))
		if err != nil {
			t.Fatalf("failed to read file %s: %v", file.Name(), err)
		}

		tests = tests[:0]
		err = json.Unmarshal(fileData, &tests)
		if err != nil {
			t.Fatalf("failed to unmarshal file %s: %v", file.Name(), err)
		}

		t.Run(file.Name(), func(t *testing.T) {
			if !Lookup(uint8(opcode)).Legal() {
				t.Skipf("skipping test for opcode %02X because it is not documented", opcode)
				return
			}
			for _, test := range tests {
				doTest(t, test)
			}
		})
	}
}

// stepMem lets the test fail on writes the suite doesn't list.
type stepMem struct {
	t       *testing.T
	data    []uint8
	allowed map[uint32]struct{}
}

func newStepMem(t *testing.T) *stepMem {
	return &stepMem{
		t:       t,
		data:    make([]uint8, 0x10000),
		allowed: make(map[uint32]struct{}),
	}
}

func (m *stepMem) key(addr uint16, data uint8) uint32 {
	return uint32(addr) | uint32(data)<<16
}

func (m *stepMem) allow(op string, addr uint16, data uint8) {
	if op != "write" {
		return
	}
	m.allowed[m.key(addr, data)] = struct{}{}
}

func (m *stepMem) mustBe(addr uint16, data uint8) {
	if m.data[addr] != data {
		m.t.Fatalf("expected %02X at address %04X, got %02X", data, addr, m.data[addr])
	}
}

func (m *stepMem) set(addr uint16, data uint8) {
	m.data[addr] = data
}

func (m *stepMem) reset() {
	clear(m.data)
	clear(m.allowed)
}

func (m *stepMem) Read8(addr uint16) uint8 {
	// do not check because read does not change memory
	return m.data[addr]
}

func (m *stepMem) Write8(addr uint16, data uint8) {
	if _, ok := m.allowed[m.key(addr, data)]; !ok {
		m.t.Fatalf("not allowed write to address %04X with value %02X", addr, data)
	}
	m.data[addr] = data
}
