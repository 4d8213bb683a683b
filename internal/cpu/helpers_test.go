package cpu

import (
	"testing"

	"github.com/nevisdale/mos6502/internal/mem"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memMock struct {
	mock.Mock
}

func (m *memMock) Read8(addr uint16) uint8 {
	args := m.Called(addr)
	return args.Get(0).(uint8)
}

func (m *memMock) Write8(addr uint16, data uint8) {
	m.Called(addr, data)
}

func newTestCPU(t *testing.T, opts ...Option) (*CPU, *mem.RAM) {
	t.Helper()
	ram := mem.NewRAM()
	c, err := NewCPU(ram, opts...)
	require.NoError(t, err)
	return c, ram
}

// loadProgram places code at addr and points PC at it.
func loadProgram(t *testing.T, c *CPU, ram *mem.RAM, addr uint16, code ...uint8) {
	t.Helper()
	require.NoError(t, ram.Load(addr, code))
	c.SetPC(addr)
}

func setVector(ram *mem.RAM, vector, addr uint16) {
	ram.Write8(vector, uint8(addr))
	ram.Write8(vector+1, uint8(addr>>8))
}

func mustStep(t *testing.T, c *CPU) Outcome {
	t.Helper()
	out, err := c.Step()
	require.NoError(t, err)
	return out
}
