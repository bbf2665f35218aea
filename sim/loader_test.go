package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

func TestLoader_Load_PlacesProgramsContiguously(t *testing.T) {
	// GIVEN an empty memory
	mem := hardware.NewMemory(16)
	l := NewLoader(mem)

	// WHEN two programs of length 3 and 2 are loaded
	baseA, err := l.Load(MustProgram("A", hardware.CPUBurst(1), hardware.IO()))
	require.NoError(t, err)
	baseB, err := l.Load(MustProgram("B", hardware.CPUBurst(1)))
	require.NoError(t, err)

	// THEN they sit back to back
	assert.Equal(t, 0, baseA)
	assert.Equal(t, 3, baseB)
	assert.Equal(t, 5, l.Cursor())

	want := []hardware.Instruction{
		hardware.InstCPU, hardware.InstIO, hardware.InstExit,
		hardware.InstCPU, hardware.InstExit,
	}
	for addr, inst := range want {
		got, err := mem.Read(addr)
		require.NoError(t, err)
		assert.Equal(t, inst, got, "addr %d", addr)
	}
}

func TestLoader_Load_Overflow_WritesNothing(t *testing.T) {
	// GIVEN memory with 4 cells, 3 of them used
	mem := hardware.NewMemory(4)
	l := NewLoader(mem)
	_, err := l.Load(cpuProgram("A", 2))
	require.NoError(t, err)

	// WHEN a 2-instruction program is loaded
	_, err = l.Load(cpuProgram("B", 1))

	// THEN it is rejected, the cursor stays put and the free cell is untouched
	assert.True(t, errors.Is(err, hardware.ErrAddressOutOfRange))
	assert.Equal(t, 3, l.Cursor())
	cell, err := mem.Read(3)
	require.NoError(t, err)
	assert.Equal(t, hardware.Instruction(""), cell)
}

func TestLoader_Load_ExactFit(t *testing.T) {
	l := NewLoader(hardware.NewMemory(3))

	base, err := l.Load(cpuProgram("A", 2))

	require.NoError(t, err)
	assert.Equal(t, 0, base)
	assert.Equal(t, 3, l.Cursor())
}

func TestLoader_Load_NilProgram(t *testing.T) {
	l := NewLoader(hardware.NewMemory(3))

	_, err := l.Load(nil)

	assert.True(t, errors.Is(err, ErrEmptyProgram))
}
