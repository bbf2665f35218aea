package hardware

import (
	"errors"
	"fmt"
)

// ErrAddressOutOfRange is returned for reads or writes outside memory.
var ErrAddressOutOfRange = errors.New("address out of range")

// Memory is a fixed-size array of instruction cells addressed by integer
// offset.
type Memory struct {
	cells []Instruction
}

// NewMemory creates a memory with size cells.
func NewMemory(size int) *Memory {
	if size <= 0 {
		panic(fmt.Sprintf("NewMemory: size must be positive, got %d", size))
	}
	return &Memory{cells: make([]Instruction, size)}
}

// Size returns the number of cells.
func (m *Memory) Size() int {
	return len(m.cells)
}

func (m *Memory) Write(addr int, inst Instruction) error {
	if addr < 0 || addr >= len(m.cells) {
		return fmt.Errorf("write %d (size %d): %w", addr, len(m.cells), ErrAddressOutOfRange)
	}
	m.cells[addr] = inst
	return nil
}

func (m *Memory) Read(addr int) (Instruction, error) {
	if addr < 0 || addr >= len(m.cells) {
		return "", fmt.Errorf("read %d (size %d): %w", addr, len(m.cells), ErrAddressOutOfRange)
	}
	return m.cells[addr], nil
}

// MMU translates logical program counters into physical addresses using a
// single base register.
type MMU struct {
	memory  *Memory
	baseDir int
}

// NewMMU creates an MMU in front of memory.
func NewMMU(memory *Memory) *MMU {
	return &MMU{memory: memory}
}

// SetBaseDir loads the base register.
func (m *MMU) SetBaseDir(base int) {
	m.baseDir = base
}

// BaseDir returns the base register.
func (m *MMU) BaseDir() int {
	return m.baseDir
}

// Fetch reads the instruction at logical address pc.
func (m *MMU) Fetch(pc int) (Instruction, error) {
	return m.memory.Read(m.baseDir + pc)
}
