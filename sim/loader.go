package sim

import (
	"fmt"

	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

// MemoryWriter is the memory interface the loader needs.
type MemoryWriter interface {
	Write(addr int, inst hardware.Instruction) error
	Size() int
}

// Loader places programs contiguously in memory. Space is never reclaimed.
type Loader struct {
	memory MemoryWriter
	cursor int
}

// NewLoader creates a loader writing from address 0.
func NewLoader(memory MemoryWriter) *Loader {
	if memory == nil {
		panic("NewLoader: memory must not be nil")
	}
	return &Loader{memory: memory}
}

// Load writes program at the cursor and returns its base address. A program
// that does not fit is rejected before anything is written.
func (l *Loader) Load(program *Program) (int, error) {
	if program == nil || program.Len() == 0 {
		return 0, ErrEmptyProgram
	}
	size := program.Len()
	if l.cursor+size > l.memory.Size() {
		return 0, fmt.Errorf("load %s: needs %d cells at %d, memory size %d: %w",
			program.Name(), size, l.cursor, l.memory.Size(), hardware.ErrAddressOutOfRange)
	}
	base := l.cursor
	for i, inst := range program.instructions {
		if err := l.memory.Write(base+i, inst); err != nil {
			return 0, fmt.Errorf("load %s: %w", program.Name(), err)
		}
	}
	l.cursor += size
	return base, nil
}

// Cursor returns the next free address.
func (l *Loader) Cursor() int { return l.cursor }
