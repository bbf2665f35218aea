package sim

import (
	"fmt"

	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

// Program is a named, immutable instruction sequence that always ends in
// EXIT.
type Program struct {
	name         string
	instructions []hardware.Instruction
}

// NewProgram flattens blocks into a single instruction sequence and appends
// EXIT when the last instruction is not one.
func NewProgram(name string, blocks ...[]hardware.Instruction) (*Program, error) {
	var expanded []hardware.Instruction
	for _, b := range blocks {
		expanded = append(expanded, b...)
	}
	if len(expanded) == 0 {
		return nil, fmt.Errorf("program %q: %w", name, ErrEmptyProgram)
	}
	for i, inst := range expanded {
		if !inst.Valid() {
			return nil, fmt.Errorf("program %q: instruction %d: unknown kind %q", name, i, inst)
		}
	}
	if !expanded[len(expanded)-1].IsExit() {
		expanded = append(expanded, hardware.InstExit)
	}
	return &Program{name: name, instructions: expanded}, nil
}

// MustProgram is like NewProgram but panics on error. Intended for fixed
// programs in tests and examples.
func MustProgram(name string, blocks ...[]hardware.Instruction) *Program {
	p, err := NewProgram(name, blocks...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Program) Name() string { return p.name }

// Len returns the number of instructions, including the final EXIT.
func (p *Program) Len() int { return len(p.instructions) }

// Instructions returns a copy of the instruction sequence.
func (p *Program) Instructions() []hardware.Instruction {
	out := make([]hardware.Instruction, len(p.instructions))
	copy(out, p.instructions)
	return out
}

func (p *Program) String() string {
	return fmt.Sprintf("Program(%s, %v)", p.name, p.instructions)
}
