// Package hardware provides the tick-driven machine the kernel runs on:
// CPU, memory, MMU, timer, clock, interrupt vector and a single I/O device.
//
// Nothing here knows about processes. Devices raise interrupts through the
// InterruptVector and the kernel reacts synchronously.
package hardware

import "fmt"

// Instruction is an abstract machine instruction. Only its kind matters to
// the simulation.
type Instruction string

const (
	InstCPU  Instruction = "CPU"
	InstIO   Instruction = "IO"
	InstExit Instruction = "EXIT"
)

// IsExit reports whether the instruction terminates the program.
func (i Instruction) IsExit() bool { return i == InstExit }

// IsIO reports whether the instruction must be run on the I/O device.
func (i Instruction) IsIO() bool { return i == InstIO }

// Valid reports whether the instruction is one of the known kinds.
func (i Instruction) Valid() bool {
	switch i {
	case InstCPU, InstIO, InstExit:
		return true
	default:
		return false
	}
}

// ParseInstruction maps a case-sensitive kind name to an Instruction.
func ParseInstruction(s string) (Instruction, error) {
	inst := Instruction(s)
	if !inst.Valid() {
		return "", fmt.Errorf("unknown instruction %q", s)
	}
	return inst, nil
}

// CPUBurst returns n consecutive CPU instructions.
func CPUBurst(n int) []Instruction {
	return repeat(InstCPU, n)
}

// IO returns a single I/O instruction.
func IO() []Instruction {
	return []Instruction{InstIO}
}

// Exit returns a single EXIT instruction.
func Exit() []Instruction {
	return []Instruction{InstExit}
}

func repeat(inst Instruction, n int) []Instruction {
	out := make([]Instruction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, inst)
	}
	return out
}
