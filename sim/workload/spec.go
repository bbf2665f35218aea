// Package workload loads program batches from YAML and feeds them to the
// kernel at their arrival ticks.
package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/kernel-sim/kernel-sim/sim"
	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

// WorkloadSpec is the top-level workload file.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version   string         `yaml:"version"`
	Seed      int64          `yaml:"seed,omitempty"`
	Kernel    KernelSpec     `yaml:"kernel,omitempty"`
	Hardware  HardwareSpec   `yaml:"hardware,omitempty"`
	Programs  []ProgramSpec  `yaml:"programs,omitempty"`
	Generator *GeneratorSpec `yaml:"generator,omitempty"` // synthetic programs appended after Programs
}

// KernelSpec selects kernel policies. Empty strings mean "not set".
type KernelSpec struct {
	Scheduler string `yaml:"scheduler,omitempty"`
}

// HardwareSpec sizes the machine. Nil fields mean "not set in YAML" and keep
// the caller's defaults.
type HardwareSpec struct {
	MemorySize *int `yaml:"memory_size,omitempty"`
	Quantum    *int `yaml:"quantum,omitempty"`
	IODuration *int `yaml:"io_duration,omitempty"`
}

// ProgramSpec describes one program submission.
type ProgramSpec struct {
	Name         string            `yaml:"name"`
	Priority     int               `yaml:"priority,omitempty"` // lower = more urgent
	Arrival      int64             `yaml:"arrival,omitempty"`  // tick at which the program is submitted
	Instructions []InstructionSpec `yaml:"instructions"`
}

// InstructionSpec is a run of Count identical instructions.
type InstructionSpec struct {
	Op    string `yaml:"op"`              // CPU, IO or EXIT
	Count int    `yaml:"count,omitempty"` // 0 means 1
}

// LoadWorkloadSpec reads and strictly parses a workload file. Unknown keys
// are errors so typos cannot silently change a run.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks names, ranges and program contents.
func (s *WorkloadSpec) Validate() error {
	if s.Version != "1" {
		return fmt.Errorf("unsupported workload version %q", s.Version)
	}
	if !sim.IsValidScheduler(s.Kernel.Scheduler) {
		return fmt.Errorf("unknown scheduler %q", s.Kernel.Scheduler)
	}
	if err := s.HardwareConfig(hardware.DefaultConfig()).Validate(); err != nil {
		return err
	}
	if len(s.Programs) == 0 && s.Generator == nil {
		return fmt.Errorf("at least one program or a generator required")
	}
	if s.Generator != nil {
		if err := s.Generator.Validate(); err != nil {
			return fmt.Errorf("generator: %w", err)
		}
	}
	for i := range s.Programs {
		if err := validateProgram(&s.Programs[i], i); err != nil {
			return err
		}
	}
	return nil
}

func validateProgram(p *ProgramSpec, idx int) error {
	if p.Name == "" {
		return fmt.Errorf("program[%d]: name required", idx)
	}
	if p.Arrival < 0 {
		return fmt.Errorf("program[%d] %s: arrival must be non-negative, got %d", idx, p.Name, p.Arrival)
	}
	if len(p.Instructions) == 0 {
		return fmt.Errorf("program[%d] %s: %w", idx, p.Name, sim.ErrEmptyProgram)
	}
	for j, inst := range p.Instructions {
		if _, err := hardware.ParseInstruction(inst.Op); err != nil {
			return fmt.Errorf("program[%d] %s instruction[%d]: %w", idx, p.Name, j, err)
		}
		if inst.Count < 0 {
			return fmt.Errorf("program[%d] %s instruction[%d]: count must be non-negative, got %d", idx, p.Name, j, inst.Count)
		}
	}
	return nil
}

// HardwareConfig overlays the fields set in the spec on base.
func (s *WorkloadSpec) HardwareConfig(base hardware.Config) hardware.Config {
	if s.Hardware.MemorySize != nil {
		base.MemorySize = *s.Hardware.MemorySize
	}
	if s.Hardware.Quantum != nil {
		base.Quantum = *s.Hardware.Quantum
	}
	if s.Hardware.IODuration != nil {
		base.IODuration = *s.Hardware.IODuration
	}
	return base
}

// Program builds the sim.Program for p.
func (p *ProgramSpec) Program() (*sim.Program, error) {
	blocks := make([][]hardware.Instruction, 0, len(p.Instructions))
	for _, spec := range p.Instructions {
		inst, err := hardware.ParseInstruction(spec.Op)
		if err != nil {
			return nil, fmt.Errorf("program %s: %w", p.Name, err)
		}
		n := spec.Count
		if n == 0 {
			n = 1
		}
		block := make([]hardware.Instruction, n)
		for i := range block {
			block[i] = inst
		}
		blocks = append(blocks, block)
	}
	return sim.NewProgram(p.Name, blocks...)
}

// Arrivals builds every program of the spec, in file order, followed by the
// generated ones.
func (s *WorkloadSpec) Arrivals() ([]Arrival, error) {
	programs := s.Programs
	if s.Generator != nil {
		programs = append(append([]ProgramSpec(nil), s.Programs...), GeneratePrograms(s.Generator, s.Seed)...)
	}
	out := make([]Arrival, 0, len(programs))
	for i := range programs {
		p := &programs[i]
		program, err := p.Program()
		if err != nil {
			return nil, err
		}
		if p.Priority < 0 {
			logrus.Warnf("program %s has negative priority %d; it will outrank every default-priority program", p.Name, p.Priority)
		}
		out = append(out, Arrival{
			Tick: p.Arrival,
			Job:  sim.Job{Program: program, Priority: p.Priority},
		})
	}
	return out, nil
}
