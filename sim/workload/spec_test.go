package workload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kernel-sim/kernel-sim/sim"
	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

func writeSpec(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workload.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWorkloadSpec_ValidYAML_LoadsCorrectly(t *testing.T) {
	path := writeSpec(t, `
version: "1"
kernel:
  scheduler: rr
hardware:
  quantum: 2
programs:
  - name: a.exe
    priority: 2
    instructions:
      - {op: CPU, count: 3}
      - {op: IO}
  - name: b.exe
    arrival: 4
    instructions:
      - op: CPU
`)
	spec, err := LoadWorkloadSpec(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := spec.Validate(); err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if spec.Kernel.Scheduler != "rr" {
		t.Errorf("scheduler = %q, want rr", spec.Kernel.Scheduler)
	}
	if len(spec.Programs) != 2 {
		t.Fatalf("programs = %d, want 2", len(spec.Programs))
	}
	if spec.Programs[1].Arrival != 4 {
		t.Errorf("arrival = %d, want 4", spec.Programs[1].Arrival)
	}
	if spec.Hardware.MemorySize != nil {
		t.Error("memory_size should be unset")
	}
}

func TestLoadWorkloadSpec_UnknownKey_Rejected(t *testing.T) {
	path := writeSpec(t, `
version: "1"
programs:
  - name: a.exe
    priorty: 2
    instructions: [{op: CPU}]
`)
	_, err := LoadWorkloadSpec(path)
	if err == nil {
		t.Fatal("expected error for misspelled key")
	}
	if !strings.Contains(err.Error(), "priorty") {
		t.Errorf("error should name the unknown key: %v", err)
	}
}

func TestLoadWorkloadSpec_MissingVersion_DefaultsToOne(t *testing.T) {
	path := writeSpec(t, `
programs:
  - name: a.exe
    instructions: [{op: EXIT}]
`)
	spec, err := LoadWorkloadSpec(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Version != "1" {
		t.Errorf("version = %q, want 1", spec.Version)
	}
}

func TestLoadWorkloadSpec_MissingFile(t *testing.T) {
	if _, err := LoadWorkloadSpec(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func validSpec() *WorkloadSpec {
	return &WorkloadSpec{
		Version: "1",
		Programs: []ProgramSpec{
			{Name: "a.exe", Instructions: []InstructionSpec{{Op: "CPU", Count: 2}}},
		},
	}
}

func intPtr(v int) *int { return &v }

func TestWorkloadSpec_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *WorkloadSpec)
		wantErr string
	}{
		{"bad version", func(s *WorkloadSpec) { s.Version = "2" }, "version"},
		{"bad scheduler", func(s *WorkloadSpec) { s.Kernel.Scheduler = "sjf" }, "scheduler"},
		{"negative quantum", func(s *WorkloadSpec) { s.Hardware.Quantum = intPtr(-1) }, "quantum"},
		{"zero memory", func(s *WorkloadSpec) { s.Hardware.MemorySize = intPtr(0) }, "memory_size"},
		{"no programs", func(s *WorkloadSpec) { s.Programs = nil }, "at least one program"},
		{"unnamed program", func(s *WorkloadSpec) { s.Programs[0].Name = "" }, "name required"},
		{"negative arrival", func(s *WorkloadSpec) { s.Programs[0].Arrival = -1 }, "arrival"},
		{"unknown op", func(s *WorkloadSpec) { s.Programs[0].Instructions[0].Op = "JMP" }, "JMP"},
		{"negative count", func(s *WorkloadSpec) { s.Programs[0].Instructions[0].Count = -2 }, "count"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSpec()
			tc.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q should contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestWorkloadSpec_Validate_EmptyInstructions_WrapsErrEmptyProgram(t *testing.T) {
	s := validSpec()
	s.Programs[0].Instructions = nil

	if err := s.Validate(); !errors.Is(err, sim.ErrEmptyProgram) {
		t.Errorf("expected ErrEmptyProgram, got %v", err)
	}
}

func TestWorkloadSpec_HardwareConfig_OverlaysOnlySetFields(t *testing.T) {
	s := validSpec()
	s.Hardware.Quantum = intPtr(4)

	got := s.HardwareConfig(hardware.DefaultConfig())

	want := hardware.DefaultConfig()
	want.Quantum = 4
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestProgramSpec_Program_ExpandsCounts(t *testing.T) {
	p := ProgramSpec{Name: "a.exe", Instructions: []InstructionSpec{
		{Op: "CPU", Count: 2},
		{Op: "IO"},
		{Op: "CPU", Count: 1},
	}}

	program, err := p.Program()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []hardware.Instruction{hardware.InstCPU, hardware.InstCPU, hardware.InstIO, hardware.InstCPU, hardware.InstExit}
	got := program.Instructions()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWorkloadSpec_Arrivals_FileOrder(t *testing.T) {
	s := validSpec()
	s.Programs = append(s.Programs, ProgramSpec{
		Name: "b.exe", Priority: 1, Arrival: 3,
		Instructions: []InstructionSpec{{Op: "IO"}},
	})

	arrivals, err := s.Arrivals()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(arrivals) != 2 {
		t.Fatalf("arrivals = %d, want 2", len(arrivals))
	}
	if arrivals[1].Tick != 3 || arrivals[1].Job.Priority != 1 || arrivals[1].Job.Program.Name() != "b.exe" {
		t.Errorf("second arrival = %+v", arrivals[1])
	}
}
