package workload

import (
	"strconv"
	"testing"

	"github.com/kernel-sim/kernel-sim/sim"
	"github.com/kernel-sim/kernel-sim/sim/hardware"
	"github.com/kernel-sim/kernel-sim/sim/internal/testutil"
	"github.com/kernel-sim/kernel-sim/sim/trace"
)

// TestGoldenGantt replays each hand-checked scenario and compares the full
// per-tick chart and its summary.
func TestGoldenGantt(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			arrivals := make([]Arrival, 0, len(tc.Programs))
			for _, p := range tc.Programs {
				spec := ProgramSpec{Name: p.Name, Priority: p.Priority, Arrival: p.Arrival}
				for _, op := range p.Ops {
					spec.Instructions = append(spec.Instructions, InstructionSpec{Op: op})
				}
				program, err := spec.Program()
				if err != nil {
					t.Fatalf("building %s: %v", p.Name, err)
				}
				arrivals = append(arrivals, Arrival{Tick: p.Arrival, Job: sim.Job{Program: program, Priority: p.Priority}})
			}
			hwCfg := hardware.Config{MemorySize: tc.MemorySize, Quantum: tc.Quantum, IODuration: tc.IODuration}

			res, err := Execute(sim.Config{Scheduler: tc.Scheduler}, hwCfg, arrivals, 1000)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for pidStr, want := range tc.Rows {
				pid, err := strconv.Atoi(pidStr)
				if err != nil {
					t.Fatalf("bad pid %q", pidStr)
				}
				if got := res.Chart.Row(pid); got != want {
					t.Errorf("pid %d: got %s, want %s", pid, got, want)
				}
			}

			s := trace.Summarize(res.Chart)
			m := tc.Metrics
			if s.Ticks != m.Ticks {
				t.Errorf("ticks: got %d, want %d", s.Ticks, m.Ticks)
			}
			if s.FinishedCount != m.FinishedCount {
				t.Errorf("finished: got %d, want %d", s.FinishedCount, m.FinishedCount)
			}
			if s.CPUIdleTicks != m.CPUIdleTicks {
				t.Errorf("cpu idle: got %d, want %d", s.CPUIdleTicks, m.CPUIdleTicks)
			}
			if s.ContextSwitches != m.ContextSwitches {
				t.Errorf("context switches: got %d, want %d", s.ContextSwitches, m.ContextSwitches)
			}
			testutil.AssertFloat64Equal(t, "mean_turnaround", m.MeanTurnaround, s.MeanTurnaround, 1e-6)
		})
	}
}
