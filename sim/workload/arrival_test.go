package workload

import (
	"errors"
	"testing"

	"github.com/kernel-sim/kernel-sim/sim"
	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

type recordingSubmitter struct {
	names []string
	err   error
}

func (r *recordingSubmitter) Run(program *sim.Program, priority int) error {
	if r.err != nil {
		return r.err
	}
	r.names = append(r.names, program.Name())
	return nil
}

func arrival(name string, tick int64) Arrival {
	return Arrival{Tick: tick, Job: sim.Job{Program: sim.MustProgram(name, hardware.CPUBurst(1))}}
}

func TestLauncher_SubmitDue_OrdersByTickThenInsertion(t *testing.T) {
	// GIVEN arrivals added out of tick order, two sharing tick 2
	sub := &recordingSubmitter{}
	l := NewLauncher(sub, []Arrival{
		arrival("late", 5),
		arrival("b", 2),
		arrival("first", 0),
		arrival("c", 2),
	})

	// WHEN everything up to tick 2 is due
	if err := l.SubmitDue(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN they are submitted by tick, ties in insertion order
	want := []string{"first", "b", "c"}
	if len(sub.names) != len(want) {
		t.Fatalf("submitted %v, want %v", sub.names, want)
	}
	for i := range want {
		if sub.names[i] != want[i] {
			t.Errorf("submission %d = %s, want %s", i, sub.names[i], want[i])
		}
	}
	if l.Pending() != 1 {
		t.Errorf("pending = %d, want 1", l.Pending())
	}
}

func TestLauncher_Tick_SubmitsJobsDueNextTick(t *testing.T) {
	sub := &recordingSubmitter{}
	l := NewLauncher(sub, []Arrival{arrival("a", 3)})

	_ = l.Tick(1)
	if len(sub.names) != 0 {
		t.Fatalf("submitted too early: %v", sub.names)
	}
	_ = l.Tick(2)
	if len(sub.names) != 1 {
		t.Fatalf("expected submission at end of tick 2, got %v", sub.names)
	}
}

func TestLauncher_SubmitError_Propagates(t *testing.T) {
	boom := errors.New("boom")
	l := NewLauncher(&recordingSubmitter{err: boom}, []Arrival{arrival("a", 0)})

	if err := l.SubmitDue(0); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestLauncher_Add_AfterConstruction(t *testing.T) {
	sub := &recordingSubmitter{}
	l := NewLauncher(sub, nil)
	l.Add(arrival("x", 1))

	if l.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", l.Pending())
	}
	_ = l.SubmitDue(1)
	if l.Pending() != 0 || len(sub.names) != 1 {
		t.Errorf("expected x submitted, got %v", sub.names)
	}
}
