package trace

import (
	"reflect"
	"testing"
)

func TestChart_Record_CopiesStates(t *testing.T) {
	// GIVEN a states map the caller keeps mutating
	c := NewChart()
	states := map[int]string{0: StateReady}

	// WHEN it is recorded and then changed
	c.Record(0, states)
	states[0] = StateRunning

	// THEN the snapshot keeps the original value
	if got := c.Snapshots[0].States[0]; got != StateReady {
		t.Errorf("expected READY, got %s", got)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 snapshot, got %d", c.Len())
	}
}

func TestChart_PIDs_UnionAcrossSnapshots(t *testing.T) {
	c := NewChart()
	c.Record(0, map[int]string{2: StateRunning})
	c.Record(1, map[int]string{0: StateReady, 2: StateRunning})
	c.Record(2, map[int]string{0: StateReady, 1: StateNew, 2: StateTerminated})

	if got := c.PIDs(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("expected [0 1 2], got %v", got)
	}
}

func TestChart_CountState(t *testing.T) {
	c := NewChart()
	c.Record(0, map[int]string{0: StateReady, 1: StateReady, 2: StateRunning})

	if n := c.CountState(0, StateReady); n != 2 {
		t.Errorf("expected 2 READY, got %d", n)
	}
	if n := c.CountState(0, StateWaiting); n != 0 {
		t.Errorf("expected 0 WAITING, got %d", n)
	}
}
