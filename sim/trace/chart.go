// Package trace stores the per-tick Gantt record of a kernel run and derives
// reports from it. It has no dependencies on sim/: states are plain strings.
package trace

import "sort"

// Snapshot is the state of every known process at one tick.
type Snapshot struct {
	Tick   int64
	States map[int]string // PID → state
}

// Chart is an append-only sequence of snapshots.
type Chart struct {
	Snapshots []Snapshot
}

// NewChart creates an empty chart ready for recording.
func NewChart() *Chart {
	return &Chart{Snapshots: make([]Snapshot, 0)}
}

// Record appends a snapshot. The map is copied so callers may reuse it.
func (c *Chart) Record(tick int64, states map[int]string) {
	cp := make(map[int]string, len(states))
	for pid, s := range states {
		cp[pid] = s
	}
	c.Snapshots = append(c.Snapshots, Snapshot{Tick: tick, States: cp})
}

// Len returns the number of snapshots.
func (c *Chart) Len() int {
	return len(c.Snapshots)
}

// PIDs returns every PID that appears in any snapshot, ascending.
func (c *Chart) PIDs() []int {
	seen := make(map[int]bool)
	for _, s := range c.Snapshots {
		for pid := range s.States {
			seen[pid] = true
		}
	}
	pids := make([]int, 0, len(seen))
	for pid := range seen {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

// CountState returns how many processes are in state at snapshot i.
func (c *Chart) CountState(i int, state string) int {
	n := 0
	for _, s := range c.Snapshots[i].States {
		if s == state {
			n++
		}
	}
	return n
}
