// Defines the PCB that models one process in flight and the table that owns
// every PCB for the lifetime of a run.

package sim

import (
	"fmt"
	"sort"
	"strings"
)

// ProcessState is a node of the PCB state machine.
type ProcessState string

const (
	StateNew        ProcessState = "NEW"
	StateReady      ProcessState = "READY"
	StateRunning    ProcessState = "RUNNING"
	StateWaiting    ProcessState = "WAITING"
	StateTerminated ProcessState = "TERMINATED"
)

// transitions lists the legal edges. TERMINATED has none.
var transitions = map[ProcessState][]ProcessState{
	StateNew:     {StateReady},
	StateReady:   {StateRunning},
	StateRunning: {StateWaiting, StateReady, StateTerminated},
	StateWaiting: {StateReady},
}

// CanTransition reports whether from → to is an edge of the state machine.
func CanTransition(from, to ProcessState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PCB is the process control block. PID and BaseDir never change once set.
type PCB struct {
	PID      int
	BaseDir  int    // physical address of the first instruction
	PC       int    // saved program counter, relative to BaseDir
	Priority int    // lower value = more urgent
	Path     string // program name
	State    ProcessState
}

// NewPCB creates a PCB in state NEW. The PID is assigned by PCBTable.Add.
func NewPCB(baseDir int, program *Program, priority int) *PCB {
	return &PCB{
		PID:      -1,
		BaseDir:  baseDir,
		Priority: priority,
		Path:     program.Name(),
		State:    StateNew,
	}
}

// setState moves the PCB along a legal edge.
func (p *PCB) setState(to ProcessState) error {
	if !CanTransition(p.State, to) {
		return fmt.Errorf("pid %d %s -> %s: %w", p.PID, p.State, to, ErrIllegalTransition)
	}
	p.State = to
	return nil
}

func (p *PCB) String() string {
	return fmt.Sprintf("PCB(pid=%d, %s, prio=%d, base=%d, pc=%d, %s)", p.PID, p.Path, p.Priority, p.BaseDir, p.PC, p.State)
}

// PCBTable owns every PCB created during a run. PIDs start at 0, increase
// monotonically and are never reused.
type PCBTable struct {
	pcbs    map[int]*PCB
	nextPID int
}

// NewPCBTable creates an empty table.
func NewPCBTable() *PCBTable {
	return &PCBTable{pcbs: make(map[int]*PCB)}
}

// Add registers pcb under a fresh PID and returns it.
func (t *PCBTable) Add(pcb *PCB) int {
	if pcb == nil {
		panic("PCBTable.Add: pcb must not be nil")
	}
	pid := t.nextPID
	t.nextPID++
	pcb.PID = pid
	t.pcbs[pid] = pcb
	return pid
}

// Get returns the PCB for pid, or nil.
func (t *PCBTable) Get(pid int) *PCB {
	return t.pcbs[pid]
}

// Len returns the number of registered PCBs.
func (t *PCBTable) Len() int {
	return len(t.pcbs)
}

// Running returns the RUNNING PCB, or nil when the CPU is idle.
func (t *PCBTable) Running() *PCB {
	for _, pcb := range t.pcbs {
		if pcb.State == StateRunning {
			return pcb
		}
	}
	return nil
}

// CountState returns how many PCBs are in state.
func (t *PCBTable) CountState(state ProcessState) int {
	n := 0
	for _, pcb := range t.pcbs {
		if pcb.State == state {
			n++
		}
	}
	return n
}

// AllTerminated reports whether every registered PCB is TERMINATED.
// An empty table counts as all terminated.
func (t *PCBTable) AllTerminated() bool {
	for _, pcb := range t.pcbs {
		if pcb.State != StateTerminated {
			return false
		}
	}
	return true
}

// PCBs returns every PCB in PID order.
func (t *PCBTable) PCBs() []*PCB {
	out := make([]*PCB, 0, len(t.pcbs))
	for _, pcb := range t.pcbs {
		out = append(out, pcb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// States returns a PID → state-name snapshot.
func (t *PCBTable) States() map[int]string {
	out := make(map[int]string, len(t.pcbs))
	for pid, pcb := range t.pcbs {
		out[pid] = string(pcb.State)
	}
	return out
}

func (t *PCBTable) String() string {
	var sb strings.Builder
	sb.WriteString("PCBTable[")
	for i, pcb := range t.PCBs() {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%d:%s", pcb.PID, pcb.State))
	}
	sb.WriteString("]")
	return sb.String()
}
