package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Scheduler owns the ready queue and decides where a process that has just
// become eligible to run goes. Admit is called for newly created processes,
// processes returning from I/O and nothing else; preemption requeues are
// handled inside the policy.
type Scheduler interface {
	Name() string
	// Admit dispatches pcb at once when the CPU is idle, otherwise queues it
	// (or preempts, depending on the policy).
	Admit(pcb *PCB) error
	// Next pops the head of the ready queue. Callers must check
	// Ready().Len() first; an empty queue is a contract violation.
	Next() (*PCB, error)
	Ready() *ReadyQueue
}

// Preempter is implemented by policies that react to timer interrupts.
// Policies without it treat TIMEOUT as a no-op.
type Preempter interface {
	Preempt(running *PCB) error
}

// readyQueueScheduler carries the state every policy shares.
type readyQueueScheduler struct {
	ready      ReadyQueue
	table      *PCBTable
	dispatcher *Dispatcher
}

func (s *readyQueueScheduler) Ready() *ReadyQueue { return &s.ready }

func (s *readyQueueScheduler) Next() (*PCB, error) { return s.ready.Next() }

// dispatchIfIdle loads pcb directly when nothing is running.
func (s *readyQueueScheduler) dispatchIfIdle(pcb *PCB) (bool, error) {
	if s.table.Running() != nil {
		return false, nil
	}
	if err := pcb.setState(StateReady); err != nil {
		return false, err
	}
	if err := s.dispatcher.Load(pcb); err != nil {
		return false, err
	}
	logrus.Infof("pid %d dispatched on idle cpu", pcb.PID)
	return true, nil
}

// FCFSScheduler runs processes in arrival order and never preempts.
type FCFSScheduler struct {
	readyQueueScheduler
}

func (s *FCFSScheduler) Name() string { return "fcfs" }

func (s *FCFSScheduler) Admit(pcb *PCB) error {
	if ok, err := s.dispatchIfIdle(pcb); ok || err != nil {
		return err
	}
	return s.ready.Enqueue(pcb)
}

// PriorityScheduler orders the ready queue by priority (lower first, ties in
// arrival order) and never preempts the running process.
type PriorityScheduler struct {
	readyQueueScheduler
}

func (s *PriorityScheduler) Name() string { return "priority" }

func (s *PriorityScheduler) Admit(pcb *PCB) error {
	if ok, err := s.dispatchIfIdle(pcb); ok || err != nil {
		return err
	}
	return s.ready.InsertByPriority(pcb)
}

// PreemptivePriorityScheduler orders like PriorityScheduler, but an arrival
// with strictly better priority than the running process takes the CPU.
type PreemptivePriorityScheduler struct {
	readyQueueScheduler
}

func (s *PreemptivePriorityScheduler) Name() string { return "priority-preemptive" }

func (s *PreemptivePriorityScheduler) Admit(pcb *PCB) error {
	if ok, err := s.dispatchIfIdle(pcb); ok || err != nil {
		return err
	}
	running := s.table.Running()
	if pcb.Priority >= running.Priority {
		return s.ready.InsertByPriority(pcb)
	}
	logrus.Infof("pid %d (prio %d) preempts pid %d (prio %d)", pcb.PID, pcb.Priority, running.PID, running.Priority)
	s.dispatcher.Save(running)
	if err := s.ready.Requeue(running); err != nil {
		return err
	}
	if err := pcb.setState(StateReady); err != nil {
		return err
	}
	return s.dispatcher.Load(pcb)
}

// RoundRobinScheduler runs processes in arrival order and rotates the
// running process to the tail whenever its quantum expires.
type RoundRobinScheduler struct {
	readyQueueScheduler
}

func (s *RoundRobinScheduler) Name() string { return "rr" }

func (s *RoundRobinScheduler) Admit(pcb *PCB) error {
	if ok, err := s.dispatchIfIdle(pcb); ok || err != nil {
		return err
	}
	return s.ready.Enqueue(pcb)
}

// Preempt swaps running for the head of the ready queue. With an empty queue
// the running process keeps the CPU.
func (s *RoundRobinScheduler) Preempt(running *PCB) error {
	if s.ready.Len() == 0 {
		return nil
	}
	s.dispatcher.Save(running)
	if err := s.ready.Enqueue(running); err != nil {
		return err
	}
	next, err := s.ready.Next()
	if err != nil {
		return err
	}
	logrus.Infof("quantum expired: pid %d -> pid %d", running.PID, next.PID)
	return s.dispatcher.Load(next)
}

// validSchedulers maps accepted policy names. Empty defaults to fcfs.
var validSchedulers = map[string]bool{
	"":                    true,
	"fcfs":                true,
	"priority":            true,
	"priority-preemptive": true,
	"rr":                  true,
	"round-robin":         true,
}

// IsValidScheduler returns true if name is a recognized scheduling policy.
func IsValidScheduler(name string) bool {
	return validSchedulers[name]
}

// SchedulerNames lists the canonical policy names.
func SchedulerNames() []string {
	return []string{"fcfs", "priority", "priority-preemptive", "rr"}
}

// NewScheduler creates a Scheduler by name.
// Valid names: "fcfs" (default), "priority", "priority-preemptive", "rr"
// (alias "round-robin"). Panics on unrecognized names.
func NewScheduler(name string, table *PCBTable, dispatcher *Dispatcher) Scheduler {
	if !IsValidScheduler(name) {
		panic(fmt.Sprintf("unknown scheduler %q", name))
	}
	base := readyQueueScheduler{table: table, dispatcher: dispatcher}
	switch name {
	case "", "fcfs":
		return &FCFSScheduler{base}
	case "priority":
		return &PriorityScheduler{base}
	case "priority-preemptive":
		return &PreemptivePriorityScheduler{base}
	case "rr", "round-robin":
		return &RoundRobinScheduler{base}
	default:
		panic(fmt.Sprintf("unhandled scheduler %q", name))
	}
}
