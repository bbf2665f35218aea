// Implements the ReadyQueue, which holds every READY process waiting for the
// CPU. Insertion discipline is chosen by the scheduler.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is an ordered sequence of READY PCBs. Every insertion marks the
// PCB READY.
type ReadyQueue struct {
	queue []*PCB
}

// Enqueue appends pcb at the tail.
func (rq *ReadyQueue) Enqueue(pcb *PCB) error {
	return rq.insertAt(len(rq.queue), pcb)
}

// InsertByPriority places pcb before the first entry with strictly worse
// (higher) priority, so equal priorities keep arrival order.
func (rq *ReadyQueue) InsertByPriority(pcb *PCB) error {
	i := 0
	for i < len(rq.queue) && rq.queue[i].Priority <= pcb.Priority {
		i++
	}
	return rq.insertAt(i, pcb)
}

// Requeue places a preempted pcb before the first entry with equal or worse
// priority. A process that already held the CPU goes ahead of its peers.
func (rq *ReadyQueue) Requeue(pcb *PCB) error {
	i := 0
	for i < len(rq.queue) && rq.queue[i].Priority < pcb.Priority {
		i++
	}
	return rq.insertAt(i, pcb)
}

func (rq *ReadyQueue) insertAt(i int, pcb *PCB) error {
	if pcb == nil {
		panic("ReadyQueue: pcb must not be nil")
	}
	if err := pcb.setState(StateReady); err != nil {
		return fmt.Errorf("ready queue insert: %w", err)
	}
	rq.queue = append(rq.queue, nil)
	copy(rq.queue[i+1:], rq.queue[i:])
	rq.queue[i] = pcb
	return nil
}

// Next removes and returns the head.
func (rq *ReadyQueue) Next() (*PCB, error) {
	if len(rq.queue) == 0 {
		return nil, ErrEmptyReadyQueue
	}
	head := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return head, nil
}

// Len returns the number of queued PCBs.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the head without removing it, or nil if empty.
func (rq *ReadyQueue) Peek() *PCB {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Contains reports whether pcb is queued.
func (rq *ReadyQueue) Contains(pcb *PCB) bool {
	for _, p := range rq.queue {
		if p == pcb {
			return true
		}
	}
	return false
}

// Items returns the queue contents in order.
// The returned slice is the queue's internal storage -- callers MUST NOT
// modify it.
func (rq *ReadyQueue) Items() []*PCB {
	return rq.queue
}

// PIDs returns the queued PIDs in order.
func (rq *ReadyQueue) PIDs() []int {
	pids := make([]int, len(rq.queue))
	for i, p := range rq.queue {
		pids[i] = p.PID
	}
	return pids
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(fmt.Sprintf("%d(p%d)", p.PID, p.Priority))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
