package workload

import (
	"container/heap"

	"github.com/sirupsen/logrus"

	"github.com/kernel-sim/kernel-sim/sim"
)

// Arrival is a job due at a given tick.
type Arrival struct {
	Tick int64
	Job  sim.Job
}

// Submitter is the kernel system call the launcher uses.
type Submitter interface {
	Run(program *sim.Program, priority int) error
}

// arrivalEntry wraps an Arrival with a sequence ID for deterministic FIFO
// tie-breaking when ticks are equal.
type arrivalEntry struct {
	arrival Arrival
	seqID   int64
}

// arrivalQueue is a min-heap ordered by (Tick, seqID).
// Implements heap.Interface.
type arrivalQueue []arrivalEntry

func (q arrivalQueue) Len() int { return len(q) }

func (q arrivalQueue) Less(i, j int) bool {
	if q[i].arrival.Tick != q[j].arrival.Tick {
		return q[i].arrival.Tick < q[j].arrival.Tick
	}
	return q[i].seqID < q[j].seqID
}

func (q arrivalQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *arrivalQueue) Push(x any) {
	*q = append(*q, x.(arrivalEntry))
}

func (q *arrivalQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Launcher is a clock subscriber that submits each job when its tick comes.
// Jobs due at the same tick are submitted in the order they were added.
type Launcher struct {
	kernel Submitter
	queue  arrivalQueue
	nextID int64
}

// NewLauncher creates a launcher holding arrivals.
func NewLauncher(kernel Submitter, arrivals []Arrival) *Launcher {
	if kernel == nil {
		panic("NewLauncher: kernel must not be nil")
	}
	l := &Launcher{kernel: kernel, queue: make(arrivalQueue, 0, len(arrivals))}
	heap.Init(&l.queue)
	for _, a := range arrivals {
		l.Add(a)
	}
	return l
}

// Add schedules another arrival.
func (l *Launcher) Add(a Arrival) {
	heap.Push(&l.queue, arrivalEntry{arrival: a, seqID: l.nextID})
	l.nextID++
}

// Pending returns the number of jobs not yet submitted.
func (l *Launcher) Pending() int { return l.queue.Len() }

// Tick runs at the end of tick and submits the jobs due at the next one, so
// a job with arrival t is in the kernel before the CPU executes tick t.
func (l *Launcher) Tick(tick int64) error {
	return l.SubmitDue(tick + 1)
}

// SubmitDue submits every job due at or before tick. Call it with 0 before
// switching the machine on.
func (l *Launcher) SubmitDue(tick int64) error {
	for l.queue.Len() > 0 && l.queue[0].arrival.Tick <= tick {
		e := heap.Pop(&l.queue).(arrivalEntry)
		job := e.arrival.Job
		logrus.Infof("[tick %d] submitting %s (prio %d)", tick, job.Program.Name(), job.Priority)
		if err := l.kernel.Run(job.Program, job.Priority); err != nil {
			return err
		}
	}
	return nil
}
