package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kernel-sim/kernel-sim/sim/hardware"
	"github.com/kernel-sim/kernel-sim/sim/trace"
)

// Job is a program submission.
type Job struct {
	Program  *Program
	Priority int
}

// ArrivalSource reports programs that will still be submitted later. While
// any are pending the kernel does not switch the machine off.
type ArrivalSource interface {
	Pending() int
}

// Kernel owns the PCB table, scheduler, dispatcher and I/O controller and
// reacts to interrupts. It never polls.
type Kernel struct {
	hw         *hardware.Hardware
	loader     *Loader
	table      *PCBTable
	dispatcher *Dispatcher
	scheduler  Scheduler
	io         *IOController
	gantt      *GanttRecorder
	arrivals   ArrivalSource
	onShutdown []func(*trace.Chart)
	shutdown   bool
}

// NewKernel builds a kernel on hw, registers a handler for every interrupt
// kind and subscribes the Gantt recorder to the clock.
func NewKernel(hw *hardware.Hardware, cfg Config) (*Kernel, error) {
	if hw == nil {
		panic("NewKernel: hardware must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table := NewPCBTable()
	dispatcher := NewDispatcher(hw.CPU, hw.MMU, hw.Timer)
	k := &Kernel{
		hw:         hw,
		loader:     NewLoader(hw.Memory),
		table:      table,
		dispatcher: dispatcher,
		scheduler:  NewScheduler(cfg.Scheduler, table, dispatcher),
		io:         NewIOController(hw.IODevice),
		gantt:      NewGanttRecorder(table),
	}
	for _, kind := range hardware.Kinds() {
		kind := kind // per-iteration copy; go.mod targets go1.21 loop semantics
		h, ok := interruptHandlers[kind]
		if !ok {
			return nil, fmt.Errorf("no kernel handler for %s", kind)
		}
		hw.InterruptVector.Register(kind, func(irq hardware.IRQ) error {
			return k.handle(kind, h, irq)
		})
	}
	hw.Clock.AddSubscriber(k.gantt)
	logrus.Infof("kernel up: scheduler=%s quantum=%d", k.scheduler.Name(), hw.Timer.Quantum())
	return k, nil
}

// handle runs h and checks the kernel invariants before returning.
func (k *Kernel) handle(kind hardware.Kind, h handlerFunc, irq hardware.IRQ) error {
	pid := -1
	if running := k.table.Running(); running != nil {
		pid = running.PID
	}
	ready := k.scheduler.Ready().String()
	logrus.Debugf("%s: running=%d ready=%s", irq, pid, ready)

	err := h(k, irq)
	if err == nil {
		err = k.CheckInvariants()
	}
	if err != nil {
		return &InterruptError{Kind: kind, PID: pid, Ready: ready, Err: err}
	}
	return nil
}

// Run submits program by raising a NEW interrupt. This is the kernel's only
// system call.
func (k *Kernel) Run(program *Program, priority int) error {
	if program == nil {
		return ErrEmptyProgram
	}
	return k.hw.InterruptVector.Handle(hardware.IRQ{
		Kind:   hardware.KindNew,
		Params: NewProcess{Program: program, Priority: priority},
	})
}

// ExecuteBatch submits jobs in order. It stops at the first failure.
func (k *Kernel) ExecuteBatch(jobs []Job) error {
	for i, j := range jobs {
		if err := k.Run(j.Program, j.Priority); err != nil {
			return fmt.Errorf("batch job %d: %w", i, err)
		}
	}
	return nil
}

func (k *Kernel) dispatchNext() error {
	next, err := k.scheduler.Next()
	if err != nil {
		return err
	}
	return k.dispatcher.Load(next)
}

func (k *Kernel) pendingArrivals() int {
	if k.arrivals == nil {
		return 0
	}
	return k.arrivals.Pending()
}

// powerOff records the final tick, switches the machine off and emits the
// Gantt record.
func (k *Kernel) powerOff() {
	tick := k.hw.Clock.Now() - 1
	if tick < 0 {
		tick = 0
	}
	k.gantt.Record(tick)
	k.hw.SwitchOff()
	k.shutdown = true

	chart := k.gantt.Chart()
	s := trace.Summarize(chart)
	logrus.Infof("all processes terminated at tick %d: %d processes, mean turnaround %.2f ticks",
		tick, s.FinishedCount, s.MeanTurnaround)
	for _, fn := range k.onShutdown {
		fn(chart)
	}
}

// CheckInvariants verifies that every PCB sits in exactly one place that
// matches its state, that at most one is RUNNING and that the CPU is busy
// exactly when one is.
func (k *Kernel) CheckInvariants() error {
	ready := k.scheduler.Ready()
	running := 0
	for _, pcb := range k.table.PCBs() {
		inReady, inIO := ready.Contains(pcb), k.io.Contains(pcb)
		var ok bool
		switch pcb.State {
		case StateRunning:
			running++
			ok = !inReady && !inIO
		case StateReady:
			ok = inReady && !inIO
		case StateWaiting:
			ok = inIO && !inReady
		case StateTerminated:
			ok = !inReady && !inIO
		default:
			ok = false
		}
		if !ok {
			return fmt.Errorf("%w: pid %d is %s (in ready=%t, in io=%t)", ErrInvariant, pcb.PID, pcb.State, inReady, inIO)
		}
	}
	if running > 1 {
		return fmt.Errorf("%w: %d running processes", ErrInvariant, running)
	}
	if (running == 1) != k.hw.CPU.IsBusy() {
		return fmt.Errorf("%w: %d running processes but cpu busy=%t", ErrInvariant, running, k.hw.CPU.IsBusy())
	}
	if n := k.table.CountState(StateReady); n != ready.Len() {
		return fmt.Errorf("%w: %d READY processes, ready queue holds %d", ErrInvariant, n, ready.Len())
	}
	waiting := k.io.WaitingLen()
	if k.io.Current() != nil {
		waiting++
	}
	if n := k.table.CountState(StateWaiting); n != waiting {
		return fmt.Errorf("%w: %d WAITING processes, io controller holds %d", ErrInvariant, n, waiting)
	}
	return nil
}

// SetArrivalSource registers programs still due to arrive.
func (k *Kernel) SetArrivalSource(src ArrivalSource) { k.arrivals = src }

// OnShutdown registers fn to receive the Gantt record at power-off.
func (k *Kernel) OnShutdown(fn func(*trace.Chart)) {
	k.onShutdown = append(k.onShutdown, fn)
}

// Shutdown reports whether the kernel has switched the machine off.
func (k *Kernel) Shutdown() bool { return k.shutdown }

func (k *Kernel) PCBTable() *PCBTable { return k.table }

func (k *Kernel) Scheduler() Scheduler { return k.scheduler }

func (k *Kernel) IOController() *IOController { return k.io }

func (k *Kernel) Dispatcher() *Dispatcher { return k.dispatcher }

func (k *Kernel) Gantt() *GanttRecorder { return k.gantt }

func (k *Kernel) Hardware() *hardware.Hardware { return k.hw }

func (k *Kernel) String() string {
	return fmt.Sprintf("Kernel(%s, ready=%s, %s)", k.scheduler.Name(), k.scheduler.Ready(), k.io)
}
