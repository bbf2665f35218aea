package sim

import (
	"errors"
	"fmt"

	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

// Structural violations. Each one means an invariant was broken upstream and
// the current run cannot continue.
var (
	ErrEmptyReadyQueue   = errors.New("ready queue is empty")
	ErrCPUBusy           = errors.New("cpu already holds a process")
	ErrNothingToCollect  = errors.New("io controller has no current process")
	ErrNoRunningProcess  = errors.New("no running process")
	ErrIllegalTransition = errors.New("illegal state transition")
	ErrInvariant         = errors.New("kernel invariant violated")
)

// ErrEmptyProgram is returned for a program without instructions.
var ErrEmptyProgram = errors.New("program has no instructions")

// InterruptError wraps a handler failure with the kernel state at the time.
type InterruptError struct {
	Kind  hardware.Kind
	PID   int    // running PID when the handler started, -1 if none
	Ready string // ready queue rendering
	Err   error
}

func (e *InterruptError) Error() string {
	return fmt.Sprintf("%s handler (running pid=%d, ready=%s): %v", e.Kind, e.PID, e.Ready, e.Err)
}

func (e *InterruptError) Unwrap() error { return e.Err }
